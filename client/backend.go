package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	cache "github.com/Code-Hex/go-generics-cache"
	"github.com/portwarden/portwarden/config"
	"github.com/portwarden/portwarden/domain"
	"github.com/portwarden/portwarden/pkg/logger"
)

// successEnvelope is the backend's response wrapper for 2xx answers.
type successEnvelope[T any] struct {
	Success   bool   `json:"success"`
	Data      *T     `json:"data"`
	Timestamp string `json:"timestamp,omitempty"`
}

// errorEnvelope is the backend's response wrapper for non-2xx answers.
type errorEnvelope struct {
	Success bool                 `json:"success"`
	Error   *domain.BackendError `json:"error"`
}

type findPortData struct {
	Processes []*domain.ProcessRecord `json:"processes"`
}

type containersData struct {
	Containers []*domain.ContainerInfo `json:"containers"`
}

type killRequest struct {
	Force bool `json:"force"`
}

type containerActionRequest struct {
	Action domain.ContainerAction `json:"action"`
}

func NewBackendClient(cfg config.BackendConfig) domain.Backend {
	return &BackendClient{
		Client: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeoutSec) * time.Second,
		},
		baseURL:       cfg.BaseURL,
		portCache:     cache.New[uint16, []*domain.ProcessRecord](),
		portLookupTTL: time.Duration(cfg.PortLookupTTLMsec) * time.Millisecond,
	}
}

type BackendClient struct {
	*http.Client

	baseURL       string
	portCache     *cache.Cache[uint16, []*domain.ProcessRecord]
	portLookupTTL time.Duration
}

func (bc *BackendClient) GetProcesses(ctx context.Context, showAllConnections bool) (*domain.Snapshot, error) {
	endpoint := bc.baseURL + "/api/v1/processes?all=" + strconv.FormatBool(showAllConnections)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := bc.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, decodeBackendError(resp)
	}

	var envelope successEnvelope[domain.Snapshot]
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(&envelope); err != nil {
		return nil, err
	}
	if envelope.Data == nil {
		return nil, fmt.Errorf("backend returned empty snapshot")
	}
	return envelope.Data, nil
}

func (bc *BackendClient) FindPort(ctx context.Context, port uint16) ([]*domain.ProcessRecord, error) {
	if records, ok := bc.portCache.Get(port); ok {
		return records, nil
	}

	endpoint := bc.baseURL + "/api/v1/ports/" + strconv.Itoa(int(port))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := bc.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, decodeBackendError(resp)
	}

	var envelope successEnvelope[findPortData]
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(&envelope); err != nil {
		return nil, err
	}
	records := []*domain.ProcessRecord{}
	if envelope.Data != nil {
		records = envelope.Data.Processes
	}

	// Repeat lookups from the presentation layer within one scan
	// generation are common; a short TTL keeps staleness well under the
	// poll interval.
	bc.portCache.Set(port, records, cache.WithExpiration(bc.portLookupTTL))
	return records, nil
}

func (bc *BackendClient) KillProcess(ctx context.Context, pid int32, force bool) (*domain.ActionResult, error) {
	logger.Logger(ctx).Debug().Int32("pid", pid).Bool("force", force).Msg("sending kill request to backend")

	endpoint := bc.baseURL + "/api/v1/processes/" + strconv.Itoa(int(pid)) + "/kill"
	return bc.postAction(ctx, endpoint, killRequest{Force: force})
}

func (bc *BackendClient) ContainerAction(ctx context.Context, containerID string, action domain.ContainerAction) (*domain.ActionResult, error) {
	logger.Logger(ctx).Debug().Str("container_id", containerID).Str("action", string(action)).Msg("sending container action to backend")

	endpoint := bc.baseURL + "/api/v1/containers/" + containerID + "/actions"
	return bc.postAction(ctx, endpoint, containerActionRequest{Action: action})
}

func (bc *BackendClient) GetContainers(ctx context.Context) ([]*domain.ContainerInfo, error) {
	endpoint := bc.baseURL + "/api/v1/containers"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := bc.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, decodeBackendError(resp)
	}

	var envelope successEnvelope[containersData]
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(&envelope); err != nil {
		return nil, err
	}
	if envelope.Data == nil {
		return []*domain.ContainerInfo{}, nil
	}
	return envelope.Data.Containers, nil
}

func (bc *BackendClient) postAction(ctx context.Context, endpoint string, payload any) (*domain.ActionResult, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := bc.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, decodeBackendError(resp)
	}

	var envelope successEnvelope[domain.ActionResult]
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(&envelope); err != nil {
		return nil, err
	}
	if envelope.Data == nil {
		return nil, fmt.Errorf("backend returned empty action result")
	}
	return envelope.Data, nil
}

func decodeBackendError(resp *http.Response) error {
	var envelope errorEnvelope
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(&envelope); err == nil && envelope.Error != nil {
		return envelope.Error
	}
	return fmt.Errorf("backend returned non-OK status: %s", resp.Status)
}
