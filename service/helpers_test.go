package service

import (
	"context"
	"sync"
	"time"

	"github.com/portwarden/portwarden/config"
	"github.com/portwarden/portwarden/domain"
)

const (
	waitTimeout = 2 * time.Second
	pollTick    = 5 * time.Millisecond
)

// fakeBackend is a scriptable in-memory domain.Backend.
type fakeBackend struct {
	mu sync.Mutex

	snapshot     *domain.Snapshot
	getErr       error
	getCalls     int
	killResult   *domain.ActionResult
	killErr      error
	killCalls    int
	actionResult *domain.ActionResult
	actionErr    error
	actionCalls  int
	findCalls    int
	findResult   []*domain.ProcessRecord
	containers   []*domain.ContainerInfo
}

func (f *fakeBackend) GetProcesses(ctx context.Context, showAllConnections bool) (*domain.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.snapshot == nil {
		return &domain.Snapshot{CapturedAt: time.Now().UTC()}, nil
	}
	return f.snapshot, nil
}

func (f *fakeBackend) FindPort(ctx context.Context, port uint16) ([]*domain.ProcessRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findCalls++
	return f.findResult, nil
}

func (f *fakeBackend) KillProcess(ctx context.Context, pid int32, force bool) (*domain.ActionResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.killCalls++
	if f.killErr != nil {
		return nil, f.killErr
	}
	if f.killResult == nil {
		return &domain.ActionResult{Success: true, Message: "terminated"}, nil
	}
	return f.killResult, nil
}

func (f *fakeBackend) ContainerAction(ctx context.Context, containerID string, action domain.ContainerAction) (*domain.ActionResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actionCalls++
	if f.actionErr != nil {
		return nil, f.actionErr
	}
	if f.actionResult == nil {
		return &domain.ActionResult{Success: true, Message: "done"}, nil
	}
	return f.actionResult, nil
}

func (f *fakeBackend) GetContainers(ctx context.Context) ([]*domain.ContainerInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.containers, nil
}

func (f *fakeBackend) counts() (get, kill, action, find int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.getCalls, f.killCalls, f.actionCalls, f.findCalls
}

func (f *fakeBackend) setSnapshot(snap *domain.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snapshot = snap
}

func (f *fakeBackend) setGetErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getErr = err
}

// memFavoritesRepo keeps saves in memory and counts them.
type memFavoritesRepo struct {
	mu    sync.Mutex
	ports []uint16
	saves int
}

func (m *memFavoritesRepo) Load(ctx context.Context) ([]uint16, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]uint16{}, m.ports...), nil
}

func (m *memFavoritesRepo) Save(ctx context.Context, ports []uint16) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ports = append([]uint16{}, ports...)
	m.saves++
	return nil
}

func (m *memFavoritesRepo) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func newTestService(backend domain.Backend, favRepo domain.FavoritesRepository) *Service {
	if favRepo == nil {
		favRepo = &memFavoritesRepo{}
	}
	pollCfg := config.PollingConfig{
		IntervalMsec:             20,
		SettleDelayMsec:          5,
		ContainerSettleDelayMsec: 10,
	}
	keyCfg := config.KeyConfig{
		JWTSecret:     "test-secret",
		TokenTTLHours: 1,
	}
	return newService(backend, favRepo, pollCfg, keyCfg)
}

func makeProcess(pid int32, name string, ports ...domain.PortBinding) *domain.ProcessRecord {
	id := name
	return &domain.ProcessRecord{
		ID:    id,
		PID:   pid,
		Name:  name,
		User:  "root",
		Ports: ports,
	}
}

func tcpListening(port uint16) domain.PortBinding {
	return domain.PortBinding{
		Protocol:     domain.ProtocolTCP,
		LocalAddress: "0.0.0.0",
		LocalPort:    port,
		State:        domain.SocketListening,
	}
}

func makeSnapshot(processes ...*domain.ProcessRecord) *domain.Snapshot {
	return &domain.Snapshot{
		Processes:        processes,
		TotalConnections: len(processes),
		BackendAvailable: true,
		CapturedAt:       time.Now().UTC(),
	}
}
