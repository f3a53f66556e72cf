package service

import (
	"context"

	"github.com/portwarden/portwarden/domain"
	"github.com/portwarden/portwarden/pkg/logger"
)

// Refresh runs one reconciliation fetch and atomically replaces the
// snapshot on success. On failure the prior snapshot stays readable:
// stale-but-present data beats blank data.
func (svc *Service) Refresh(ctx context.Context) error {
	showAll := svc.Filter().IncludeNonListening

	snap, err := svc.backend.GetProcesses(ctx, showAll)
	svc.fetchCount.Add(1)
	if err != nil {
		svc.lastFetchErr.Store(err.Error())
		svc.collector.ObserveFetch(false)
		logger.Logger(ctx).Warn().Err(err).Msg("reconciliation fetch failed, keeping previous snapshot")
		return err
	}

	svc.snapshot.Store(snap)
	svc.lastFetchErr.Store("")
	svc.collector.ObserveFetch(true)
	svc.collector.SetSnapshotGauges(len(snap.Processes), snap.TotalConnections)
	logger.Logger(ctx).Debug().
		Int("processes", len(snap.Processes)).
		Int("connections", snap.TotalConnections).
		Bool("backend_available", snap.BackendAvailable).
		Msg("snapshot replaced")
	return nil
}

// Snapshot returns the latest reconciled snapshot. ok is false before the
// first successful fetch.
func (svc *Service) Snapshot() (*domain.Snapshot, bool) {
	v := svc.snapshot.Load()
	if v == nil {
		return nil, false
	}
	return v.(*domain.Snapshot), true
}

func (svc *Service) Status() domain.SyncStatus {
	status := domain.SyncStatus{
		PollIntervalMsec: svc.pollInterval.Load(),
		FetchCount:       svc.fetchCount.Load(),
	}
	svc.pollMu.Lock()
	status.Polling = svc.polling
	svc.pollMu.Unlock()
	if msg, ok := svc.lastFetchErr.Load().(string); ok {
		status.LastFetchError = msg
	}
	return status
}
