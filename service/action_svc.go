package service

import (
	"context"
	"fmt"
	"time"

	"github.com/portwarden/portwarden/domain"
	"github.com/portwarden/portwarden/pkg/logger"
)

const unknownTarget = "unknown"

// TerminateProcess terminates pid through the backend. Protected processes
// are rejected here before any remote call, independent of the backend's
// own enforcement. Every invocation records exactly one audit entry; a
// successful termination schedules one follow-up fetch after the settle
// delay.
func (svc *Service) TerminateProcess(ctx context.Context, pid int32, force bool) *domain.ActionResult {
	kind := domain.ActionGracefulTerminate
	if force {
		kind = domain.ActionForceTerminate
	}

	// Best-effort audit context: the process may already be gone from the
	// snapshot if the operator raced an exit.
	name, port := unknownTarget, uint16(0)
	var record *domain.ProcessRecord
	if snap, ok := svc.Snapshot(); ok {
		record = snap.FindByPID(pid)
	}
	if record != nil {
		name = record.Name
		port = record.FirstPort()
	}

	if record != nil && record.IsProtected {
		result := &domain.ActionResult{
			Success: false,
			Message: fmt.Sprintf("cannot terminate protected system process: %s", name),
		}
		svc.finishAction(ctx, kind, name, pid, port, result, 0)
		return result
	}
	// Kernel and init are off limits even when the record is missing.
	if pid <= 1 {
		result := &domain.ActionResult{
			Success: false,
			Message: fmt.Sprintf("cannot terminate protected pid: %d", pid),
		}
		svc.finishAction(ctx, kind, name, pid, port, result, 0)
		return result
	}

	result, err := svc.backend.KillProcess(ctx, pid, force)
	if err != nil {
		result = &domain.ActionResult{Success: false, Message: err.Error()}
	}
	svc.finishAction(ctx, kind, name, pid, port, result, svc.settleDelay)
	return result
}

// ContainerAction executes a container engine command through the backend,
// following the same audit-always, refresh-on-success protocol. The audit
// target is resolved from the snapshot record fronting the container, or a
// truncated container id when no record matches.
func (svc *Service) ContainerAction(ctx context.Context, containerID string, action domain.ContainerAction) *domain.ActionResult {
	kind := action.Kind()

	name := truncateID(containerID)
	pid, port := int32(0), uint16(0)
	if snap, ok := svc.Snapshot(); ok {
		if record := snap.FindByContainerID(containerID); record != nil {
			name = record.Container.Name
			pid = record.PID
			port = record.FirstPort()
		}
	}

	if !action.Valid() {
		result := &domain.ActionResult{
			Success: false,
			Message: fmt.Sprintf("%v: %s", domain.ErrInvalidContainerAction, action),
		}
		svc.finishAction(ctx, kind, name, pid, port, result, 0)
		return result
	}

	result, err := svc.backend.ContainerAction(ctx, containerID, action)
	if err != nil {
		result = &domain.ActionResult{Success: false, Message: err.Error()}
	}
	// Container engines take longer than the OS to reflect a stopped or
	// removed state.
	svc.finishAction(ctx, kind, name, pid, port, result, svc.containerSettleDelay)
	return result
}

// finishAction records the audit entry for one mediated action and, on
// success, schedules the single follow-up reconciliation fetch.
func (svc *Service) finishAction(ctx context.Context, kind domain.ActionKind, name string, pid int32, port uint16, result *domain.ActionResult, settle time.Duration) {
	svc.appendAudit(kind, name, pid, port, result.Success, result.Message)
	svc.collector.ObserveAction(kind, result.Success)

	if !result.Success {
		logger.Logger(ctx).Warn().
			Str("action", string(kind)).
			Str("target", name).
			Int32("pid", pid).
			Str("message", result.Message).
			Msg("action failed")
		return
	}

	logger.Logger(ctx).Info().
		Str("action", string(kind)).
		Str("target", name).
		Int32("pid", pid).
		Msg("action succeeded")

	time.AfterFunc(settle, func() {
		svc.Refresh(context.WithoutCancel(ctx))
	})
}

func truncateID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
