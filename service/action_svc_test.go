package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/portwarden/portwarden/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminateProcessSuccess(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestService(backend, nil)

	backend.setSnapshot(makeSnapshot(makeProcess(100, "nginx", tcpListening(80))))
	require.NoError(t, svc.Refresh(context.Background()))

	result := svc.TerminateProcess(context.Background(), 100, false)
	require.NotNil(t, result)
	assert.True(t, result.Success)

	_, kills, _, _ := backend.counts()
	assert.Equal(t, 1, kills)

	entries := svc.AuditEntries()
	require.Len(t, entries, 1, "exactly one audit entry per invocation")
	assert.Equal(t, domain.ActionGracefulTerminate, entries[0].ActionKind)
	assert.Equal(t, "nginx", entries[0].TargetName)
	assert.Equal(t, int32(100), entries[0].PID)
	assert.Equal(t, uint16(80), entries[0].Port)
	assert.True(t, entries[0].Succeeded)

	// Settle delay elapses, then exactly one follow-up fetch runs.
	require.Eventually(t, func() bool {
		get, _, _, _ := backend.counts()
		return get == 2
	}, waitTimeout, pollTick)
}

func TestTerminateProcessForceKindAudited(t *testing.T) {
	backend := &fakeBackend{killErr: fmt.Errorf("operation not permitted")}
	svc := newTestService(backend, nil)

	result := svc.TerminateProcess(context.Background(), 4242, true)
	require.NotNil(t, result)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "not permitted")

	entries := svc.AuditEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ActionForceTerminate, entries[0].ActionKind)
	assert.Equal(t, unknownTarget, entries[0].TargetName, "missing record falls back to unknown")
	assert.False(t, entries[0].Succeeded)

	// Failures never schedule a follow-up fetch.
	get, _, _, _ := backend.counts()
	assert.Zero(t, get)
}

func TestTerminateProtectedProcessRejectedPreFlight(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestService(backend, nil)

	protected := makeProcess(512, "systemd-resolved", tcpListening(53))
	protected.IsProtected = true
	backend.setSnapshot(makeSnapshot(protected))
	require.NoError(t, svc.Refresh(context.Background()))

	result := svc.TerminateProcess(context.Background(), 512, true)
	require.NotNil(t, result)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "protected")

	_, kills, _, _ := backend.counts()
	assert.Zero(t, kills, "protected rejection must not reach the backend")

	entries := svc.AuditEntries()
	require.Len(t, entries, 1)
	assert.False(t, entries[0].Succeeded)
}

func TestTerminatePIDOneRejected(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestService(backend, nil)

	result := svc.TerminateProcess(context.Background(), 1, true)
	assert.False(t, result.Success)
	_, kills, _, _ := backend.counts()
	assert.Zero(t, kills)
}

func TestContainerActionResolvesTargetName(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestService(backend, nil)

	fronting := makeProcess(700, "docker-proxy", tcpListening(8080))
	fronting.Container = &domain.ContainerInfo{
		ID:   "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef",
		Name: "webapp",
	}
	backend.setSnapshot(makeSnapshot(fronting))
	require.NoError(t, svc.Refresh(context.Background()))

	result := svc.ContainerAction(context.Background(), "0123456789ab", domain.ContainerStop)
	require.NotNil(t, result)
	assert.True(t, result.Success)

	entries := svc.AuditEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ActionContainerStop, entries[0].ActionKind)
	assert.Equal(t, "webapp", entries[0].TargetName)
	assert.Equal(t, int32(700), entries[0].PID)
}

func TestContainerActionUnknownContainerTruncatesID(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestService(backend, nil)

	longID := "fedcba9876543210fedcba9876543210fedcba9876543210fedcba9876543210"
	result := svc.ContainerAction(context.Background(), longID, domain.ContainerKill)
	require.NotNil(t, result)
	assert.True(t, result.Success)

	entries := svc.AuditEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, "fedcba987654", entries[0].TargetName)
	assert.Equal(t, domain.ActionContainerKill, entries[0].ActionKind)
}

func TestContainerActionInvalidRejectedBeforeBackend(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestService(backend, nil)

	result := svc.ContainerAction(context.Background(), "abc123def456", domain.ContainerAction("pause"))
	require.NotNil(t, result)
	assert.False(t, result.Success)

	_, _, actions, _ := backend.counts()
	assert.Zero(t, actions)

	entries := svc.AuditEntries()
	require.Len(t, entries, 1)
	assert.False(t, entries[0].Succeeded)
}

func TestContainerActionBackendErrorSynthesizesFailure(t *testing.T) {
	backend := &fakeBackend{actionErr: fmt.Errorf("container engine unreachable")}
	svc := newTestService(backend, nil)

	result := svc.ContainerAction(context.Background(), "abc123def456", domain.ContainerRestart)
	require.NotNil(t, result)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "unreachable")

	entries := svc.AuditEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ActionContainerRestart, entries[0].ActionKind)
}
