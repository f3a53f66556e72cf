package domain_test

import (
	"testing"

	"github.com/portwarden/portwarden/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindByContainerIDPrefixMatch(t *testing.T) {
	fullID := "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
	snap := &domain.Snapshot{
		Processes: []*domain.ProcessRecord{
			{PID: 100, Name: "docker-proxy", Container: &domain.ContainerInfo{ID: fullID, Name: "webapp"}},
			{PID: 200, Name: "bash"},
		},
	}

	require.NotNil(t, snap.FindByContainerID(fullID))
	require.NotNil(t, snap.FindByContainerID(fullID[:12]), "truncated 12-char id matches")
	assert.Nil(t, snap.FindByContainerID("ffffffffffff"))
	assert.Nil(t, snap.FindByContainerID("0123"), "prefixes shorter than 12 chars only match exactly")
}

func TestFirstPort(t *testing.T) {
	p := &domain.ProcessRecord{
		Ports: []domain.PortBinding{
			{Protocol: domain.ProtocolTCP, LocalPort: 8080, State: domain.SocketListening},
			{Protocol: domain.ProtocolTCP, LocalPort: 8443, State: domain.SocketListening},
		},
	}
	assert.Equal(t, uint16(8080), p.FirstPort())
	assert.True(t, p.HasPort(8443))
	assert.False(t, p.HasPort(80))

	empty := &domain.ProcessRecord{}
	assert.Equal(t, uint16(0), empty.FirstPort())
}

func TestValidatePort(t *testing.T) {
	assert.NoError(t, domain.ValidatePort(1))
	assert.NoError(t, domain.ValidatePort(65535))
	assert.ErrorIs(t, domain.ValidatePort(0), domain.ErrPortOutOfRange)
	assert.ErrorIs(t, domain.ValidatePort(65536), domain.ErrPortOutOfRange)
	assert.ErrorIs(t, domain.ValidatePort(-1), domain.ErrPortOutOfRange)
}

func TestContainerActionKind(t *testing.T) {
	assert.Equal(t, domain.ActionContainerStop, domain.ContainerStop.Kind())
	assert.Equal(t, domain.ActionContainerKill, domain.ContainerKill.Kind())
	assert.Equal(t, domain.ActionContainerRemove, domain.ContainerRemove.Kind())
	assert.Equal(t, domain.ActionContainerRestart, domain.ContainerRestart.Kind())

	assert.True(t, domain.ContainerStop.Valid())
	assert.False(t, domain.ContainerAction("pause").Valid())
}
