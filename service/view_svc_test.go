package service

import (
	"context"
	"testing"

	"github.com/portwarden/portwarden/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func viewPIDs(view []*domain.ProcessRecord) []int32 {
	pids := make([]int32, 0, len(view))
	for _, p := range view {
		pids = append(pids, p.PID)
	}
	return pids
}

func TestBuildViewFavoriteFirstOverridesSort(t *testing.T) {
	// pid 200 binds port 22; favoriting 3000 must pin pid 100 above it
	// even under ascending port order.
	snap := makeSnapshot(
		makeProcess(100, "node", tcpListening(3000)),
		makeProcess(200, "sshd", tcpListening(22)),
	)
	sortSpec := domain.SortSpec{Field: domain.SortByPort, Direction: domain.SortAscending}
	favorites := map[uint16]struct{}{3000: {}}

	view := BuildView(snap, domain.DefaultFilter(), sortSpec, favorites)
	require.Len(t, view, 2)
	assert.Equal(t, []int32{100, 200}, viewPIDs(view))

	// Flipping the direction reorders non-favorites only; the favorite
	// stays pinned at the top.
	sortSpec.Direction = domain.SortDescending
	view = BuildView(snap, domain.DefaultFilter(), sortSpec, favorites)
	assert.Equal(t, []int32{100, 200}, viewPIDs(view))
}

func TestBuildViewDirectionFlipsNonFavorites(t *testing.T) {
	snap := makeSnapshot(
		makeProcess(100, "node", tcpListening(3000)),
		makeProcess(200, "sshd", tcpListening(22)),
		makeProcess(300, "postgres", tcpListening(5432)),
	)
	sortSpec := domain.SortSpec{Field: domain.SortByPort, Direction: domain.SortAscending}
	favorites := map[uint16]struct{}{22: {}}

	view := BuildView(snap, domain.DefaultFilter(), sortSpec, favorites)
	assert.Equal(t, []int32{200, 100, 300}, viewPIDs(view))

	sortSpec.Direction = domain.SortDescending
	view = BuildView(snap, domain.DefaultFilter(), sortSpec, favorites)
	assert.Equal(t, []int32{200, 300, 100}, viewPIDs(view))
}

func TestBuildViewProtocolFilter(t *testing.T) {
	udp := domain.PortBinding{
		Protocol:  domain.ProtocolUDP,
		LocalPort: 53,
		State:     domain.SocketUnknown,
	}
	snap := makeSnapshot(
		makeProcess(100, "nginx", tcpListening(80)),
		makeProcess(200, "dnsmasq", udp),
	)

	filter := domain.DefaultFilter()
	filter.Protocol = domain.ProtocolUDP
	view := BuildView(snap, filter, domain.DefaultSort(), nil)
	require.Len(t, view, 1)
	assert.Equal(t, "dnsmasq", view[0].Name)

	// No UDP sockets at all: the view is empty, not an error.
	snap = makeSnapshot(makeProcess(100, "nginx", tcpListening(80)))
	view = BuildView(snap, filter, domain.DefaultSort(), nil)
	assert.Empty(t, view)
}

func TestBuildViewStateFilter(t *testing.T) {
	established := domain.PortBinding{
		Protocol:  domain.ProtocolTCP,
		LocalPort: 44321,
		State:     domain.SocketEstablished,
	}
	snap := makeSnapshot(
		makeProcess(100, "nginx", tcpListening(80)),
		makeProcess(200, "curl", established),
	)

	filter := domain.DefaultFilter()
	filter.State = domain.SocketEstablished
	view := BuildView(snap, filter, domain.DefaultSort(), nil)
	require.Len(t, view, 1)
	assert.Equal(t, int32(200), view[0].PID)
}

func TestBuildViewSearchFields(t *testing.T) {
	withContainer := makeProcess(300, "docker-proxy", tcpListening(8080))
	withContainer.Container = &domain.ContainerInfo{ID: "abc123", Name: "webapp"}
	withCmdline := makeProcess(400, "python3", tcpListening(8000))
	withCmdline.CommandLine = "python3 -m http.server 8000"
	withCmdline.User = "deploy"

	snap := makeSnapshot(
		makeProcess(100, "nginx", tcpListening(80)),
		withContainer,
		withCmdline,
	)

	cases := []struct {
		query string
		want  []int32
	}{
		{"NGINX", []int32{100}},            // name, case-insensitive
		{"400", []int32{400}},              // pid substring
		{"deploy", []int32{400}},           // user
		{"http.server", []int32{400}},      // command line
		{"webapp", []int32{300}},           // container name
		{"808", []int32{300}},              // port substring
		{"no-such-thing", []int32{}},
	}
	for _, tc := range cases {
		filter := domain.DefaultFilter()
		filter.SearchQuery = tc.query
		view := BuildView(snap, filter, domain.DefaultSort(), nil)
		assert.Equal(t, tc.want, viewPIDs(view), "query %q", tc.query)
	}
}

func TestBuildViewPortlessSortsAsZero(t *testing.T) {
	snap := makeSnapshot(
		makeProcess(100, "nginx", tcpListening(80)),
		makeProcess(200, "idle"),
	)
	sortSpec := domain.SortSpec{Field: domain.SortByPort, Direction: domain.SortAscending}

	view := BuildView(snap, domain.DefaultFilter(), sortSpec, nil)
	require.Len(t, view, 2)
	assert.Equal(t, int32(200), view[0].PID, "portless process sorts as port 0")
}

func TestBuildViewNameSortCaseFolded(t *testing.T) {
	snap := makeSnapshot(
		makeProcess(100, "Zsh", tcpListening(1)),
		makeProcess(200, "apache", tcpListening(2)),
	)
	sortSpec := domain.SortSpec{Field: domain.SortByName, Direction: domain.SortAscending}

	view := BuildView(snap, domain.DefaultFilter(), sortSpec, nil)
	assert.Equal(t, []int32{200, 100}, viewPIDs(view))
}

func TestSetFilterScopeFlipTriggersRefresh(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestService(backend, nil)

	// Same scope: no fetch.
	svc.SetFilter(context.Background(), domain.DefaultFilter())
	get, _, _, _ := backend.counts()
	assert.Zero(t, get)

	spec := domain.DefaultFilter()
	spec.IncludeNonListening = true
	svc.SetFilter(context.Background(), spec)

	require.Eventually(t, func() bool {
		get, _, _, _ := backend.counts()
		return get == 1
	}, waitTimeout, pollTick, "flipping scan scope triggers one immediate fetch")
}
