package domain

import "context"

// Backend is the remote enumeration/termination service. It performs the
// OS-level socket table scan, process metadata lookup and privileged
// kill/container operations; this repository only consumes its results.
type Backend interface {
	// GetProcesses runs a full re-enumeration. showAllConnections widens
	// the scan from listening-only sockets to every connection.
	GetProcesses(ctx context.Context, showAllConnections bool) (*Snapshot, error)
	// FindPort returns the processes currently bound to port. An empty
	// slice, not an error, when none match.
	FindPort(ctx context.Context, port uint16) ([]*ProcessRecord, error)
	// KillProcess terminates pid, with SIGKILL when force is set.
	KillProcess(ctx context.Context, pid int32, force bool) (*ActionResult, error)
	// ContainerAction executes a container engine command.
	ContainerAction(ctx context.Context, containerID string, action ContainerAction) (*ActionResult, error)
	// GetContainers lists containers known to the container runtime.
	GetContainers(ctx context.Context) ([]*ContainerInfo, error)
}

// FavoritesRepository persists the pinned port set. Absent or corrupt data
// loads as an empty list, never an error.
type FavoritesRepository interface {
	Load(ctx context.Context) ([]uint16, error)
	Save(ctx context.Context, ports []uint16) error
}

// SyncStatus describes the reconciliation loop for consumers.
type SyncStatus struct {
	Polling          bool   `json:"polling"`
	PollIntervalMsec int64  `json:"pollIntervalMsec"`
	LastFetchError   string `json:"lastFetchError,omitempty"`
	FetchCount       uint64 `json:"fetchCount"`
}

// Service is the consumer-facing surface the presentation layer builds on:
// read accessors for the snapshot, the derived view, selection, audit and
// favorites, plus command entry points for every mutation.
type Service interface {
	// Snapshot store.
	Refresh(ctx context.Context) error
	Snapshot() (*Snapshot, bool)
	Status() SyncStatus

	// Poll scheduler.
	StartPolling()
	StopPolling()
	SetPollInterval(msec int64)

	// View pipeline.
	View() []*ProcessRecord
	SetFilter(ctx context.Context, spec FilterSpec)
	SetSort(spec SortSpec)
	Filter() FilterSpec
	Sort() SortSpec

	// Selection tracker.
	Select(pid *int32)
	ToggleSelect(pid int32)
	SelectAll()
	ClearSelection()
	Selection() []int32

	// Action mediator.
	TerminateProcess(ctx context.Context, pid int32, force bool) *ActionResult
	ContainerAction(ctx context.Context, containerID string, action ContainerAction) *ActionResult

	// Audit log.
	AuditEntries() []*AuditEntry
	ClearAudit()

	// Favorites registry.
	Favorites() []uint16
	AddFavorite(ctx context.Context, port uint16) error
	RemoveFavorite(ctx context.Context, port uint16) error
	ToggleFavorite(ctx context.Context, port uint16) error

	// Port lookup and container listing.
	FindPort(ctx context.Context, port int) ([]*ProcessRecord, error)
	Containers(ctx context.Context) ([]*ContainerInfo, error)

	// Operator auth.
	IssueToken(ctx context.Context, password string) (token string, expiresAt int64, err error)
	VerifyToken(tokenString string) error
}
