package domain

// FilterSpec narrows the view pipeline's projection of the snapshot. A
// process is retained only when every active clause matches. The zero value
// keeps everything.
type FilterSpec struct {
	SearchQuery string      `json:"searchQuery"`
	Protocol    Protocol    `json:"protocol"`
	State       SocketState `json:"state"`
	// IncludeNonListening widens the backend scan itself from
	// listening-only sockets to all connections; it is not a client-side
	// clause.
	IncludeNonListening bool `json:"includeNonListening"`
}

// DefaultFilter matches every process and scans listening sockets only.
func DefaultFilter() FilterSpec {
	return FilterSpec{Protocol: ProtocolAll, State: SocketStateAll}
}

// SortField selects the secondary sort key of the view pipeline. The
// primary key is always favorite-pinning.
type SortField string

const (
	SortByPID    SortField = "pid"
	SortByName   SortField = "name"
	SortByPort   SortField = "port"
	SortByMemory SortField = "memory"
	SortByCPU    SortField = "cpu"
	SortByUser   SortField = "user"
)

// SortDirection flips the secondary comparator, never the favorite-first
// primary ordering.
type SortDirection string

const (
	SortAscending  SortDirection = "ascending"
	SortDescending SortDirection = "descending"
)

// SortSpec selects the ordering of the view pipeline output.
type SortSpec struct {
	Field     SortField     `json:"field"`
	Direction SortDirection `json:"direction"`
}

// DefaultSort orders by PID ascending, matching the backend's own ordering.
func DefaultSort() SortSpec {
	return SortSpec{Field: SortByPID, Direction: SortAscending}
}
