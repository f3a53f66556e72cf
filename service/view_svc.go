package service

import (
	"sort"
	"strconv"
	"strings"

	"github.com/portwarden/portwarden/domain"
)

// View derives the display projection from the current snapshot, filter,
// sort and favorites. It is recomputed on every call and never mutates the
// snapshot.
func (svc *Service) View() []*domain.ProcessRecord {
	snap, ok := svc.Snapshot()
	if !ok {
		return []*domain.ProcessRecord{}
	}

	svc.viewMu.RLock()
	filter := svc.filter
	sortSpec := svc.sort
	svc.viewMu.RUnlock()

	svc.favMu.Lock()
	favSet := make(map[uint16]struct{}, len(svc.favSet))
	for port := range svc.favSet {
		favSet[port] = struct{}{}
	}
	svc.favMu.Unlock()

	return BuildView(snap, filter, sortSpec, favSet)
}

// BuildView is the pure view pipeline: filter, then stable sort with
// favorite-pinned processes first.
func BuildView(snap *domain.Snapshot, filter domain.FilterSpec, sortSpec domain.SortSpec, favorites map[uint16]struct{}) []*domain.ProcessRecord {
	view := make([]*domain.ProcessRecord, 0, len(snap.Processes))
	for _, p := range snap.Processes {
		if matchesFilter(p, filter) {
			view = append(view, p)
		}
	}

	desc := sortSpec.Direction == domain.SortDescending
	sort.SliceStable(view, func(i, j int) bool {
		favI := hasFavoritePort(view[i], favorites)
		favJ := hasFavoritePort(view[j], favorites)
		if favI != favJ {
			return favI
		}
		c := compareByField(view[i], view[j], sortSpec.Field)
		if c == 0 {
			return false
		}
		if desc {
			return c > 0
		}
		return c < 0
	})

	return view
}

// matchesFilter retains a process only when every active clause matches.
func matchesFilter(p *domain.ProcessRecord, filter domain.FilterSpec) bool {
	if q := strings.TrimSpace(filter.SearchQuery); q != "" && !matchesSearch(p, q) {
		return false
	}

	if filter.Protocol != "" && filter.Protocol != domain.ProtocolAll {
		found := false
		for _, b := range p.Ports {
			if b.Protocol == filter.Protocol {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if filter.State != "" && filter.State != domain.SocketStateAll {
		found := false
		for _, b := range p.Ports {
			if b.State == filter.State {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// matchesSearch checks the query as a case-insensitive substring of the
// name, pid, user, command line, container name or any bound local port.
func matchesSearch(p *domain.ProcessRecord, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(p.Name), q) {
		return true
	}
	if strings.Contains(strconv.Itoa(int(p.PID)), q) {
		return true
	}
	if strings.Contains(strings.ToLower(p.User), q) {
		return true
	}
	if strings.Contains(strings.ToLower(p.CommandLine), q) {
		return true
	}
	if p.Container != nil && strings.Contains(strings.ToLower(p.Container.Name), q) {
		return true
	}
	for _, b := range p.Ports {
		if strings.Contains(strconv.Itoa(int(b.LocalPort)), q) {
			return true
		}
	}
	return false
}

func hasFavoritePort(p *domain.ProcessRecord, favorites map[uint16]struct{}) bool {
	for _, b := range p.Ports {
		if _, ok := favorites[b.LocalPort]; ok {
			return true
		}
	}
	return false
}

// compareByField returns -1, 0 or 1. The "port" field compares the first
// binding's local port; a process with no ports sorts as port 0.
func compareByField(a, b *domain.ProcessRecord, field domain.SortField) int {
	switch field {
	case domain.SortByName:
		return compareFolded(a.Name, b.Name)
	case domain.SortByUser:
		return compareFolded(a.User, b.User)
	case domain.SortByPort:
		return compareInt(int64(a.FirstPort()), int64(b.FirstPort()))
	case domain.SortByMemory:
		return compareInt(int64(a.MemoryBytes), int64(b.MemoryBytes))
	case domain.SortByCPU:
		switch {
		case a.CPUPercent < b.CPUPercent:
			return -1
		case a.CPUPercent > b.CPUPercent:
			return 1
		}
		return 0
	default:
		return compareInt(int64(a.PID), int64(b.PID))
	}
}

func compareFolded(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
