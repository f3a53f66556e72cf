package service

import "sort"

// Select replaces the whole selection with a single pid, or clears it when
// pid is nil. Membership is not validated against the snapshot: a selected
// pid whose process has exited is simply inert after the next refresh.
func (svc *Service) Select(pid *int32) {
	svc.selMu.Lock()
	defer svc.selMu.Unlock()
	svc.selection = map[int32]struct{}{}
	if pid != nil {
		svc.selection[*pid] = struct{}{}
	}
}

// ToggleSelect adds pid to the selection, or removes it when already
// present. It is its own inverse.
func (svc *Service) ToggleSelect(pid int32) {
	svc.selMu.Lock()
	defer svc.selMu.Unlock()
	if _, ok := svc.selection[pid]; ok {
		delete(svc.selection, pid)
		return
	}
	svc.selection[pid] = struct{}{}
}

// SelectAll selects every pid in the full snapshot, not the filtered view.
func (svc *Service) SelectAll() {
	snap, ok := svc.Snapshot()
	if !ok {
		return
	}
	svc.selMu.Lock()
	defer svc.selMu.Unlock()
	svc.selection = make(map[int32]struct{}, len(snap.Processes))
	for _, p := range snap.Processes {
		svc.selection[p.PID] = struct{}{}
	}
}

func (svc *Service) ClearSelection() {
	svc.selMu.Lock()
	defer svc.selMu.Unlock()
	svc.selection = map[int32]struct{}{}
}

func (svc *Service) Selection() []int32 {
	svc.selMu.Lock()
	pids := make([]int32, 0, len(svc.selection))
	for pid := range svc.selection {
		pids = append(pids, pid)
	}
	svc.selMu.Unlock()
	sort.Slice(pids, func(i, j int) bool { return pids[i] < pids[j] })
	return pids
}
