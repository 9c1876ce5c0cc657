package dispatch

// DispatchState is the editable runtime state layered over the reference
// data: live status overrides, capability overrides, and the mutual-aid
// toggle. It is owned by the caller and passed explicitly into every
// resolver and engine function; the core never mutates it except through
// ResolveCrossStaffing.
type DispatchState struct {
	MutualAid      bool
	StatusOverride map[string]string
	CapsAdded      map[string][]string
	CapsRemoved    map[string][]string
}

// NewDispatchState returns an empty state with all maps allocated.
func NewDispatchState() *DispatchState {
	return &DispatchState{
		StatusOverride: map[string]string{},
		CapsAdded:      map[string][]string{},
		CapsRemoved:    map[string][]string{},
	}
}

// Clone returns a deep copy, for snapshotting at the start of a run when
// edits may race with an in-flight computation.
func (s *DispatchState) Clone() *DispatchState {
	out := &DispatchState{
		MutualAid:      s.MutualAid,
		StatusOverride: make(map[string]string, len(s.StatusOverride)),
		CapsAdded:      make(map[string][]string, len(s.CapsAdded)),
		CapsRemoved:    make(map[string][]string, len(s.CapsRemoved)),
	}
	for k, v := range s.StatusOverride {
		out.StatusOverride[k] = v
	}
	for k, v := range s.CapsAdded {
		out.CapsAdded[k] = append([]string(nil), v...)
	}
	for k, v := range s.CapsRemoved {
		out.CapsRemoved[k] = append([]string(nil), v...)
	}
	return out
}
