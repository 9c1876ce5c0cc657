package models

// ReferenceData is the immutable snapshot of the dispatch reference tables.
// Station keys and run-card entries are canonicalized at load time, and
// capability/status tokens are normalized, so consumers can compare them
// directly. Missing sections default to empty collections.
type ReferenceData struct {
	// RunCards maps a zone (ESZ) id to its ordered station run card.
	RunCards map[string][]string

	// Plans maps an incident-type label to its response template.
	Plans map[string]PlanTemplate

	// NonHydrant flags zones that take the non-hydrant plan variant.
	NonHydrant map[string]bool

	// UnitCaps maps a unit id to its base capability tokens.
	UnitCaps map[string][]string

	// StationUnits maps a canonical station id to its roster in
	// insertion order. Rosters registered under multiple spellings of
	// the same station are merged at load time.
	StationUnits map[string][]string

	// UnitStation maps a unit id to its home station (canonical).
	UnitStation map[string]string

	// BCUnits is the battalion-chief pool. BC slots resolve against this
	// pool, not against per-unit capability tags.
	BCUnits []string

	// UnitStatus maps a unit id to its base availability status.
	UnitStatus map[string]string

	// CrossStaff lists groups of units sharing one crew.
	CrossStaff [][]string

	// HazmatHomeUnit is the jurisdiction's designated hazmat unit.
	HazmatHomeUnit string
}

// NewReferenceData returns an empty snapshot with all maps allocated.
func NewReferenceData() *ReferenceData {
	return &ReferenceData{
		RunCards:     map[string][]string{},
		Plans:        map[string]PlanTemplate{},
		NonHydrant:   map[string]bool{},
		UnitCaps:     map[string][]string{},
		StationUnits: map[string][]string{},
		UnitStation:  map[string]string{},
		UnitStatus:   map[string]string{},
	}
}

// KnownCapabilities returns the set of tokens advertised by at least one
// unit. Used to flag plan tokens that cannot match anything.
func (rd *ReferenceData) KnownCapabilities() map[string]bool {
	known := map[string]bool{}
	for _, caps := range rd.UnitCaps {
		for _, c := range caps {
			known[c] = true
		}
	}
	return known
}

// CrossStaffGroup returns the cross-staff group containing unit, or nil.
func (rd *ReferenceData) CrossStaffGroup(unit string) []string {
	for _, group := range rd.CrossStaff {
		for _, member := range group {
			if member == unit {
				return group
			}
		}
	}
	return nil
}
