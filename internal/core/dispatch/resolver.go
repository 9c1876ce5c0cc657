package dispatch

import (
	"strings"

	"github.com/example/runcard/internal/models"
)

// homeAgencyPrefix is the leading digit reserved for the home agency's own
// stations. With mutual aid disabled, every other station is excluded from
// candidate generation outright.
const homeAgencyPrefix = "9"

// EffectiveCapabilities returns a unit's capability set with overrides
// applied: base tokens plus user-added tokens minus user-removed ones. All
// tokens are normalized before comparison.
func EffectiveCapabilities(rd *models.ReferenceData, st *DispatchState, unit string) map[string]bool {
	caps := map[string]bool{}
	for _, c := range rd.UnitCaps[unit] {
		caps[NormalizeToken(c)] = true
	}
	for _, c := range st.CapsAdded[unit] {
		caps[NormalizeToken(c)] = true
	}
	for _, c := range st.CapsRemoved[unit] {
		delete(caps, NormalizeToken(c))
	}
	return caps
}

// HasCapability reports whether a unit's effective capability set contains
// the given token.
func HasCapability(rd *models.ReferenceData, st *DispatchState, unit, token string) bool {
	return EffectiveCapabilities(rd, st, unit)[NormalizeToken(token)]
}

// EffectiveStatus returns the live status override if present, else the
// base status from the reference data.
func EffectiveStatus(rd *models.ReferenceData, st *DispatchState, unit string) string {
	if s, ok := st.StatusOverride[unit]; ok {
		return s
	}
	if s, ok := rd.UnitStatus[unit]; ok {
		return s
	}
	return models.StatusOutOfService
}

// IsAvailable reports whether a unit can take a new assignment.
func IsAvailable(rd *models.ReferenceData, st *DispatchState, unit string) bool {
	return EffectiveStatus(rd, st, unit) == models.StatusAvailable
}

// StationAllowed reports whether a station may contribute candidates. With
// mutual aid enabled every station qualifies; otherwise only home-agency
// stations (canonical id starting with the reserved digit) do. This is a
// hard filter, not a ranking penalty.
func StationAllowed(st *DispatchState, station string) bool {
	if st.MutualAid {
		return true
	}
	return strings.HasPrefix(station, homeAgencyPrefix)
}

// ResolveCrossStaffing recomputes the staffing coercions in st: when any
// member of a cross-staffed group is dispatched, its partners are coerced
// to the cross-staffed status; when the dispatched unit reverts, the
// coercion is lifted. Callers invoke this on every status change rather
// than lazily at query time, so the status display stays consistent.
func ResolveCrossStaffing(rd *models.ReferenceData, st *DispatchState) {
	// Lift prior coercions first so reverted groups come back cleanly.
	for unit, status := range st.StatusOverride {
		if status == models.StatusCrossStaffed {
			delete(st.StatusOverride, unit)
		}
	}
	for _, group := range rd.CrossStaff {
		dispatched := false
		for _, member := range group {
			if EffectiveStatus(rd, st, member) == models.StatusDispatched {
				dispatched = true
				break
			}
		}
		if !dispatched {
			continue
		}
		for _, member := range group {
			if EffectiveStatus(rd, st, member) == models.StatusAvailable {
				st.StatusOverride[member] = models.StatusCrossStaffed
			}
		}
	}
}
