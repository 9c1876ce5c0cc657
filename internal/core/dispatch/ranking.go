package dispatch

import (
	"regexp"

	"github.com/example/runcard/internal/models"
)

// Candidate is one eligible (unit, capability) row produced by ranking. A
// unit matching two needed capabilities yields two rows so the caller can
// pick whichever is useful.
type Candidate struct {
	Unit       string
	Capability string
	Station    string
	Rank       int
}

// Stations where BLS-only requests prefer support apparatus over the
// roster order, and the naming pattern identifying those units. This is a
// staffing preference at three specific houses, not a capability
// difference.
var (
	supportPreferenceStations = map[string]bool{
		"909": true,
		"916": true,
		"926": true,
	}
	supportUnitPattern = regexp.MustCompile(`^(SQ|FS)`)
)

// RankCandidates walks the run card in order and returns every available,
// capable, non-excluded unit as one row per matched capability. Output is
// sorted strictly by rank ascending; within a station the roster's
// insertion order is the tie-break. Returns an empty slice when nothing
// matches.
func RankCandidates(rd *models.ReferenceData, st *DispatchState, order []string, needed []string, excluded map[string]bool) []Candidate {
	tokens := make([]string, 0, len(needed))
	for _, c := range needed {
		tokens = append(tokens, NormalizeToken(c))
	}

	var out []Candidate
	for rank, station := range order {
		if !StationAllowed(st, station) {
			continue
		}
		for _, unit := range stationRoster(rd, station, tokens) {
			if excluded[unit] || !IsAvailable(rd, st, unit) {
				continue
			}
			caps := EffectiveCapabilities(rd, st, unit)
			for _, token := range tokens {
				if caps[token] {
					out = append(out, Candidate{
						Unit:       unit,
						Capability: token,
						Station:    station,
						Rank:       rank,
					})
				}
			}
		}
	}
	return out
}

// stationRoster returns a station's roster, reordered support-units-first
// when a BLS-only request hits one of the preference stations.
func stationRoster(rd *models.ReferenceData, station string, tokens []string) []string {
	roster := rd.StationUnits[station]
	if len(tokens) != 1 || tokens[0] != "BLS" || !supportPreferenceStations[station] {
		return roster
	}
	support := make([]string, 0, len(roster))
	rest := make([]string, 0, len(roster))
	for _, unit := range roster {
		if supportUnitPattern.MatchString(unit) {
			support = append(support, unit)
		} else {
			rest = append(rest, unit)
		}
	}
	return append(support, rest...)
}

// rankOf returns a unit's rank in the given run card, resolved through its
// home station. Units homed off-card have no rank.
func rankOf(rd *models.ReferenceData, order []string, unit string) Rank {
	station, ok := rd.UnitStation[unit]
	if !ok {
		return UnknownRank
	}
	for i, s := range order {
		if s == station {
			return KnownRank(i)
		}
	}
	return UnknownRank
}
