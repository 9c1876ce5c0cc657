package dispatch

import "strings"

// Capability tokens with dedicated handling.
const (
	capHM  = "HM"
	capBC  = "BC"
	capA   = "A"
	capMP  = "MP"
	capBR  = "BR"
	capE   = "E"
	capK   = "K"
	capDD  = "DD"
	capDDK = "DDK"
	capBLS = "BLS"
)

// Jurisdiction constants. These are fixed facts of the protocol being
// reproduced, not derived from the reference data.
var (
	// Zones with this id prefix never get the forced home hazmat unit.
	hazmatBypassZonePrefix = "50"

	// Station pairs where a selected ambulance covers the sibling
	// station's BLS need, keyed both ways.
	blsStationPairs = map[string]string{
		"924": "911",
		"911": "924",
		"921": "909",
		"909": "921",
	}
)

// groupRule pairs a predicate over a group's capability set with the
// handler that fills one slot of that group. The engine dispatches each
// slot to the first matching rule; the generic matcher always matches.
type groupRule struct {
	name    string
	matches func(caps []string) bool
	apply   func(r *run, caps []string)
}

var groupRules = []groupRule{
	{
		name:    "hazmat",
		matches: func(caps []string) bool { return containsToken(caps, capHM) },
		apply:   applyHazmat,
	},
	{
		name:    "battalion-chief",
		matches: func(caps []string) bool { return containsToken(caps, capBC) },
		apply:   applyBattalionChief,
	},
	{
		name: "paired-or",
		matches: func(caps []string) bool {
			return setEquals(caps, capA, capMP) || setEquals(caps, capBR, capE)
		},
		apply: applyPairedOR,
	},
	{
		name:    "generic",
		matches: func(caps []string) bool { return true },
		apply:   applyGeneric,
	},
}

func matchRule(caps []string) groupRule {
	for _, rule := range groupRules {
		if rule.matches(caps) {
			return rule
		}
	}
	return groupRules[len(groupRules)-1]
}

func containsToken(caps []string, token string) bool {
	for _, c := range caps {
		if NormalizeToken(c) == token {
			return true
		}
	}
	return false
}

func setEquals(caps []string, want ...string) bool {
	if len(caps) != len(want) {
		return false
	}
	have := map[string]bool{}
	for _, c := range caps {
		have[NormalizeToken(c)] = true
	}
	for _, w := range want {
		if !have[w] {
			return false
		}
	}
	return len(have) == len(want)
}

// applyHazmat fills one HM slot. Outside the bypass prefix the designated
// home hazmat unit is force-added regardless of run-card rank, and a
// strictly closer HM-capable unit rides along as a second add for the same
// nominal slot. Inside the bypass prefix the slot resolves like any other
// group.
func applyHazmat(r *run, caps []string) {
	if strings.HasPrefix(r.zone, hazmatBypassZonePrefix) {
		r.tracef("hazmat: zone %s in %s* carve-out, standard selection", r.zone, hazmatBypassZonePrefix)
		applyGeneric(r, caps)
		return
	}

	home := r.rd.HazmatHomeUnit
	excluded := r.usedPlus(home)
	cands := RankCandidates(r.rd, r.st, r.order, caps, excluded)

	if r.canForce(home, caps) {
		homeRank := rankOf(r.rd, r.order, home)
		r.force(home, r.matchedCap(home, caps), SourcePrimary)
		r.tracef("hazmat: forced home unit %s (rank %s)", home, homeRank)
		if len(cands) > 0 && KnownRank(cands[0].Rank).Before(homeRank) {
			r.take(cands[0], SourcePrimary)
			r.tracef("hazmat: %s at rank %d is closer than home unit, added as well",
				cands[0].Unit, cands[0].Rank)
		}
		return
	}

	if len(cands) > 0 {
		r.take(cands[0], SourcePrimary)
		return
	}
	r.placeholder(caps, SourcePrimary)
}

// applyBattalionChief fills one BC slot from the explicit battalion-chief
// pool: the pool member homed at the earliest-ranked station on the card,
// falling back to a scan of off-card pool stations. Per-unit capability
// tags are not consulted.
func applyBattalionChief(r *run, caps []string) {
	for rank, station := range r.order {
		if !StationAllowed(r.st, station) {
			continue
		}
		for _, unit := range r.rd.BCUnits {
			if r.rd.UnitStation[unit] != station {
				continue
			}
			if r.used[unit] || !IsAvailable(r.rd, r.st, unit) {
				continue
			}
			r.take(Candidate{Unit: unit, Capability: capBC, Station: station, Rank: rank}, SourcePrimary)
			return
		}
	}
	// Pool members homed off the run card are still dispatchable.
	for _, unit := range r.rd.BCUnits {
		station := r.rd.UnitStation[unit]
		if r.used[unit] || !IsAvailable(r.rd, r.st, unit) || !StationAllowed(r.st, station) {
			continue
		}
		r.force(unit, capBC, SourcePrimary)
		r.tracef("battalion-chief: %s selected from off-card station %s", unit, station)
		return
	}
	r.placeholder([]string{capBC}, SourcePrimary)
}

// applyPairedOR fills a two-token OR slot by evaluating both sides fully
// and taking whichever ranks earlier, rather than short-circuiting on
// token order. Ties favor the first-listed token.
func applyPairedOR(r *run, caps []string) {
	first := RankCandidates(r.rd, r.st, r.order, caps[:1], r.used)
	second := RankCandidates(r.rd, r.st, r.order, caps[1:2], r.used)

	switch {
	case len(first) == 0 && len(second) == 0:
		r.placeholder(caps, SourcePrimary)
	case len(first) == 0:
		r.take(second[0], SourcePrimary)
	case len(second) == 0:
		r.take(first[0], SourcePrimary)
	case second[0].Rank < first[0].Rank:
		r.tracef("paired-or: %s (rank %d) beats %s (rank %d)",
			second[0].Unit, second[0].Rank, first[0].Unit, first[0].Rank)
		r.take(second[0], SourcePrimary)
	default:
		r.take(first[0], SourcePrimary)
	}
}

// applyGeneric fills a slot with the earliest-ranked candidate across all
// of the group's tokens; first match wins.
func applyGeneric(r *run, caps []string) {
	cands := RankCandidates(r.rd, r.st, r.order, caps, r.used)
	if len(cands) == 0 {
		r.placeholder(caps, SourcePrimary)
		return
	}
	r.take(cands[0], SourcePrimary)
}
