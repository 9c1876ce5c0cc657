package dispatch

import (
	"fmt"
	"strings"

	"github.com/example/runcard/internal/models"
)

// Input carries everything a recommendation needs, pre-fetched by the
// caller. The engine performs no I/O.
type Input struct {
	Data     *models.ReferenceData
	State    *DispatchState
	Zone     string
	Incident string
}

// Result is the completed recommendation: the ordered assignment list plus
// plan-author warnings and the human-readable decision trace.
type Result struct {
	Zone        string
	Incident    string
	Variant     string
	Assignments []Assignment
	Warnings    []string
	Trace       []string
}

// run is the mutable state of one recommendation call.
type run struct {
	rd      *models.ReferenceData
	st      *DispatchState
	zone    string
	order   []string
	plan    *ResolvedPlan
	used    map[string]bool
	results []Assignment
	primary []Assignment
	trace   []string
}

// Recommend expands the incident's response plan against the zone's run
// card into a concrete assignment list. The only fatal conditions are a
// missing plan template and a missing run card; an unmet capability slot
// yields a placeholder entry instead of an error.
func Recommend(in Input) (*Result, error) {
	if in.State == nil {
		in.State = NewDispatchState()
	}
	order, ok := in.Data.RunCards[in.Zone]
	if !ok || len(order) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoRunCard, in.Zone)
	}
	plan, err := ResolvePlan(in.Data, in.Zone, in.Incident)
	if err != nil {
		return nil, err
	}

	r := &run{
		rd:    in.Data,
		st:    in.State.Clone(),
		zone:  in.Zone,
		order: order,
		plan:  plan,
		used:  map[string]bool{},
	}
	r.tracef("zone %s incident %s: %s plan, %d groups", in.Zone, in.Incident, plan.Variant, len(plan.Groups))

	for _, group := range plan.Groups {
		qty := group.Qty
		if qty < 1 {
			qty = 1
		}
		rule := matchRule(group.Caps)
		r.tracef("group %s x%d via %s rule", strings.Join(group.Caps, "/"), qty, rule.name)
		for i := 0; i < qty; i++ {
			rule.apply(r, group.Caps)
		}
	}

	baseline := r.baselineRank()
	r.tracef("if-closer baseline rank: %s", baseline)
	r.applyIfCloser(baseline)
	r.applyDeconPairing(capE, capDD)
	r.applyDeconPairing(capK, capDDK)
	r.enforceHazmatHome()
	r.enforceCrossStaffExclusivity()
	r.suppressPairedStationBLS()

	return &Result{
		Zone:        in.Zone,
		Incident:    in.Incident,
		Variant:     plan.Variant,
		Assignments: r.results,
		Warnings:    plan.Warnings,
		Trace:       r.trace,
	}, nil
}

func (r *run) tracef(format string, args ...any) {
	r.trace = append(r.trace, fmt.Sprintf(format, args...))
}

// take records a ranked candidate as assigned and removes it from the pool.
func (r *run) take(c Candidate, src Source) {
	a := Assignment{
		Unit:       c.Unit,
		Capability: c.Capability,
		Station:    c.Station,
		Source:     src,
		Rank:       KnownRank(c.Rank),
	}
	r.used[c.Unit] = true
	r.results = append(r.results, a)
	if src == SourcePrimary {
		r.primary = append(r.primary, a)
	}
	r.tracef("selected %s for %s (station %s, rank %d, %s)", c.Unit, c.Capability, c.Station, c.Rank, src)
}

// force records a unit chosen outside the run-card ranking path (home
// hazmat unit, off-card battalion chiefs). Its rank may be unknown.
func (r *run) force(unit, capability string, src Source) {
	a := Assignment{
		Unit:       unit,
		Capability: capability,
		Station:    r.rd.UnitStation[unit],
		Source:     src,
		Rank:       rankOf(r.rd, r.order, unit),
	}
	r.used[unit] = true
	r.results = append(r.results, a)
	if src == SourcePrimary {
		r.primary = append(r.primary, a)
	}
}

func (r *run) placeholder(caps []string, src Source) {
	tokens := make([]string, 0, len(caps))
	for _, c := range caps {
		tokens = append(tokens, NormalizeToken(c))
	}
	label := strings.Join(tokens, "/")
	r.results = append(r.results, Assignment{
		Capability:  label,
		Source:      src,
		Placeholder: true,
	})
	r.tracef("no eligible candidate for %s, placeholder emitted", label)
}

// usedPlus returns the exclusion set extended with one extra unit.
func (r *run) usedPlus(unit string) map[string]bool {
	out := make(map[string]bool, len(r.used)+1)
	for u := range r.used {
		out[u] = true
	}
	if unit != "" {
		out[unit] = true
	}
	return out
}

// canForce reports whether a unit qualifies for a forced add: defined,
// unused, available, and carrying one of the slot's tokens.
func (r *run) canForce(unit string, caps []string) bool {
	if unit == "" || r.used[unit] || !IsAvailable(r.rd, r.st, unit) {
		return false
	}
	for _, c := range caps {
		if HasCapability(r.rd, r.st, unit, c) {
			return true
		}
	}
	return false
}

// matchedCap returns the first slot token the unit carries, defaulting to
// the first token.
func (r *run) matchedCap(unit string, caps []string) string {
	for _, c := range caps {
		if HasCapability(r.rd, r.st, unit, c) {
			return NormalizeToken(c)
		}
	}
	return NormalizeToken(caps[0])
}

// baselineRank anchors the if-closer threshold: the earliest rank among
// primary selections carrying the ambulance capability, falling back to the
// earliest primary rank overall. Unknown if there were no ranked primary
// selections, in which case nothing qualifies as closer.
func (r *run) baselineRank() Rank {
	best := UnknownRank
	for _, a := range r.primary {
		if a.Placeholder || !a.Rank.Known {
			continue
		}
		if EffectiveCapabilities(r.rd, r.st, a.Unit)[capA] && a.Rank.Before(best) {
			best = a.Rank
		}
	}
	if best.Known {
		return best
	}
	for _, a := range r.primary {
		if a.Placeholder || !a.Rank.Known {
			continue
		}
		if a.Rank.Before(best) {
			best = a.Rank
		}
	}
	return best
}

// applyIfCloser adds conditional units that would arrive before the
// primary response: a candidate is accepted only when its rank is strictly
// earlier than the baseline.
func (r *run) applyIfCloser(baseline Rank) {
	if !baseline.Known {
		if len(r.plan.IfCloser) > 0 {
			r.tracef("if-closer: no ranked primary response, skipping all conditional adds")
		}
		return
	}
	for _, need := range r.plan.IfCloser {
		accepted := 0
		for _, c := range RankCandidates(r.rd, r.st, r.order, []string{need.Cap}, r.used) {
			if accepted >= need.Count {
				break
			}
			if c.Rank >= baseline.N {
				r.tracef("if-closer: %s rank %d not ahead of baseline %d, rejected", c.Unit, c.Rank, baseline.N)
				break
			}
			r.take(c, SourceIfCloser)
			accepted++
		}
	}
}

// applyDeconPairing implements the decon/support staffing rule for one
// apparatus pair (E/DD or K/DDK): every decon unit ranked ahead of the
// latest primary engine pick rides along, and each decon add implies an
// engine partner, backfilled when the engine count falls short.
func (r *run) applyDeconPairing(engineCap, deconCap string) {
	threshold := UnknownRank
	for _, a := range r.primary {
		if a.Placeholder || a.Capability != engineCap || !a.Rank.Known {
			continue
		}
		if !threshold.Known || a.Rank.N > threshold.N {
			threshold = a.Rank
		}
	}
	if !threshold.Known {
		return
	}

	added := 0
	for _, c := range RankCandidates(r.rd, r.st, r.order, []string{deconCap}, nil) {
		if c.Rank >= threshold.N {
			break
		}
		if r.used[c.Unit] {
			continue
		}
		r.take(c, SourceIfCloser)
		added++
	}
	if added == 0 {
		return
	}
	r.tracef("%s pairing: %d %s unit(s) ahead of last %s pick (rank %d)", deconCap, added, deconCap, engineCap, threshold.N)

	engines := 0
	for _, a := range r.results {
		if !a.Placeholder && a.Capability == engineCap {
			engines++
		}
	}
	for engines < added {
		cands := RankCandidates(r.rd, r.st, r.order, []string{engineCap}, r.used)
		if len(cands) == 0 {
			r.tracef("%s pairing: no %s left to backfill", deconCap, engineCap)
			return
		}
		r.take(cands[0], SourceIfCloser)
		engines++
	}
}

// enforceHazmatHome is the idempotent safety net: whenever a hazmat unit
// responds outside the bypass prefix, the home unit must be on the ticket.
func (r *run) enforceHazmatHome() {
	if strings.HasPrefix(r.zone, hazmatBypassZonePrefix) {
		return
	}
	hasHM := false
	for _, a := range r.results {
		if !a.Placeholder && a.Capability == capHM {
			hasHM = true
			break
		}
	}
	home := r.rd.HazmatHomeUnit
	if !hasHM || !r.canForce(home, []string{capHM}) {
		return
	}
	r.force(home, capHM, SourcePrimary)
	r.tracef("hazmat: home unit %s enforced post-hoc", home)
}

// enforceCrossStaffExclusivity keeps at most one member of each
// cross-staffed group: the one whose matched capability appears earliest in
// the template's group order, tie-broken by run-card rank.
func (r *run) enforceCrossStaffExclusivity() {
	for _, group := range r.rd.CrossStaff {
		members := map[string]bool{}
		for _, m := range group {
			members[m] = true
		}

		keep := -1
		for i, a := range r.results {
			if a.Placeholder || !members[a.Unit] {
				continue
			}
			if keep == -1 || r.betterCrossStaffPick(r.results[i], r.results[keep]) {
				keep = i
			}
		}
		if keep == -1 {
			continue
		}

		filtered := r.results[:0]
		for i, a := range r.results {
			if i != keep && !a.Placeholder && members[a.Unit] {
				r.tracef("cross-staff: dropping %s, crew committed to %s", a.Unit, r.results[keep].Unit)
				continue
			}
			filtered = append(filtered, a)
		}
		r.results = filtered
	}
}

func (r *run) betterCrossStaffPick(a, b Assignment) bool {
	ai, bi := r.capGroupIndex(a.Capability), r.capGroupIndex(b.Capability)
	if ai != bi {
		return ai < bi
	}
	return a.Rank.Before(b.Rank)
}

func (r *run) capGroupIndex(capability string) int {
	for i, g := range r.plan.Groups {
		if containsToken(g.Caps, capability) {
			return i
		}
	}
	return len(r.plan.Groups)
}

// suppressPairedStationBLS drops BLS assignments from the sibling of a
// station whose ambulance was selected as primary response: the ambulance
// already covers BLS need from the paired house. Applies to primary and
// if-closer BLS picks alike, as the final filtering pass.
func (r *run) suppressPairedStationBLS() {
	suppressed := map[string]bool{}
	for _, a := range r.results {
		if a.Placeholder || a.Source != SourcePrimary || a.Capability != capA {
			continue
		}
		if sibling, ok := blsStationPairs[a.Station]; ok {
			suppressed[sibling] = true
			r.tracef("bls suppression: ambulance %s at %s covers station %s", a.Unit, a.Station, sibling)
		}
	}
	if len(suppressed) == 0 {
		return
	}
	filtered := r.results[:0]
	for _, a := range r.results {
		if !a.Placeholder && a.Capability == capBLS && suppressed[a.Station] {
			r.tracef("bls suppression: removing %s (station %s)", a.Unit, a.Station)
			continue
		}
		filtered = append(filtered, a)
	}
	r.results = filtered
}
