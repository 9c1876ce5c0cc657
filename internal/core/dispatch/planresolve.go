package dispatch

import (
	"errors"
	"fmt"

	"github.com/example/runcard/internal/models"
)

// Configuration errors: fatal for the recommendation call, surfaced to the
// user before any assignment is attempted.
var (
	ErrNoPlan    = errors.New("no response plan for incident type")
	ErrNoRunCard = errors.New("no run card for zone")
)

// ResolvedPlan is the concrete demand sequence for one (zone, incident)
// pair, after variant selection and token validation.
type ResolvedPlan struct {
	Incident string
	Variant  string
	Groups   []models.PlanGroup
	IfCloser []models.IfCloserNeed
	Warnings []string
}

// ResolvePlan selects the applicable template variant for the zone and
// validates its capability tokens. Tokens no unit advertises are collected
// as warnings for plan authors; they never block the recommendation.
func ResolvePlan(rd *models.ReferenceData, zone, incident string) (*ResolvedPlan, error) {
	tpl, ok := rd.Plans[incident]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoPlan, incident)
	}

	variant := models.VariantStandard
	chosen := tpl.Standard
	if rd.NonHydrant[zone] && tpl.NonHydrant != nil && len(tpl.NonHydrant.Groups) > 0 {
		variant = models.VariantNonHydrant
		chosen = *tpl.NonHydrant
	}

	resolved := &ResolvedPlan{
		Incident: incident,
		Variant:  variant,
		Groups:   chosen.Groups,
		IfCloser: chosen.IfCloser,
	}

	known := rd.KnownCapabilities()
	seen := map[string]bool{}
	flag := func(raw string) {
		token := NormalizeToken(raw)
		// BC resolves via the battalion-chief pool, not unit tags.
		if token == capBC || known[token] || seen[token] {
			return
		}
		seen[token] = true
		resolved.Warnings = append(resolved.Warnings,
			fmt.Sprintf("capability %q is not advertised by any unit", token))
	}
	for _, g := range resolved.Groups {
		for _, c := range g.Caps {
			flag(c)
		}
	}
	for _, need := range resolved.IfCloser {
		flag(need.Cap)
	}

	return resolved, nil
}
