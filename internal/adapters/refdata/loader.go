// Package refdata loads the dispatch reference tables from a JSON data
// file into the immutable in-memory model. Station spellings are
// canonicalized and rosters merged at load time; missing sections default
// to empty collections so a partial file still yields a usable snapshot.
package refdata

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/example/runcard/internal/core/dispatch"
	"github.com/example/runcard/internal/models"
	"github.com/example/runcard/internal/ports/secondary"
)

// rawData mirrors the data file layout.
type rawData struct {
	ESZOrder       map[string][]string    `json:"ESZ_ORDER"`
	PlanStruct     map[string]rawPlan     `json:"PLAN_STRUCT"`
	NonHydrantESZ  []string               `json:"NON_HYDRANT_ESZ"`
	UnitCaps       map[string][]string    `json:"UNIT_CAPS"`
	StationUnits   map[string][]string    `json:"STATION_UNITS"`
	BCUnits        []string               `json:"BC_UNITS"`
	UnitStatus     map[string]string      `json:"UNIT_STATUS"`
	CrossStaff     [][]string             `json:"CROSS_STAFF"`
	HazmatHomeUnit string                 `json:"HAZMAT_HOME_UNIT"`
	NonHydrantPlan map[string]rawPlanBody `json:"NON_HYDRANT_PLANS"`
}

type rawPlan struct {
	rawPlanBody
	NonHydrant *rawPlanBody `json:"nonHydrant"`
}

type rawPlanBody struct {
	Groups   []rawGroup      `json:"groups"`
	IfCloser json.RawMessage `json:"ifCloser"`
}

type rawGroup struct {
	Qty  int      `json:"qty"`
	Caps []string `json:"caps"`
}

// Loader implements secondary.ReferenceDataProvider from a JSON file.
type Loader struct {
	path string
}

// NewLoader creates a loader for the given data file path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads and canonicalizes the reference tables. A missing file yields
// the built-in fallback plan set with no zones or units, matching the
// original tool's degraded mode.
func (l *Loader) Load(ctx context.Context) (*models.ReferenceData, error) {
	data, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		rd := models.NewReferenceData()
		applyFallbackPlans(rd)
		return rd, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	var raw rawData
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse data file: %w", err)
	}
	return build(&raw)
}

func build(raw *rawData) (*models.ReferenceData, error) {
	rd := models.NewReferenceData()

	for zone, order := range raw.ESZOrder {
		canonical := make([]string, 0, len(order))
		for _, station := range order {
			canonical = append(canonical, dispatch.CanonicalStation(station))
		}
		rd.RunCards[zone] = canonical
	}

	for _, zone := range raw.NonHydrantESZ {
		rd.NonHydrant[zone] = true
	}

	// Rosters registered under multiple spellings of one station merge
	// into a single canonical roster, preserving insertion order.
	for station, roster := range raw.StationUnits {
		key := dispatch.CanonicalStation(station)
		for _, unit := range roster {
			if rd.UnitStation[unit] != "" {
				continue
			}
			rd.StationUnits[key] = append(rd.StationUnits[key], unit)
			rd.UnitStation[unit] = key
		}
	}

	for unit, caps := range raw.UnitCaps {
		normalized := make([]string, 0, len(caps))
		for _, c := range caps {
			normalized = append(normalized, dispatch.NormalizeToken(c))
		}
		rd.UnitCaps[unit] = normalized
	}

	for unit, status := range raw.UnitStatus {
		rd.UnitStatus[unit] = dispatch.NormalizeToken(status)
	}

	rd.BCUnits = append(rd.BCUnits, raw.BCUnits...)
	rd.CrossStaff = append(rd.CrossStaff, raw.CrossStaff...)
	rd.HazmatHomeUnit = raw.HazmatHomeUnit

	for incident, plan := range raw.PlanStruct {
		tpl, err := buildTemplate(incident, plan, raw.NonHydrantPlan[incident])
		if err != nil {
			return nil, err
		}
		rd.Plans[incident] = tpl
	}
	if len(rd.Plans) == 0 {
		applyFallbackPlans(rd)
	}

	return rd, nil
}

func buildTemplate(incident string, plan rawPlan, separateVariant rawPlanBody) (models.PlanTemplate, error) {
	standard, err := buildVariant(incident, plan.rawPlanBody)
	if err != nil {
		return models.PlanTemplate{}, err
	}
	tpl := models.PlanTemplate{Incident: incident, Standard: standard}

	variantBody := plan.NonHydrant
	if variantBody == nil && len(separateVariant.Groups) > 0 {
		variantBody = &separateVariant
	}
	if variantBody != nil {
		variant, err := buildVariant(incident, *variantBody)
		if err != nil {
			return models.PlanTemplate{}, err
		}
		tpl.NonHydrant = &variant
	}
	return tpl, nil
}

func buildVariant(incident string, body rawPlanBody) (models.PlanVariant, error) {
	variant := models.PlanVariant{}
	for _, g := range body.Groups {
		qty := g.Qty
		if qty < 1 {
			qty = 1
		}
		caps := make([]string, 0, len(g.Caps))
		for _, c := range g.Caps {
			caps = append(caps, dispatch.NormalizeToken(c))
		}
		if len(caps) == 0 {
			continue
		}
		variant.Groups = append(variant.Groups, models.PlanGroup{Qty: qty, Caps: caps})
	}

	needs, err := parseIfCloser(body.IfCloser)
	if err != nil {
		return variant, fmt.Errorf("plan %s: %w", incident, err)
	}
	variant.IfCloser = needs
	return variant, nil
}

// parseIfCloser accepts both historical encodings: a list of tokens (one
// unit each) and a map of token to count.
func parseIfCloser(raw json.RawMessage) ([]models.IfCloserNeed, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		needs := make([]models.IfCloserNeed, 0, len(list))
		for _, token := range list {
			needs = append(needs, models.IfCloserNeed{Cap: dispatch.NormalizeToken(token), Count: 1})
		}
		return needs, nil
	}

	var counts map[string]int
	if err := json.Unmarshal(raw, &counts); err != nil {
		return nil, fmt.Errorf("ifCloser must be a token list or a token-to-count map: %w", err)
	}
	needs := make([]models.IfCloserNeed, 0, len(counts))
	for _, token := range sortedKeys(counts) {
		count := counts[token]
		if count < 1 {
			count = 1
		}
		needs = append(needs, models.IfCloserNeed{Cap: dispatch.NormalizeToken(token), Count: count})
	}
	return needs, nil
}

// applyFallbackPlans seeds the minimal built-in plan set used when no data
// file is available.
func applyFallbackPlans(rd *models.ReferenceData) {
	rd.Plans["HOUSE"] = models.PlanTemplate{
		Incident: "HOUSE",
		Standard: models.PlanVariant{
			Groups: []models.PlanGroup{
				{Qty: 6, Caps: []string{"E"}},
				{Qty: 1, Caps: []string{"FS"}},
				{Qty: 1, Caps: []string{"AERIAL"}},
				{Qty: 1, Caps: []string{"SS"}},
				{Qty: 3, Caps: []string{"K"}},
				{Qty: 1, Caps: []string{"A"}},
				{Qty: 1, Caps: []string{"ALS"}},
				{Qty: 2, Caps: []string{"BC"}},
				{Qty: 1, Caps: []string{"SAF"}},
			},
			IfCloser: []models.IfCloserNeed{{Cap: "BLS", Count: 1}},
		},
	}
	rd.Plans["ABDOMALS"] = models.PlanTemplate{
		Incident: "ABDOMALS",
		Standard: models.PlanVariant{
			Groups: []models.PlanGroup{
				{Qty: 1, Caps: []string{"A"}},
				{Qty: 1, Caps: []string{"ALS"}},
			},
			IfCloser: []models.IfCloserNeed{{Cap: "BLS", Count: 1}},
		},
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Ensure Loader implements the interface
var _ secondary.ReferenceDataProvider = (*Loader)(nil)
