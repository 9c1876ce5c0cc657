package models

// PlanGroup is one requirement line of a response template: Qty slots, each
// satisfiable by any one of the Caps tokens (OR semantics).
type PlanGroup struct {
	Qty  int
	Caps []string
}

// IfCloserNeed is a conditional add-on: up to Count extra units of the given
// capability, taken only when ranked ahead of the primary response.
type IfCloserNeed struct {
	Cap   string
	Count int
}

// PlanVariant is one concrete expansion of a template.
type PlanVariant struct {
	Groups   []PlanGroup
	IfCloser []IfCloserNeed
}

// PlanTemplate is the response template for one incident type. NonHydrant is
// optional and substituted for zones flagged as non-hydrant.
type PlanTemplate struct {
	Incident   string
	Standard   PlanVariant
	NonHydrant *PlanVariant
}

// Plan variant labels, recorded on recommendations for display.
const (
	VariantStandard   = "standard"
	VariantNonHydrant = "non-hydrant"
)
