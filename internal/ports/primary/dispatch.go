package primary

import "context"

// DispatchService defines the primary port for recommendation queries.
type DispatchService interface {
	// Recommend runs the recommendation engine for a zone and incident type.
	Recommend(ctx context.Context, req RecommendRequest) (*Recommendation, error)

	// ListIncidentTypes lists the incident types with a response plan.
	ListIncidentTypes(ctx context.Context) ([]string, error)

	// GetPlan returns the response template for an incident type.
	GetPlan(ctx context.Context, incident string) (*PlanView, error)

	// ListUnits lists all units with effective status and capabilities.
	ListUnits(ctx context.Context) ([]*UnitView, error)

	// GetUnit returns one unit with effective status and capabilities.
	GetUnit(ctx context.Context, unitID string) (*UnitView, error)
}

// RecommendRequest contains parameters for a recommendation run.
type RecommendRequest struct {
	Zone     string
	Incident string
}

// Recommendation is the engine output at the port boundary.
type Recommendation struct {
	Zone        string
	Incident    string
	Variant     string
	Assignments []AssignmentView
	Warnings    []string
	Trace       []string
}

// AssignmentView is one recommendation line. Placeholder entries mark
// unmet needs and carry no unit.
type AssignmentView struct {
	Unit        string
	Capability  string
	Station     string
	Source      string
	Rank        int
	RankKnown   bool
	Placeholder bool
	Display     string
}

// PlanView describes a response template for display.
type PlanView struct {
	Incident      string
	Groups        []PlanGroupView
	IfCloser      []IfCloserView
	NonHydrant    []PlanGroupView
	HasNonHydrant bool
}

// PlanGroupView is one requirement line of a template.
type PlanGroupView struct {
	Qty  int
	Caps []string
}

// IfCloserView is one conditional add-on of a template.
type IfCloserView struct {
	Cap   string
	Count int
}

// UnitView is a unit with its effective (override-applied) state.
type UnitView struct {
	ID           string
	Station      string
	Status       string
	StatusBase   string
	Overridden   bool
	Capabilities []string
}
