package dispatch

import "fmt"

// Source tags how an assignment entered the recommendation.
type Source string

const (
	SourcePrimary  Source = "primary"
	SourceIfCloser Source = "if-closer"
)

// Assignment is one line of the engine's output: a concrete unit filling a
// capability slot, or a placeholder marking an unmet need. Assignments are
// transient per recommendation call and never persisted.
type Assignment struct {
	Unit        string
	Capability  string
	Station     string
	Source      Source
	Rank        Rank
	Placeholder bool
}

// Label renders the assignment for display: the unit id, or the
// conventional unmet-need form for placeholders.
func (a Assignment) Label() string {
	if a.Placeholder {
		return fmt.Sprintf("(%s needed)", a.Capability)
	}
	return a.Unit
}
