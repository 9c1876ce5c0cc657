// Package cli contains stateless translators from service results to
// terminal output.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/runcard/internal/ports/primary"
)

// RecommendAdapter renders recommendations for the terminal, grouping the
// flat assignment list by role capability.
type RecommendAdapter struct {
	service primary.DispatchService
	out     io.Writer
}

// NewRecommendAdapter creates a new RecommendAdapter writing to out.
func NewRecommendAdapter(service primary.DispatchService, out io.Writer) *RecommendAdapter {
	return &RecommendAdapter{service: service, out: out}
}

// Run executes a recommendation and renders it.
func (a *RecommendAdapter) Run(ctx context.Context, zone, incident string, showTrace bool) error {
	rec, err := a.service.Recommend(ctx, primary.RecommendRequest{Zone: zone, Incident: incident})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Response for %s in zone %s (%s plan)\n\n",
		color.New(color.FgHiWhite, color.Bold).Sprint(incident), zone, rec.Variant)

	for _, role := range roleOrder(rec.Assignments) {
		fmt.Fprintf(a.out, "%s\n", color.New(color.FgCyan).Sprintf("%s:", role))
		for _, asg := range rec.Assignments {
			if asg.Capability != role {
				continue
			}
			a.renderAssignment(asg)
		}
	}

	if len(rec.Warnings) > 0 {
		fmt.Fprintln(a.out)
		for _, w := range rec.Warnings {
			fmt.Fprintf(a.out, "%s %s\n", color.New(color.FgYellow).Sprint("warning:"), w)
		}
	}

	if showTrace {
		fmt.Fprintf(a.out, "\nTrace:\n")
		for _, line := range rec.Trace {
			fmt.Fprintf(a.out, "  %s\n", line)
		}
	}
	return nil
}

func (a *RecommendAdapter) renderAssignment(asg primary.AssignmentView) {
	if asg.Placeholder {
		fmt.Fprintf(a.out, "  %s\n", color.New(color.FgRed).Sprint(asg.Display))
		return
	}
	rank := "-"
	if asg.RankKnown {
		rank = fmt.Sprintf("%d", asg.Rank)
	}
	line := fmt.Sprintf("  %s  station %s, rank %s", asg.Unit, asg.Station, rank)
	if asg.Source == "if-closer" {
		line += color.New(color.FgHiMagenta).Sprint(" [if-closer]")
	}
	fmt.Fprintln(a.out, line)
}

// roleOrder returns the distinct capabilities in first-seen order, which
// follows the template's group order.
func roleOrder(assignments []primary.AssignmentView) []string {
	seen := map[string]bool{}
	var order []string
	for _, asg := range assignments {
		if !seen[asg.Capability] {
			seen[asg.Capability] = true
			order = append(order, asg.Capability)
		}
	}
	return order
}
