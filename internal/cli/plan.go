package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/runcard/internal/wire"
)

// PlanCmd returns the plan command group.
func PlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Inspect response plan templates",
	}
	cmd.AddCommand(planListCmd(), planShowCmd())
	return cmd
}

func planListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List incident types with a response plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			types, err := wire.DispatchService().ListIncidentTypes(context.Background())
			if err != nil {
				return err
			}
			if len(types) == 0 {
				fmt.Println("No plans loaded.")
				return nil
			}
			for _, t := range types {
				fmt.Println(t)
			}
			return nil
		},
	}
}

func planShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [incident-type]",
		Short: "Show a response plan template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := wire.DispatchService().GetPlan(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Plan: %s\n", plan.Incident)
			for _, g := range plan.Groups {
				fmt.Printf("  %dx %s\n", g.Qty, strings.Join(g.Caps, " OR "))
			}
			for _, need := range plan.IfCloser {
				fmt.Printf("  if-closer: %dx %s\n", need.Count, need.Cap)
			}
			if plan.HasNonHydrant {
				fmt.Println("\nNon-hydrant variant:")
				for _, g := range plan.NonHydrant {
					fmt.Printf("  %dx %s\n", g.Qty, strings.Join(g.Caps, " OR "))
				}
			}
			return nil
		},
	}
}
