package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/runcard/internal/wire"
)

// StatusCmd returns the status command group.
func StatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Manage live unit status overrides",
		Long:  "Set, clear, and list unit status overrides. Setting a status re-resolves cross-staffing immediately.",
	}
	cmd.AddCommand(statusSetCmd(), statusClearCmd(), statusListCmd())
	return cmd
}

func statusSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set [unit-id] [status]",
		Short: "Set a unit's live status (AQ, CALL, PA, ...)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.StatusService().SetStatus(context.Background(), args[0], args[1]); err != nil {
				return fmt.Errorf("failed to set status: %w", err)
			}
			fmt.Printf("✓ %s status set to %s\n", args[0], args[1])
			return nil
		},
	}
}

func statusClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear [unit-id]",
		Short: "Clear a unit's status override",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.StatusService().ClearStatus(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to clear status: %w", err)
			}
			fmt.Printf("✓ %s status reverted to base\n", args[0])
			return nil
		},
	}
}

func statusListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List live status overrides",
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides, err := wire.StatusService().ListStatusOverrides(context.Background())
			if err != nil {
				return err
			}
			if len(overrides) == 0 {
				fmt.Println("No status overrides.")
				return nil
			}

			units := make([]string, 0, len(overrides))
			for unit := range overrides {
				units = append(units, unit)
			}
			sort.Strings(units)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "UNIT\tSTATUS")
			fmt.Fprintln(w, "----\t------")
			for _, unit := range units {
				fmt.Fprintf(w, "%s\t%s\n", unit, overrides[unit])
			}
			w.Flush()
			return nil
		},
	}
}
