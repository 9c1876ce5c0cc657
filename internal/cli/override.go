package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/runcard/internal/wire"
)

// OverrideCmd returns the override command group.
func OverrideCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "override",
		Short: "Manage unit capability overrides",
	}
	cmd.AddCommand(overrideAddCmd(), overrideRemoveCmd(), overrideClearCmd(), overrideListCmd())
	return cmd
}

func overrideAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [unit-id] [token]",
		Short: "Add a capability to a unit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.StatusService().AddCapability(context.Background(), args[0], args[1]); err != nil {
				return fmt.Errorf("failed to add capability: %w", err)
			}
			fmt.Printf("✓ %s now advertises %s\n", args[0], args[1])
			return nil
		},
	}
}

func overrideRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [unit-id] [token]",
		Short: "Remove a capability from a unit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.StatusService().RemoveCapability(context.Background(), args[0], args[1]); err != nil {
				return fmt.Errorf("failed to remove capability: %w", err)
			}
			fmt.Printf("✓ %s no longer advertises %s\n", args[0], args[1])
			return nil
		},
	}
}

func overrideListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List capability overrides",
		RunE: func(cmd *cobra.Command, args []string) error {
			added, removed, err := wire.StatusService().ListCapabilityOverrides(context.Background())
			if err != nil {
				return err
			}
			if len(added) == 0 && len(removed) == 0 {
				fmt.Println("No capability overrides.")
				return nil
			}

			units := map[string]bool{}
			for unit := range added {
				units[unit] = true
			}
			for unit := range removed {
				units[unit] = true
			}
			ids := make([]string, 0, len(units))
			for unit := range units {
				ids = append(ids, unit)
			}
			sort.Strings(ids)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "UNIT\tADDED\tREMOVED")
			fmt.Fprintln(w, "----\t-----\t-------")
			for _, unit := range ids {
				fmt.Fprintf(w, "%s\t%s\t%s\n", unit,
					strings.Join(added[unit], ","), strings.Join(removed[unit], ","))
			}
			w.Flush()
			return nil
		},
	}
}

func overrideClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear [unit-id]",
		Short: "Clear all capability overrides for a unit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.StatusService().ClearOverrides(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to clear overrides: %w", err)
			}
			fmt.Printf("✓ %s capability overrides cleared\n", args[0])
			return nil
		},
	}
}
