package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/runcard/internal/models"
	"github.com/example/runcard/internal/wire"
)

// UnitCmd returns the unit command group.
func UnitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unit",
		Short: "Inspect units and their effective state",
	}
	cmd.AddCommand(unitListCmd(), unitShowCmd())
	return cmd
}

func unitListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List units with effective status and capabilities",
		RunE: func(cmd *cobra.Command, args []string) error {
			units, err := wire.DispatchService().ListUnits(context.Background())
			if err != nil {
				return err
			}
			if len(units) == 0 {
				fmt.Println("No units loaded.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "UNIT\tSTATION\tSTATUS\tCAPABILITIES")
			fmt.Fprintln(w, "----\t-------\t------\t------------")
			for _, u := range units {
				mark := ""
				if u.Overridden {
					mark = " *"
				}
				fmt.Fprintf(w, "%s\t%s\t%s%s\t%s\n", u.ID, u.Station, statusIcon(u.Status), mark, strings.Join(u.Capabilities, ","))
			}
			w.Flush()
			return nil
		},
	}
}

func unitShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [unit-id]",
		Short: "Show one unit's effective state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := wire.DispatchService().GetUnit(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Unit: %s\n", u.ID)
			fmt.Printf("Station: %s\n", u.Station)
			fmt.Printf("Status: %s", statusIcon(u.Status))
			if u.Overridden {
				fmt.Printf(" (override, base %s)", u.StatusBase)
			}
			fmt.Println()
			fmt.Printf("Capabilities: %s\n", strings.Join(u.Capabilities, ", "))
			return nil
		},
	}
}

func statusIcon(status string) string {
	switch status {
	case models.StatusAvailable:
		return color.New(color.FgGreen).Sprint(status)
	case models.StatusDispatched:
		return color.New(color.FgRed).Sprint(status)
	case models.StatusCrossStaffed:
		return color.New(color.FgYellow).Sprint(status)
	default:
		return color.New(color.FgHiBlack).Sprint(status)
	}
}
