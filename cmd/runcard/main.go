package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/runcard/internal/cli"
	"github.com/example/runcard/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "runcard",
		Short:   "runcard - fire/EMS dispatch recommendation planner",
		Version: version.String(),
		Long: `runcard recommends which apparatus to dispatch for an incident:
it expands the incident type's response plan against the zone's run card,
unit capabilities, availability, and jurisdiction rules.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.RecommendCmd())
	rootCmd.AddCommand(cli.PlanCmd())
	rootCmd.AddCommand(cli.UnitCmd())
	rootCmd.AddCommand(cli.StatusCmd())
	rootCmd.AddCommand(cli.OverrideCmd())
	rootCmd.AddCommand(cli.MutualAidCmd())
	rootCmd.AddCommand(cli.ResetCmd())
	rootCmd.AddCommand(cli.DoctorCmd())
	rootCmd.AddCommand(cli.ServeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
