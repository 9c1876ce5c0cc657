package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/runcard/internal/wire"
)

// RecommendCmd returns the recommend command.
func RecommendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend [zone] [incident-type]",
		Short: "Recommend units to dispatch for an incident",
		Long:  "Expand the incident type's response plan against the zone's run card into a concrete unit recommendation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			showTrace, _ := cmd.Flags().GetBool("trace")
			return wire.RecommendAdapter().Run(context.Background(), args[0], args[1], showTrace)
		},
	}
	cmd.Flags().Bool("trace", false, "Print the decision trace")
	return cmd
}
