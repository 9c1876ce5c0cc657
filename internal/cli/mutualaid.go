package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/runcard/internal/wire"
)

// MutualAidCmd returns the mutualaid command group.
func MutualAidCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mutualaid",
		Short: "Toggle drawing units from non-home-agency stations",
	}
	cmd.AddCommand(
		mutualAidSetCmd("on", true),
		mutualAidSetCmd("off", false),
		mutualAidShowCmd(),
	)
	return cmd
}

func mutualAidSetCmd(use string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: fmt.Sprintf("Turn mutual aid %s", use),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.StatusService().SetMutualAid(context.Background(), enabled); err != nil {
				return fmt.Errorf("failed to set mutual aid: %w", err)
			}
			fmt.Printf("✓ mutual aid %s\n", use)
			return nil
		},
	}
}

func mutualAidShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the mutual aid setting",
		RunE: func(cmd *cobra.Command, args []string) error {
			enabled, err := wire.StatusService().MutualAid(context.Background())
			if err != nil {
				return err
			}
			if enabled {
				fmt.Println("mutual aid: on")
			} else {
				fmt.Println("mutual aid: off")
			}
			return nil
		},
	}
}
