package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/runcard/internal/wire"
)

// ResetCmd returns the reset command.
func ResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear all status and capability overrides",
		Long:  "Restore every unit to its base status and capabilities. A recommendation after reset reproduces a pristine run.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.StatusService().ResetAll(context.Background()); err != nil {
				return fmt.Errorf("failed to reset overrides: %w", err)
			}
			fmt.Println("✓ all overrides cleared")
			return nil
		},
	}
}
