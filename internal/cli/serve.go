package cli

import (
	"fmt"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"github.com/example/runcard/internal/adapters/web"
	"github.com/example/runcard/internal/config"
	"github.com/example/runcard/internal/wire"
)

// ServeCmd returns the serve command.
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the recommendation API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			listen, _ := cmd.Flags().GetString("listen")
			if listen == "" {
				cwd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("failed to resolve working directory: %w", err)
				}
				listen = config.ListenAddr(cwd)
			}

			e := echo.New()
			e.HideBanner = true
			e.Use(middleware.Recover())

			server := web.NewServer(wire.DispatchService(), wire.StatusService(), web.NewMetrics())
			server.Routes(e)

			fmt.Printf("runcard API listening on %s\n", listen)
			return e.Start(listen)
		},
	}
	cmd.Flags().String("listen", "", "Bind address (default from config, then :8787)")
	return cmd
}
