package cli

import (
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/storyq/storyq/pkg/server"
	storesql "github.com/storyq/storyq/pkg/store/sql"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the search API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			stories, err := storesql.NewSQLStore(logrus.StandardLogger(), cfg)
			if err != nil {
				return err
			}

			defer func() {
				if err := stories.Close(); err != nil {
					logrus.Warnf("Failed to close story store: %v", err)
				}
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return server.Launch(ctx, cfg, stories)
		},
	}
}
