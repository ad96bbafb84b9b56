package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/jwalitptl/healthapp-api/internal/config"
	"github.com/jwalitptl/healthapp-api/internal/repository/postgres"
)

const migrateTimeout = 2 * time.Minute

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(*configPath)
			if err != nil {
				return err
			}
			logger := newLogger(cfg, "migrate")

			ctx, cancel := context.WithTimeout(cmd.Context(), migrateTimeout)
			defer cancel()

			db, err := postgres.NewDB(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			applied, err := postgres.Migrate(ctx, db)
			if err != nil {
				return err
			}
			logger.Info().Int("applied", applied).Msg("migrations complete")
			return nil
		},
	}
}
