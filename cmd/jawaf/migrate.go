package main

import (
	"github.com/spf13/cobra"

	"github.com/jawafdehi/jawaf/internal/config"
	"github.com/jawafdehi/jawaf/internal/infra/database"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.Load(configPath)
			if err != nil {
				return err
			}

			db, err := database.NewPostgres(conf.Server.PostgresDsn)
			if err != nil {
				return err
			}
			return database.MigratePostgres(db)
		},
	}
}
