package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jawafdehi/jawaf"
	"github.com/jawafdehi/jawaf/internal/config"
	"github.com/jawafdehi/jawaf/internal/infra/database"
	"github.com/jawafdehi/jawaf/internal/infra/repository"
	"github.com/jawafdehi/jawaf/internal/usecase"
)

func newImportCmd() *cobra.Command {
	var caseType string
	var caseState string

	cmd := &cobra.Command{
		Use:   "import <payload.json>",
		Short: "Import a structured case payload produced by the extraction pipeline",
		Long: `Import runs as a privileged operator action: it writes through the
deduplicating import engine directly, inside one transaction, without
going through the user-facing authorization path.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.Load(configPath)
			if err != nil {
				return err
			}

			logger, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer logger.Sync()

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			var payload jawaf.ImportPayload
			if err := json.Unmarshal(raw, &payload); err != nil {
				return fmt.Errorf("parse payload: %w", err)
			}
			if caseType != "" {
				payload.CaseType = caseType
			}
			if caseState != "" {
				payload.State = caseState
			}

			db, err := database.NewPostgres(conf.Server.PostgresDsn)
			if err != nil {
				return err
			}
			if err := database.MigratePostgres(db); err != nil {
				return err
			}

			importer := usecase.NewImporter(repository.NewImportRepository(db), logger.Sugar())
			summary, err := importer.ImportCase(cmd.Context(), payload)
			if err != nil {
				return err
			}

			fmt.Printf("imported case %s\n", summary.CaseID)
			fmt.Printf("  entities created: %d\n", summary.EntitiesCreated)
			fmt.Printf("  entities reused:  %d\n", summary.EntitiesReused)
			fmt.Printf("  sources created:  %d\n", summary.SourcesCreated)
			fmt.Printf("  sources reused:   %d\n", summary.SourcesReused)
			return nil
		},
	}

	cmd.Flags().StringVar(&caseType, "type", "", "Override the payload case type (CORRUPTION or PROMISES)")
	cmd.Flags().StringVar(&caseState, "state", "", "Override the initial state (defaults to DRAFT)")
	return cmd
}
