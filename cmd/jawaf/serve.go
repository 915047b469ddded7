package main

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.uber.org/zap"

	"github.com/jawafdehi/jawaf/client"
	"github.com/jawafdehi/jawaf/internal/config"
	"github.com/jawafdehi/jawaf/internal/infra/database"
	"github.com/jawafdehi/jawaf/internal/infra/repository"
	"github.com/jawafdehi/jawaf/internal/present/rest"
	"github.com/jawafdehi/jawaf/internal/present/rest/middleware"
	"github.com/jawafdehi/jawaf/internal/service"
	"github.com/jawafdehi/jawaf/internal/usecase"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
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
			sugar := logger.Sugar()

			if conf.Server.EnableTrace {
				cleanup, err := setupTraceProvider(cmd.Context(), conf.Server.TraceEndpoint)
				if err != nil {
					return err
				}
				defer cleanup()
			}

			db, err := database.NewPostgres(conf.Server.PostgresDsn)
			if err != nil {
				return err
			}
			if err := database.MigratePostgres(db); err != nil {
				return err
			}

			rdb := database.NewRedis(conf.Server.RedisAddr, conf.Server.RedisPassword, conf.Server.RedisDB)

			var oracle usecase.MetadataOracle
			if conf.Server.OracleEndpoint != "" {
				oracle = client.New(conf.Server.OracleEndpoint)
			}

			authz := usecase.NewAuthz(conf.Server.ExposeCasesInReview)
			signal := service.NewSignalService(rdb)
			caseUC := usecase.NewCaseUsecase(repository.NewCaseRepository(db), authz, signal)
			entityUC := usecase.NewEntityUsecase(repository.NewEntityRepository(db), oracle)
			sourceUC := usecase.NewSourceUsecase(repository.NewSourceRepository(db), authz)

			authService := service.NewAuthService(conf.Server.JwtSecret)
			authMiddleware := middleware.NewAuthMiddleware(authService)

			e := echo.New()
			e.HideBanner = true
			e.Use(echomiddleware.Logger())
			e.Use(echomiddleware.Recover())
			e.Use(echomiddleware.CORS())
			if conf.Server.EnableTrace {
				e.Use(otelecho.Middleware("jawaf"))
			}
			e.Use(authMiddleware.IdentifyIdentity)

			handler := rest.NewHandler(caseUC, entityUC, sourceUC)
			handler.RegisterRoutes(e)

			sugar.Infow("starting server", "addr", conf.Server.ListenAddr)
			return e.Start(conf.Server.ListenAddr)
		},
	}
}
