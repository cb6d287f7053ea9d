package cmd

import (
	"consolidator/src/config"
	"consolidator/src/database"
	"consolidator/src/extractors"
	"consolidator/src/repositories"
	"consolidator/src/services"
	"consolidator/src/utils"
	aws_handler "consolidator/src/utils/aws"
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// app holds the services shared by every command.
type app struct {
	cfg        *config.Config
	logger     *logrus.Logger
	extraction *services.ExtractionService
	export     *services.ExportService
	runs       repositories.ExtractionRunRepository
	pool       *pgxpool.Pool
}

func newApp(ctx context.Context) (*app, context.Context, error) {
	cfg, err := config.LoadConfig(settingsPath, environment)
	if err != nil {
		return nil, ctx, fmt.Errorf("error while loading config: %w", err)
	}

	logger := utils.NewLogger(utils.ParseLogLevel(cfg.Service.LogLevel), cfg.Service.LogToFile, cfg.Service.LogFile)
	ctx = utils.WithLogger(ctx, logger)

	var secrets services.SecretReader
	if cfg.Secrets.AWSRegion != "" {
		handler, err := aws_handler.NewAWSHandler(cfg.Secrets.AWSRegion)
		if err != nil {
			return nil, ctx, fmt.Errorf("error while creating AWS session: %w", err)
		}
		secrets = handler.SecretManager
	}

	currency := services.NewCurrencyServiceFromConfig(ctx, cfg)
	a := &app{
		cfg:    cfg,
		logger: logger,
		extraction: services.NewExtractionService(
			cfg,
			extractors.NewExtractors(cfg, currency),
			services.NewDeduplicationService(utils.ManagerPriority),
			services.NewPasswordService(cfg, secrets),
			nil,
		),
		export: services.NewExportService(),
	}

	if cfg.Databases.SQL.Enabled() {
		pool, err := database.SetupDB(ctx, cfg)
		if err != nil {
			return nil, ctx, err
		}
		a.pool = pool
		a.runs = repositories.NewExtractionRunRepository(pool)
	}
	return a, ctx, nil
}

func (a *app) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}
