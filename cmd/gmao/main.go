package main

import (
	"context"
	"fmt"
	"os"

	"github.com/canaleta14-ai/gmao/internal/cli"
	"github.com/canaleta14-ai/gmao/internal/config"
	"github.com/canaleta14-ai/gmao/internal/db"
	"github.com/canaleta14-ai/gmao/internal/lock"
	"github.com/canaleta14-ai/gmao/internal/repository"
	"github.com/canaleta14-ai/gmao/internal/service"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// GMAO_CONFIG points at an explicit config file; otherwise gmao.yaml is
	// looked up in ./configs and the working directory.
	cfg, err := config.Load(os.Getenv("GMAO_CONFIG"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync()

	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	assetRepo := repository.NewSQLiteAssetRepo(database)
	technicianRepo := repository.NewSQLiteTechnicianRepo(database)
	planRepo := repository.NewSQLitePlanRepo(database)
	orderRepo := repository.NewSQLiteWorkOrderRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	var locker lock.Locker = lock.NewLocalLocker()
	if cfg.Lock.RedisAddr != "" {
		rdb := lock.NewRedisClient(cfg.Lock.RedisAddr, cfg.Lock.RedisPassword, cfg.Lock.RedisDB)
		defer rdb.Close()
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			return fmt.Errorf("connecting to redis at %s: %w", cfg.Lock.RedisAddr, err)
		}
		locker = lock.NewRedisLocker(rdb)
		logger.Debug("generation lock backed by redis", zap.String("addr", cfg.Lock.RedisAddr))
	}

	observer := service.NewZapUseCaseObserver(logger)

	app := &cli.App{
		Generation: service.NewGenerationService(uow, locker, service.GenerationConfig{
			LockKey: cfg.Lock.Key,
			LockTTL: cfg.Lock.TTL,
		}, logger, observer),
		Orders:      service.NewWorkOrderService(orderRepo, uow, logger, observer),
		Plans:       service.NewPlanService(planRepo, uow, observer),
		Technicians: service.NewTechnicianService(technicianRepo),
		Assets:      service.NewAssetService(assetRepo),
		Import:      service.NewImportService(uow, observer),
		Config:      cfg,
		Logger:      logger,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(context.Background())
}
