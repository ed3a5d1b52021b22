package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/posnet/app/controllers"
	"github.com/shashiranjanraj/posnet/config"
	"github.com/shashiranjanraj/posnet/pkg/cache"
	"github.com/shashiranjanraj/posnet/pkg/database"
	"github.com/shashiranjanraj/posnet/pkg/logger"
	"github.com/shashiranjanraj/posnet/pkg/metrics"
	"github.com/shashiranjanraj/posnet/pkg/migration"
	"gorm.io/gorm"

	// Import migrations so their init() funcs run and register themselves.
	_ "github.com/shashiranjanraj/posnet/database/migrations"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "posnet",
	Short: "posnet — multi-tier point-of-sale",
	Long:  "posnet manages inventory, sales and stock replenishment across store, HQ and logistics databases.",
}

func init() {
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(hqCmd)
	rootCmd.AddCommand(logisticsCmd)

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)
}

// app holds the booted configuration and tier connections for one command
// invocation.
type app struct {
	cfg  *config.Config
	db   *gorm.DB
	hq   *gorm.DB
	sync *controllers.SyncController
}

// boot loads configuration, opens the local (and, in multi-tier topology,
// the HQ) database and applies any pending migrations to each.
func boot() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.Setup(cfg.AppEnv)

	if cfg.RedisAddr != "" {
		if err := cache.Connect(cfg.RedisAddr, cfg.RedisPassword); err != nil {
			logger.Warn("report cache unavailable", "err", err)
		}
	}
	if cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(cfg.MetricsAddr); err != nil {
				logger.Warn("metrics listener stopped", "err", err)
			}
		}()
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := migration.New(db).Run(); err != nil {
		return nil, err
	}

	var hq *gorm.DB
	if cfg.MultiTier() {
		if hq, err = database.Open(cfg.HQDatabaseURL); err != nil {
			return nil, err
		}
		if err := migration.New(hq).Run(); err != nil {
			return nil, err
		}
	}

	return &app{
		cfg:  cfg,
		db:   db,
		hq:   hq,
		sync: controllers.NewSyncController(db, hq, cfg.MultiTier()),
	}, nil
}

func (a *app) close() {
	database.Close(a.db)
	database.Close(a.hq)
}
