package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/posnet/config"
	"github.com/shashiranjanraj/posnet/database/seeders"
	"github.com/shashiranjanraj/posnet/pkg/database"
	"github.com/shashiranjanraj/posnet/pkg/logger"
	"github.com/shashiranjanraj/posnet/pkg/migration"
	"gorm.io/gorm"
)

// withLocalDB loads config and opens the local database without running
// migrations, for the commands that manage migrations themselves.
func withLocalDB(fn func(db *gorm.DB) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Setup(cfg.AppEnv)

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close(db)

	return fn(db)
}

// posnet migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLocalDB(func(db *gorm.DB) error {
			fmt.Println("Running migrations…")
			return migration.New(db).Run()
		})
	},
}

// posnet migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLocalDB(func(db *gorm.DB) error {
			fmt.Println("Rolling back last batch…")
			return migration.New(db).Rollback()
		})
	},
}

// posnet migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLocalDB(func(db *gorm.DB) error {
			return migration.New(db).Status()
		})
	},
}

// posnet seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLocalDB(func(db *gorm.DB) error {
			if err := migration.New(db).Run(); err != nil {
				return err
			}
			fmt.Println("Running seeders…")
			return seeders.RunAll(db)
		})
	},
}
