// Package database opens GORM connections from "driver://dsn" connection
// strings. Every tier (store, HQ, logistics) is addressed by such a string,
// and the sync/restock flows open ad-hoc connections to other tiers from
// Store.DBURL, so connections are explicit values here rather than a
// package-level singleton.
package database

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ParseURL splits a connection string of the form "driver://rest" into the
// driver name and the DSN that driver expects. For postgres and sqlserver
// the whole URL is the DSN; for sqlite the rest is a file path; for mysql
// the rest is a go-sql-driver DSN.
func ParseURL(url string) (driver, dsn string, err error) {
	idx := strings.Index(url, "://")
	if idx <= 0 {
		return "", "", fmt.Errorf("database: malformed connection URL %q (want driver://dsn)", url)
	}

	driver = strings.ToLower(url[:idx])
	rest := url[idx+3:]

	switch driver {
	case "sqlite", "sqlite3":
		return "sqlite", rest, nil
	case "postgres", "postgresql":
		return "postgres", url, nil
	case "mysql":
		return "mysql", rest, nil
	case "sqlserver":
		return "sqlserver", url, nil
	default:
		return "", "", fmt.Errorf("database: unsupported driver %q (supported: sqlite, postgres, mysql, sqlserver)", driver)
	}
}

// Open connects to the database named by url and configures the connection
// pool. GORM's own logger is silenced; pkg/logger is used instead.
func Open(url string) (*gorm.DB, error) {
	driver, dsn, err := ParseURL(url)
	if err != nil {
		return nil, err
	}

	dialector, err := buildDialector(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("database: build dialector: %w", err)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("database: open %q: %w", url, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database: get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(2 * time.Minute)

	return db, nil
}

// Close releases the connection pool behind db. Used for the ad-hoc
// per-store connections opened during fan-out sync and restock approval.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func buildDialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "sqlite":
		return sqlite.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "sqlserver":
		return sqlserver.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
}
