// Package testutil provides throwaway sqlite databases for tests. Each
// database lives in its own temp directory and carries the full POS schema,
// mirroring how every tier owns an independent schema instance.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/shashiranjanraj/posnet/pkg/database"
	"github.com/shashiranjanraj/posnet/pkg/migration"
	"gorm.io/gorm"

	// Register the POS table migrations.
	_ "github.com/shashiranjanraj/posnet/database/migrations"
)

// NewTier creates a fresh migrated database and returns both its
// connection URL (for db_url registration) and an open handle.
func NewTier(t *testing.T) (string, *gorm.DB) {
	t.Helper()

	url := "sqlite://" + filepath.Join(t.TempDir(), "pos.db")
	db, err := database.Open(url)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })

	if err := migration.New(db).Run(); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return url, db
}

// NewDB is NewTier for tests that never need the connection URL.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	_, db := NewTier(t)
	return db
}
