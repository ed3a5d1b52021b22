package migration

import (
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type tableMigration struct {
	table string
}

func (m *tableMigration) Up(db *gorm.DB) error {
	return db.Exec("CREATE TABLE " + m.table + " (id INTEGER PRIMARY KEY)").Error
}

func (m *tableMigration) Down(db *gorm.DB) error {
	return db.Exec("DROP TABLE " + m.table).Error
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "migrate.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return db
}

func hasTable(t *testing.T, db *gorm.DB, name string) bool {
	t.Helper()
	return db.Migrator().HasTable(name)
}

func TestRunnerLifecycle(t *testing.T) {
	saved := registry
	registry = nil
	t.Cleanup(func() { registry = saved })

	Register("20260301000000_create_alpha", &tableMigration{table: "alpha"})
	Register("20260301000001_create_beta", &tableMigration{table: "beta"})

	db := openTestDB(t)
	runner := New(db)

	if err := runner.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !hasTable(t, db, "alpha") || !hasTable(t, db, "beta") {
		t.Fatal("tables not created")
	}

	// Second run is a no-op: nothing pending, no new batch.
	if err := runner.Run(); err != nil {
		t.Fatalf("second Run: %v", err)
	}
	pending, err := runner.Pending()
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("pending after run = %d, want 0", len(pending))
	}

	// A migration registered later lands in a new batch.
	Register("20260301000002_create_gamma", &tableMigration{table: "gamma"})
	if err := runner.Run(); err != nil {
		t.Fatalf("third Run: %v", err)
	}
	var batches []int
	db.Model(&migrationRecord{}).Order("batch").Pluck("batch", &batches)
	if len(batches) != 3 || batches[2] != 2 {
		t.Errorf("batches = %v, want [1 1 2]", batches)
	}

	// Rollback only reverses the latest batch.
	if err := runner.Rollback(); err != nil {
		t.Fatalf("Rollback: %v", err)
	}
	if hasTable(t, db, "gamma") {
		t.Error("gamma should be dropped by rollback")
	}
	if !hasTable(t, db, "alpha") || !hasTable(t, db, "beta") {
		t.Error("batch 1 tables should survive rollback of batch 2")
	}

	if err := runner.Rollback(); err != nil {
		t.Fatalf("second Rollback: %v", err)
	}
	if hasTable(t, db, "alpha") {
		t.Error("alpha should be dropped by second rollback")
	}
}
