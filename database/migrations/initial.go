package migrations

import (
	"github.com/shashiranjanraj/posnet/app/models"
	"github.com/shashiranjanraj/posnet/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260301000000_create_pos_tables", &CreatePOSTables{})
}

// CreatePOSTables creates every POS table. One migration covers all seven
// entities because each tier carries the full schema, warehouse tables
// included, even when a given tier only writes a subset.
type CreatePOSTables struct{}

func (m *CreatePOSTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}

func (m *CreatePOSTables) Down(db *gorm.DB) error {
	// Children before parents.
	for _, table := range []string{
		"restock_requests",
		"logistics_stock",
		"central_stock",
		"sale_items",
		"sales",
		"products",
		"stores",
	} {
		if err := db.Migrator().DropTable(table); err != nil {
			return err
		}
	}
	return nil
}
