package models

// Store is a physical store location. DBURL is the connection string of the
// store's own database instance; the HQ and logistics tiers dereference it
// to open ad-hoc connections during sync and restock approval.
type Store struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Location string `gorm:"size:255" json:"location"`
	DBURL    string `gorm:"column:db_url;size:1024" json:"db_url"`
}
