package models

// Product is one inventory item. Primary keys stay stable across tiers so
// that sync can merge rows by id; content may diverge between databases
// until the next sync pass.
type Product struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Name     string  `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Category string  `gorm:"size:255;index" json:"category"`
	Price    float64 `gorm:"not null" json:"price"`
	Stock    int     `gorm:"not null;default:0" json:"stock"`
	StoreID  *uint   `gorm:"index" json:"store_id,omitempty"`
}
