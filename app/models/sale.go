package models

import "time"

// Sale is a sale transaction. Deleting a sale is a hard delete that also
// removes its items (no soft-delete column on purpose).
type Sale struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Timestamp time.Time  `gorm:"autoCreateTime" json:"timestamp"`
	StoreID   *uint      `gorm:"index" json:"store_id,omitempty"`
	Items     []SaleItem `gorm:"foreignKey:SaleID" json:"items"`
}

// SaleItem records one product line of a sale. Price is copied from the
// product at sale time and never re-derived afterwards.
type SaleItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	SaleID    uint    `gorm:"index;not null" json:"sale_id"`
	ProductID uint    `gorm:"index" json:"product_id"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"`
}
