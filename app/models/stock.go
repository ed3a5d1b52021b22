package models

// CentralStock is the HQ-level warehouse pool for a product.
type CentralStock struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ProductID uint `gorm:"index" json:"product_id"`
	Quantity  int  `gorm:"not null;default:0" json:"quantity"`
}

// TableName keeps the historical singular table name.
func (CentralStock) TableName() string { return "central_stock" }

// LogisticsStock is the logistics-level warehouse pool, a tier separate
// from CentralStock.
type LogisticsStock struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ProductID uint `gorm:"index" json:"product_id"`
	Quantity  int  `gorm:"not null" json:"quantity"`
}

func (LogisticsStock) TableName() string { return "logistics_stock" }
