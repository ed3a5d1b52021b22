package models

// RestockRequest status values. The transition is monotonic
// PENDING → APPROVED; there is no reject or cancel state.
const (
	RestockPending  = "PENDING"
	RestockApproved = "APPROVED"
)

// RestockRequest is created by a store in the logistics database and
// resolved by the logistics tier.
type RestockRequest struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	StoreID   uint   `gorm:"index" json:"store_id"`
	ProductID uint   `gorm:"index" json:"product_id"`
	Quantity  int    `gorm:"not null" json:"quantity"`
	Status    string `gorm:"size:50;default:PENDING" json:"status"`
}
