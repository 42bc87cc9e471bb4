package models

import "time"

// Preorder is a deal placed before the product is available, carrying a
// billing reference.
type Preorder struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BuyerID   uint      `gorm:"not null;index" json:"buyer_id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	Qty       int       `gorm:"not null" json:"qty"`
	DealDate  time.Time `json:"deal_date"`
	Status    string    `gorm:"not null" json:"status"`
	Bill      string    `gorm:"not null" json:"bill"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
