package models

import "time"

// Deal is a completed or in-progress purchase of a product by a buyer.
// BuyerID and ProductID are advisory references; existence is not enforced
// at write time (see the delete policy in the service layer).
type Deal struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BuyerID   uint      `gorm:"not null;index" json:"buyer_id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	Qty       int       `gorm:"not null" json:"qty"`
	DealDate  time.Time `json:"deal_date"`
	Status    string    `gorm:"not null" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
