package models

import (
	"time"
)

// Product represents an item listed for sale by a seller.
type Product struct {
	ID                 uint    `gorm:"primaryKey" json:"id"`
	ProductName        string  `gorm:"not null" json:"product_name"`
	ProductQty         int     `gorm:"not null" json:"product_qty"`
	ProductPrice       float64 `gorm:"not null" json:"product_price"`
	ProductDescription *string `gorm:"type:text" json:"product_description"`
	ItemCategory       string  `gorm:"not null" json:"item_category"`
	ItemType           string  `gorm:"not null" json:"item_type"`
	SellerID           uint    `gorm:"not null;index" json:"seller_id"`
	DateExp            time.Time `json:"date_exp"`
	// No is the 1-based rank within a listed page; computed, never stored.
	No        int       `gorm:"-" json:"no,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SetRowNumber records the row's rank in a listed collection.
func (p *Product) SetRowNumber(n int) { p.No = n }
