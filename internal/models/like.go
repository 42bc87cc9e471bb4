package models

import "time"

// Like joins users to the products they have liked.
type Like struct {
	UserlikeID uint      `gorm:"primaryKey;column:userlike_id" json:"userlike_id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	ProductID  uint      `gorm:"not null;index" json:"product_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName keeps the historical table name used by existing clients.
func (Like) TableName() string { return "userlikes" }
