// Package models contains data structures for the marketplace domain.
package models

import (
	"time"
)

// UserRole defines whether an account sells or buys on the marketplace.
type UserRole string

const (
	// UserRoleSeller is an account that lists products.
	UserRoleSeller UserRole = "seller"
	// UserRoleBuyer is an account that places deals and preorders.
	UserRoleBuyer UserRole = "buyer"
)

// User represents a marketplace account.
type User struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	Name       string   `gorm:"not null" json:"name"`
	Email      string   `gorm:"unique;not null" json:"email"`
	Password   string   `gorm:"not null" json:"-"`
	Mobile     string   `gorm:"not null" json:"mobile"`
	Address    string   `gorm:"type:text;not null" json:"address"`
	Faculty    string   `gorm:"not null" json:"faculty"`
	Department string   `gorm:"not null" json:"department"`
	ClassYear  string   `gorm:"not null" json:"class_year"`
	Role       UserRole `gorm:"type:varchar(10);not null" json:"role"`
	// No is the 1-based rank within a listed page; computed, never stored.
	No        int       `gorm:"-" json:"no,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SetRowNumber records the row's rank in a listed collection.
func (u *User) SetRowNumber(n int) { u.No = n }
