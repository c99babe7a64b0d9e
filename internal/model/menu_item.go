package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem represents a dish on the menu.
type MenuItem struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Title           string          `gorm:"size:256;not null" json:"title"`
	Description     string          `gorm:"size:1024" json:"description"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	PrepTimeMinutes int             `gorm:"not null;default:15" json:"prep_time_minutes"`
	Category        string          `gorm:"size:128;index" json:"category"`
	ImageURL        string          `gorm:"size:512" json:"image_url,omitempty"`
	IsAvailable     bool            `gorm:"not null" json:"is_available"`
	CreatedAt       time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null" json:"updated_at"`
}
