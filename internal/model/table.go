package model

import "time"

// TableStatus is the occupancy state of a dining table.
type TableStatus string

const (
	TableFree     TableStatus = "free"
	TableOccupied TableStatus = "occupied"
)

// Valid reports whether s is a recognized table status.
func (s TableStatus) Valid() bool {
	return s == TableFree || s == TableOccupied
}

// Table represents a physical dining table.
type Table struct {
	TableNumber int         `gorm:"primaryKey;autoIncrement:false" json:"table_number"`
	Status      TableStatus `gorm:"size:16;not null;default:free" json:"status"`
	CreatedAt   time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"not null" json:"updated_at"`

	// Associations. The cascade constraints live here, on the has-many
	// side, so the foreign keys land on the child tables.
	Sessions []DeviceSession   `gorm:"foreignKey:TableNumber;references:TableNumber;constraint:OnDelete:CASCADE" json:"-"`
	Orders   []Order           `gorm:"foreignKey:TableNumber;references:TableNumber;constraint:OnDelete:CASCADE" json:"-"`
	Requests []CustomerRequest `gorm:"foreignKey:TableNumber;references:TableNumber;constraint:OnDelete:CASCADE" json:"-"`
}
