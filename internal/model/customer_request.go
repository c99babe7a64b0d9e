package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RequestType classifies a customer request.
type RequestType string

const (
	RequestWater     RequestType = "water"
	RequestBill      RequestType = "bill"
	RequestOrderMore RequestType = "order_more"
)

// Valid reports whether t is a recognized request type.
func (t RequestType) Valid() bool {
	return t == RequestWater || t == RequestBill || t == RequestOrderMore
}

// CustomerRequest is an ancillary ask from a table: water, the bill, or
// permission to order more. ServedAt is set exactly once, when IsServed
// flips to true.
type CustomerRequest struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	TableNumber int              `gorm:"not null;index" json:"table_number"`
	RequestType RequestType      `gorm:"size:32;not null" json:"request_type"`
	Amount      *decimal.Decimal `gorm:"type:decimal(10,2)" json:"amount,omitempty"`
	IsServed    bool             `gorm:"not null;default:false" json:"is_served"`
	ServedAt    *time.Time       `json:"served_at,omitempty"`
	CreatedAt   time.Time        `gorm:"not null;index" json:"created_at"`
}
