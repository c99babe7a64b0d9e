package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OrderStatus is the kitchen workflow state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "order is ready"
	OrderServed    OrderStatus = "served"
	OrderCancelled OrderStatus = "cancelled"
)

// orderTransitions is the forward-only transition table. Absent entries are
// terminal states.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderPreparing, OrderCancelled},
	OrderPreparing: {OrderReady, OrderCancelled},
	OrderReady:     {OrderServed},
}

// Valid reports whether s is a recognized order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderPreparing, OrderReady, OrderServed, OrderCancelled:
		return true
	}
	return false
}

// CanTransition reports whether an order in state s may move to next.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

// OrderLine is a single (menu item, quantity) entry of an order. Title and
// Price are snapshotted from the catalog at creation time.
type OrderLine struct {
	MenuItemID uint            `json:"menu_item_id"`
	Title      string          `json:"title"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
}

// Order is a transactional record of items ordered from one device at one
// table. Items holds the serialized OrderLine collection.
type Order struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	TableNumber        int             `gorm:"not null;index" json:"table_number"`
	DeviceID           string          `gorm:"size:128;not null" json:"device_id"`
	Items              datatypes.JSON  `gorm:"not null" json:"items"`
	TotalAmount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	MaxPrepTimeMinutes int             `gorm:"not null" json:"max_prep_time_minutes"`
	Status             OrderStatus     `gorm:"size:32;not null;default:pending;index" json:"status"`
	CreatedAt          time.Time       `gorm:"not null;index" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"not null" json:"updated_at"`
}

// Lines decodes the serialized line-item document.
func (o *Order) Lines() ([]OrderLine, error) {
	var lines []OrderLine
	if err := json.Unmarshal(o.Items, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}
