package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tableorder-backend/internal/model"
)

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	// Catalog
	CreateMenuItem(ctx context.Context, item *model.MenuItem) error
	UpdateMenuItem(ctx context.Context, id uint, upd MenuItemUpdate) (*model.MenuItem, error)
	ListMenuItems(ctx context.Context, f MenuFilter) ([]model.MenuItem, error)

	// Tables
	CreateTable(ctx context.Context, number int) (*model.Table, error)
	ListTables(ctx context.Context) ([]model.Table, error)
	SetTableStatus(ctx context.Context, number int, status model.TableStatus) (*model.Table, error)
	DeleteTable(ctx context.Context, number int) error
	ReconcileOccupancy(ctx context.Context) (int, error)

	// Device sessions
	RegisterSession(ctx context.Context, tableNumber int, deviceID string) (*model.DeviceSession, bool, error)
	CloseSession(ctx context.Context, tableNumber int, deviceID string) (bool, error)
	ListSessions(ctx context.Context, tableNumber int) ([]model.DeviceSession, error)

	// Orders
	CreateOrder(ctx context.Context, req NewOrder) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, next model.OrderStatus) (*model.Order, error)
	ListOrders(ctx context.Context, f OrderFilter) ([]model.Order, error)

	// Customer requests
	CreateRequest(ctx context.Context, req NewRequest) (*model.CustomerRequest, error)
	ServeRequest(ctx context.Context, id uuid.UUID) (*model.CustomerRequest, bool, error)
	ListRequests(ctx context.Context, f RequestFilter) ([]model.CustomerRequest, error)

	// Profiles
	CreateProfile(ctx context.Context, p *model.Profile) error
	ProfileByID(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	ProfileByEmail(ctx context.Context, email string) (*model.Profile, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, upd ProfileUpdate) (*model.Profile, error)
	ListProfiles(ctx context.Context) ([]model.Profile, error)
}

// MenuItemUpdate carries the fields of an in-place menu item overwrite.
type MenuItemUpdate struct {
	Title           string
	Description     string
	Price           decimal.Decimal
	PrepTimeMinutes int
	Category        string
	ImageURL        string
	IsAvailable     bool
}

// MenuFilter narrows a catalog listing.
type MenuFilter struct {
	Available *bool
	Category  string
}

// NewOrder is the input for order creation. Lines carry the item ids and
// quantities; prices and titles are taken from the catalog, not from here.
// TotalAmount and MaxPrepTimeMinutes, when supplied, are cross-checked
// against the server-side recomputation.
type NewOrder struct {
	TableNumber        int
	DeviceID           string
	Lines              []model.OrderLine
	TotalAmount        *decimal.Decimal
	MaxPrepTimeMinutes *int
}

// OrderFilter narrows an order listing. Results are always ordered by
// creation time ascending.
type OrderFilter struct {
	TableNumber *int
	Status      *model.OrderStatus
	Since       *time.Time
	Until       *time.Time
}

// NewRequest is the input for customer request creation.
type NewRequest struct {
	TableNumber int
	RequestType model.RequestType
	Amount      *decimal.Decimal
}

// RequestFilter narrows a customer request listing.
type RequestFilter struct {
	TableNumber *int
	Served      *bool
	Since       *time.Time
	Until       *time.Time
}

// ProfileUpdate carries the self-updatable profile fields.
type ProfileUpdate struct {
	Email string
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB exposes the underlying connection for handlers that query directly.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}
