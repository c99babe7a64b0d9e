package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"tableorder-backend/internal/model"
)

// CreateOrder writes an order as one committed unit. Line items are resolved
// against the catalog inside the transaction: prices, titles, the total and
// the max prep time all come from authoritative menu data. Caller-supplied
// aggregates are cross-checked and rejected on mismatch.
func (s *gormStore) CreateOrder(ctx context.Context, req NewOrder) (*model.Order, error) {
	if len(req.Lines) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, line := range req.Lines {
		if line.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
	}
	if req.DeviceID == "" {
		return nil, fmt.Errorf("%w: device id is required", ErrInvalidStatus)
	}

	var order model.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var table model.Table
		if err := tx.First(&table, "table_number = ?", req.TableNumber).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		ids := make([]uint, len(req.Lines))
		for i, line := range req.Lines {
			ids[i] = line.MenuItemID
		}
		var items []model.MenuItem
		if err := tx.Find(&items, ids).Error; err != nil {
			return fmt.Errorf("failed to load menu items: %w", err)
		}
		itemMap := make(map[uint]model.MenuItem, len(items))
		for _, item := range items {
			itemMap[item.ID] = item
		}

		total := decimal.Zero
		maxPrep := 0
		lines := make([]model.OrderLine, len(req.Lines))
		for i, line := range req.Lines {
			item, ok := itemMap[line.MenuItemID]
			if !ok {
				return fmt.Errorf("%w: item %d", ErrUnknownMenuItem, line.MenuItemID)
			}
			if !item.IsAvailable {
				return fmt.Errorf("%w: item %d", ErrItemUnavailable, item.ID)
			}

			lines[i] = model.OrderLine{
				MenuItemID: item.ID,
				Title:      item.Title,
				Price:      item.Price,
				Quantity:   line.Quantity,
			}
			total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
			if item.PrepTimeMinutes > maxPrep {
				maxPrep = item.PrepTimeMinutes
			}
		}

		if req.TotalAmount != nil && !req.TotalAmount.Equal(total) {
			return fmt.Errorf("%w: total_amount", ErrAggregateMismatch)
		}
		if req.MaxPrepTimeMinutes != nil && *req.MaxPrepTimeMinutes != maxPrep {
			return fmt.Errorf("%w: max_prep_time", ErrAggregateMismatch)
		}

		doc, err := json.Marshal(lines)
		if err != nil {
			return fmt.Errorf("failed to serialize line items: %w", err)
		}

		order = model.Order{
			ID:                 uuid.New(),
			TableNumber:        req.TableNumber,
			DeviceID:           req.DeviceID,
			Items:              datatypes.JSON(doc),
			TotalAmount:        total,
			MaxPrepTimeMinutes: maxPrep,
			Status:             model.OrderPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus moves an order along the workflow. Transitions are
// forward-only; the write is a conditional update guarded on the observed
// prior status, so two racing updates cannot both win.
func (s *gormStore) UpdateOrderStatus(ctx context.Context, id uuid.UUID, next model.OrderStatus) (*model.Order, error) {
	if !next.Valid() {
		return nil, ErrInvalidStatus
	}

	var order model.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if !order.Status.CanTransition(next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, next)
		}

		res := tx.Model(&model.Order{}).
			Where("id = ? AND status = ?", id, order.Status).
			Update("status", next)
		if res.Error != nil {
			return fmt.Errorf("failed to update order status: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			// Lost the race; someone else moved the order first.
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, next)
		}
		order.Status = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders returns orders by creation time ascending, the FIFO service
// expectation for prep queues.
func (s *gormStore) ListOrders(ctx context.Context, f OrderFilter) ([]model.Order, error) {
	q := s.db.WithContext(ctx).Model(&model.Order{}).Order("created_at ASC, id ASC")
	if f.TableNumber != nil {
		q = q.Where("table_number = ?", *f.TableNumber)
	}
	if f.Status != nil {
		if !f.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		q = q.Where("status = ?", *f.Status)
	}
	if f.Since != nil {
		q = q.Where("created_at >= ?", *f.Since)
	}
	if f.Until != nil {
		q = q.Where("created_at <= ?", *f.Until)
	}

	var orders []model.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
