package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tableorder-backend/internal/model"
)

// CreateRequest records a customer request for a table. An amount may only
// accompany bill requests.
func (s *gormStore) CreateRequest(ctx context.Context, req NewRequest) (*model.CustomerRequest, error) {
	if !req.RequestType.Valid() {
		return nil, ErrInvalidRequestType
	}
	if req.Amount != nil && req.RequestType != model.RequestBill {
		return nil, ErrAmountNotAllowed
	}

	var request model.CustomerRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var table model.Table
		if err := tx.First(&table, "table_number = ?", req.TableNumber).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		request = model.CustomerRequest{
			ID:          uuid.New(),
			TableNumber: req.TableNumber,
			RequestType: req.RequestType,
			Amount:      req.Amount,
		}
		if err := tx.Create(&request).Error; err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// ServeRequest marks a request served. The write is conditional on
// is_served = false, so served_at is stamped exactly once; a repeat serve is
// a no-op success. The bool reports whether this call did the serving.
func (s *gormStore) ServeRequest(ctx context.Context, id uuid.UUID) (*model.CustomerRequest, bool, error) {
	now := time.Now().UTC()
	res := s.db.WithContext(ctx).Model(&model.CustomerRequest{}).
		Where("id = ? AND is_served = ?", id, false).
		Updates(map[string]any{"is_served": true, "served_at": now})
	if res.Error != nil {
		return nil, false, fmt.Errorf("failed to serve request: %w", res.Error)
	}

	var request model.CustomerRequest
	if err := s.db.WithContext(ctx).First(&request, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrNotFound
		}
		return nil, false, err
	}
	return &request, res.RowsAffected > 0, nil
}

// ListRequests returns requests by creation time ascending.
func (s *gormStore) ListRequests(ctx context.Context, f RequestFilter) ([]model.CustomerRequest, error) {
	q := s.db.WithContext(ctx).Model(&model.CustomerRequest{}).Order("created_at ASC, id ASC")
	if f.TableNumber != nil {
		q = q.Where("table_number = ?", *f.TableNumber)
	}
	if f.Served != nil {
		q = q.Where("is_served = ?", *f.Served)
	}
	if f.Since != nil {
		q = q.Where("created_at >= ?", *f.Since)
	}
	if f.Until != nil {
		q = q.Where("created_at <= ?", *f.Until)
	}

	var requests []model.CustomerRequest
	if err := q.Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return requests, nil
}
