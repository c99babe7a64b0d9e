package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tableorder-backend/internal/model"
)

// CreateMenuItem inserts a new catalog entry.
func (s *gormStore) CreateMenuItem(ctx context.Context, item *model.MenuItem) error {
	if item.PrepTimeMinutes <= 0 {
		item.PrepTimeMinutes = 15
	}
	if !item.Price.IsPositive() {
		return fmt.Errorf("%w: price must be positive", ErrInvalidStatus)
	}
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to create menu item: %w", err)
	}
	return nil
}

// UpdateMenuItem overwrites a catalog entry in place. There is no price
// history; the previous values are gone.
func (s *gormStore) UpdateMenuItem(ctx context.Context, id uint, upd MenuItemUpdate) (*model.MenuItem, error) {
	if !upd.Price.IsPositive() {
		return nil, fmt.Errorf("%w: price must be positive", ErrInvalidStatus)
	}
	if upd.PrepTimeMinutes <= 0 {
		return nil, fmt.Errorf("%w: prep time must be positive", ErrInvalidStatus)
	}

	var item model.MenuItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		item.Title = upd.Title
		item.Description = upd.Description
		item.Price = upd.Price
		item.PrepTimeMinutes = upd.PrepTimeMinutes
		item.Category = upd.Category
		item.ImageURL = upd.ImageURL
		item.IsAvailable = upd.IsAvailable

		return tx.Model(&item).Select("title", "description", "price", "prep_time_minutes",
			"category", "image_url", "is_available", "updated_at").Updates(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListMenuItems returns catalog entries ordered by creation time, optionally
// filtered by availability and category.
func (s *gormStore) ListMenuItems(ctx context.Context, f MenuFilter) ([]model.MenuItem, error) {
	q := s.db.WithContext(ctx).Model(&model.MenuItem{}).Order("created_at ASC, id ASC")
	if f.Available != nil {
		q = q.Where("is_available = ?", *f.Available)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}

	var items []model.MenuItem
	if err := q.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	return items, nil
}
