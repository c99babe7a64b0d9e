package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tableorder-backend/internal/model"
)

// RegisterSession binds a device to a table with insert-if-absent semantics
// on the unique (table, device) pair. A duplicate registration is a no-op
// success returning the existing row. The bool reports whether a new row was
// created.
func (s *gormStore) RegisterSession(ctx context.Context, tableNumber int, deviceID string) (*model.DeviceSession, bool, error) {
	if deviceID == "" {
		return nil, false, fmt.Errorf("%w: device id is required", ErrInvalidStatus)
	}

	var session model.DeviceSession
	created := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var table model.Table
		if err := tx.First(&table, "table_number = ?", tableNumber).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		session = model.DeviceSession{TableNumber: tableNumber, DeviceID: deviceID}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "table_number"}, {Name: "device_id"}},
			DoNothing: true,
		}).Create(&session)
		if res.Error != nil {
			return fmt.Errorf("failed to register session: %w", res.Error)
		}
		created = res.RowsAffected == 1

		// On conflict the insert returns nothing; read the surviving row
		// either way.
		return tx.First(&session, "table_number = ? AND device_id = ?", tableNumber, deviceID).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &session, created, nil
}

// CloseSession removes a (table, device) binding. An absent pair is a no-op
// success; the bool reports whether a row was deleted.
func (s *gormStore) CloseSession(ctx context.Context, tableNumber int, deviceID string) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("table_number = ? AND device_id = ?", tableNumber, deviceID).
		Delete(&model.DeviceSession{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to close session: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ListSessions returns the sessions currently bound to a table.
func (s *gormStore) ListSessions(ctx context.Context, tableNumber int) ([]model.DeviceSession, error) {
	var sessions []model.DeviceSession
	err := s.db.WithContext(ctx).
		Where("table_number = ?", tableNumber).
		Order("created_at ASC, id ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}
