package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tableorder-backend/internal/model"
)

// CreateTable inserts a new table, starting free.
func (s *gormStore) CreateTable(ctx context.Context, number int) (*model.Table, error) {
	if number <= 0 {
		return nil, fmt.Errorf("%w: table number must be positive", ErrInvalidStatus)
	}

	table := model.Table{TableNumber: number, Status: model.TableFree}
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&table)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to create table %d: %w", number, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrTableExists
	}
	return &table, nil
}

// ListTables returns all tables with their current status.
func (s *gormStore) ListTables(ctx context.Context) ([]model.Table, error) {
	var tables []model.Table
	if err := s.db.WithContext(ctx).Order("table_number ASC").Find(&tables).Error; err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	return tables, nil
}

// SetTableStatus sets a table's occupancy. Caller-driven; when the
// reconciler is enabled its next sweep takes precedence.
func (s *gormStore) SetTableStatus(ctx context.Context, number int, status model.TableStatus) (*model.Table, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	var table model.Table
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&table, "table_number = ?", number).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		table.Status = status
		return tx.Model(&table).Update("status", status).Error
	})
	if err != nil {
		return nil, err
	}
	return &table, nil
}

// DeleteTable removes a table. Sessions, orders and requests for it go with
// it through the cascade constraints.
func (s *gormStore) DeleteTable(ctx context.Context, number int) error {
	res := s.db.WithContext(ctx).Delete(&model.Table{}, "table_number = ?", number)
	if res.Error != nil {
		return fmt.Errorf("failed to delete table %d: %w", number, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReconcileOccupancy derives table status from device sessions: a table
// with at least one session is occupied, otherwise free. Returns the number
// of tables whose status changed.
func (s *gormStore) ReconcileOccupancy(ctx context.Context) (int, error) {
	changed := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		type countRow struct {
			TableNumber int
			N           int64
		}
		var counts []countRow
		if err := tx.Model(&model.DeviceSession{}).
			Select("table_number as table_number, COUNT(*) as n").
			Group("table_number").
			Scan(&counts).Error; err != nil {
			return fmt.Errorf("failed to count sessions: %w", err)
		}

		occupied := make(map[int]bool, len(counts))
		for _, c := range counts {
			occupied[c.TableNumber] = c.N > 0
		}

		var tables []model.Table
		if err := tx.Find(&tables).Error; err != nil {
			return fmt.Errorf("failed to fetch tables: %w", err)
		}

		for _, t := range tables {
			want := model.TableFree
			if occupied[t.TableNumber] {
				want = model.TableOccupied
			}
			if t.Status == want {
				continue
			}
			if err := tx.Model(&model.Table{}).
				Where("table_number = ?", t.TableNumber).
				Update("status", want).Error; err != nil {
				return fmt.Errorf("failed to reconcile table %d: %w", t.TableNumber, err)
			}
			changed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return changed, nil
}
