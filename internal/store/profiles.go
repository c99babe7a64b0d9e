package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tableorder-backend/internal/model"
)

// CreateProfile inserts exactly one profile row for a freshly provisioned
// identity. A duplicate email is rejected, never silently merged.
func (s *gormStore) CreateProfile(ctx context.Context, p *model.Profile) error {
	if !p.Role.Valid() {
		return ErrInvalidStatus
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(p)
	if res.Error != nil {
		return fmt.Errorf("failed to create profile: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrDuplicateEmail
	}
	return nil
}

// ProfileByID returns one profile by identity id.
func (s *gormStore) ProfileByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	var p model.Profile
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ProfileByEmail returns one profile by email.
func (s *gormStore) ProfileByEmail(ctx context.Context, email string) (*model.Profile, error) {
	var p model.Profile
	if err := s.db.WithContext(ctx).First(&p, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// UpdateProfile applies a self-update to the owning identity's profile.
// Role is not self-updatable.
func (s *gormStore) UpdateProfile(ctx context.Context, id uuid.UUID, upd ProfileUpdate) (*model.Profile, error) {
	var p model.Profile
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if upd.Email == "" || upd.Email == p.Email {
			return nil
		}
		p.Email = upd.Email
		if err := tx.Model(&p).Update("email", upd.Email).Error; err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProfiles returns all profiles. Role information is not confidential
// among staff; any authenticated identity may call this.
func (s *gormStore) ListProfiles(ctx context.Context) ([]model.Profile, error) {
	var profiles []model.Profile
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}
