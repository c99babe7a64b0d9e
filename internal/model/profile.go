package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is a staff role.
type Role string

const (
	RoleManager Role = "manager"
	RoleServant Role = "servant"
)

// Valid reports whether r is a recognized role.
func (r Role) Valid() bool {
	return r == RoleManager || r == RoleServant
}

// Profile is the authorization record for one staff identity. ID equals the
// identity's id; exactly one profile exists per identity.
type Profile struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"size:256;not null;uniqueIndex" json:"email"`
	Role         Role      `gorm:"size:16;not null" json:"role"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}
