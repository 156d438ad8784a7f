package identity

import (
	"time"

	"github.com/google/uuid"
)

// Role is the fixed set of roles spec.md's authorization model assigns
// per company membership.
type Role string

const (
	RoleOwner      Role = "OWNER"
	RoleAccountant Role = "ACCOUNTANT"
	RoleViewer     Role = "VIEWER"
)

// User is a login identity. A user may belong to more than one company;
// company membership and role live on CompanyMembership.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	FullName     string    `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CompanyMembership binds a user to a company with a role.
type CompanyMembership struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:ux_membership_user_company,priority:1"`
	CompanyID uuid.UUID `gorm:"type:uuid;uniqueIndex:ux_membership_user_company,priority:2"`
	Role      Role      `gorm:"not null"`
	CreatedAt time.Time
}

// RefreshToken is the server-side record of an outstanding refresh token,
// keyed by the jti shared with its paired access token — the Go
// persistence of the Rust jwt.rs paired-jti design (a process-local map
// cannot be shared across replicas of a service).
type RefreshToken struct {
	JTI       string    `gorm:"primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	RevokedAt *time.Time
	CreatedAt time.Time
}
