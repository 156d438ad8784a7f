package identity

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the narrow persistence interface identity's service
// depends on, following the teacher's domain-specific repository style
// (internal/auth/domain/repository.go) rather than the generic store.
type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (*User, error)

	CreateMembership(ctx context.Context, m *CompanyMembership) error
	FindMembership(ctx context.Context, userID, companyID uuid.UUID) (*CompanyMembership, error)

	SaveRefreshToken(ctx context.Context, t *RefreshToken) error
	FindRefreshToken(ctx context.Context, jti string) (*RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, jti string) error
}
