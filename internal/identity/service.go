package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/massehanto/saku/pkg/apperror"
)

// Service implements signup, login, token refresh, and logout.
type Service struct {
	repo   Repository
	tokens *tokenIssuer
}

func NewService(repo Repository, jwtSecret string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{repo: repo, tokens: newTokenIssuer(jwtSecret, accessTTL, refreshTTL)}
}

// NewStandaloneVerifier builds a Service that can only verify access
// tokens, for services (like the gateway) that need to authenticate
// callers without owning the user/membership database themselves.
func NewStandaloneVerifier(jwtSecret string) *Service {
	return &Service{tokens: newTokenIssuer(jwtSecret, 0, 0)}
}

type SignupRequest struct {
	Email     string
	Password  string
	FullName  string
	CompanyID uuid.UUID
	Role      Role
}

type TokenPair struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup creates a user and a company membership for it. Email must be
// globally unique across companies, per spec.md's identity invariants.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*User, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" || req.FullName == "" {
		return nil, apperror.Validation("email, password, and full_name are required")
	}

	existing, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("find user by email: %w", err))
	}
	if existing != nil {
		return nil, apperror.Conflict("email already registered")
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("hash password: %w", err))
	}

	now := time.Now().UTC()
	user := &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		FullName:     req.FullName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, apperror.Internal(fmt.Errorf("create user: %w", err))
	}

	role := req.Role
	if role == "" {
		role = RoleOwner
	}
	membership := &CompanyMembership{
		ID:        uuid.New(),
		UserID:    user.ID,
		CompanyID: req.CompanyID,
		Role:      role,
		CreatedAt: now,
	}
	if err := s.repo.CreateMembership(ctx, membership); err != nil {
		return nil, apperror.Internal(fmt.Errorf("create membership: %w", err))
	}

	return user, nil
}

// Login validates credentials and a target company membership, then
// issues a jti-paired access/refresh token pair.
func (s *Service) Login(ctx context.Context, email, password string, companyID uuid.UUID) (*TokenPair, error) {
	user, err := s.repo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("find user: %w", err))
	}
	if user == nil {
		return nil, apperror.Unauthenticated("invalid email or password")
	}
	if !verifyPassword(password, user.PasswordHash) {
		return nil, apperror.Unauthenticated("invalid email or password")
	}

	membership, err := s.repo.FindMembership(ctx, user.ID, companyID)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("find membership: %w", err))
	}
	if membership == nil {
		return nil, apperror.Forbidden("user is not a member of this company")
	}

	return s.issueTokenPair(ctx, user, companyID)
}

func (s *Service) issueTokenPair(ctx context.Context, user *User, companyID uuid.UUID) (*TokenPair, error) {
	jti := uuid.New().String()

	accessToken, accessExp, err := s.tokens.issueAccessToken(user.ID, companyID, user.Email, user.FullName, jti)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("issue access token: %w", err))
	}
	refreshToken, refreshExp, err := s.tokens.issueRefreshToken(user.ID, jti)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("issue refresh token: %w", err))
	}

	record := &RefreshToken{
		JTI:       jti,
		UserID:    user.ID,
		CompanyID: companyID,
		ExpiresAt: refreshExp,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.SaveRefreshToken(ctx, record); err != nil {
		return nil, apperror.Internal(fmt.Errorf("persist refresh token: %w", err))
	}

	return &TokenPair{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		AccessTokenExpiresAt:  accessExp,
		RefreshTokenExpiresAt: refreshExp,
	}, nil
}

// Refresh rotates a refresh token: the presented token's jti is revoked and
// a new jti-paired pair is issued, refusing reuse of an already-revoked or
// expired token.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.parse(refreshToken)
	if err != nil {
		return nil, apperror.Unauthenticated("invalid refresh token")
	}
	jti, _ := claims["jti"].(string)
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, apperror.Unauthenticated("invalid refresh token")
	}

	record, err := s.repo.FindRefreshToken(ctx, jti)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("find refresh token: %w", err))
	}
	if record == nil || record.RevokedAt != nil || record.UserID != userID {
		return nil, apperror.Unauthenticated("refresh token has been revoked or is unknown")
	}
	if time.Now().UTC().After(record.ExpiresAt) {
		return nil, apperror.Unauthenticated("refresh token has expired")
	}

	user, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("find user: %w", err))
	}
	if user == nil {
		return nil, apperror.Unauthenticated("user no longer exists")
	}

	if err := s.repo.RevokeRefreshToken(ctx, jti); err != nil {
		return nil, apperror.Internal(fmt.Errorf("revoke refresh token: %w", err))
	}

	return s.issueTokenPair(ctx, user, record.CompanyID)
}

// Logout revokes a refresh token so it can no longer be rotated.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.tokens.parse(refreshToken)
	if err != nil {
		return apperror.Unauthenticated("invalid refresh token")
	}
	jti, _ := claims["jti"].(string)
	if err := s.repo.RevokeRefreshToken(ctx, jti); err != nil {
		return apperror.Internal(fmt.Errorf("revoke refresh token: %w", err))
	}
	return nil
}

// VerifyAccessToken validates an access token for use by internal/authmw.
func (s *Service) VerifyAccessToken(tokenString string) (*Claims, error) {
	claims, err := s.tokens.ParseAccessToken(tokenString)
	if err != nil {
		return nil, apperror.Unauthenticated("invalid or expired token")
	}
	return claims, nil
}
