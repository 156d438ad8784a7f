package identity

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims mirrors the original platform's access-token claim shape:
// sub, email, company_id, full_name, iat, exp, jti.
type Claims struct {
	UserID    uuid.UUID
	Email     string
	CompanyID uuid.UUID
	FullName  string
	JTI       string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// tokenIssuer signs and verifies HS256 access/refresh tokens.
type tokenIssuer struct {
	secret          []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

func newTokenIssuer(secret string, accessTTL, refreshTTL time.Duration) *tokenIssuer {
	return &tokenIssuer{secret: []byte(secret), accessTokenTTL: accessTTL, refreshTokenTTL: refreshTTL}
}

// issueAccessToken signs a short-lived access token carrying jti so it can
// be paired with its refresh token.
func (t *tokenIssuer) issueAccessToken(userID, companyID uuid.UUID, email, fullName, jti string) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(t.accessTokenTTL)

	claims := jwt.MapClaims{
		"sub":        userID.String(),
		"company_id": companyID.String(),
		"email":      email,
		"full_name":  fullName,
		"iat":        now.Unix(),
		"exp":        expiresAt.Unix(),
		"jti":        jti,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing access token: %w", err)
	}
	return signed, expiresAt, nil
}

// issueRefreshToken signs a long-lived token carrying the same jti as its
// paired access token, per the original jwt.rs design.
func (t *tokenIssuer) issueRefreshToken(userID uuid.UUID, jti string) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(t.refreshTokenTTL)

	claims := jwt.MapClaims{
		"sub": userID.String(),
		"jti": jti,
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing refresh token: %w", err)
	}
	return signed, expiresAt, nil
}

// parse validates a token's signature and expiry and returns its claims.
func (t *tokenIssuer) parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// ParseAccessToken validates an access token and returns its claims; used
// by Service.VerifyAccessToken.
func (t *tokenIssuer) ParseAccessToken(tokenString string) (*Claims, error) {
	claims, err := t.parse(tokenString)
	if err != nil {
		return nil, err
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, fmt.Errorf("invalid subject claim: %w", err)
	}
	companyIDStr, _ := claims["company_id"].(string)
	companyID, err := uuid.Parse(companyIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid company_id claim: %w", err)
	}
	email, _ := claims["email"].(string)
	fullName, _ := claims["full_name"].(string)
	jti, _ := claims["jti"].(string)
	var issuedAt, expiresAt time.Time
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		issuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		expiresAt = exp.Time
	}

	return &Claims{
		UserID:    userID,
		CompanyID: companyID,
		Email:     email,
		FullName:  fullName,
		JTI:       jti,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}
