package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := hashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("hashPassword: %v", err)
	}

	if !verifyPassword("correct horse battery staple", hash) {
		t.Fatal("expected verifyPassword to accept the correct password")
	}
	if verifyPassword("wrong password", hash) {
		t.Fatal("expected verifyPassword to reject an incorrect password")
	}
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	if verifyPassword("anything", "not-an-argon2-hash") {
		t.Fatal("expected verifyPassword to reject a malformed encoded hash")
	}
}

func TestTokenIssuerRoundTrip(t *testing.T) {
	issuer := newTokenIssuer("test-secret", time.Minute, time.Minute)
	userID := uuid.New()
	companyID := uuid.New()

	token, _, err := issuer.issueAccessToken(userID, companyID, "user@example.com", "Test User", "jti-1")
	if err != nil {
		t.Fatalf("issueAccessToken: %v", err)
	}

	claims, err := issuer.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.UserID != userID || claims.CompanyID != companyID {
		t.Fatalf("claims mismatch: got %+v", claims)
	}
	if claims.JTI != "jti-1" {
		t.Fatalf("expected jti-1, got %s", claims.JTI)
	}
}
