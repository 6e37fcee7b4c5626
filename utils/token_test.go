package utils

import (
	"testing"
	"time"

	"esports-platform/models"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenRoundtrip(t *testing.T) {
	user := &models.User{ID: "user-1", Email: "a@b.com", Role: models.RoleManager}

	tok, err := GenerateToken("secret", user)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseToken("secret", tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != user.ID {
		t.Errorf("subject = %q, want %q", claims.Subject, user.ID)
	}
	if claims.Email != user.Email || claims.Role != user.Role {
		t.Errorf("claims = %+v", claims)
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining < TokenLifetime-time.Minute || remaining > TokenLifetime {
		t.Errorf("expiry %v out of expected window", remaining)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	tok, err := GenerateToken("secret", &models.User{ID: "u", Email: "a@b.com", Role: models.RolePlayer})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseToken("other-secret", tok); err != ErrInvalidToken {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestParseTokenExpired(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email: "a@b.com",
		Role:  models.RolePlayer,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u",
			IssuedAt:  jwt.NewNumericDate(past.Add(-TokenLifetime)),
			ExpiresAt: jwt.NewNumericDate(past),
		},
	})
	signed, err := tok.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseToken("secret", signed); err != ErrInvalidToken {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestParseTokenGarbage(t *testing.T) {
	if _, err := ParseToken("secret", "not-a-token"); err != ErrInvalidToken {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}
