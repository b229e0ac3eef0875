package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestParseRoundTrip(t *testing.T) {
	p := NewParser("secret")
	userID := uuid.New()
	token, err := p.Issue(Claims{
		UserID:     userID,
		Role:       "MANAGER",
		CompanyIDs: []string{"acme"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := p.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != userID || claims.Role != "MANAGER" || len(claims.CompanyIDs) != 1 {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParseRejects(t *testing.T) {
	p := NewParser("secret")
	valid := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}

	wrongKey, _ := NewParser("other").Issue(Claims{UserID: uuid.New(), RegisteredClaims: valid})
	expired, _ := p.Issue(Claims{UserID: uuid.New(), RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}})
	noExpiry, _ := p.Issue(Claims{UserID: uuid.New()})
	noUser, _ := p.Issue(Claims{RegisteredClaims: valid})

	tests := map[string]string{
		"wrong key": wrongKey,
		"expired":   expired,
		"no expiry": noExpiry,
		"no user":   noUser,
		"garbage":   "not-a-token",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := p.Parse(token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
