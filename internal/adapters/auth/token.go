package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"roomreserve/internal/domain"
)

const adminSubject = "admin"

// AdminTokens issues and verifies admin session tokens. There is a single
// principal, so the subject claim is fixed.
type AdminTokens interface {
	domain.TokenIssuer
	domain.TokenVerifier
}

type jwtTokens struct {
	secret []byte
}

// NewJWTTokens returns an AdminTokens backed by HS256 JWTs.
func NewJWTTokens(secret string) AdminTokens {
	return &jwtTokens{secret: []byte(secret)}
}

func (t *jwtTokens) Issue(expiry time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   adminSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (t *jwtTokens) Verify(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return fmt.Errorf("parse token: %w", err)
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject != adminSubject {
		return fmt.Errorf("invalid admin token")
	}
	return nil
}
