package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ondetemapp/ondetem/internal/models"
)

// TokenIssuer mints legacy session tokens (HS256, 7-day expiry by default).
type TokenIssuer struct {
	secret []byte
	expiry time.Duration
}

func NewTokenIssuer(secret string, expiry time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), expiry: expiry}
}

func (t *TokenIssuer) Issue(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"userId": user.ID.String(),
		"email":  user.Email,
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(t.expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// LegacyStrategy verifies self-issued session tokens.
type LegacyStrategy struct {
	secret []byte
}

func NewLegacyStrategy(secret string) *LegacyStrategy {
	return &LegacyStrategy{secret: []byte(secret)}
}

func (s *LegacyStrategy) Verify(_ context.Context, token string) (*Identity, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrNotApplicable, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected claims type", ErrNotApplicable)
	}
	userID, _ := claims["userId"].(string)
	if userID == "" {
		return nil, fmt.Errorf("%w: missing userId claim", ErrNotApplicable)
	}

	return &Identity{LegacyUserID: userID}, nil
}
