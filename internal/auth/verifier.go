package auth

import (
	"context"
	"errors"
)

// User-visible messages kept identical to what the mobile app already
// displays, so neither path leaks which check failed.
var (
	ErrInvalidToken     = errors.New("Token inválido")
	ErrUserNotFound     = errors.New("Usuário não encontrado")
	ErrNotAuthenticated = errors.New("Não autenticado")
)

// ErrNotApplicable is returned by a Strategy whose scheme does not verify the
// token; the chain then moves on to the next strategy.
var ErrNotApplicable = errors.New("token not verifiable by this strategy")

// Identity is the outcome of credential verification. Exactly one of
// FirebaseUID / LegacyUserID is set.
type Identity struct {
	FirebaseUID  string
	Email        string
	Name         string
	LegacyUserID string
}

func (i *Identity) IsFirebase() bool {
	return i.FirebaseUID != ""
}

// Strategy verifies a bearer token under one credential scheme.
type Strategy interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// Verifier runs an ordered list of strategies. Firebase is tried before the
// legacy scheme; the ordering is the whole protocol, so callers never build
// a Verifier ad hoc.
type Verifier struct {
	strategies []Strategy
}

func NewVerifier(strategies ...Strategy) *Verifier {
	return &Verifier{strategies: strategies}
}

// Verify resolves a bearer token to an identity. An empty token is the
// anonymous case: (nil, nil), letting public operations proceed.
func (v *Verifier) Verify(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, nil
	}
	for _, s := range v.strategies {
		identity, err := s.Verify(ctx, token)
		if err != nil {
			if errors.Is(err, ErrNotApplicable) {
				continue
			}
			return nil, err
		}
		return identity, nil
	}
	return nil, ErrInvalidToken
}
