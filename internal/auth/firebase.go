package auth

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
)

// IDTokenVerifier is the slice of the Firebase Admin SDK the strategy needs.
// *fbauth.Client satisfies it.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// NewFirebaseAuthClient builds an Admin Auth client from Application Default
// Credentials (GOOGLE_APPLICATION_CREDENTIALS).
func NewFirebaseAuthClient(ctx context.Context, projectID string) (*fbauth.Client, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID})
	if err != nil {
		return nil, fmt.Errorf("failed to init firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to init firebase auth client: %w", err)
	}
	return client, nil
}

// FirebaseStrategy verifies Firebase ID tokens. Any verification failure is
// reported as not-applicable so the chain can fall through to the legacy
// scheme, matching the app's long-standing behavior for mixed token types.
type FirebaseStrategy struct {
	verifier IDTokenVerifier
}

func NewFirebaseStrategy(verifier IDTokenVerifier) *FirebaseStrategy {
	return &FirebaseStrategy{verifier: verifier}
}

func (s *FirebaseStrategy) Verify(ctx context.Context, token string) (*Identity, error) {
	decoded, err := s.verifier.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotApplicable, err)
	}

	email, _ := decoded.Claims["email"].(string)
	name, _ := decoded.Claims["name"].(string)
	return &Identity{
		FirebaseUID: decoded.UID,
		Email:       email,
		Name:        name,
	}, nil
}
