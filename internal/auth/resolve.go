package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/ondetemapp/ondetem/internal/models"
	"github.com/ondetemapp/ondetem/internal/store"
)

// fallbackName is used when neither the token nor the email yields a
// display name.
const fallbackName = "Usuário"

// ResolveUser turns a verified identity into a persisted User.
//
// Firebase identities are provisioned on first sight: lookup by UID, then by
// email (which links the UID onto an existing password account), then create.
// Legacy identities must already exist; there is no implicit creation on
// that path.
func ResolveUser(ctx context.Context, users store.Users, identity *Identity) (*models.User, error) {
	if identity == nil {
		return nil, ErrNotAuthenticated
	}

	if identity.IsFirebase() {
		return resolveFirebase(ctx, users, identity)
	}

	id, err := uuid.Parse(identity.LegacyUserID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := users.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func resolveFirebase(ctx context.Context, users store.Users, identity *Identity) (*models.User, error) {
	user, err := users.ByFirebaseUID(ctx, identity.FirebaseUID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	email := strings.ToLower(identity.Email)
	if email != "" {
		user, err = users.ByEmail(ctx, email)
		if err == nil {
			// Merge: the account predates the Firebase login, bind the UID.
			uid := identity.FirebaseUID
			user.FirebaseUID = &uid
			if err := users.Save(ctx, user); err != nil {
				return nil, err
			}
			return user, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}

	uid := identity.FirebaseUID
	user = &models.User{
		ID:          uuid.New(),
		FirebaseUID: &uid,
		Email:       email,
		Name:        displayName(identity),
	}
	if err := users.Create(ctx, user); err != nil {
		// A concurrent request may have provisioned the same UID; the unique
		// index makes the create lose, so re-read instead of duplicating.
		if existing, lookupErr := users.ByFirebaseUID(ctx, identity.FirebaseUID); lookupErr == nil {
			return existing, nil
		}
		return nil, err
	}
	return user, nil
}

func displayName(identity *Identity) string {
	if identity.Name != "" {
		return identity.Name
	}
	if identity.Email != "" {
		return strings.Split(identity.Email, "@")[0]
	}
	return fallbackName
}
