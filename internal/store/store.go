package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ondetemapp/ondetem/internal/models"
)

// ErrNotFound is returned by every lookup that matches no row.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert violates a unique constraint.
var ErrDuplicate = errors.New("duplicate record")

// Users is the persistence surface the auth layer resolves identities against.
type Users interface {
	ByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
	ByFirebaseUID(ctx context.Context, uid string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Save(ctx context.Context, user *models.User) error
	// WithPushTokens lists users holding a non-null push token, for fan-out.
	WithPushTokens(ctx context.Context) ([]models.User, error)
}

type Supermarkets interface {
	List(ctx context.Context) ([]models.Supermarket, error)
	ByID(ctx context.Context, id uuid.UUID) (*models.Supermarket, error)
	Create(ctx context.Context, s *models.Supermarket) error
	Save(ctx context.Context, s *models.Supermarket) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// NotificationLogs records push fan-out outcomes, best-effort.
type NotificationLogs interface {
	Create(ctx context.Context, log *models.NotificationLog) error
}

type Products interface {
	List(ctx context.Context) ([]models.Product, error)
	ByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Save(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	// CountBySupermarket backs the referential guard on supermarket deletion.
	CountBySupermarket(ctx context.Context, supermarketID string) (int64, error)
}
