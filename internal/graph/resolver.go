package graph

import (
	"context"
	"time"

	"github.com/ondetemapp/ondetem/internal/auth"
	"github.com/ondetemapp/ondetem/internal/models"
	"github.com/ondetemapp/ondetem/internal/services"
	"github.com/ondetemapp/ondetem/internal/store"
)

// Resolver wires the GraphQL schema to the service layer. Every protected
// field goes through authenticate before touching domain data.
type Resolver struct {
	verifier     *auth.Verifier
	users        store.Users
	authService  *services.AuthService
	products     *services.ProductService
	supermarkets *services.SupermarketService
}

func NewResolver(
	verifier *auth.Verifier,
	users store.Users,
	authService *services.AuthService,
	products *services.ProductService,
	supermarkets *services.SupermarketService,
) *Resolver {
	return &Resolver{
		verifier:     verifier,
		users:        users,
		authService:  authService,
		products:     products,
		supermarkets: supermarkets,
	}
}

// authenticate runs the full gate: verify the bearer token, then resolve or
// provision the user. Any failure aborts the operation before side effects.
func (r *Resolver) authenticate(ctx context.Context) (*models.User, error) {
	identity, err := r.verifier.Verify(ctx, tokenFrom(ctx))
	if err != nil {
		return nil, err
	}
	return auth.ResolveUser(ctx, r.users, identity)
}

// identity verifies the token without resolving a user; createOrUpdateUser
// does its own lookup against the verified Firebase UID.
func (r *Resolver) identity(ctx context.Context) (*auth.Identity, error) {
	token := tokenFrom(ctx)
	if token == "" {
		return nil, auth.ErrNotAuthenticated
	}
	return r.verifier.Verify(ctx, token)
}

func userMap(u *models.User) map[string]interface{} {
	m := map[string]interface{}{
		"id":        u.ID.String(),
		"name":      u.Name,
		"email":     u.Email,
		"createdAt": formatTime(u.CreatedAt),
	}
	if u.PushToken != nil {
		m["pushToken"] = *u.PushToken
	}
	return m
}

func productMap(p *models.Product) map[string]interface{} {
	m := map[string]interface{}{
		"id":                 p.ID.String(),
		"name":               p.Name,
		"originalPrice":      p.OriginalPrice,
		"discountPrice":      p.DiscountPrice,
		"discountPercentage": p.DiscountPercentage,
		"supermarketId":      p.SupermarketID,
		"createdAt":          formatTime(p.CreatedAt),
		"updatedAt":          formatTime(p.UpdatedAt),
	}
	if p.Image != "" {
		m["image"] = p.Image
	}
	return m
}

func supermarketMap(s *models.Supermarket) map[string]interface{} {
	m := map[string]interface{}{
		"id":        s.ID.String(),
		"name":      s.Name,
		"latitude":  s.Latitude,
		"longitude": s.Longitude,
		"color":     s.Color,
		"createdAt": formatTime(s.CreatedAt),
		"updatedAt": formatTime(s.UpdatedAt),
	}
	if s.Address != "" {
		m["address"] = s.Address
	}
	if s.Description != "" {
		m["description"] = s.Description
	}
	return m
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func stringArg(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

func floatArg(m map[string]interface{}, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func intArg(m map[string]interface{}, key string) int {
	switch v := m[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

func productInputFrom(m map[string]interface{}) services.ProductInput {
	return services.ProductInput{
		Name:               stringArg(m, "name"),
		OriginalPrice:      floatArg(m, "originalPrice"),
		DiscountPrice:      floatArg(m, "discountPrice"),
		DiscountPercentage: intArg(m, "discountPercentage"),
		SupermarketID:      stringArg(m, "supermarketId"),
		Image:              stringArg(m, "image"),
	}
}

func supermarketInputFrom(m map[string]interface{}) services.SupermarketInput {
	return services.SupermarketInput{
		Name:        stringArg(m, "name"),
		Address:     stringArg(m, "address"),
		Description: stringArg(m, "description"),
		Latitude:    floatArg(m, "latitude"),
		Longitude:   floatArg(m, "longitude"),
		Color:       stringArg(m, "color"),
	}
}
