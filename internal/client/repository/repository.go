package repository

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// Product mirrors the API's Product type on the client.
type Product struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	OriginalPrice      float64 `json:"originalPrice"`
	DiscountPrice      float64 `json:"discountPrice"`
	DiscountPercentage int     `json:"discountPercentage"`
	SupermarketID      string  `json:"supermarketId"`
	Image              string  `json:"image,omitempty"`
}

// Supermarket mirrors the API's Supermarket type on the client.
type Supermarket struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Address     string  `json:"address,omitempty"`
	Description string  `json:"description,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Color       string  `json:"color,omitempty"`
}

// Products is the client-side data access surface for products; remote and
// local mirror implementations sit behind it.
type Products interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, p Product) (*Product, error)
	Update(ctx context.Context, id string, p Product) (*Product, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Supermarkets is the client-side data access surface for supermarkets.
type Supermarkets interface {
	List(ctx context.Context) ([]Supermarket, error)
	Get(ctx context.Context, id string) (*Supermarket, error)
	Create(ctx context.Context, s Supermarket) (*Supermarket, error)
	Update(ctx context.Context, id string, s Supermarket) (*Supermarket, error)
	Delete(ctx context.Context, id string) (bool, error)
}

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// synthesizeID builds a locally-unique id for offline writes:
// <type>-<millis>-<9 alphanumerics>. These ids are never reconciled with the
// server.
func synthesizeID(entityType string) string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = idAlphabet[rand.Intn(len(idAlphabet))]
	}
	return fmt.Sprintf("%s-%d-%s", entityType, time.Now().UnixMilli(), suffix)
}
