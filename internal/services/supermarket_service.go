package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ondetemapp/ondetem/internal/models"
	"github.com/ondetemapp/ondetem/internal/store"
)

var (
	ErrSupermarketNotFound    = errors.New("Supermercado não encontrado")
	ErrSupermarketHasProducts = errors.New("Não é possível excluir supermercado com produtos cadastrados")
	ErrMarketNameRequired     = errors.New("supermarket name is required")
	ErrInvalidLatitude        = errors.New("latitude must be between -90 and 90")
	ErrInvalidLongitude       = errors.New("longitude must be between -180 and 180")
)

// SupermarketInput carries the client-sent fields of a supermarket mutation.
type SupermarketInput struct {
	Name        string
	Address     string
	Description string
	Latitude    float64
	Longitude   float64
	Color       string
}

type SupermarketService struct {
	supermarkets store.Supermarkets
	products     store.Products
}

func NewSupermarketService(supermarkets store.Supermarkets, products store.Products) *SupermarketService {
	return &SupermarketService{supermarkets: supermarkets, products: products}
}

func (s *SupermarketService) List(ctx context.Context) ([]models.Supermarket, error) {
	return s.supermarkets.List(ctx)
}

func (s *SupermarketService) Get(ctx context.Context, id string) (*models.Supermarket, error) {
	mid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrSupermarketNotFound
	}
	market, err := s.supermarkets.ByID(ctx, mid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSupermarketNotFound
		}
		return nil, err
	}
	return market, nil
}

func (s *SupermarketService) Create(ctx context.Context, input SupermarketInput) (*models.Supermarket, error) {
	if err := validateSupermarket(input); err != nil {
		return nil, err
	}

	color := input.Color
	if color == "" {
		color = "#FF0000"
	}
	market := &models.Supermarket{
		ID:          uuid.New(),
		Name:        input.Name,
		Address:     input.Address,
		Description: input.Description,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Color:       color,
	}
	if err := s.supermarkets.Create(ctx, market); err != nil {
		return nil, err
	}
	return market, nil
}

func (s *SupermarketService) Update(ctx context.Context, id string, input SupermarketInput) (*models.Supermarket, error) {
	if err := validateSupermarket(input); err != nil {
		return nil, err
	}

	market, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	market.Name = input.Name
	market.Address = input.Address
	market.Description = input.Description
	market.Latitude = input.Latitude
	market.Longitude = input.Longitude
	if input.Color != "" {
		market.Color = input.Color
	}
	if err := s.supermarkets.Save(ctx, market); err != nil {
		return nil, err
	}
	return market, nil
}

// Delete refuses to remove a supermarket while products still reference it.
// The reference is a loose string, so the guard lives here rather than in a
// foreign key.
func (s *SupermarketService) Delete(ctx context.Context, id string) (bool, error) {
	mid, err := uuid.Parse(id)
	if err != nil {
		return false, nil
	}

	count, err := s.products.CountBySupermarket(ctx, id)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, ErrSupermarketHasProducts
	}

	if err := s.supermarkets.Delete(ctx, mid); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func validateSupermarket(input SupermarketInput) error {
	if input.Name == "" {
		return ErrMarketNameRequired
	}
	if input.Latitude < -90 || input.Latitude > 90 {
		return ErrInvalidLatitude
	}
	if input.Longitude < -180 || input.Longitude > 180 {
		return ErrInvalidLongitude
	}
	return nil
}
