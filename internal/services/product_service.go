package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ondetemapp/ondetem/internal/models"
	"github.com/ondetemapp/ondetem/internal/store"
)

var (
	ErrProductNotFound     = errors.New("Produto não encontrado")
	ErrProductNameRequired = errors.New("product name is required")
	ErrNegativePrice       = errors.New("prices must be zero or positive")
	ErrDiscountTooHigh     = errors.New("discount price must not exceed the original price")
	ErrInvalidPercentage   = errors.New("discount percentage must be between 0 and 100")
	ErrSupermarketRequired = errors.New("supermarketId is required")
)

// ProductNotifier receives fire-and-forget notice of new products. Enqueueing
// must never block or fail the calling mutation.
type ProductNotifier interface {
	ProductCreated(product models.Product)
}

// ProductInput carries the client-sent fields of a product mutation.
type ProductInput struct {
	Name               string
	OriginalPrice      float64
	DiscountPrice      float64
	DiscountPercentage int
	SupermarketID      string
	Image              string
}

type ProductService struct {
	products store.Products
	notifier ProductNotifier
}

func NewProductService(products store.Products, notifier ProductNotifier) *ProductService {
	return &ProductService{products: products, notifier: notifier}
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	return s.products.List(ctx)
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	product, err := s.products.ByID(ctx, pid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Create(ctx context.Context, input ProductInput) (*models.Product, error) {
	if err := validateProduct(input); err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:                 uuid.New(),
		Name:               input.Name,
		OriginalPrice:      input.OriginalPrice,
		DiscountPrice:      input.DiscountPrice,
		DiscountPercentage: input.DiscountPercentage,
		SupermarketID:      input.SupermarketID,
		Image:              input.Image,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.ProductCreated(*product)
	}
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id string, input ProductInput) (*models.Product, error) {
	if err := validateProduct(input); err != nil {
		return nil, err
	}

	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.OriginalPrice = input.OriginalPrice
	product.DiscountPrice = input.DiscountPrice
	product.DiscountPercentage = input.DiscountPercentage
	product.SupermarketID = input.SupermarketID
	product.Image = input.Image
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete reports whether a product was actually removed; deleting an unknown
// id is not an error, mirroring the API's Boolean result.
func (s *ProductService) Delete(ctx context.Context, id string) (bool, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return false, nil
	}
	if err := s.products.Delete(ctx, pid); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func validateProduct(input ProductInput) error {
	if input.Name == "" {
		return ErrProductNameRequired
	}
	if input.OriginalPrice < 0 || input.DiscountPrice < 0 {
		return ErrNegativePrice
	}
	if input.DiscountPrice > input.OriginalPrice {
		return ErrDiscountTooHigh
	}
	if input.DiscountPercentage < 0 || input.DiscountPercentage > 100 {
		return ErrInvalidPercentage
	}
	if input.SupermarketID == "" {
		return ErrSupermarketRequired
	}
	return nil
}
