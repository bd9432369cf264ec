package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ondetemapp/ondetem/internal/store"
)

func newSupermarketFixture() (*SupermarketService, *store.MemorySupermarkets, *store.MemoryProducts) {
	supermarkets := store.NewMemorySupermarkets()
	products := store.NewMemoryProducts()
	return NewSupermarketService(supermarkets, products), supermarkets, products
}

func validSupermarketInput() SupermarketInput {
	return SupermarketInput{
		Name:      "Mercado Central",
		Address:   "Rua Principal, 100",
		Latitude:  -23.55,
		Longitude: -46.63,
	}
}

func TestSupermarketCreateDefaultsColor(t *testing.T) {
	svc, _, _ := newSupermarketFixture()

	market, err := svc.Create(context.Background(), validSupermarketInput())
	require.NoError(t, err)
	assert.Equal(t, "#FF0000", market.Color)

	input := validSupermarketInput()
	input.Color = "#00FF00"
	market, err = svc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "#00FF00", market.Color)
}

func TestSupermarketCreateValidation(t *testing.T) {
	svc, _, _ := newSupermarketFixture()

	input := validSupermarketInput()
	input.Name = ""
	_, err := svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, ErrMarketNameRequired)

	input = validSupermarketInput()
	input.Latitude = 91
	_, err = svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, ErrInvalidLatitude)

	input = validSupermarketInput()
	input.Longitude = -181
	_, err = svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, ErrInvalidLongitude)
}

func TestSupermarketUpdateKeepsColorWhenOmitted(t *testing.T) {
	svc, _, _ := newSupermarketFixture()
	input := validSupermarketInput()
	input.Color = "#123456"
	market, err := svc.Create(context.Background(), input)
	require.NoError(t, err)

	update := validSupermarketInput()
	update.Name = "Mercado Renomeado"
	updated, err := svc.Update(context.Background(), market.ID.String(), update)
	require.NoError(t, err)
	assert.Equal(t, "Mercado Renomeado", updated.Name)
	assert.Equal(t, "#123456", updated.Color)
}

func TestSupermarketDeleteBlockedByProducts(t *testing.T) {
	svc, supermarkets, products := newSupermarketFixture()
	market, err := svc.Create(context.Background(), validSupermarketInput())
	require.NoError(t, err)

	productSvc := NewProductService(products, nil)
	input := validProductInput()
	input.SupermarketID = market.ID.String()
	_, err = productSvc.Create(context.Background(), input)
	require.NoError(t, err)

	ok, err := svc.Delete(context.Background(), market.ID.String())
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrSupermarketHasProducts)

	still, err := supermarkets.ByID(context.Background(), market.ID)
	require.NoError(t, err, "a blocked delete must leave the supermarket in place")
	assert.Equal(t, market.ID, still.ID)
}

func TestSupermarketDeleteSucceedsWhenEmpty(t *testing.T) {
	svc, supermarkets, _ := newSupermarketFixture()
	market, err := svc.Create(context.Background(), validSupermarketInput())
	require.NoError(t, err)

	ok, err := svc.Delete(context.Background(), market.ID.String())
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = supermarkets.ByID(context.Background(), market.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSupermarketDeleteUnknownID(t *testing.T) {
	svc, _, _ := newSupermarketFixture()

	ok, err := svc.Delete(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.Delete(context.Background(), "not-a-uuid")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSupermarketGetUnknownID(t *testing.T) {
	svc, _, _ := newSupermarketFixture()

	_, err := svc.Get(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrSupermarketNotFound)
}
