package repository

import (
	"context"

	"github.com/ondetemapp/ondetem/internal/client/kv"
)

// LocalProducts keeps the product mirror in the device store. Used whenever
// no session exists or the remote path fails.
type LocalProducts struct {
	store *kv.Store
}

func NewLocalProducts(store *kv.Store) *LocalProducts {
	return &LocalProducts{store: store}
}

func (r *LocalProducts) List(_ context.Context) ([]Product, error) {
	var products []Product
	if _, err := r.store.Get(kv.KeyProducts, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []Product{}
	}
	return products, nil
}

func (r *LocalProducts) Get(ctx context.Context, id string) (*Product, error) {
	products, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, nil
}

func (r *LocalProducts) Create(ctx context.Context, p Product) (*Product, error) {
	products, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	p.ID = synthesizeID("product")
	products = append(products, p)
	if err := r.store.Set(kv.KeyProducts, products); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *LocalProducts) Update(ctx context.Context, id string, p Product) (*Product, error) {
	products, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			p.ID = id
			products[i] = p
			if err := r.store.Set(kv.KeyProducts, products); err != nil {
				return nil, err
			}
			return &products[i], nil
		}
	}
	return nil, nil
}

func (r *LocalProducts) Delete(ctx context.Context, id string) (bool, error) {
	products, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	kept := products[:0]
	removed := false
	for _, p := range products {
		if p.ID == id {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	if err := r.store.Set(kv.KeyProducts, kept); err != nil {
		return false, err
	}
	return removed, nil
}

// LocalSupermarkets keeps the supermarket mirror in the device store.
type LocalSupermarkets struct {
	store *kv.Store
}

func NewLocalSupermarkets(store *kv.Store) *LocalSupermarkets {
	return &LocalSupermarkets{store: store}
}

func (r *LocalSupermarkets) List(_ context.Context) ([]Supermarket, error) {
	var markets []Supermarket
	if _, err := r.store.Get(kv.KeySupermarkets, &markets); err != nil {
		return nil, err
	}
	if markets == nil {
		markets = []Supermarket{}
	}
	return markets, nil
}

func (r *LocalSupermarkets) Get(ctx context.Context, id string) (*Supermarket, error) {
	markets, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range markets {
		if markets[i].ID == id {
			return &markets[i], nil
		}
	}
	return nil, nil
}

func (r *LocalSupermarkets) Create(ctx context.Context, s Supermarket) (*Supermarket, error) {
	markets, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	s.ID = synthesizeID("supermarket")
	markets = append(markets, s)
	if err := r.store.Set(kv.KeySupermarkets, markets); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *LocalSupermarkets) Update(ctx context.Context, id string, s Supermarket) (*Supermarket, error) {
	markets, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range markets {
		if markets[i].ID == id {
			s.ID = id
			markets[i] = s
			if err := r.store.Set(kv.KeySupermarkets, markets); err != nil {
				return nil, err
			}
			return &markets[i], nil
		}
	}
	return nil, nil
}

func (r *LocalSupermarkets) Delete(ctx context.Context, id string) (bool, error) {
	markets, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	kept := markets[:0]
	removed := false
	for _, m := range markets {
		if m.ID == id {
			removed = true
			continue
		}
		kept = append(kept, m)
	}
	if err := r.store.Set(kv.KeySupermarkets, kept); err != nil {
		return false, err
	}
	return removed, nil
}
