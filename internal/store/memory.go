package store

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/ondetemapp/ondetem/internal/models"
)

// MemoryUsers is an in-memory Users implementation used by tests and local
// tooling. It enforces the same uniqueness rules as the database schema.
type MemoryUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.User
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{users: make(map[uuid.UUID]models.User)}
}

func (s *MemoryUsers) ByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		copied := u
		return &copied, nil
	}
	return nil, ErrNotFound
}

func (s *MemoryUsers) ByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			copied := u
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryUsers) ByFirebaseUID(_ context.Context, uid string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.FirebaseUID != nil && *u.FirebaseUID == uid {
			copied := u
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryUsers) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, user.Email) && user.Email != "" {
			return ErrDuplicate
		}
		if user.FirebaseUID != nil && existing.FirebaseUID != nil && *existing.FirebaseUID == *user.FirebaseUID {
			return ErrDuplicate
		}
	}
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryUsers) Save(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryUsers) WithPushTokens(_ context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.User
	for _, u := range s.users {
		if u.PushToken != nil {
			out = append(out, u)
		}
	}
	return out, nil
}

// Count reports the number of stored users.
func (s *MemoryUsers) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// MemorySupermarkets is an in-memory Supermarkets implementation.
type MemorySupermarkets struct {
	mu      sync.Mutex
	markets map[uuid.UUID]models.Supermarket
}

func NewMemorySupermarkets() *MemorySupermarkets {
	return &MemorySupermarkets{markets: make(map[uuid.UUID]models.Supermarket)}
}

func (s *MemorySupermarkets) List(_ context.Context) ([]models.Supermarket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Supermarket, 0, len(s.markets))
	for _, m := range s.markets {
		out = append(out, m)
	}
	return out, nil
}

func (s *MemorySupermarkets) ByID(_ context.Context, id uuid.UUID) (*models.Supermarket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.markets[id]; ok {
		copied := m
		return &copied, nil
	}
	return nil, ErrNotFound
}

func (s *MemorySupermarkets) Create(_ context.Context, m *models.Supermarket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markets[m.ID] = *m
	return nil
}

func (s *MemorySupermarkets) Save(_ context.Context, m *models.Supermarket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markets[m.ID] = *m
	return nil
}

func (s *MemorySupermarkets) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.markets[id]; !ok {
		return ErrNotFound
	}
	delete(s.markets, id)
	return nil
}

// MemoryProducts is an in-memory Products implementation.
type MemoryProducts struct {
	mu       sync.Mutex
	products map[uuid.UUID]models.Product
}

func NewMemoryProducts() *MemoryProducts {
	return &MemoryProducts{products: make(map[uuid.UUID]models.Product)}
}

func (s *MemoryProducts) List(_ context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, nil
}

func (s *MemoryProducts) ByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.products[id]; ok {
		copied := p
		return &copied, nil
	}
	return nil, ErrNotFound
}

func (s *MemoryProducts) Create(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = *p
	return nil
}

func (s *MemoryProducts) Save(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = *p
	return nil
}

func (s *MemoryProducts) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *MemoryProducts) CountBySupermarket(_ context.Context, supermarketID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, p := range s.products {
		if p.SupermarketID == supermarketID {
			count++
		}
	}
	return count, nil
}
