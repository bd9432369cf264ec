package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ondetemapp/ondetem/internal/models"
	"gorm.io/gorm"
)

// GormUsers implements Users on top of PostgreSQL.
type GormUsers struct {
	db *gorm.DB
}

func NewGormUsers(db *gorm.DB) *GormUsers {
	return &GormUsers{db: db}
}

func (s *GormUsers) ByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &user, nil
}

func (s *GormUsers) ByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &user, nil
}

func (s *GormUsers) ByFirebaseUID(ctx context.Context, uid string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("firebase_uid = ?", uid).First(&user).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &user, nil
}

func (s *GormUsers) Create(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *GormUsers) Save(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (s *GormUsers) WithPushTokens(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Where("push_token IS NOT NULL").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list push recipients: %w", err)
	}
	return users, nil
}

// GormSupermarkets implements Supermarkets on top of PostgreSQL.
type GormSupermarkets struct {
	db *gorm.DB
}

func NewGormSupermarkets(db *gorm.DB) *GormSupermarkets {
	return &GormSupermarkets{db: db}
}

func (s *GormSupermarkets) List(ctx context.Context) ([]models.Supermarket, error) {
	var markets []models.Supermarket
	if err := s.db.WithContext(ctx).Find(&markets).Error; err != nil {
		return nil, fmt.Errorf("failed to list supermarkets: %w", err)
	}
	return markets, nil
}

func (s *GormSupermarkets) ByID(ctx context.Context, id uuid.UUID) (*models.Supermarket, error) {
	var market models.Supermarket
	if err := s.db.WithContext(ctx).First(&market, "id = ?", id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &market, nil
}

func (s *GormSupermarkets) Create(ctx context.Context, m *models.Supermarket) error {
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("failed to create supermarket: %w", err)
	}
	return nil
}

func (s *GormSupermarkets) Save(ctx context.Context, m *models.Supermarket) error {
	if err := s.db.WithContext(ctx).Save(m).Error; err != nil {
		return fmt.Errorf("failed to save supermarket: %w", err)
	}
	return nil
}

func (s *GormSupermarkets) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.Supermarket{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete supermarket: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GormProducts implements Products on top of PostgreSQL.
type GormProducts struct {
	db *gorm.DB
}

func NewGormProducts(db *gorm.DB) *GormProducts {
	return &GormProducts{db: db}
}

func (s *GormProducts) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *GormProducts) ByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &product, nil
}

func (s *GormProducts) Create(ctx context.Context, p *models.Product) error {
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (s *GormProducts) Save(ctx context.Context, p *models.Product) error {
	if err := s.db.WithContext(ctx).Save(p).Error; err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}
	return nil
}

func (s *GormProducts) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormProducts) CountBySupermarket(ctx context.Context, supermarketID string) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).
		Where("supermarket_id = ?", supermarketID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count supermarket products: %w", err)
	}
	return count, nil
}

// GormNotificationLogs implements NotificationLogs on top of PostgreSQL.
type GormNotificationLogs struct {
	db *gorm.DB
}

func NewGormNotificationLogs(db *gorm.DB) *GormNotificationLogs {
	return &GormNotificationLogs{db: db}
}

func (s *GormNotificationLogs) Create(ctx context.Context, log *models.NotificationLog) error {
	if err := s.db.WithContext(ctx).Create(log).Error; err != nil {
		return fmt.Errorf("failed to record notification: %w", err)
	}
	return nil
}

func wrapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
