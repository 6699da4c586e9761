package repository

import (
	"context"
	"errors"

	"storefront/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartRepository defines the interface for cart data access
type CartRepository interface {
	FindByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	FindItem(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, error)
	Save(ctx context.Context, item *models.CartItem) error
	Delete(ctx context.Context, userID, productID uuid.UUID) (int64, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type GormCartRepository struct {
	db *gorm.DB
}

func NewGormCartRepository(db *gorm.DB) CartRepository {
	return &GormCartRepository{db: db}
}

func (r *GormCartRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *GormCartRepository) FindItem(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *GormCartRepository) Save(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *GormCartRepository) Delete(ctx context.Context, userID, productID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}

func (r *GormCartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error
}
