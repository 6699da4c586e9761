package repository

import (
	"context"
	"strings"

	"storefront/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WishlistRepository interface {
	Add(ctx context.Context, item *models.WishlistItem) error
	FindByUser(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error)
	Remove(ctx context.Context, userID, productID uuid.UUID) (int64, error)
}

type GormWishlistRepository struct {
	db *gorm.DB
}

func NewGormWishlistRepository(db *gorm.DB) WishlistRepository {
	return &GormWishlistRepository{db: db}
}

func (r *GormWishlistRepository) Add(ctx context.Context, item *models.WishlistItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *GormWishlistRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *GormWishlistRepository) Remove(ctx context.Context, userID, productID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{})
	return res.RowsAffected, res.Error
}
