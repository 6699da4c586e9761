package repository

import (
	"context"
	"errors"

	"storefront/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RatingSummary is the derived aggregate over a product's reviews.
type RatingSummary struct {
	Average float64
	Count   int64
}

type ReviewRepository interface {
	Upsert(ctx context.Context, review *models.Review) error
	FindByProduct(ctx context.Context, productID uuid.UUID, page, limit int) ([]models.Review, int64, error)
	FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*models.Review, error)
	Delete(ctx context.Context, userID, productID uuid.UUID) (int64, error)
	RatingForProduct(ctx context.Context, productID uuid.UUID) (*RatingSummary, error)
}

type GormReviewRepository struct {
	db *gorm.DB
}

func NewGormReviewRepository(db *gorm.DB) ReviewRepository {
	return &GormReviewRepository{db: db}
}

// Upsert creates the review or replaces an existing one for the same
// (user, product) pair.
func (r *GormReviewRepository) Upsert(ctx context.Context, review *models.Review) error {
	var existing models.Review
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", review.UserID, review.ProductID).
		First(&existing).Error
	if err == nil {
		existing.Rating = review.Rating
		existing.Comment = review.Comment
		*review = existing
		return r.db.WithContext(ctx).Save(&existing).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *GormReviewRepository) FindByProduct(ctx context.Context, productID uuid.UUID, page, limit int) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	query := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("product_id = ?", productID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Offset(offset).
		Limit(limit).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

func (r *GormReviewRepository) FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *GormReviewRepository) Delete(ctx context.Context, userID, productID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.Review{})
	return res.RowsAffected, res.Error
}

func (r *GormReviewRepository) RatingForProduct(ctx context.Context, productID uuid.UUID) (*RatingSummary, error) {
	var row struct {
		Average *float64
		Count   int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("AVG(rating) AS average, COUNT(*) AS count").
		Where("product_id = ?", productID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	summary := &RatingSummary{Count: row.Count}
	if row.Average != nil {
		summary.Average = *row.Average
	}
	return summary, nil
}
