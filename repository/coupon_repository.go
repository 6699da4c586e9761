package repository

import (
	"context"
	"errors"
	"strings"

	"storefront/models"

	"gorm.io/gorm"
)

// CouponRepository defines the interface for coupon data access
type CouponRepository interface {
	Create(ctx context.Context, coupon *models.Coupon) error
	FindByCode(ctx context.Context, code string) (*models.Coupon, error)
	IncrementUsedCount(ctx context.Context, code string) error
	Deactivate(ctx context.Context, code string) error
	FindAll(ctx context.Context, page, limit int) ([]models.Coupon, int64, error)
}

type GormCouponRepository struct {
	db *gorm.DB
}

func NewGormCouponRepository(db *gorm.DB) CouponRepository {
	return &GormCouponRepository{db: db}
}

func (r *GormCouponRepository) Create(ctx context.Context, coupon *models.Coupon) error {
	if err := r.db.WithContext(ctx).Create(coupon).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *GormCouponRepository) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.WithContext(ctx).
		Where("code = ? AND active = ?", code, true).
		First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &coupon, nil
}

func (r *GormCouponRepository) IncrementUsedCount(ctx context.Context, code string) error {
	return r.db.WithContext(ctx).
		Model(&models.Coupon{}).
		Where("code = ?", code).
		UpdateColumn("used_count", gorm.Expr("used_count + 1")).Error
}

func (r *GormCouponRepository) Deactivate(ctx context.Context, code string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Coupon{}).
		Where("code = ?", code).
		UpdateColumn("active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormCouponRepository) FindAll(ctx context.Context, page, limit int) ([]models.Coupon, int64, error) {
	var coupons []models.Coupon
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Coupon{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Offset(offset).
		Limit(limit).
		Order("created_at DESC").
		Find(&coupons).Error; err != nil {
		return nil, 0, err
	}

	return coupons, total, nil
}
