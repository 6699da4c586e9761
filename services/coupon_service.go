package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"storefront/models"
	"storefront/repository"

	"go.uber.org/zap"
)

// CouponService defines the interface for coupon business logic.
type CouponService interface {
	CreateCoupon(ctx context.Context, req *models.CreateCouponRequest) (*models.Coupon, *ServiceError)
	ListCoupons(ctx context.Context, page, limit int) ([]models.Coupon, int64, *ServiceError)
	DeactivateCoupon(ctx context.Context, code string) *ServiceError

	// Redeemable validates the coupon against the cart subtotal and returns
	// the discount amount. MarkRedeemed bumps the usage counter after the
	// order commits; it is best-effort.
	Redeemable(ctx context.Context, code string, subtotal float64) (float64, error)
	MarkRedeemed(ctx context.Context, code string)
}

type couponServiceImpl struct {
	repo   repository.CouponRepository
	logger *zap.Logger
}

func NewCouponService(repo repository.CouponRepository, logger *zap.Logger) CouponService {
	return &couponServiceImpl{repo: repo, logger: logger}
}

func (s *couponServiceImpl) CreateCoupon(ctx context.Context, req *models.CreateCouponRequest) (*models.Coupon, *ServiceError) {
	if req.ExpiresAt.Before(time.Now()) {
		return nil, &ServiceError{StatusCode: 400, Message: "Expiry date must be in the future"}
	}
	if req.Type == models.CouponTypePercentage && req.Value > 100 {
		return nil, &ServiceError{StatusCode: 400, Message: "Percentage discount cannot exceed 100"}
	}

	coupon := &models.Coupon{
		Code:          strings.ToUpper(req.Code),
		Type:          req.Type,
		Value:         req.Value,
		MinOrderValue: req.MinOrderValue,
		UsageLimit:    req.UsageLimit,
		ExpiresAt:     req.ExpiresAt,
		Active:        true,
	}

	if err := s.repo.Create(ctx, coupon); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, &ServiceError{StatusCode: 409, Message: "Coupon code already exists"}
		}
		s.logger.Error("Failed to create coupon", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create coupon"}
	}

	s.logger.Info("Coupon created", zap.String("code", coupon.Code))
	return coupon, nil
}

func (s *couponServiceImpl) ListCoupons(ctx context.Context, page, limit int) ([]models.Coupon, int64, *ServiceError) {
	coupons, total, err := s.repo.FindAll(ctx, page, limit)
	if err != nil {
		s.logger.Error("Failed to list coupons", zap.Error(err))
		return nil, 0, &ServiceError{StatusCode: 500, Message: "Failed to list coupons"}
	}
	return coupons, total, nil
}

func (s *couponServiceImpl) DeactivateCoupon(ctx context.Context, code string) *ServiceError {
	if err := s.repo.Deactivate(ctx, strings.ToUpper(code)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &ServiceError{StatusCode: 404, Message: "Coupon not found"}
		}
		s.logger.Error("Failed to deactivate coupon", zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to deactivate coupon"}
	}
	return nil
}

func (s *couponServiceImpl) Redeemable(ctx context.Context, code string, subtotal float64) (float64, error) {
	coupon, err := s.repo.FindByCode(ctx, strings.ToUpper(code))
	if err != nil {
		return 0, errors.New("coupon not found or inactive")
	}
	if time.Now().After(coupon.ExpiresAt) {
		return 0, errors.New("coupon has expired")
	}
	if coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit {
		return 0, errors.New("coupon usage limit reached")
	}
	if subtotal < coupon.MinOrderValue {
		return 0, errors.New("cart total below coupon minimum")
	}

	var discount float64
	switch coupon.Type {
	case models.CouponTypePercentage:
		discount = subtotal * coupon.Value / 100
	case models.CouponTypeFlat:
		discount = coupon.Value
	}
	if discount > subtotal {
		discount = subtotal
	}
	return round2(discount), nil
}

func (s *couponServiceImpl) MarkRedeemed(ctx context.Context, code string) {
	if err := s.repo.IncrementUsedCount(ctx, strings.ToUpper(code)); err != nil {
		s.logger.Warn("Failed to increment coupon usage", zap.String("code", code), zap.Error(err))
	}
}
