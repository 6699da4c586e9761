package services_test

import (
	"context"
	"testing"
	"time"

	"storefront/models"
	"storefront/repository"
	"storefront/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockCouponRepo struct {
	coupons map[string]*models.Coupon
}

func newMockCouponRepo() *mockCouponRepo {
	return &mockCouponRepo{coupons: make(map[string]*models.Coupon)}
}

func (m *mockCouponRepo) Create(_ context.Context, c *models.Coupon) error {
	if _, exists := m.coupons[c.Code]; exists {
		return repository.ErrDuplicate
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	m.coupons[c.Code] = c
	return nil
}

func (m *mockCouponRepo) FindByCode(_ context.Context, code string) (*models.Coupon, error) {
	c, ok := m.coupons[code]
	if !ok || !c.Active {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

func (m *mockCouponRepo) IncrementUsedCount(_ context.Context, code string) error {
	if c, ok := m.coupons[code]; ok {
		c.UsedCount++
	}
	return nil
}

func (m *mockCouponRepo) Deactivate(_ context.Context, code string) error {
	c, ok := m.coupons[code]
	if !ok {
		return repository.ErrNotFound
	}
	c.Active = false
	return nil
}

func (m *mockCouponRepo) FindAll(_ context.Context, _, _ int) ([]models.Coupon, int64, error) {
	var out []models.Coupon
	for _, c := range m.coupons {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func newCouponService(repo repository.CouponRepository) services.CouponService {
	logger, _ := zap.NewDevelopment()
	return services.NewCouponService(repo, logger)
}

func seedCoupon(repo *mockCouponRepo, code string, ctype models.CouponType, value, minOrder float64, usageLimit, usedCount int) {
	repo.coupons[code] = &models.Coupon{
		ID:            uuid.New(),
		Code:          code,
		Type:          ctype,
		Value:         value,
		MinOrderValue: minOrder,
		UsageLimit:    usageLimit,
		UsedCount:     usedCount,
		ExpiresAt:     time.Now().Add(24 * time.Hour),
		Active:        true,
	}
}

func TestCreateCouponUppercasesCode(t *testing.T) {
	repo := newMockCouponRepo()
	svc := newCouponService(repo)

	coupon, serviceErr := svc.CreateCoupon(context.Background(), &models.CreateCouponRequest{
		Code:      "save10",
		Type:      models.CouponTypePercentage,
		Value:     10,
		ExpiresAt: time.Now().Add(time.Hour),
	})
	require.Nil(t, serviceErr)
	assert.Equal(t, "SAVE10", coupon.Code)
	assert.True(t, coupon.Active)
}

func TestCreateCouponRejectsPastExpiry(t *testing.T) {
	svc := newCouponService(newMockCouponRepo())

	_, serviceErr := svc.CreateCoupon(context.Background(), &models.CreateCouponRequest{
		Code:      "OLD",
		Type:      models.CouponTypeFlat,
		Value:     5,
		ExpiresAt: time.Now().Add(-time.Hour),
	})
	require.NotNil(t, serviceErr)
	assert.Equal(t, 400, serviceErr.StatusCode)
}

func TestCreateCouponRejectsOver100Percent(t *testing.T) {
	svc := newCouponService(newMockCouponRepo())

	_, serviceErr := svc.CreateCoupon(context.Background(), &models.CreateCouponRequest{
		Code:      "TOOMUCH",
		Type:      models.CouponTypePercentage,
		Value:     150,
		ExpiresAt: time.Now().Add(time.Hour),
	})
	require.NotNil(t, serviceErr)
	assert.Equal(t, 400, serviceErr.StatusCode)
}

func TestCreateCouponDuplicateCodeReturns409(t *testing.T) {
	repo := newMockCouponRepo()
	seedCoupon(repo, "DUPE", models.CouponTypeFlat, 5, 0, 0, 0)
	svc := newCouponService(repo)

	_, serviceErr := svc.CreateCoupon(context.Background(), &models.CreateCouponRequest{
		Code:      "dupe",
		Type:      models.CouponTypeFlat,
		Value:     5,
		ExpiresAt: time.Now().Add(time.Hour),
	})
	require.NotNil(t, serviceErr)
	assert.Equal(t, 409, serviceErr.StatusCode)
}

func TestRedeemablePercentageDiscount(t *testing.T) {
	repo := newMockCouponRepo()
	seedCoupon(repo, "SAVE10", models.CouponTypePercentage, 10, 0, 0, 0)
	svc := newCouponService(repo)

	discount, err := svc.Redeemable(context.Background(), "save10", 50.00)
	require.NoError(t, err)
	assert.Equal(t, 5.00, discount)
}

func TestRedeemableFlatDiscountCappedAtSubtotal(t *testing.T) {
	repo := newMockCouponRepo()
	seedCoupon(repo, "BIG", models.CouponTypeFlat, 20, 0, 0, 0)
	svc := newCouponService(repo)

	discount, err := svc.Redeemable(context.Background(), "BIG", 12.00)
	require.NoError(t, err)
	assert.Equal(t, 12.00, discount)
}

func TestRedeemableEnforcesMinOrderValue(t *testing.T) {
	repo := newMockCouponRepo()
	seedCoupon(repo, "MIN50", models.CouponTypeFlat, 5, 50.00, 0, 0)
	svc := newCouponService(repo)

	_, err := svc.Redeemable(context.Background(), "MIN50", 30.00)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "minimum")
}

func TestRedeemableEnforcesUsageLimit(t *testing.T) {
	repo := newMockCouponRepo()
	seedCoupon(repo, "LIMITED", models.CouponTypeFlat, 5, 0, 3, 3)
	svc := newCouponService(repo)

	_, err := svc.Redeemable(context.Background(), "LIMITED", 30.00)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "limit")
}

func TestRedeemableRejectsExpired(t *testing.T) {
	repo := newMockCouponRepo()
	seedCoupon(repo, "EXPIRED", models.CouponTypeFlat, 5, 0, 0, 0)
	repo.coupons["EXPIRED"].ExpiresAt = time.Now().Add(-time.Minute)
	svc := newCouponService(repo)

	_, err := svc.Redeemable(context.Background(), "EXPIRED", 30.00)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestRedeemableRejectsInactive(t *testing.T) {
	repo := newMockCouponRepo()
	seedCoupon(repo, "OFF", models.CouponTypeFlat, 5, 0, 0, 0)
	repo.coupons["OFF"].Active = false
	svc := newCouponService(repo)

	_, err := svc.Redeemable(context.Background(), "OFF", 30.00)
	require.Error(t, err)
}

func TestMarkRedeemedIncrementsUsage(t *testing.T) {
	repo := newMockCouponRepo()
	seedCoupon(repo, "COUNTME", models.CouponTypeFlat, 5, 0, 0, 0)
	svc := newCouponService(repo)

	svc.MarkRedeemed(context.Background(), "countme")
	assert.Equal(t, 1, repo.coupons["COUNTME"].UsedCount)
}

func TestDeactivateCoupon(t *testing.T) {
	repo := newMockCouponRepo()
	seedCoupon(repo, "KILL", models.CouponTypeFlat, 5, 0, 0, 0)
	svc := newCouponService(repo)

	require.Nil(t, svc.DeactivateCoupon(context.Background(), "kill"))
	assert.False(t, repo.coupons["KILL"].Active)

	serviceErr := svc.DeactivateCoupon(context.Background(), "missing")
	require.NotNil(t, serviceErr)
	assert.Equal(t, 404, serviceErr.StatusCode)
}
