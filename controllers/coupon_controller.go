package controllers

import (
	"net/http"

	"storefront/models"
	"storefront/services"

	"github.com/gin-gonic/gin"
)

type CouponController struct {
	couponService services.CouponService
}

func NewCouponController(couponService services.CouponService) *CouponController {
	return &CouponController{couponService: couponService}
}

// CreateCoupon registers a discount code (admin only)
func (cc *CouponController) CreateCoupon(ctx *gin.Context) {
	var req models.CreateCouponRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	coupon, serviceErr := cc.couponService.CreateCoupon(ctx.Request.Context(), &req)
	if serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	ctx.JSON(http.StatusCreated, coupon)
}

// GetCoupons lists all coupons (admin only)
func (cc *CouponController) GetCoupons(ctx *gin.Context) {
	page, limit := parsePaginationParams(ctx)

	coupons, total, serviceErr := cc.couponService.ListCoupons(ctx.Request.Context(), page, limit)
	if serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"coupons": coupons, "total": total})
}

// DeactivateCoupon disables a coupon code (admin only)
func (cc *CouponController) DeactivateCoupon(ctx *gin.Context) {
	code := ctx.Param("code")
	if code == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Coupon code is required"})
		return
	}

	if serviceErr := cc.couponService.DeactivateCoupon(ctx.Request.Context(), code); serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Coupon deactivated"})
}
