package controllers

import (
	"net/http"

	"storefront/middleware"
	"storefront/models"
	"storefront/services"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	reviewService services.ReviewService
}

func NewReviewController(reviewService services.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

// SubmitReview creates or replaces the user's review of a product
func (rc *ReviewController) SubmitReview(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	productID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req models.ReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	review, serviceErr := rc.reviewService.SubmitReview(ctx.Request.Context(), userID, productID, &req)
	if serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	ctx.JSON(http.StatusCreated, review)
}

// GetReviews lists a product's reviews with the rating summary
func (rc *ReviewController) GetReviews(ctx *gin.Context) {
	productID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	page, limit := parsePaginationParams(ctx)

	result, serviceErr := rc.reviewService.ListReviews(ctx.Request.Context(), productID, page, limit)
	if serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// DeleteReview removes the user's review of a product
func (rc *ReviewController) DeleteReview(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	productID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if serviceErr := rc.reviewService.DeleteReview(ctx.Request.Context(), userID, productID); serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}
