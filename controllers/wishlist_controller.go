package controllers

import (
	"net/http"

	"storefront/middleware"
	"storefront/services"

	"github.com/gin-gonic/gin"
)

type WishlistController struct {
	wishlistService services.WishlistService
}

func NewWishlistController(wishlistService services.WishlistService) *WishlistController {
	return &WishlistController{wishlistService: wishlistService}
}

// AddToWishlist saves a product to the user's wishlist
func (wc *WishlistController) AddToWishlist(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	productID, ok := parseIDParam(ctx, "productId")
	if !ok {
		return
	}

	if serviceErr := wc.wishlistService.AddToWishlist(ctx.Request.Context(), userID, productID); serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Added to wishlist"})
}

// GetWishlist returns the user's saved products
func (wc *WishlistController) GetWishlist(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	items, serviceErr := wc.wishlistService.GetWishlist(ctx.Request.Context(), userID)
	if serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"items": items})
}

// RemoveFromWishlist drops a product from the user's wishlist
func (wc *WishlistController) RemoveFromWishlist(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	productID, ok := parseIDParam(ctx, "productId")
	if !ok {
		return
	}

	if serviceErr := wc.wishlistService.RemoveFromWishlist(ctx.Request.Context(), userID, productID); serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Removed from wishlist"})
}
