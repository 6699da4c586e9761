package controllers

import (
	"net/http"

	"storefront/middleware"
	"storefront/models"
	"storefront/services"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	cartService services.CartService
}

func NewCartController(cartService services.CartService) *CartController {
	return &CartController{cartService: cartService}
}

// GetCart returns the user's cart with its running subtotal
func (cc *CartController) GetCart(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	cart, serviceErr := cc.cartService.GetCart(ctx.Request.Context(), userID)
	if serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, cart)
}

// AddItem adds a product to the cart, merging quantities on repeat adds
func (cc *CartController) AddItem(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.AddCartItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	cart, serviceErr := cc.cartService.AddItem(ctx.Request.Context(), userID, &req)
	if serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, cart)
}

// UpdateItem sets the quantity of a cart line
func (cc *CartController) UpdateItem(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	productID, ok := parseIDParam(ctx, "productId")
	if !ok {
		return
	}

	var req models.UpdateCartItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	cart, serviceErr := cc.cartService.UpdateItem(ctx.Request.Context(), userID, productID, &req)
	if serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, cart)
}

// RemoveItem deletes a cart line
func (cc *CartController) RemoveItem(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	productID, ok := parseIDParam(ctx, "productId")
	if !ok {
		return
	}

	cart, serviceErr := cc.cartService.RemoveItem(ctx.Request.Context(), userID, productID)
	if serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, cart)
}

// ClearCart removes every line from the user's cart
func (cc *CartController) ClearCart(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if serviceErr := cc.cartService.ClearCart(ctx.Request.Context(), userID); serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
