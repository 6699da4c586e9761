package controllers

import (
	"net/http"

	"storefront/middleware"
	"storefront/services"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	orderService services.OrderService
}

func NewOrderController(orderService services.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// Checkout places an order from the user's current cart
func (oc *OrderController) Checkout(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req services.CheckoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	result, serviceErr := oc.orderService.Checkout(ctx.Request.Context(), userID, &req)
	if serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	ctx.JSON(http.StatusCreated, result)
}

// GetOrders returns paginated orders for the authenticated user
func (oc *OrderController) GetOrders(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	page, limit := parsePaginationParams(ctx)

	result, serviceErr := oc.orderService.GetUserOrders(ctx.Request.Context(), userID, page, limit)
	if serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// GetAllOrders returns paginated orders across all users (admin only)
func (oc *OrderController) GetAllOrders(ctx *gin.Context) {
	page, limit := parsePaginationParams(ctx)

	result, serviceErr := oc.orderService.GetAllOrders(ctx.Request.Context(), page, limit)
	if serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// GetOrder returns a single order with its item snapshots
func (oc *OrderController) GetOrder(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orderID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	order, serviceErr := oc.orderService.GetOrderByID(ctx.Request.Context(), userID, orderID)
	if serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, order)
}

// UpdateStatus transitions an order's fulfillment status (admin only)
func (oc *OrderController) UpdateStatus(ctx *gin.Context) {
	orderID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if serviceErr := oc.orderService.UpdateStatus(ctx.Request.Context(), orderID, req.Status); serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Order status updated"})
}
