package controllers

import (
	"net/http"

	"storefront/middleware"
	"storefront/services"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	paymentService services.PaymentService
}

func NewPaymentController(paymentService services.PaymentService) *PaymentController {
	return &PaymentController{paymentService: paymentService}
}

// ConfirmPayment charges a pending order through the configured gateway
func (pc *PaymentController) ConfirmPayment(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req services.ConfirmPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	result, serviceErr := pc.paymentService.ConfirmPayment(ctx.Request.Context(), userID, &req)
	if serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// GetPayments lists payment attempts recorded against an order
func (pc *PaymentController) GetPayments(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orderID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	payments, serviceErr := pc.paymentService.GetPaymentsForOrder(ctx.Request.Context(), userID, orderID)
	if serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"payments": payments})
}
