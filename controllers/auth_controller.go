package controllers

import (
	"net/http"

	"storefront/middleware"
	"storefront/models"
	"storefront/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService services.AuthService
}

func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register creates a new customer account
func (ac *AuthController) Register(ctx *gin.Context) {
	var req models.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	user, serviceErr := ac.authService.Register(ctx.Request.Context(), &req)
	if serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	ctx.JSON(http.StatusCreated, user)
}

// Login verifies credentials and issues a token
func (ac *AuthController) Login(ctx *gin.Context) {
	var req models.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	resp, serviceErr := ac.authService.Login(ctx.Request.Context(), &req)
	if serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// Profile returns the authenticated user's account
func (ac *AuthController) Profile(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, serviceErr := ac.authService.Profile(ctx.Request.Context(), userID)
	if serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, user)
}
