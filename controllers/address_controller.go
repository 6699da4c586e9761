package controllers

import (
	"net/http"

	"storefront/middleware"
	"storefront/models"
	"storefront/services"

	"github.com/gin-gonic/gin"
)

type AddressController struct {
	addressService services.AddressService
}

func NewAddressController(addressService services.AddressService) *AddressController {
	return &AddressController{addressService: addressService}
}

// CreateAddress adds an address to the user's address book
func (ac *AddressController) CreateAddress(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.AddressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	address, serviceErr := ac.addressService.CreateAddress(ctx.Request.Context(), userID, &req)
	if serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	ctx.JSON(http.StatusCreated, address)
}

// GetAddresses lists the user's addresses, default first
func (ac *AddressController) GetAddresses(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	addresses, serviceErr := ac.addressService.ListAddresses(ctx.Request.Context(), userID)
	if serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"addresses": addresses})
}

// UpdateAddress replaces the fields of an address
func (ac *AddressController) UpdateAddress(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	addressID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req models.AddressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	address, serviceErr := ac.addressService.UpdateAddress(ctx.Request.Context(), userID, addressID, &req)
	if serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, address)
}

// DeleteAddress removes an address from the user's address book
func (ac *AddressController) DeleteAddress(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	addressID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if serviceErr := ac.addressService.DeleteAddress(ctx.Request.Context(), userID, addressID); serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
}
