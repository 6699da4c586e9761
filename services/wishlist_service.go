package services

import (
	"context"
	"errors"

	"storefront/models"
	"storefront/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WishlistService interface {
	AddToWishlist(ctx context.Context, userID string, productID uuid.UUID) *ServiceError
	GetWishlist(ctx context.Context, userID string) ([]models.WishlistItem, *ServiceError)
	RemoveFromWishlist(ctx context.Context, userID string, productID uuid.UUID) *ServiceError
}

type wishlistServiceImpl struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
	logger       *zap.Logger
}

func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository, logger *zap.Logger) WishlistService {
	return &wishlistServiceImpl{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
		logger:       logger,
	}
}

func (s *wishlistServiceImpl) AddToWishlist(ctx context.Context, userID string, productID uuid.UUID) *ServiceError {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return &ServiceError{StatusCode: 400, Message: "Invalid user ID format"}
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &ServiceError{StatusCode: 404, Message: "Product not found"}
		}
		return &ServiceError{StatusCode: 500, Message: "Failed to fetch product"}
	}

	item := &models.WishlistItem{UserID: userUUID, ProductID: productID}
	if err := s.wishlistRepo.Add(ctx, item); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Already wishlisted; treat as success.
			return nil
		}
		s.logger.Error("Failed to add wishlist item", zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to update wishlist"}
	}
	return nil
}

func (s *wishlistServiceImpl) GetWishlist(ctx context.Context, userID string) ([]models.WishlistItem, *ServiceError) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: "Invalid user ID format"}
	}

	items, err := s.wishlistRepo.FindByUser(ctx, userUUID)
	if err != nil {
		s.logger.Error("Failed to load wishlist", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to load wishlist"}
	}
	return items, nil
}

func (s *wishlistServiceImpl) RemoveFromWishlist(ctx context.Context, userID string, productID uuid.UUID) *ServiceError {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return &ServiceError{StatusCode: 400, Message: "Invalid user ID format"}
	}

	rows, err := s.wishlistRepo.Remove(ctx, userUUID, productID)
	if err != nil {
		s.logger.Error("Failed to remove wishlist item", zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to update wishlist"}
	}
	if rows == 0 {
		return &ServiceError{StatusCode: 404, Message: "Wishlist item not found"}
	}
	return nil
}
