package services

import (
	"context"
	"errors"

	"storefront/models"
	"storefront/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CartView struct {
	Items    []models.CartItem `json:"items"`
	Subtotal float64           `json:"subtotal"`
}

// CartService defines the interface for cart business logic.
type CartService interface {
	GetCart(ctx context.Context, userID string) (*CartView, *ServiceError)
	AddItem(ctx context.Context, userID string, req *models.AddCartItemRequest) (*CartView, *ServiceError)
	UpdateItem(ctx context.Context, userID string, productID uuid.UUID, req *models.UpdateCartItemRequest) (*CartView, *ServiceError)
	RemoveItem(ctx context.Context, userID string, productID uuid.UUID) (*CartView, *ServiceError)
	ClearCart(ctx context.Context, userID string) *ServiceError
}

type cartServiceImpl struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      *zap.Logger
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, logger *zap.Logger) CartService {
	return &cartServiceImpl{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

func (s *cartServiceImpl) GetCart(ctx context.Context, userID string) (*CartView, *ServiceError) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: "Invalid user ID format"}
	}
	return s.view(ctx, userUUID)
}

// AddItem adds a product to the cart; adding a product already in the cart
// merges quantities into the existing line.
func (s *cartServiceImpl) AddItem(ctx context.Context, userID string, req *models.AddCartItemRequest) (*CartView, *ServiceError) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: "Invalid user ID format"}
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Product not found"}
		}
		s.logger.Error("Failed to fetch product", zap.String("product_id", req.ProductID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch product"}
	}
	if !product.IsActive {
		return nil, &ServiceError{StatusCode: 400, Message: "Product is not available"}
	}

	item, err := s.cartRepo.FindItem(ctx, userUUID, req.ProductID)
	switch {
	case err == nil:
		item.Quantity += req.Quantity
	case errors.Is(err, repository.ErrNotFound):
		item = &models.CartItem{
			UserID:    userUUID,
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
		}
	default:
		s.logger.Error("Failed to read cart item", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update cart"}
	}

	if err := s.cartRepo.Save(ctx, item); err != nil {
		s.logger.Error("Failed to save cart item", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update cart"}
	}

	return s.view(ctx, userUUID)
}

func (s *cartServiceImpl) UpdateItem(ctx context.Context, userID string, productID uuid.UUID, req *models.UpdateCartItemRequest) (*CartView, *ServiceError) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: "Invalid user ID format"}
	}

	item, err := s.cartRepo.FindItem(ctx, userUUID, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Cart item not found"}
		}
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update cart"}
	}

	item.Quantity = req.Quantity
	if err := s.cartRepo.Save(ctx, item); err != nil {
		s.logger.Error("Failed to save cart item", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update cart"}
	}

	return s.view(ctx, userUUID)
}

func (s *cartServiceImpl) RemoveItem(ctx context.Context, userID string, productID uuid.UUID) (*CartView, *ServiceError) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: "Invalid user ID format"}
	}

	rows, err := s.cartRepo.Delete(ctx, userUUID, productID)
	if err != nil {
		s.logger.Error("Failed to remove cart item", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update cart"}
	}
	if rows == 0 {
		return nil, &ServiceError{StatusCode: 404, Message: "Cart item not found"}
	}

	return s.view(ctx, userUUID)
}

func (s *cartServiceImpl) ClearCart(ctx context.Context, userID string) *ServiceError {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return &ServiceError{StatusCode: 400, Message: "Invalid user ID format"}
	}

	if err := s.cartRepo.Clear(ctx, userUUID); err != nil {
		s.logger.Error("Failed to clear cart", zap.String("user_id", userID), zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to clear cart"}
	}
	return nil
}

func (s *cartServiceImpl) view(ctx context.Context, userID uuid.UUID) (*CartView, *ServiceError) {
	items, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to load cart", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to load cart"}
	}

	var subtotal float64
	for _, item := range items {
		if item.Product != nil {
			subtotal += item.Product.Price * float64(item.Quantity)
		}
	}

	return &CartView{Items: items, Subtotal: round2(subtotal)}, nil
}
