package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"storefront/kafka"
	"storefront/models"
	"storefront/repository"

	awspkg "storefront/pkg/aws"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PricingConfig carries the checkout pricing knobs.
type PricingConfig struct {
	TaxRate               float64
	ShippingFee           float64
	FreeShippingThreshold float64
}

type CheckoutRequest struct {
	ShippingAddressID *uuid.UUID `json:"shipping_address_id"`
	BillingAddressID  *uuid.UUID `json:"billing_address_id"`
	PaymentMethod     string     `json:"payment_method" binding:"required"`
	CouponCode        string     `json:"coupon_code"`
}

type CheckoutResponse struct {
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Total       float64   `json:"total"`
}

type OrderResponse struct {
	Orders []models.Order `json:"orders"`
	Meta   MetaData       `json:"meta"`
}

type MetaData struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasMore    bool  `json:"has_more"`
}

// OrderService defines the interface for order business logic.
type OrderService interface {
	Checkout(ctx context.Context, userID string, req *CheckoutRequest) (*CheckoutResponse, *ServiceError)
	GetUserOrders(ctx context.Context, userID string, page, limit int) (*OrderResponse, *ServiceError)
	GetAllOrders(ctx context.Context, page, limit int) (*OrderResponse, *ServiceError)
	GetOrderByID(ctx context.Context, userID string, orderID uuid.UUID) (*models.Order, *ServiceError)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) *ServiceError
}

type orderServiceImpl struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	coupons     CouponService
	pricing     PricingConfig
	producer    kafka.ProducerAPI
	snsClient   awspkg.SNSPublisher
	snsTopicArn string
	logger      *zap.Logger
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	coupons CouponService,
	pricing PricingConfig,
	producer kafka.ProducerAPI,
	snsClient awspkg.SNSPublisher,
	snsTopicArn string,
	logger *zap.Logger,
) OrderService {
	return &orderServiceImpl{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		coupons:     coupons,
		pricing:     pricing,
		producer:    producer,
		snsClient:   snsClient,
		snsTopicArn: snsTopicArn,
		logger:      logger,
	}
}

// Checkout turns the user's cart into a pending order. Every line must
// reference an active product with sufficient stock; otherwise the whole
// operation is rejected with no side effects. On success the order, its
// line-item snapshots, the stock decrements, and the cart clear commit as one
// transaction.
func (s *orderServiceImpl) Checkout(ctx context.Context, userID string, req *CheckoutRequest) (*CheckoutResponse, *ServiceError) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: "Invalid user ID format"}
	}

	cart, err := s.cartRepo.FindByUser(ctx, userUUID)
	if err != nil {
		s.logger.Error("Failed to load cart", zap.String("user_id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to load cart"}
	}
	if len(cart) == 0 {
		return nil, &ServiceError{StatusCode: 400, Message: "Cart is empty"}
	}

	var subtotal float64
	items := make([]models.OrderItem, 0, len(cart))
	for _, line := range cart {
		if line.Product == nil {
			return nil, &ServiceError{StatusCode: 400, Message: "Product no longer exists"}
		}
		if !line.Product.IsActive {
			return nil, &ServiceError{StatusCode: 400, Message: fmt.Sprintf("Product %q is no longer available", line.Product.Name)}
		}
		if line.Product.StockQuantity < line.Quantity {
			return nil, &ServiceError{StatusCode: 400, Message: fmt.Sprintf("Insufficient stock for %q", line.Product.Name)}
		}

		lineTotal := round2(line.Product.Price * float64(line.Quantity))
		subtotal += lineTotal
		items = append(items, models.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.Product.Name,
			UnitPrice:   line.Product.Price,
			Quantity:    line.Quantity,
			LineTotal:   lineTotal,
		})
	}
	subtotal = round2(subtotal)

	var discount float64
	if req.CouponCode != "" {
		discount, err = s.coupons.Redeemable(ctx, req.CouponCode, subtotal)
		if err != nil {
			return nil, &ServiceError{StatusCode: 400, Message: err.Error()}
		}
	}

	tax := round2(subtotal * s.pricing.TaxRate)
	shipping := s.pricing.ShippingFee
	if subtotal > s.pricing.FreeShippingThreshold {
		shipping = 0
	}
	total := round2(subtotal + tax + shipping - discount)

	order := &models.Order{
		OrderNumber:       generateOrderNumber(),
		UserID:            userUUID,
		Status:            models.OrderStatusPending,
		Subtotal:          subtotal,
		Tax:               tax,
		ShippingCost:      shipping,
		Discount:          discount,
		Total:             total,
		PaymentStatus:     models.PaymentStatusPending,
		PaymentMethod:     req.PaymentMethod,
		CouponCode:        strings.ToUpper(req.CouponCode),
		ShippingAddressID: req.ShippingAddressID,
		BillingAddressID:  req.BillingAddressID,
		Items:             items,
	}

	if err := s.orderRepo.PlaceOrder(ctx, order); err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, &ServiceError{StatusCode: 409, Message: "Insufficient stock"}
		}
		s.logger.Error("Failed to place order", zap.String("user_id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to place order"}
	}

	if req.CouponCode != "" {
		s.coupons.MarkRedeemed(ctx, req.CouponCode)
	}

	s.publishOrderCreated(ctx, order)
	s.logger.Info("Order placed",
		zap.String("order_number", order.OrderNumber),
		zap.String("user_id", userID),
		zap.Float64("total", order.Total),
	)

	return &CheckoutResponse{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Total:       order.Total,
	}, nil
}

// GetUserOrders retrieves paginated orders for a specific user
func (s *orderServiceImpl) GetUserOrders(ctx context.Context, userID string, page, limit int) (*OrderResponse, *ServiceError) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: "Invalid user ID format"}
	}

	orders, total, err := s.orderRepo.FindByUserID(ctx, userUUID, page, limit)
	if err != nil {
		s.logger.Error("Failed to fetch orders", zap.String("user_id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch orders"}
	}

	return &OrderResponse{
		Orders: orders,
		Meta: MetaData{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: calculateTotalPages(total, limit),
			HasMore:    total > int64(page*limit),
		},
	}, nil
}

// GetAllOrders retrieves paginated orders for all users (admin only)
func (s *orderServiceImpl) GetAllOrders(ctx context.Context, page, limit int) (*OrderResponse, *ServiceError) {
	orders, total, err := s.orderRepo.FindAll(ctx, page, limit)
	if err != nil {
		s.logger.Error("Failed to fetch all orders", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch orders"}
	}

	return &OrderResponse{
		Orders: orders,
		Meta: MetaData{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: calculateTotalPages(total, limit),
			HasMore:    total > int64(page*limit),
		},
	}, nil
}

// GetOrderByID retrieves a specific order for a user
func (s *orderServiceImpl) GetOrderByID(ctx context.Context, userID string, orderID uuid.UUID) (*models.Order, *ServiceError) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: "Invalid user ID format"}
	}

	order, err := s.orderRepo.FindByIDAndUserID(ctx, orderID, userUUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Order not found"}
		}
		s.logger.Error("Failed to fetch order", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch order"}
	}

	return order, nil
}

// UpdateStatus applies an admin status transition. Unrecognized values are
// rejected; shipped/delivered set their timestamps.
func (s *orderServiceImpl) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) *ServiceError {
	parsed, err := models.ParseOrderStatus(status)
	if err != nil {
		return &ServiceError{StatusCode: 400, Message: "Invalid status value"}
	}

	updates := map[string]interface{}{"status": parsed}
	now := time.Now()
	switch parsed {
	case models.OrderStatusShipped:
		updates["shipped_at"] = &now
	case models.OrderStatusDelivered:
		updates["delivered_at"] = &now
	}

	rows, err := s.orderRepo.UpdateStatus(ctx, orderID, updates)
	if err != nil {
		s.logger.Error("Failed to update order status", zap.String("order_id", orderID.String()), zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to update order status"}
	}
	if rows == 0 {
		return &ServiceError{StatusCode: 404, Message: "Order not found"}
	}

	s.logger.Info("Order status updated", zap.String("order_id", orderID.String()), zap.String("status", string(parsed)))
	return nil
}

// publishOrderCreated emits the order-created event. Best-effort: a publish
// failure never fails the checkout.
func (s *orderServiceImpl) publishOrderCreated(ctx context.Context, order *models.Order) {
	event := models.OrderCreatedEvent{
		Event:       "order.created",
		OrderID:     order.ID.String(),
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID.String(),
		Total:       order.Total,
		ItemCount:   len(order.Items),
		Timestamp:   time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Warn("Failed to marshal order event", zap.Error(err))
		return
	}

	if s.producer != nil {
		if err := s.producer.Publish(order.UserID.String(), payload); err != nil {
			s.logger.Warn("Kafka publish failed", zap.String("order_number", order.OrderNumber), zap.Error(err))
		}
	}
	if s.snsClient != nil && s.snsTopicArn != "" {
		if err := s.snsClient.Publish(ctx, s.snsTopicArn, payload); err != nil {
			s.logger.Warn("SNS publish failed", zap.String("order_number", order.OrderNumber), zap.Error(err))
		}
	}
}

// generateOrderNumber builds the human-readable order reference, distinct
// from the internal order id.
func generateOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "ORD-" + time.Now().UTC().Format("20060102") + "-" + suffix
}

func calculateTotalPages(total int64, limit int) int64 {
	if limit == 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
