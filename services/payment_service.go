package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"storefront/kafka"
	"storefront/models"
	"storefront/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ConfirmPaymentRequest struct {
	OrderID       uuid.UUID `json:"order_id" binding:"required"`
	PaymentMethod string    `json:"payment_method" binding:"required"`
}

type ConfirmPaymentResponse struct {
	Success       bool      `json:"success"`
	PaymentID     uuid.UUID `json:"payment_id"`
	Status        string    `json:"status"`
	FailureReason string    `json:"failure_reason,omitempty"`
}

// PaymentService defines the interface for payment business logic.
type PaymentService interface {
	ConfirmPayment(ctx context.Context, userID string, req *ConfirmPaymentRequest) (*ConfirmPaymentResponse, *ServiceError)
	GetPaymentsForOrder(ctx context.Context, userID string, orderID uuid.UUID) ([]models.Payment, *ServiceError)
}

type paymentServiceImpl struct {
	orderRepo   repository.OrderRepository
	paymentRepo repository.PaymentRepository
	gateway     Gateway
	producer    kafka.ProducerAPI
	logger      *zap.Logger
}

func NewPaymentService(
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	gateway Gateway,
	producer kafka.ProducerAPI,
	logger *zap.Logger,
) PaymentService {
	return &paymentServiceImpl{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		gateway:     gateway,
		producer:    producer,
		logger:      logger,
	}
}

// ConfirmPayment produces exactly one outcome for a pending-payment order:
// completed (order becomes confirmed) or failed (only payment status
// changes). Orders not found in pending-payment state for the requesting
// user are rejected without mutation.
func (s *paymentServiceImpl) ConfirmPayment(ctx context.Context, userID string, req *ConfirmPaymentRequest) (*ConfirmPaymentResponse, *ServiceError) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: "Invalid user ID format"}
	}

	order, err := s.orderRepo.FindByIDAndUserID(ctx, req.OrderID, userUUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Order not found"}
		}
		s.logger.Error("Failed to fetch order", zap.String("order_id", req.OrderID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch order"}
	}
	if order.PaymentStatus != models.PaymentStatusPending {
		return nil, &ServiceError{StatusCode: 409, Message: "Order is not awaiting payment"}
	}

	result, err := s.gateway.Charge(ctx, order, req.PaymentMethod)
	if err != nil {
		s.logger.Error("Gateway charge failed", zap.String("order_id", req.OrderID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 502, Message: "Payment gateway unavailable"}
	}

	payment := &models.Payment{
		OrderID:       order.ID,
		UserID:        userUUID,
		Amount:        order.Total,
		Method:        req.PaymentMethod,
		TransactionID: result.TransactionID,
	}
	if result.Approved {
		payment.Status = models.PaymentStatusCompleted
	} else {
		payment.Status = models.PaymentStatusFailed
		payment.FailureReason = result.Reason
	}

	if err := s.paymentRepo.RecordOutcome(ctx, payment, result.Approved); err != nil {
		if errors.Is(err, repository.ErrOrderNotPending) {
			return nil, &ServiceError{StatusCode: 409, Message: "Order is not awaiting payment"}
		}
		s.logger.Error("Failed to record payment", zap.String("order_id", req.OrderID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to record payment"}
	}

	s.publishPaymentEvent(payment)
	s.logger.Info("Payment recorded",
		zap.String("order_id", order.ID.String()),
		zap.String("status", string(payment.Status)),
	)

	return &ConfirmPaymentResponse{
		Success:       result.Approved,
		PaymentID:     payment.ID,
		Status:        string(payment.Status),
		FailureReason: payment.FailureReason,
	}, nil
}

func (s *paymentServiceImpl) GetPaymentsForOrder(ctx context.Context, userID string, orderID uuid.UUID) ([]models.Payment, *ServiceError) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: "Invalid user ID format"}
	}

	if _, err := s.orderRepo.FindByIDAndUserID(ctx, orderID, userUUID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Order not found"}
		}
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch order"}
	}

	payments, err := s.paymentRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		s.logger.Error("Failed to fetch payments", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch payments"}
	}
	return payments, nil
}

func (s *paymentServiceImpl) publishPaymentEvent(payment *models.Payment) {
	if s.producer == nil {
		return
	}

	event := models.PaymentEvent{
		Event:     "payment." + string(payment.Status),
		OrderID:   payment.OrderID.String(),
		UserID:    payment.UserID.String(),
		PaymentID: payment.ID.String(),
		Amount:    payment.Amount,
		Method:    payment.Method,
		Timestamp: time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Warn("Failed to marshal payment event", zap.Error(err))
		return
	}
	if err := s.producer.Publish(payment.OrderID.String(), payload); err != nil {
		s.logger.Warn("Kafka publish failed", zap.String("payment_id", payment.ID.String()), zap.Error(err))
	}
}
