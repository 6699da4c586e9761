package services_test

import (
	"context"
	"errors"
	"testing"

	"storefront/models"
	"storefront/repository"
	"storefront/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// --- Payment repository ---

type mockPaymentRepo struct {
	store    *mockStore
	payments []*models.Payment
}

func (m *mockPaymentRepo) RecordOutcome(_ context.Context, payment *models.Payment, succeeded bool) error {
	order, ok := m.store.orders[payment.OrderID]
	if !ok || order.PaymentStatus != models.PaymentStatusPending {
		return repository.ErrOrderNotPending
	}
	if succeeded {
		order.PaymentStatus = models.PaymentStatusCompleted
		order.Status = models.OrderStatusConfirmed
	} else {
		order.PaymentStatus = models.PaymentStatusFailed
	}
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	m.payments = append(m.payments, payment)
	return nil
}

func (m *mockPaymentRepo) FindByOrderID(_ context.Context, orderID uuid.UUID) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range m.payments {
		if p.OrderID == orderID {
			out = append(out, *p)
		}
	}
	return out, nil
}

// --- Gateway stub ---

type stubGateway struct {
	result  services.GatewayResult
	err     error
	charges int
}

func (g *stubGateway) Charge(_ context.Context, _ *models.Order, _ string) (services.GatewayResult, error) {
	g.charges++
	return g.result, g.err
}

// --- Helpers ---

func seedPendingOrder(store *mockStore, userID uuid.UUID, total float64) *models.Order {
	order := &models.Order{
		ID:            uuid.New(),
		OrderNumber:   "ORD-20260829-TESTTEST",
		UserID:        userID,
		Status:        models.OrderStatusPending,
		Total:         total,
		PaymentStatus: models.PaymentStatusPending,
	}
	store.orders[order.ID] = order
	return order
}

func newPaymentService(store *mockStore, gateway services.Gateway) (services.PaymentService, *mockPaymentRepo) {
	paymentRepo := &mockPaymentRepo{store: store}
	logger, _ := zap.NewDevelopment()
	svc := services.NewPaymentService(&mockOrderRepo{store: store}, paymentRepo, gateway, nil, logger)
	return svc, paymentRepo
}

// --- Tests ---

func TestConfirmPaymentApprovedConfirmsOrder(t *testing.T) {
	store := newMockStore()
	userID := uuid.New()
	order := seedPendingOrder(store, userID, 42.40)

	gateway := &stubGateway{result: services.GatewayResult{TransactionID: "txn_1", Approved: true}}
	svc, repo := newPaymentService(store, gateway)

	resp, serviceErr := svc.ConfirmPayment(context.Background(), userID.String(), &services.ConfirmPaymentRequest{
		OrderID:       order.ID,
		PaymentMethod: "card",
	})
	require.Nil(t, serviceErr)
	assert.True(t, resp.Success)
	assert.Equal(t, string(models.PaymentStatusCompleted), resp.Status)

	assert.Equal(t, models.OrderStatusConfirmed, order.Status)
	assert.Equal(t, models.PaymentStatusCompleted, order.PaymentStatus)

	require.Len(t, repo.payments, 1)
	assert.Equal(t, 42.40, repo.payments[0].Amount)
	assert.Equal(t, "txn_1", repo.payments[0].TransactionID)
}

func TestConfirmPaymentDeclinedLeavesOrderPendingStatus(t *testing.T) {
	store := newMockStore()
	userID := uuid.New()
	order := seedPendingOrder(store, userID, 30.00)

	gateway := &stubGateway{result: services.GatewayResult{TransactionID: "txn_2", Approved: false, Reason: "card declined"}}
	svc, repo := newPaymentService(store, gateway)

	resp, serviceErr := svc.ConfirmPayment(context.Background(), userID.String(), &services.ConfirmPaymentRequest{
		OrderID:       order.ID,
		PaymentMethod: "card",
	})
	require.Nil(t, serviceErr)
	assert.False(t, resp.Success)
	assert.Equal(t, string(models.PaymentStatusFailed), resp.Status)
	assert.Equal(t, "card declined", resp.FailureReason)

	// Only the payment status flips; fulfillment status stays pending.
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentStatusFailed, order.PaymentStatus)

	require.Len(t, repo.payments, 1)
	assert.Equal(t, "card declined", repo.payments[0].FailureReason)
}

func TestConfirmPaymentRejectsNonPendingOrder(t *testing.T) {
	store := newMockStore()
	userID := uuid.New()
	order := seedPendingOrder(store, userID, 30.00)
	order.PaymentStatus = models.PaymentStatusCompleted
	order.Status = models.OrderStatusConfirmed

	gateway := &stubGateway{result: services.GatewayResult{TransactionID: "txn_3", Approved: true}}
	svc, repo := newPaymentService(store, gateway)

	resp, serviceErr := svc.ConfirmPayment(context.Background(), userID.String(), &services.ConfirmPaymentRequest{
		OrderID:       order.ID,
		PaymentMethod: "card",
	})
	assert.Nil(t, resp)
	require.NotNil(t, serviceErr)
	assert.Equal(t, 409, serviceErr.StatusCode)
	assert.Equal(t, "Order is not awaiting payment", serviceErr.Message)

	// No charge attempted, nothing recorded.
	assert.Equal(t, 0, gateway.charges)
	assert.Empty(t, repo.payments)
	assert.Equal(t, models.OrderStatusConfirmed, order.Status)
}

func TestConfirmPaymentUnknownOrderReturns404(t *testing.T) {
	store := newMockStore()
	gateway := &stubGateway{result: services.GatewayResult{Approved: true}}
	svc, _ := newPaymentService(store, gateway)

	_, serviceErr := svc.ConfirmPayment(context.Background(), uuid.NewString(), &services.ConfirmPaymentRequest{
		OrderID:       uuid.New(),
		PaymentMethod: "card",
	})
	require.NotNil(t, serviceErr)
	assert.Equal(t, 404, serviceErr.StatusCode)
	assert.Equal(t, "Order not found", serviceErr.Message)
}

func TestConfirmPaymentOtherUsersOrderReturns404(t *testing.T) {
	store := newMockStore()
	order := seedPendingOrder(store, uuid.New(), 30.00)

	gateway := &stubGateway{result: services.GatewayResult{Approved: true}}
	svc, _ := newPaymentService(store, gateway)

	_, serviceErr := svc.ConfirmPayment(context.Background(), uuid.NewString(), &services.ConfirmPaymentRequest{
		OrderID:       order.ID,
		PaymentMethod: "card",
	})
	require.NotNil(t, serviceErr)
	assert.Equal(t, 404, serviceErr.StatusCode)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
}

func TestConfirmPaymentGatewayErrorReturns502(t *testing.T) {
	store := newMockStore()
	userID := uuid.New()
	order := seedPendingOrder(store, userID, 30.00)

	gateway := &stubGateway{err: errors.New("connection refused")}
	svc, repo := newPaymentService(store, gateway)

	_, serviceErr := svc.ConfirmPayment(context.Background(), userID.String(), &services.ConfirmPaymentRequest{
		OrderID:       order.ID,
		PaymentMethod: "card",
	})
	require.NotNil(t, serviceErr)
	assert.Equal(t, 502, serviceErr.StatusCode)
	assert.Empty(t, repo.payments)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
}

func TestConfirmPaymentExactlyOneOutcome(t *testing.T) {
	store := newMockStore()
	userID := uuid.New()
	order := seedPendingOrder(store, userID, 30.00)

	gateway := &stubGateway{result: services.GatewayResult{TransactionID: "txn_4", Approved: true}}
	svc, repo := newPaymentService(store, gateway)

	req := &services.ConfirmPaymentRequest{OrderID: order.ID, PaymentMethod: "card"}

	_, serviceErr := svc.ConfirmPayment(context.Background(), userID.String(), req)
	require.Nil(t, serviceErr)

	// A second confirmation attempt is rejected and records nothing.
	_, serviceErr = svc.ConfirmPayment(context.Background(), userID.String(), req)
	require.NotNil(t, serviceErr)
	assert.Equal(t, 409, serviceErr.StatusCode)
	assert.Len(t, repo.payments, 1)
}

func TestGetPaymentsForOrder(t *testing.T) {
	store := newMockStore()
	userID := uuid.New()
	order := seedPendingOrder(store, userID, 30.00)

	gateway := &stubGateway{result: services.GatewayResult{TransactionID: "txn_5", Approved: true}}
	svc, _ := newPaymentService(store, gateway)

	_, serviceErr := svc.ConfirmPayment(context.Background(), userID.String(), &services.ConfirmPaymentRequest{
		OrderID:       order.ID,
		PaymentMethod: "card",
	})
	require.Nil(t, serviceErr)

	payments, serviceErr := svc.GetPaymentsForOrder(context.Background(), userID.String(), order.ID)
	require.Nil(t, serviceErr)
	require.Len(t, payments, 1)
	assert.Equal(t, "txn_5", payments[0].TransactionID)

	_, serviceErr = svc.GetPaymentsForOrder(context.Background(), uuid.NewString(), order.ID)
	require.NotNil(t, serviceErr)
	assert.Equal(t, 404, serviceErr.StatusCode)
}
