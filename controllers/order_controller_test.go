package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/controllers"
	"storefront/middleware"
	"storefront/models"
	"storefront/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- Mock OrderService ---

type mockOrderService struct {
	checkoutFn     func(ctx context.Context, userID string, req *services.CheckoutRequest) (*services.CheckoutResponse, *services.ServiceError)
	userOrdersFn   func(ctx context.Context, userID string, page, limit int) (*services.OrderResponse, *services.ServiceError)
	allOrdersFn    func(ctx context.Context, page, limit int) (*services.OrderResponse, *services.ServiceError)
	getOrderFn     func(ctx context.Context, userID string, orderID uuid.UUID) (*models.Order, *services.ServiceError)
	updateStatusFn func(ctx context.Context, orderID uuid.UUID, status string) *services.ServiceError
}

func (m *mockOrderService) Checkout(ctx context.Context, userID string, req *services.CheckoutRequest) (*services.CheckoutResponse, *services.ServiceError) {
	return m.checkoutFn(ctx, userID, req)
}
func (m *mockOrderService) GetUserOrders(ctx context.Context, userID string, page, limit int) (*services.OrderResponse, *services.ServiceError) {
	return m.userOrdersFn(ctx, userID, page, limit)
}
func (m *mockOrderService) GetAllOrders(ctx context.Context, page, limit int) (*services.OrderResponse, *services.ServiceError) {
	return m.allOrdersFn(ctx, page, limit)
}
func (m *mockOrderService) GetOrderByID(ctx context.Context, userID string, orderID uuid.UUID) (*models.Order, *services.ServiceError) {
	return m.getOrderFn(ctx, userID, orderID)
}
func (m *mockOrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) *services.ServiceError {
	return m.updateStatusFn(ctx, orderID, status)
}

// --- Helpers ---

func setupOrderRouter(svc services.OrderService, userID string) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set(middleware.ContextUserIDKey, userID)
		}
		c.Next()
	})

	oc := controllers.NewOrderController(svc)
	r.POST("/orders", oc.Checkout)
	r.GET("/orders", oc.GetOrders)
	r.GET("/orders/:id", oc.GetOrder)
	r.PUT("/admin/orders/:id/status", oc.UpdateStatus)
	return r
}

// --- Tests ---

func TestCheckoutReturns201(t *testing.T) {
	userID := uuid.NewString()
	orderID := uuid.New()

	svc := &mockOrderService{
		checkoutFn: func(_ context.Context, gotUser string, req *services.CheckoutRequest) (*services.CheckoutResponse, *services.ServiceError) {
			assert.Equal(t, userID, gotUser)
			assert.Equal(t, "card", req.PaymentMethod)
			return &services.CheckoutResponse{OrderID: orderID, OrderNumber: "ORD-20260829-AAAA1111", Total: 42.40}, nil
		},
	}
	r := setupOrderRouter(svc, userID)

	body, _ := json.Marshal(gin.H{"payment_method": "card"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp services.CheckoutResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, orderID, resp.OrderID)
	assert.Equal(t, 42.40, resp.Total)
}

func TestCheckoutEmptyCartMapsServiceError(t *testing.T) {
	svc := &mockOrderService{
		checkoutFn: func(context.Context, string, *services.CheckoutRequest) (*services.CheckoutResponse, *services.ServiceError) {
			return nil, &services.ServiceError{StatusCode: 400, Message: "Cart is empty"}
		},
	}
	r := setupOrderRouter(svc, uuid.NewString())

	body, _ := json.Marshal(gin.H{"payment_method": "card"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Cart is empty")
}

func TestCheckoutMissingPaymentMethodRejected(t *testing.T) {
	svc := &mockOrderService{
		checkoutFn: func(context.Context, string, *services.CheckoutRequest) (*services.CheckoutResponse, *services.ServiceError) {
			t.Fatal("service must not be called on binding failure")
			return nil, nil
		},
	}
	r := setupOrderRouter(svc, uuid.NewString())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutUnauthenticatedReturns401(t *testing.T) {
	r := setupOrderRouter(&mockOrderService{}, "")

	body, _ := json.Marshal(gin.H{"payment_method": "card"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetOrderInvalidIDReturns400(t *testing.T) {
	r := setupOrderRouter(&mockOrderService{}, uuid.NewString())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders/not-a-uuid", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOrdersPassesPagination(t *testing.T) {
	svc := &mockOrderService{
		userOrdersFn: func(_ context.Context, _ string, page, limit int) (*services.OrderResponse, *services.ServiceError) {
			assert.Equal(t, 3, page)
			assert.Equal(t, 5, limit)
			return &services.OrderResponse{Meta: services.MetaData{Page: page, Limit: limit}}, nil
		},
	}
	r := setupOrderRouter(svc, uuid.NewString())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders?page=3&limit=5", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateStatusInvalidValueReturns400(t *testing.T) {
	svc := &mockOrderService{
		updateStatusFn: func(_ context.Context, _ uuid.UUID, status string) *services.ServiceError {
			assert.Equal(t, "refunded", status)
			return &services.ServiceError{StatusCode: 400, Message: "Invalid status value"}
		},
	}
	r := setupOrderRouter(svc, uuid.NewString())

	body, _ := json.Marshal(gin.H{"status": "refunded"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/admin/orders/"+uuid.NewString()+"/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid status value")
}
