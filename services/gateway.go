package services

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"

	"storefront/models"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/paymentintent"
)

// GatewayResult is the outcome of a charge attempt.
type GatewayResult struct {
	TransactionID string
	Approved      bool
	Reason        string
}

// Gateway is the payment capability the order flow depends on. The default
// implementation is a stand-in for an external gateway call; a real
// integration substitutes here without touching order logic.
type Gateway interface {
	Charge(ctx context.Context, order *models.Order, method string) (GatewayResult, error)
}

// MockGateway approves or declines charges by random draw.
type MockGateway struct {
	mu           sync.Mutex
	rng          *rand.Rand
	approvalRate float64
}

func NewMockGateway(seed int64, approvalRate float64) *MockGateway {
	if approvalRate <= 0 || approvalRate > 1 {
		approvalRate = 0.8
	}
	return &MockGateway{
		rng:          rand.New(rand.NewSource(seed)),
		approvalRate: approvalRate,
	}
}

func (g *MockGateway) Charge(_ context.Context, order *models.Order, method string) (GatewayResult, error) {
	g.mu.Lock()
	approved := g.rng.Float64() < g.approvalRate
	g.mu.Unlock()

	result := GatewayResult{
		TransactionID: "mock_" + uuid.NewString(),
		Approved:      approved,
	}
	if !approved {
		result.Reason = fmt.Sprintf("%s payment declined", method)
	}
	return result, nil
}

// StripeGateway charges through Stripe PaymentIntents.
type StripeGateway struct{}

func NewStripeGateway(secretKey string) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{}
}

// toCents converts a dollar amount to integer cents. Rounding matters:
// truncation drops a cent on totals like 19.99 whose float64 form sits
// just under the boundary.
func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func (g *StripeGateway) Charge(ctx context.Context, order *models.Order, method string) (GatewayResult, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(toCents(order.Total)),
		Currency: stripe.String("usd"),
		Params:   stripe.Params{Context: ctx},
	}
	params.AddMetadata("order_number", order.OrderNumber)

	pi, err := paymentintent.New(params)
	if err != nil {
		return GatewayResult{Approved: false, Reason: err.Error()}, nil
	}

	return GatewayResult{
		TransactionID: pi.ID,
		Approved:      pi.Status != stripe.PaymentIntentStatusCanceled,
	}, nil
}
