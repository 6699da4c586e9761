package services_test

import (
	"context"
	"strings"
	"testing"

	"storefront/models"
	"storefront/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockGatewayAlwaysApprovesAtFullRate(t *testing.T) {
	gateway := services.NewMockGateway(42, 1.0)
	order := &models.Order{Total: 42.40}

	for i := 0; i < 20; i++ {
		result, err := gateway.Charge(context.Background(), order, "card")
		require.NoError(t, err)
		assert.True(t, result.Approved)
		assert.True(t, strings.HasPrefix(result.TransactionID, "mock_"))
		assert.Empty(t, result.Reason)
	}
}

func TestMockGatewayDeclinesCarryReason(t *testing.T) {
	// Low approval rate so a fixed seed produces declines within a few draws.
	gateway := services.NewMockGateway(1, 0.01)
	order := &models.Order{Total: 30.00}

	declined := false
	for i := 0; i < 50; i++ {
		result, err := gateway.Charge(context.Background(), order, "card")
		require.NoError(t, err)
		if !result.Approved {
			declined = true
			assert.Contains(t, result.Reason, "card")
			assert.Contains(t, result.Reason, "declined")
			assert.NotEmpty(t, result.TransactionID)
		}
	}
	assert.True(t, declined)
}

func TestMockGatewayDeterministicForSeed(t *testing.T) {
	order := &models.Order{Total: 10.00}

	a := services.NewMockGateway(7, 0.5)
	b := services.NewMockGateway(7, 0.5)
	for i := 0; i < 30; i++ {
		ra, _ := a.Charge(context.Background(), order, "card")
		rb, _ := b.Charge(context.Background(), order, "card")
		assert.Equal(t, ra.Approved, rb.Approved)
	}
}
