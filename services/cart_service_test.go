package services_test

import (
	"context"
	"testing"

	"storefront/models"
	"storefront/repository"
	"storefront/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockProductRepo struct{ store *mockStore }

func (m *mockProductRepo) Create(_ context.Context, product *models.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	m.store.products[product.ID] = product
	return nil
}

func (m *mockProductRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	p, ok := m.store.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (m *mockProductRepo) Find(_ context.Context, _ repository.ProductFilters, _, _ int) ([]models.Product, int64, error) {
	var out []models.Product
	for _, p := range m.store.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (m *mockProductRepo) Update(_ context.Context, id uuid.UUID, updates map[string]interface{}) (int64, error) {
	if _, ok := m.store.products[id]; !ok {
		return 0, nil
	}
	return 1, nil
}

func (m *mockProductRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	if _, ok := m.store.products[id]; !ok {
		return 0, nil
	}
	delete(m.store.products, id)
	return 1, nil
}

func newCartService(store *mockStore) services.CartService {
	logger, _ := zap.NewDevelopment()
	return services.NewCartService(&mockCartRepo{store: store}, &mockProductRepo{store: store}, logger)
}

func TestAddItemMergesQuantities(t *testing.T) {
	store := newMockStore()
	userID := uuid.New()
	p := store.addProduct("Mug", 15.00, 10, true)

	svc := newCartService(store)

	cart, serviceErr := svc.AddItem(context.Background(), userID.String(), &models.AddCartItemRequest{ProductID: p.ID, Quantity: 2})
	require.Nil(t, serviceErr)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)

	cart, serviceErr = svc.AddItem(context.Background(), userID.String(), &models.AddCartItemRequest{ProductID: p.ID, Quantity: 3})
	require.Nil(t, serviceErr)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestAddItemRejectsUnknownProduct(t *testing.T) {
	store := newMockStore()
	svc := newCartService(store)

	_, serviceErr := svc.AddItem(context.Background(), uuid.NewString(), &models.AddCartItemRequest{ProductID: uuid.New(), Quantity: 1})
	require.NotNil(t, serviceErr)
	assert.Equal(t, 404, serviceErr.StatusCode)
}

func TestAddItemRejectsInactiveProduct(t *testing.T) {
	store := newMockStore()
	p := store.addProduct("Retired", 5.00, 10, false)
	svc := newCartService(store)

	_, serviceErr := svc.AddItem(context.Background(), uuid.NewString(), &models.AddCartItemRequest{ProductID: p.ID, Quantity: 1})
	require.NotNil(t, serviceErr)
	assert.Equal(t, 400, serviceErr.StatusCode)
}

func TestUpdateItemSetsQuantity(t *testing.T) {
	store := newMockStore()
	userID := uuid.New()
	p := store.addProduct("Pen", 2.50, 50, true)
	store.addCartItem(userID, p, 1)

	svc := newCartService(store)

	cart, serviceErr := svc.UpdateItem(context.Background(), userID.String(), p.ID, &models.UpdateCartItemRequest{Quantity: 4})
	require.Nil(t, serviceErr)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 4, cart.Items[0].Quantity)
}

func TestUpdateItemMissingLineReturns404(t *testing.T) {
	store := newMockStore()
	svc := newCartService(store)

	_, serviceErr := svc.UpdateItem(context.Background(), uuid.NewString(), uuid.New(), &models.UpdateCartItemRequest{Quantity: 1})
	require.NotNil(t, serviceErr)
	assert.Equal(t, 404, serviceErr.StatusCode)
}

func TestRemoveItemMissingLineReturns404(t *testing.T) {
	store := newMockStore()
	svc := newCartService(store)

	_, serviceErr := svc.RemoveItem(context.Background(), uuid.NewString(), uuid.New())
	require.NotNil(t, serviceErr)
	assert.Equal(t, 404, serviceErr.StatusCode)
}

func TestGetCartComputesSubtotal(t *testing.T) {
	store := newMockStore()
	userID := uuid.New()
	mug := store.addProduct("Mug", 15.00, 10, true)
	pen := store.addProduct("Pen", 2.50, 50, true)
	store.addCartItem(userID, mug, 2)
	store.addCartItem(userID, pen, 4)

	svc := newCartService(store)

	cart, serviceErr := svc.GetCart(context.Background(), userID.String())
	require.Nil(t, serviceErr)
	assert.Len(t, cart.Items, 2)
	assert.Equal(t, 40.00, cart.Subtotal)
}

func TestClearCart(t *testing.T) {
	store := newMockStore()
	userID := uuid.New()
	p := store.addProduct("Mug", 15.00, 10, true)
	store.addCartItem(userID, p, 2)

	svc := newCartService(store)

	require.Nil(t, svc.ClearCart(context.Background(), userID.String()))

	cart, serviceErr := svc.GetCart(context.Background(), userID.String())
	require.Nil(t, serviceErr)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.00, cart.Subtotal)
}
