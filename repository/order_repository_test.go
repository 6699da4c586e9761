package repository_test

import (
	"context"
	"regexp"
	"testing"

	"storefront/models"
	"storefront/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)
	return gormDB, mock
}

func TestPlaceOrder_InsufficientStockRollsBack(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	order := &models.Order{
		ID:          uuid.New(),
		OrderNumber: "ORD-20260829-AAAA1111",
		UserID:      uuid.New(),
		Items: []models.OrderItem{
			{ProductID: uuid.New(), ProductName: "Mug", UnitPrice: 15.00, Quantity: 2, LineTotal: 30.00},
		},
	}

	mock.ExpectBegin()
	// Conditional decrement matches no row: out of stock or inactive.
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "products" SET "stock_quantity"=stock_quantity - $1`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.PlaceOrder(context.Background(), order)
	assert.ErrorIs(t, err, repository.ErrInsufficientStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_ReportsRowsAffected(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	orderID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "orders"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rows, err := repo.UpdateStatus(context.Background(), orderID, map[string]interface{}{"status": models.OrderStatusShipped})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), rows)
}

func TestUpdateStatus_UnknownOrderZeroRows(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "orders"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	rows, err := repo.UpdateStatus(context.Background(), uuid.New(), map[string]interface{}{"status": models.OrderStatusShipped})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), rows)
}

func TestFindByIDAndUserID_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	orderID := uuid.New()
	userID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "orders"`)).
		WillReturnRows(sqlmock.NewRows([]string{}))

	order, err := repo.FindByIDAndUserID(context.Background(), orderID, userID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Nil(t, order)
}

func TestRecordOutcome_NotPendingRollsBack(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormPaymentRepository(gormDB)

	payment := &models.Payment{
		OrderID: uuid.New(),
		UserID:  uuid.New(),
		Amount:  42.40,
		Method:  "card",
		Status:  models.PaymentStatusCompleted,
	}

	mock.ExpectBegin()
	// The order row is no longer pending payment; no update matches.
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "orders"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.RecordOutcome(context.Background(), payment, true)
	assert.ErrorIs(t, err, repository.ErrOrderNotPending)
	assert.NoError(t, mock.ExpectationsWereMet())
}
