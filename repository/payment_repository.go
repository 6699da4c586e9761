package repository

import (
	"context"
	"time"

	"storefront/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentRepository defines the interface for payment data access
type PaymentRepository interface {
	// RecordOutcome writes the payment row and flips the order out of
	// pending-payment state in one transaction. The order update is
	// conditional on payment_status = 'pending'; if no row matches, the
	// transaction aborts with ErrOrderNotPending and nothing is written.
	RecordOutcome(ctx context.Context, payment *models.Payment, succeeded bool) error
	FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.Payment, error)
}

type GormPaymentRepository struct {
	db *gorm.DB
}

func NewGormPaymentRepository(db *gorm.DB) PaymentRepository {
	return &GormPaymentRepository{db: db}
}

func (r *GormPaymentRepository) RecordOutcome(ctx context.Context, payment *models.Payment, succeeded bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"payment_status": payment.Status,
			"updated_at":     time.Now(),
		}
		if succeeded {
			updates["status"] = models.OrderStatusConfirmed
		}

		res := tx.Model(&models.Order{}).
			Where("id = ? AND user_id = ? AND payment_status = ?", payment.OrderID, payment.UserID, models.PaymentStatusPending).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrOrderNotPending
		}

		return tx.Create(payment).Error
	})
}

func (r *GormPaymentRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}
