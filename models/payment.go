package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Payment struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID       uuid.UUID      `gorm:"type:uuid;index;not null" json:"order_id"`
	UserID        uuid.UUID      `gorm:"type:uuid;index;not null" json:"user_id"`
	Amount        float64        `gorm:"not null" json:"amount"`
	Method        string         `gorm:"type:varchar(50);not null" json:"method"`
	Status        PaymentStatus  `gorm:"type:varchar(20);not null" json:"status"`
	TransactionID string         `gorm:"type:varchar(128)" json:"transaction_id,omitempty"`
	FailureReason string         `gorm:"type:varchar(255)" json:"failure_reason,omitempty"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
