package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ParseOrderStatus maps a string to an OrderStatus; unrecognized values are
// rejected.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(strings.ToLower(s)) {
	case OrderStatusPending:
		return OrderStatusPending, nil
	case OrderStatusConfirmed:
		return OrderStatusConfirmed, nil
	case OrderStatusProcessing:
		return OrderStatusProcessing, nil
	case OrderStatusShipped:
		return OrderStatusShipped, nil
	case OrderStatusDelivered:
		return OrderStatusDelivered, nil
	case OrderStatusCancelled:
		return OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

type Order struct {
	ID                uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderNumber       string         `gorm:"type:varchar(40);uniqueIndex;not null" json:"order_number"`
	UserID            uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Status            OrderStatus    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Subtotal          float64        `gorm:"not null" json:"subtotal"`
	Tax               float64        `gorm:"not null" json:"tax"`
	ShippingCost      float64        `gorm:"not null" json:"shipping_cost"`
	Discount          float64        `gorm:"not null;default:0" json:"discount"`
	Total             float64        `gorm:"not null" json:"total"`
	PaymentStatus     PaymentStatus  `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`
	PaymentMethod     string         `gorm:"type:varchar(50)" json:"payment_method"`
	CouponCode        string         `gorm:"type:varchar(64)" json:"coupon_code,omitempty"`
	ShippingAddressID *uuid.UUID     `gorm:"type:uuid" json:"shipping_address_id,omitempty"`
	BillingAddressID  *uuid.UUID     `gorm:"type:uuid" json:"billing_address_id,omitempty"`
	ShippedAt         *time.Time     `json:"shipped_at,omitempty"`
	DeliveredAt       *time.Time     `json:"delivered_at,omitempty"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
	Items             []OrderItem    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem is an immutable snapshot of a cart line at order-creation time.
// Name and unit price are frozen here and never follow later product edits.
type OrderItem struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	ProductName string    `gorm:"type:varchar(255);not null" json:"product_name"`
	UnitPrice   float64   `gorm:"not null" json:"unit_price"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	LineTotal   float64   `gorm:"not null" json:"line_total"`
}
