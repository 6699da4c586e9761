package models

import "time"

// OrderCreatedEvent is published (best-effort) after a checkout commits.
type OrderCreatedEvent struct {
	Event       string    `json:"event"` // "order.created"
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	UserID      string    `json:"user_id"`
	Total       float64   `json:"total"`
	ItemCount   int       `json:"item_count"`
	Timestamp   time.Time `json:"timestamp"`
}

// PaymentEvent is published after a payment outcome is recorded.
type PaymentEvent struct {
	Event     string    `json:"event"` // "payment.completed" | "payment.failed"
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	PaymentID string    `json:"payment_id"`
	Amount    float64   `json:"amount"`
	Method    string    `json:"method"`
	Timestamp time.Time `json:"timestamp"`
}
