package repository

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInsufficientStock indicates a conditional stock decrement matched no
	// row: the product is gone, inactive, or its stock dropped below the
	// requested quantity between validation and commit.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrOrderNotPending indicates a payment outcome was attempted against an
	// order that is not in pending-payment state.
	ErrOrderNotPending = errors.New("order not pending payment")

	// ErrDuplicate indicates a uniqueness constraint was violated.
	ErrDuplicate = errors.New("duplicate record")
)
