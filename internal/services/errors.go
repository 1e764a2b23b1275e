package services

import "errors"

var (
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrLineNotFound       = errors.New("cart line not found")
	ErrProductUnavailable = errors.New("product is unavailable")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidAddress     = errors.New("address is incomplete")
	ErrUnknownStatus      = errors.New("unknown order status")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrPaymentInFlight    = errors.New("a payment is already in progress")
	ErrPaymentNotReady    = errors.New("checkout is not at the payment step")
	ErrForbidden          = errors.New("forbidden")
)
