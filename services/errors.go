package services

import "errors"

// Sentinel errors surfaced to controllers, which map them onto HTTP codes.
var (
	ErrNotFound          = errors.New("record not found")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidTransition = errors.New("order cannot be cancelled now")
	ErrUnauthorized      = errors.New("you do not have permission")
	ErrDuplicateReview   = errors.New("you already reviewed this item")
	ErrValidation        = errors.New("invalid input")
	ErrInvalidCoupon     = errors.New("invalid coupon code")
)
