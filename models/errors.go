package models

import "errors"

// Not-found errors map to 404 at the handler boundary.
var (
	ErrProductNotFound      = errors.New("product not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrRestaurantNotFound   = errors.New("restaurant not found")
	ErrNotificationNotFound = errors.New("notification not found")
)

// Validation errors map to 400 at the handler boundary.
var (
	ErrEmptyOrder             = errors.New("order must contain at least one item")
	ErrInvalidQuantity        = errors.New("item quantity must be greater than zero")
	ErrInvalidOrderStatus     = errors.New("invalid order status")
	ErrInvalidTransactionType = errors.New("invalid inventory transaction type")
)
