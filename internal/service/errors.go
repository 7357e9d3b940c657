package service

import (
	"errors"

	"github.com/bakeryhq/orderdesk/internal/calendar"
)

var (
	ErrMissingClient     = errors.New("a client must be selected")
	ErrUnknownClient     = errors.New("client does not exist")
	ErrEmptyOrder        = errors.New("order must contain at least one item")
	ErrMissingProduct    = errors.New("every item must have a product")
	ErrUnknownProduct    = errors.New("product does not exist")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInvalidDate       = calendar.ErrInvalidDate
	ErrInvalidName       = errors.New("name is required")
	ErrInvalidUnit       = errors.New("unit must be units or kg")
	ErrDuplicateID       = errors.New("id already exists")
	ErrInvalidWebhookURL = errors.New("webhook url must be an absolute http(s) url")

	ErrOrderNotFound   = errors.New("order not found")
	ErrProductNotFound = errors.New("product not found")
	ErrClientNotFound  = errors.New("client not found")
)

var validationErrors = []error{
	ErrMissingClient,
	ErrUnknownClient,
	ErrEmptyOrder,
	ErrMissingProduct,
	ErrUnknownProduct,
	ErrInvalidQuantity,
	ErrInvalidDate,
	ErrInvalidName,
	ErrInvalidUnit,
	ErrDuplicateID,
	ErrInvalidWebhookURL,
}

// IsValidation reports whether err is a rule violation the caller can fix,
// as opposed to an infrastructure failure.
func IsValidation(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err names a missing entity
func IsNotFound(err error) bool {
	return errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrClientNotFound)
}
