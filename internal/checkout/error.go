package checkout

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrSessionNotFound    = errors.New("checkout session not found")
	ErrSessionRequired    = errors.New("session id is required")
	ErrWrongStage         = errors.New("action not available at this checkout stage")
	ErrCompleted          = errors.New("checkout already completed")
	ErrInvalidTier        = errors.New("invalid shipping tier")
	ErrInvalidPayment     = errors.New("invalid payment method")
	ErrIncompleteCheckout = errors.New("incomplete checkout data")
)

// AddressIncompleteMessage is the toast shown when the address guard fails.
const AddressIncompleteMessage = "Harap lengkapi semua data alamat"

// ValidationError lists the address fields that are missing.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", AddressIncompleteMessage, strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrIncompleteCheckout
}

// Message is the user-facing text without the field list.
func (e *ValidationError) Message() string {
	return AddressIncompleteMessage
}
