package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Cart errors
	ErrMsgEmptyCart       = "cart is empty"
	ErrMsgInvalidQuantity = "quantity must be positive"

	// Card errors
	ErrMsgCardNotFound    = "card not found"
	ErrMsgCardReserved    = "card is reserved by another checkout"
	ErrMsgCardUnavailable = "card is not available"
	ErrMsgInvalidPrice    = "card has no valid price"

	// Payment gateway errors
	ErrMsgGateway          = "checkout session creation failed"
	ErrMsgSignatureInvalid = "webhook signature verification failed"
	ErrMsgMalformedPayload = "malformed webhook payload"

	// Order errors
	ErrMsgOrderNotFound = "order not found"

	// Database/System errors
	ErrMsgDatabaseError = "database error"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Cart errors
	ErrEmptyCart       = errors.New(ErrMsgEmptyCart)
	ErrInvalidQuantity = errors.New(ErrMsgInvalidQuantity)

	// Card errors
	ErrCardNotFound    = errors.New(ErrMsgCardNotFound)
	ErrCardReserved    = errors.New(ErrMsgCardReserved)
	ErrCardUnavailable = errors.New(ErrMsgCardUnavailable)
	ErrInvalidPrice    = errors.New(ErrMsgInvalidPrice)

	// Payment gateway errors
	ErrGateway          = errors.New(ErrMsgGateway)
	ErrSignatureInvalid = errors.New(ErrMsgSignatureInvalid)
	ErrMalformedPayload = errors.New(ErrMsgMalformedPayload)

	// Order errors
	ErrOrderNotFound = errors.New(ErrMsgOrderNotFound)

	// Database/System errors
	ErrDatabaseError = errors.New(ErrMsgDatabaseError)
)
