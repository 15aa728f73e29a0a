package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/slabworks/cardstand/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// Helper functions for responding

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	// Encode to the buffer first
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent, nothing to do but log
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	// Write the buffer to the response
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
// These messages are derived from domain errors and provide helpful guidance to users
const (
	// Generic messages
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."

	// Cart and card messages
	ErrMsgEmptyCartError       = "Your cart is empty"
	ErrMsgInvalidQuantityError = "Quantities must be positive"
	ErrMsgCardNotFoundError    = "Card not found"
	ErrMsgCardReservedError    = "Card is in another shopper's checkout. Try again in a couple of minutes."
	ErrMsgCardUnavailableError = "Card is no longer available"
	ErrMsgInvalidPriceError    = "Card cannot be purchased right now"

	// Payment messages
	ErrMsgGatewayError          = "Payment provider is unavailable. Please try again."
	ErrMsgSignatureInvalidError = "Invalid webhook signature"
	ErrMsgMalformedPayloadError = "Malformed webhook payload"

	// Order messages
	ErrMsgOrderNotFoundError = "Order not found"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
// This function converts internal service errors to appropriate HTTP status codes and messages
// that users can understand and act upon.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		return http.StatusBadRequest, ErrMsgEmptyCartError
	case errors.Is(err, domain.ErrInvalidQuantity):
		return http.StatusBadRequest, ErrMsgInvalidQuantityError
	case errors.Is(err, domain.ErrCardNotFound):
		return http.StatusNotFound, ErrMsgCardNotFoundError
	case errors.Is(err, domain.ErrCardReserved):
		return http.StatusBadRequest, ErrMsgCardReservedError
	case errors.Is(err, domain.ErrCardUnavailable):
		return http.StatusBadRequest, ErrMsgCardUnavailableError
	case errors.Is(err, domain.ErrInvalidPrice):
		return http.StatusBadRequest, ErrMsgInvalidPriceError
	case errors.Is(err, domain.ErrGateway):
		return http.StatusInternalServerError, ErrMsgGatewayError
	case errors.Is(err, domain.ErrSignatureInvalid):
		return http.StatusBadRequest, ErrMsgSignatureInvalidError
	case errors.Is(err, domain.ErrMalformedPayload):
		return http.StatusBadRequest, ErrMsgMalformedPayloadError
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound, ErrMsgOrderNotFoundError
	case errors.Is(err, domain.ErrDatabaseError):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	// For wrapped errors with domain errors as the base, try unwrapping
	unwrapped := errors.Unwrap(err)
	if unwrapped != nil && unwrapped != err {
		return mapServiceErrorToUserMessage(unwrapped)
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
