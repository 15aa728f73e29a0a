package handler

import (
	"encoding/json"
	"net/http"

	"github.com/slabworks/cardstand/internal/checkout"
	"github.com/slabworks/cardstand/internal/domain"
	"github.com/slabworks/cardstand/internal/logger"
)

type CheckoutItemRequest struct {
	ItemID string `json:"item_id" validate:"required,max=64,excludesall=\x00\n\r\t"`
}

type CartLineRequest struct {
	ID  string `json:"id" validate:"required,max=64,excludesall=\x00\n\r\t"`
	Qty int    `json:"qty" validate:"required,gt=0"`
}

type CheckoutCartRequest struct {
	Items []CartLineRequest `json:"items" validate:"required,min=1,dive"`
}

type CheckoutResponse struct {
	URL string `json:"url"`
}

// HandleCheckoutItem starts a checkout session for a single card
// @Summary Buy a single card
// @Description Reserves the card and returns a payment redirect URL
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body CheckoutItemRequest true "Card to buy"
// @Success 200 {object} CheckoutResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Card not found"
// @Failure 500 {object} ErrorResponse "Payment provider unavailable"
// @Router /checkout [post]
func HandleCheckoutItem(svc checkout.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CheckoutItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode checkout request", "error", err)
			http.Error(w, ErrMsgInvalidRequest, http.StatusBadRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			validationErrors := FormatValidationError(err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			if err := json.NewEncoder(w).Encode(map[string]interface{}{
				"error":   "Validation failed",
				"details": validationErrors,
			}); err != nil {
				log.Error("Failed to encode response", "error", err)
			}
			return
		}

		url, err := svc.CheckoutItem(r.Context(), req.ItemID)
		if err != nil {
			log.Error("Failed to start checkout", "error", err, "card_id", req.ItemID)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}

		log.Info("Checkout session created", "card_id", req.ItemID)

		respondJSON(w, http.StatusOK, CheckoutResponse{URL: url})
	}
}

// HandleCheckoutCart starts a checkout session for a cart of cards
// @Summary Buy a cart of cards
// @Description Reserves every card in the cart and returns a payment redirect URL. Duplicate lines are merged.
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body CheckoutCartRequest true "Cart contents"
// @Success 200 {object} CheckoutResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Card not found"
// @Failure 500 {object} ErrorResponse "Payment provider unavailable"
// @Router /checkout-cart [post]
func HandleCheckoutCart(svc checkout.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CheckoutCartRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode cart checkout request", "error", err)
			http.Error(w, ErrMsgInvalidRequest, http.StatusBadRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			validationErrors := FormatValidationError(err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			if err := json.NewEncoder(w).Encode(map[string]interface{}{
				"error":   "Validation failed",
				"details": validationErrors,
			}); err != nil {
				log.Error("Failed to encode response", "error", err)
			}
			return
		}

		lines := make([]domain.CartLine, len(req.Items))
		for i, item := range req.Items {
			lines[i] = domain.CartLine{CardID: item.ID, Quantity: item.Qty}
		}

		url, err := svc.CheckoutCart(r.Context(), lines)
		if err != nil {
			log.Error("Failed to start cart checkout", "error", err, "lines", len(lines))
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}

		log.Info("Cart checkout session created", "lines", len(lines))

		respondJSON(w, http.StatusOK, CheckoutResponse{URL: url})
	}
}
