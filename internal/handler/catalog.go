package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/slabworks/cardstand/internal/catalog"
	"github.com/slabworks/cardstand/internal/logger"
)

type CardListResponse struct {
	Cards []catalog.CardView `json:"cards"`
	Count int                `json:"count"`
}

// HandleListCards returns the storefront card listing
// @Summary List cards
// @Description Lists cards with their effective availability. Lapsed reservations show as available.
// @Tags catalog
// @Produce json
// @Param limit query int false "Maximum cards to return"
// @Success 200 {object} CardListResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /cards [get]
func HandleListCards(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
				return
			}
			limit = parsed
		}

		cards, err := svc.ListCards(r.Context(), limit)
		if err != nil {
			log.Error("Failed to list cards", "error", err)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}

		respondJSON(w, http.StatusOK, CardListResponse{
			Cards: cards,
			Count: len(cards),
		})
	}
}

// HandleGetCard returns a single card
// @Summary Get a card
// @Description Returns one card with its effective availability and image URL
// @Tags catalog
// @Produce json
// @Param cardID path string true "Card ID"
// @Success 200 {object} catalog.CardView
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /cards/{cardID} [get]
func HandleGetCard(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		cardID := chi.URLParam(r, "cardID")

		card, err := svc.GetCard(r.Context(), cardID)
		if err != nil {
			log.Warn("Failed to get card", "error", err, "card_id", cardID)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}

		respondJSON(w, http.StatusOK, card)
	}
}
