package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/slabworks/cardstand/internal/catalog"
	"github.com/slabworks/cardstand/internal/domain"
	"github.com/slabworks/cardstand/internal/logger"
	"github.com/slabworks/cardstand/internal/repository"
)

// maxImageUploadBytes caps card image uploads at 10 MB.
const maxImageUploadBytes = 10 << 20

// imageFormField is the multipart form field carrying the card image.
const imageFormField = "image"

// defaultOrderListLimit bounds the admin order listing when no limit is given.
const defaultOrderListLimit = 100

type CardRequest struct {
	Name       string   `json:"name" validate:"required,max=200,excludesall=\x00\n\r\t"`
	SetName    string   `json:"set_name" validate:"max=200"`
	Condition  string   `json:"condition" validate:"required,max=50"`
	Grading    string   `json:"grading" validate:"max=100"`
	PriceCents int64    `json:"price_cents" validate:"required,gt=0"`
	Status     string   `json:"status" validate:"omitempty,cardstatus"`
	Tags       []string `json:"tags" validate:"omitempty,dive,max=50"`
}

type CardCreatedResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type ImageUploadedResponse struct {
	Message  string `json:"message"`
	ImageKey string `json:"image_key"`
}

type OrderListResponse struct {
	Orders []domain.Order `json:"orders"`
	Count  int            `json:"count"`
}

func cardFromRequest(req CardRequest) *domain.Card {
	return &domain.Card{
		Name:       req.Name,
		SetName:    req.SetName,
		Condition:  req.Condition,
		Grading:    req.Grading,
		PriceCents: req.PriceCents,
		Status:     domain.CardStatus(req.Status),
		Tags:       req.Tags,
	}
}

// decodeAndValidateCard reads a card payload and runs struct validation,
// writing the error response itself on failure.
func decodeAndValidateCard(w http.ResponseWriter, r *http.Request) (*CardRequest, bool) {
	log := logger.FromContext(r.Context())

	var req CardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("Failed to decode card request", "error", err)
		http.Error(w, ErrMsgInvalidRequest, http.StatusBadRequest)
		return nil, false
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
		return nil, false
	}

	return &req, true
}

// HandleAdminCreateCard lists a new card (admin only)
// @Summary Create card
// @Description Adds a new card to the catalog
// @Tags admin
// @Accept json
// @Produce json
// @Param request body CardRequest true "Card details"
// @Success 201 {object} CardCreatedResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/cards [post]
// @Security ApiKeyAuth
func HandleAdminCreateCard(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		req, ok := decodeAndValidateCard(w, r)
		if !ok {
			return
		}

		id, err := svc.CreateCard(r.Context(), cardFromRequest(*req))
		if err != nil {
			log.Error("Failed to create card", "error", err, "name", req.Name)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}

		log.Info("Card created", "card_id", id, "name", req.Name)

		respondJSON(w, http.StatusCreated, CardCreatedResponse{
			Message: MsgCardCreatedSuccess,
			ID:      id,
		})
	}
}

// HandleAdminUpdateCard rewrites a card's listing details (admin only)
// @Summary Update card
// @Description Updates an existing card's listing details
// @Tags admin
// @Accept json
// @Produce json
// @Param cardID path string true "Card ID"
// @Param request body CardRequest true "Card details"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/cards/{cardID} [put]
// @Security ApiKeyAuth
func HandleAdminUpdateCard(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		cardID := chi.URLParam(r, "cardID")

		req, ok := decodeAndValidateCard(w, r)
		if !ok {
			return
		}

		if err := svc.UpdateCard(r.Context(), cardID, cardFromRequest(*req)); err != nil {
			log.Error("Failed to update card", "error", err, "card_id", cardID)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}

		log.Info("Card updated", "card_id", cardID)

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgCardUpdatedSuccess})
	}
}

// HandleAdminDeleteCard removes a card from the catalog (admin only)
// @Summary Delete card
// @Description Removes a card and its stored image
// @Tags admin
// @Produce json
// @Param cardID path string true "Card ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/cards/{cardID} [delete]
// @Security ApiKeyAuth
func HandleAdminDeleteCard(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		cardID := chi.URLParam(r, "cardID")

		if err := svc.DeleteCard(r.Context(), cardID); err != nil {
			log.Error("Failed to delete card", "error", err, "card_id", cardID)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}

		log.Info("Card deleted", "card_id", cardID)

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgCardDeletedSuccess})
	}
}

// HandleAdminUploadImage attaches an image to a card (admin only)
// @Summary Upload card image
// @Description Stores a card image and links it to the card. Replaces any existing image.
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param cardID path string true "Card ID"
// @Param image formData file true "Card image"
// @Success 200 {object} ImageUploadedResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/cards/{cardID}/image [post]
// @Security ApiKeyAuth
func HandleAdminUploadImage(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		cardID := chi.URLParam(r, "cardID")

		r.Body = http.MaxBytesReader(w, r.Body, maxImageUploadBytes)
		if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				respondError(w, http.StatusRequestEntityTooLarge, ErrMsgImageTooLarge)
				return
			}
			log.Warn("Failed to parse multipart form", "error", err, "card_id", cardID)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		file, header, err := r.FormFile(imageFormField)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgMissingImageFile)
			return
		}
		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		key, err := svc.AttachImage(r.Context(), cardID, file, header.Size, contentType)
		if err != nil {
			log.Error("Failed to upload card image", "error", err, "card_id", cardID)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}

		log.Info("Card image uploaded", "card_id", cardID, "image_key", key, "size", header.Size)

		respondJSON(w, http.StatusOK, ImageUploadedResponse{
			Message:  MsgImageUploadedSuccess,
			ImageKey: key,
		})
	}
}

// HandleAdminListOrders returns recent orders, newest first (admin only)
// @Summary List orders
// @Description Lists fulfilled orders, newest first
// @Tags admin
// @Produce json
// @Param limit query int false "Maximum orders to return"
// @Success 200 {object} OrderListResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/orders [get]
// @Security ApiKeyAuth
func HandleAdminListOrders(repo repository.Order) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		limit := defaultOrderListLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
				return
			}
			limit = parsed
		}

		orders, err := repo.ListOrders(r.Context(), limit)
		if err != nil {
			log.Error("Failed to list orders", "error", err)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}

		respondJSON(w, http.StatusOK, OrderListResponse{
			Orders: orders,
			Count:  len(orders),
		})
	}
}
