package handler

import (
	"io"
	"net/http"

	"github.com/slabworks/cardstand/internal/fulfillment"
	"github.com/slabworks/cardstand/internal/logger"
)

// maxWebhookBodyBytes caps webhook payloads. Stripe events are a few KB;
// anything larger is not a legitimate delivery.
const maxWebhookBodyBytes = 65536

// signatureHeader carries the webhook signature.
const signatureHeader = "Stripe-Signature"

type WebhookResponse struct {
	Received bool `json:"received"`
}

// HandleStripeWebhook accepts payment provider event deliveries
// @Summary Payment webhook
// @Description Verifies and applies a payment provider event. Redeliveries are acknowledged without side effects.
// @Tags webhook
// @Accept json
// @Produce json
// @Success 200 {object} WebhookResponse
// @Failure 400 {object} ErrorResponse "Bad signature or malformed payload"
// @Failure 500 {object} ErrorResponse
// @Router /webhook/stripe [post]
func HandleStripeWebhook(svc fulfillment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		signature := r.Header.Get(signatureHeader)
		if signature == "" {
			log.Warn("Webhook delivery without signature header", "remote_addr", r.RemoteAddr)
			respondError(w, http.StatusBadRequest, ErrMsgMissingSignature)
			return
		}

		payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBodyBytes))
		if err != nil {
			log.Error("Failed to read webhook body", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgBodyReadFailed)
			return
		}

		if err := svc.ProcessWebhook(r.Context(), payload, signature); err != nil {
			log.Error("Failed to process webhook", "error", err)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}

		respondJSON(w, http.StatusOK, WebhookResponse{Received: true})
	}
}
