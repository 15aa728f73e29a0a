package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/slabworks/cardstand/internal/domain"
)

// metadataCardIDs is the session metadata key carrying the reserved
// card ids, comma separated.
const metadataCardIDs = "card_ids"

// EventCheckoutCompleted is the only event type the shop acts on.
const EventCheckoutCompleted = string(stripe.EventTypeCheckoutSessionCompleted)

type stripeGateway struct {
	api           *client.API
	webhookSecret string
}

// NewStripeGateway builds a Gateway backed by the Stripe API. The key
// is scoped to this client rather than set on the SDK's package-level
// state, so two gateways with different keys can coexist in one process.
func NewStripeGateway(secretKey, webhookSecret string) Gateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &stripeGateway{api: api, webhookSecret: webhookSecret}
}

func (g *stripeGateway) CreateSession(ctx context.Context, req SessionRequest) (*Session, error) {
	items := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.LineItems))
	for _, li := range req.LineItems {
		items = append(items, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(li.Quantity),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(req.Currency),
				UnitAmount: stripe.Int64(li.AmountCents),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String(li.Name),
					Description: stripe.String(li.Description),
				},
			},
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  items,
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		ShippingAddressCollection: &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice([]string{"US", "CA", "GB", "DE", "FR", "JP", "AU"}),
		},
	}
	params.Context = ctx
	params.AddMetadata(metadataCardIDs, strings.Join(req.CardIDs, ","))

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGateway, err)
	}

	return &Session{ID: sess.ID, URL: sess.URL}, nil
}

func (g *stripeGateway) VerifyEvent(payload []byte, sigHeader string) (*Event, error) {
	event, err := webhook.ConstructEvent(payload, sigHeader, g.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSignatureInvalid, err)
	}

	out := &Event{Type: string(event.Type)}
	if out.Type != EventCheckoutCompleted {
		return out, nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}

	out.Checkout = completedFromSession(&sess)
	return out, nil
}

func completedFromSession(sess *stripe.CheckoutSession) *CompletedCheckout {
	cc := &CompletedCheckout{
		SessionID:       sess.ID,
		PaymentStatus:   string(sess.PaymentStatus),
		AmountCents:     sess.AmountTotal,
		ShippingAddress: domain.ShippingNotProvided,
	}

	if ids := sess.Metadata[metadataCardIDs]; ids != "" {
		cc.CardIDs = strings.Split(ids, ",")
	}

	if cd := sess.CustomerDetails; cd != nil {
		cc.BuyerEmail = cd.Email
		cc.BuyerName = cd.Name
		if addr := formatAddress(cd.Address); addr != "" {
			cc.ShippingAddress = addr
		}
	}
	if sd := sess.ShippingDetails; sd != nil {
		if addr := formatAddress(sd.Address); addr != "" {
			cc.ShippingAddress = addr
		}
	}

	return cc
}

func formatAddress(a *stripe.Address) string {
	if a == nil {
		return ""
	}
	parts := make([]string, 0, 6)
	for _, p := range []string{a.Line1, a.Line2, a.City, a.State, a.PostalCode, a.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
