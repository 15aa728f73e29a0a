package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	CheckoutsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCheckoutsStarted,
			Help: HelpTextCheckoutsStarted,
		},
	)

	CheckoutsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCheckoutsFailed,
			Help: HelpTextCheckoutsFailed,
		},
		[]string{LabelReason},
	)

	CardsReserved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCardsReserved,
			Help: HelpTextCardsReserved,
		},
	)

	CardsSold = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCardsSold,
			Help: HelpTextCardsSold,
		},
	)

	ReservationsReleased = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameReservationsReleased,
			Help: HelpTextReservationsReleased,
		},
		[]string{LabelReason},
	)

	WebhookEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWebhookEvents,
			Help: HelpTextWebhookEvents,
		},
		[]string{LabelType},
	)

	WebhookRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameWebhookRejected,
			Help: HelpTextWebhookRejected,
		},
	)

	OrdersCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameOrdersCompleted,
			Help: HelpTextOrdersCompleted,
		},
	)

	RevenueCents = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRevenueCents,
			Help: HelpTextRevenueCents,
		},
	)

	NotificationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameNotificationFailures,
			Help: HelpTextNotificationFailures,
		},
	)
)
