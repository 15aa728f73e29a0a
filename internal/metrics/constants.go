package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameCheckoutsStarted     = "checkouts_started_total"
	MetricNameCheckoutsFailed      = "checkouts_failed_total"
	MetricNameCardsReserved        = "cards_reserved_total"
	MetricNameCardsSold            = "cards_sold_total"
	MetricNameReservationsReleased = "reservations_released_total"
	MetricNameWebhookEvents        = "webhook_events_total"
	MetricNameWebhookRejected      = "webhook_signature_rejected_total"
	MetricNameOrdersCompleted      = "orders_completed_total"
	MetricNameRevenueCents         = "revenue_cents_total"
	MetricNameNotificationFailures = "notification_failures_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextCheckoutsStarted     = "Total number of checkout sessions created"
	HelpTextCheckoutsFailed      = "Total number of checkout attempts that failed"
	HelpTextCardsReserved        = "Total number of cards placed on hold for checkout"
	HelpTextCardsSold            = "Total number of cards marked sold"
	HelpTextReservationsReleased = "Total number of card reservations released"
	HelpTextWebhookEvents        = "Total number of payment webhook events received"
	HelpTextWebhookRejected      = "Total number of webhook deliveries rejected for bad signatures"
	HelpTextOrdersCompleted      = "Total number of orders fulfilled"
	HelpTextRevenueCents         = "Total revenue in minor currency units"
	HelpTextNotificationFailures = "Total number of order notifications that failed to send"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelReason = "reason"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgPayloadDecodeFailed = "Failed to decode event payload for metrics"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)
