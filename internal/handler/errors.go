package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidLimit      = "Invalid limit parameter"

	// Checkout error messages
	ErrMsgCheckoutFailed = "Failed to start checkout"

	// Webhook error messages
	ErrMsgMissingSignature = "Missing Stripe-Signature header"
	ErrMsgBodyReadFailed   = "Failed to read request body"

	// Catalog error messages
	ErrMsgListCardsFailed = "Failed to list cards"
	ErrMsgGetCardFailed   = "Failed to retrieve card"

	// Admin error messages
	ErrMsgCreateCardFailed  = "Failed to create card"
	ErrMsgUpdateCardFailed  = "Failed to update card"
	ErrMsgDeleteCardFailed  = "Failed to delete card"
	ErrMsgUploadImageFailed = "Failed to upload card image"
	ErrMsgListOrdersFailed  = "Failed to list orders"
	ErrMsgMissingImageFile  = "Image file is required"
	ErrMsgImageTooLarge     = "Image exceeds the maximum allowed size"
)

// Success messages for API responses
// These are user-facing success messages returned in JSON responses
const (
	MsgCardCreatedSuccess   = "Card created successfully"
	MsgCardUpdatedSuccess   = "Card updated successfully"
	MsgCardDeletedSuccess   = "Card deleted successfully"
	MsgImageUploadedSuccess = "Image uploaded successfully"
)
