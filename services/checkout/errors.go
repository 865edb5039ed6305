package checkout

import "errors"

var (
	// ErrLeadUnavailable means the lead does not exist or is no longer new.
	ErrLeadUnavailable = errors.New("lead not found or no longer available")
	// ErrAlreadyPurchased means the business already holds a completed
	// payment for this lead.
	ErrAlreadyPurchased = errors.New("lead already purchased")
	// ErrProviderUnavailable means the payment processor could not be reached.
	ErrProviderUnavailable = errors.New("payment provider unavailable")
	// ErrInvalidSignature means the webhook payload failed signature
	// verification.
	ErrInvalidSignature = errors.New("invalid webhook signature")
	// ErrMalformedEvent means the webhook event is missing required metadata.
	ErrMalformedEvent = errors.New("malformed webhook event")
)
