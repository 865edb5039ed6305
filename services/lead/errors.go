package lead

import "errors"

var (
	// ErrLeadNotExpirable means the lead is already purchased or already
	// expired. Expiration is operator-initiated, so losing the conditional
	// update is surfaced rather than silently ignored.
	ErrLeadNotExpirable = errors.New("lead is not expirable")
	// ErrInvalidLead means the submitted lead failed validation.
	ErrInvalidLead = errors.New("invalid lead submission")
)
