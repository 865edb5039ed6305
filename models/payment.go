package models

import "time"

// PaymentStatus is the lifecycle state of a payment attempt.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed:
		return true
	}
	return false
}

// CanTransition reports whether the transition s -> to is allowed.
// Only a pending payment may move, to completed or failed.
func (s PaymentStatus) CanTransition(to PaymentStatus) bool {
	if s != PaymentStatusPending {
		return false
	}
	return to == PaymentStatusCompleted || to == PaymentStatusFailed
}

// Payment records one business's attempt to unlock one lead. Amounts are in
// minor currency units (cents) to avoid floating point.
type Payment struct {
	ID                    string        `bson:"id" json:"id"`
	LeadID                string        `bson:"lead_id" json:"lead_id"`
	UserID                string        `bson:"user_id" json:"user_id"`
	AmountCents           int64         `bson:"amount_cents" json:"amount_cents"`
	Status                PaymentStatus `bson:"status" json:"status"`
	StripePaymentIntentID string        `bson:"stripe_payment_intent_id" json:"stripe_payment_intent_id,omitempty"`
	CreatedAt             time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt             time.Time     `bson:"updated_at" json:"updated_at"`
}

// CheckoutSession is the redirect target returned to a business after
// checkout initiation.
type CheckoutSession struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

// AdminPayment is a payment joined with its business and lead summaries for
// the admin dashboard.
type AdminPayment struct {
	Payment
	BusinessEmail string `json:"business_email"`
	BusinessName  string `json:"business_name,omitempty"`
	LeadName      string `json:"lead_name"`
	LeadCity      string `json:"lead_city"`
	ServiceName   string `json:"service_name"`
}
