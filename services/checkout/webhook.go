package checkout

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// SignatureVerifier verifies a raw webhook payload against its signature
// header and returns the parsed event.
type SignatureVerifier func(payload []byte, sigHeader string) (stripe.Event, error)

// StripeSignatureVerifier returns a SignatureVerifier backed by Stripe's
// shared-secret signature scheme.
func StripeSignatureVerifier(secret string) SignatureVerifier {
	return func(payload []byte, sigHeader string) (stripe.Event, error) {
		return webhook.ConstructEvent(payload, sigHeader, secret)
	}
}

// HandleProviderEvent durably applies a checkout completion exactly once,
// however many times the processor delivers it. Any error returned here maps
// to a non-2xx response, which triggers processor-side redelivery; the
// idempotency check makes redelivery safe.
func (s *DefaultCheckoutService) HandleProviderEvent(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := s.Verify(payload, sigHeader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	if event.Type != "checkout.session.completed" {
		// Other event types are acknowledged and ignored.
		return nil
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	leadID := session.Metadata["lead_id"]
	userID := session.Metadata["user_id"]
	if leadID == "" || userID == "" {
		return fmt.Errorf("%w: missing lead_id or user_id metadata on session %s", ErrMalformedEvent, session.ID)
	}

	paymentIntentID := ""
	if session.PaymentIntent != nil {
		paymentIntentID = session.PaymentIntent.ID
	}

	logger := s.Logger.With(
		zap.String("leadId", leadID),
		zap.String("userId", userID),
		zap.String("sessionId", session.ID))

	// Duplicate delivery: already reconciled, acknowledge and stop.
	completed, err := s.PaymentRepo.HasCompleted(ctx, leadID, userID)
	if err != nil {
		return fmt.Errorf("failed to check payment status: %w", err)
	}
	if completed {
		logger.Info("payment already completed, skipping duplicate delivery")
		return nil
	}

	// The status precondition is embedded in the write itself; a concurrent
	// duplicate delivery cannot also win.
	won, err := s.PaymentRepo.CompletePending(ctx, leadID, userID, paymentIntentID)
	if err != nil {
		return fmt.Errorf("failed to complete payment: %w", err)
	}
	if !won {
		// Zero documents modified: either a concurrent delivery got there
		// first (re-check shows completed) or no pending row exists for this
		// session, e.g. the pending insert failed after session creation.
		// Both are acknowledged without further mutation.
		completed, err := s.PaymentRepo.HasCompleted(ctx, leadID, userID)
		if err != nil {
			return fmt.Errorf("failed to re-check payment status: %w", err)
		}
		if completed {
			logger.Info("payment completed by concurrent delivery")
		} else {
			logger.Warn("no pending payment matches completed session")
		}
		return nil
	}

	// Lead transition is conditional on status == new. Zero documents
	// modified means an expiration won the race; the completed payment
	// stands but the lead stays expired. Accepted outcome, not an error.
	leadWon, err := s.LeadRepo.MarkPurchased(ctx, leadID)
	if err != nil {
		return fmt.Errorf("failed to mark lead purchased: %w", err)
	}
	if !leadWon {
		logger.Warn("lead no longer new, leaving status unchanged")
		return nil
	}

	logger.Info("payment reconciled", zap.String("paymentIntentId", paymentIntentID))
	return nil
}
