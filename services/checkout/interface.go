package checkout

import (
	"context"

	leadRepo "leadmarket/database/repository/lead"
	paymentRepo "leadmarket/database/repository/payment"
	serviceRepo "leadmarket/database/repository/service"
	"leadmarket/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CheckoutService coordinates the purchase of a lead: session initiation on
// behalf of an authenticated business, and reconciliation of the processor's
// asynchronous completion webhook.
type CheckoutService interface {
	InitiateCheckout(ctx context.Context, userID, leadID string) (*models.CheckoutSession, error)
	HandleProviderEvent(ctx context.Context, payload []byte, sigHeader string) error
}

// DefaultCheckoutService is the production implementation. All cross-handler
// coordination happens through the repositories' conditional writes; the
// service itself is stateless.
type DefaultCheckoutService struct {
	LeadRepo    leadRepo.LeadRepository
	PaymentRepo paymentRepo.PaymentRepository
	ServiceRepo serviceRepo.ServiceRepository
	Provider    CheckoutProvider
	Verify      SignatureVerifier
	Cache       *redis.Client
	Logger      *zap.Logger

	// PublicBaseURL is the web frontend origin; the processor redirects the
	// browser back to <PublicBaseURL>/dashboard?payment=success|cancel.
	PublicBaseURL string
}
