package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"leadmarket/models"

	"go.uber.org/zap"
)

const servicePriceCachePrefix = "servicePrice:"
const servicePriceCacheTTL = 10 * time.Minute

// InitiateCheckout validates lead availability, creates a checkout session
// with the external processor and records a pending payment for
// (lead, business). The returned URL is where the business completes payment.
func (s *DefaultCheckoutService) InitiateCheckout(ctx context.Context, userID, leadID string) (*models.CheckoutSession, error) {
	lead, err := s.LeadRepo.GetByID(ctx, leadID)
	if err != nil || lead.Status != models.LeadStatusNew {
		return nil, ErrLeadUnavailable
	}

	purchased, err := s.PaymentRepo.HasCompleted(ctx, leadID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing payments: %w", err)
	}
	if purchased {
		return nil, ErrAlreadyPurchased
	}

	service, err := s.lookupService(ctx, lead.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve lead pricing: %w", err)
	}

	provSession, err := s.Provider.CreateSession(ctx, SessionParams{
		LeadID:      lead.ID,
		UserID:      userID,
		ServiceName: service.Name,
		City:        lead.City,
		AmountCents: service.PriceCents,
		SuccessURL:  s.PublicBaseURL + "/dashboard?payment=success",
		CancelURL:   s.PublicBaseURL + "/dashboard?payment=cancel",
	})
	if err != nil {
		s.Logger.Error("checkout session creation failed",
			zap.String("leadId", leadID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	payment := models.Payment{
		LeadID:                lead.ID,
		UserID:                userID,
		AmountCents:           service.PriceCents,
		Status:                models.PaymentStatusPending,
		StripePaymentIntentID: provSession.PaymentIntentID,
	}
	if err := s.PaymentRepo.Create(ctx, payment); err != nil {
		// The session already exists at the processor. Without a pending row
		// the webhook will no-op for it; accepted and logged rather than
		// surfaced, the checkout URL is still usable.
		s.Logger.Error("failed to record pending payment after session creation",
			zap.String("leadId", leadID),
			zap.String("userId", userID),
			zap.String("sessionId", provSession.ID),
			zap.Error(err))
	}

	s.Logger.Info("checkout session created",
		zap.String("leadId", leadID),
		zap.String("userId", userID),
		zap.String("sessionId", provSession.ID),
		zap.Int64("amountCents", service.PriceCents))

	return &models.CheckoutSession{
		SessionID:   provSession.ID,
		CheckoutURL: provSession.URL,
	}, nil
}

// lookupService resolves category pricing, consulting the Redis cache first.
func (s *DefaultCheckoutService) lookupService(ctx context.Context, serviceID string) (*models.Service, error) {
	if s.Cache != nil {
		if data, err := s.Cache.Get(ctx, servicePriceCachePrefix+serviceID).Result(); err == nil {
			var cached models.Service
			if json.Unmarshal([]byte(data), &cached) == nil {
				return &cached, nil
			}
		}
	}

	service, err := s.ServiceRepo.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if data, err := json.Marshal(service); err == nil {
			if err := s.Cache.Set(ctx, servicePriceCachePrefix+serviceID, data, servicePriceCacheTTL).Err(); err != nil {
				s.Logger.Warn("failed to cache service pricing", zap.Error(err))
			}
		}
	}
	return service, nil
}
