package checkout

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// SessionParams describes the checkout session to create with the external
// processor. The amount comes from category pricing, never from the client.
type SessionParams struct {
	LeadID      string
	UserID      string
	ServiceName string
	City        string
	AmountCents int64
	SuccessURL  string
	CancelURL   string
}

// ProviderSession is the processor's view of a created checkout session.
type ProviderSession struct {
	ID              string
	URL             string
	PaymentIntentID string
}

// CheckoutProvider creates hosted checkout sessions with the external payment
// processor.
type CheckoutProvider interface {
	CreateSession(ctx context.Context, params SessionParams) (*ProviderSession, error)
}

// StripeProvider implements CheckoutProvider against Stripe Checkout.
type StripeProvider struct{}

func NewStripeProvider() *StripeProvider {
	return &StripeProvider{}
}

// CreateSession creates a Stripe Checkout session. Lead and user ids travel
// as session metadata so the webhook can recover them without trusting any
// client-suppliable field.
func (p *StripeProvider) CreateSession(ctx context.Context, params SessionParams) (*ProviderSession, error) {
	sessionParams := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(params.SuccessURL),
		CancelURL:          stripe.String(params.CancelURL),
		ClientReferenceID:  stripe.String(params.LeadID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(string(stripe.CurrencyUSD)),
					UnitAmount: stripe.Int64(params.AmountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(fmt.Sprintf("%s Lead", params.ServiceName)),
						Description: stripe.String(fmt.Sprintf("Lead for %s in %s", params.ServiceName, params.City)),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	sessionParams.Context = ctx
	sessionParams.AddMetadata("lead_id", params.LeadID)
	sessionParams.AddMetadata("user_id", params.UserID)

	s, err := session.New(sessionParams)
	if err != nil {
		return nil, err
	}

	provSession := &ProviderSession{
		ID:  s.ID,
		URL: s.URL,
	}
	if s.PaymentIntent != nil {
		provSession.PaymentIntentID = s.PaymentIntent.ID
	}
	return provSession, nil
}
