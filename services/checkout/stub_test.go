package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	leadRepo "leadmarket/database/repository/lead"
	paymentRepo "leadmarket/database/repository/payment"
	serviceRepo "leadmarket/database/repository/service"
	"leadmarket/models"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
)

// In-memory repositories reproducing the store's conditional-update
// semantics: a transition write applies only while the precondition holds
// and reports whether it changed anything.

type memLeadRepo struct {
	mu    sync.Mutex
	leads map[string]models.Lead
}

func newMemLeadRepo() *memLeadRepo {
	return &memLeadRepo{leads: make(map[string]models.Lead)}
}

func (r *memLeadRepo) Create(ctx context.Context, lead models.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leads[lead.ID] = lead
	return nil
}

func (r *memLeadRepo) GetByID(ctx context.Context, id string) (*models.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lead, ok := r.leads[id]
	if !ok {
		return nil, leadRepo.ErrLeadNotFound
	}
	return &lead, nil
}

func (r *memLeadRepo) ListByStatus(ctx context.Context, status models.LeadStatus) ([]models.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Lead
	for _, l := range r.leads {
		if l.Status == status {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *memLeadRepo) ListByIDs(ctx context.Context, ids []string) ([]models.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Lead
	for _, id := range ids {
		if l, ok := r.leads[id]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *memLeadRepo) ListAll(ctx context.Context) ([]models.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Lead
	for _, l := range r.leads {
		out = append(out, l)
	}
	return out, nil
}

func (r *memLeadRepo) markFromNew(id string, to models.LeadStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lead, ok := r.leads[id]
	if !ok || lead.Status != models.LeadStatusNew {
		return false, nil
	}
	lead.Status = to
	lead.UpdatedAt = time.Now()
	r.leads[id] = lead
	return true, nil
}

func (r *memLeadRepo) MarkPurchased(ctx context.Context, id string) (bool, error) {
	return r.markFromNew(id, models.LeadStatusPurchased)
}

func (r *memLeadRepo) MarkExpired(ctx context.Context, id string) (bool, error) {
	return r.markFromNew(id, models.LeadStatusExpired)
}

type memPaymentRepo struct {
	mu        sync.Mutex
	payments  []models.Payment
	createErr error
}

func newMemPaymentRepo() *memPaymentRepo {
	return &memPaymentRepo{}
}

func (r *memPaymentRepo) Create(ctx context.Context, payment models.Payment) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	payment.CreatedAt = time.Now()
	r.payments = append(r.payments, payment)
	return nil
}

func (r *memPaymentRepo) GetByLeadAndUser(ctx context.Context, leadID, userID string) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.payments) - 1; i >= 0; i-- {
		p := r.payments[i]
		if p.LeadID == leadID && p.UserID == userID {
			return &p, nil
		}
	}
	return nil, paymentRepo.ErrPaymentNotFound
}

func (r *memPaymentRepo) HasCompleted(ctx context.Context, leadID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if p.LeadID == leadID && p.UserID == userID && p.Status == models.PaymentStatusCompleted {
			return true, nil
		}
	}
	return false, nil
}

func (r *memPaymentRepo) CompletePending(ctx context.Context, leadID, userID, paymentIntentID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.payments {
		if p.LeadID == leadID && p.UserID == userID && p.Status == models.PaymentStatusPending {
			r.payments[i].Status = models.PaymentStatusCompleted
			r.payments[i].StripePaymentIntentID = paymentIntentID
			r.payments[i].UpdatedAt = time.Now()
			return true, nil
		}
	}
	return false, nil
}

func (r *memPaymentRepo) FailStalePending(ctx context.Context, olderThan time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var swept int64
	for i, p := range r.payments {
		if p.Status == models.PaymentStatusPending && p.CreatedAt.Before(olderThan) {
			r.payments[i].Status = models.PaymentStatusFailed
			swept++
		}
	}
	return swept, nil
}

func (r *memPaymentRepo) ListCompletedByUser(ctx context.Context, userID string) ([]models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Payment
	for _, p := range r.payments {
		if p.UserID == userID && p.Status == models.PaymentStatusCompleted {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPaymentRepo) CountCompletedByUser(ctx context.Context, userID string) (int, error) {
	completed, err := r.ListCompletedByUser(ctx, userID)
	return len(completed), err
}

func (r *memPaymentRepo) ListAll(ctx context.Context) ([]models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Payment(nil), r.payments...), nil
}

func (r *memPaymentRepo) completedForLead(leadID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, p := range r.payments {
		if p.LeadID == leadID && p.Status == models.PaymentStatusCompleted {
			n++
		}
	}
	return n
}

type memServiceRepo struct {
	mu       sync.Mutex
	services map[string]models.Service
}

func newMemServiceRepo() *memServiceRepo {
	return &memServiceRepo{services: make(map[string]models.Service)}
}

func (r *memServiceRepo) Create(ctx context.Context, service models.Service) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if service.ID == "" {
		service.ID = uuid.New().String()
	}
	r.services[service.ID] = service
	return service.ID, nil
}

func (r *memServiceRepo) GetByID(ctx context.Context, id string) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	service, ok := r.services[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return &service, nil
}

func (r *memServiceRepo) List(ctx context.Context) ([]models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Service
	for _, s := range r.services {
		out = append(out, s)
	}
	return out, nil
}

// stubProvider records the last session request and returns either a canned
// session or an error.
type stubProvider struct {
	mu         sync.Mutex
	lastParams SessionParams
	session    *ProviderSession
	err        error
}

func (p *stubProvider) CreateSession(ctx context.Context, params SessionParams) (*ProviderSession, error) {
	p.mu.Lock()
	p.lastParams = params
	p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	if p.session != nil {
		return p.session, nil
	}
	return &ProviderSession{ID: "cs_test", URL: "https://checkout.example/cs_test", PaymentIntentID: "pi_test"}, nil
}

// passthroughVerifier accepts every payload and parses it as an event.
func passthroughVerifier(payload []byte, sigHeader string) (stripe.Event, error) {
	var event stripe.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return stripe.Event{}, err
	}
	return event, nil
}

// rejectingVerifier fails every payload.
func rejectingVerifier(payload []byte, sigHeader string) (stripe.Event, error) {
	return stripe.Event{}, errors.New("signature mismatch")
}

// completedSessionEvent builds a checkout.session.completed payload with the
// given metadata.
func completedSessionEvent(leadID, userID string) []byte {
	object := map[string]interface{}{
		"id":             "cs_test",
		"payment_intent": "pi_test",
		"metadata": map[string]string{
			"lead_id": leadID,
			"user_id": userID,
		},
	}
	event := map[string]interface{}{
		"id":   "evt_test",
		"type": "checkout.session.completed",
		"data": map[string]interface{}{"object": object},
	}
	payload, _ := json.Marshal(event)
	return payload
}
