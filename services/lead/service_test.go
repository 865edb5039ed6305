package lead

import (
	"context"
	"sync"
	"testing"
	"time"

	leadRepo "leadmarket/database/repository/lead"
	paymentRepo "leadmarket/database/repository/payment"
	serviceRepo "leadmarket/database/repository/service"
	"leadmarket/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeLeadRepo struct {
	mu    sync.Mutex
	leads map[string]models.Lead
}

func newFakeLeadRepo() *fakeLeadRepo {
	return &fakeLeadRepo{leads: make(map[string]models.Lead)}
}

func (r *fakeLeadRepo) Create(ctx context.Context, lead models.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leads[lead.ID] = lead
	return nil
}

func (r *fakeLeadRepo) GetByID(ctx context.Context, id string) (*models.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lead, ok := r.leads[id]
	if !ok {
		return nil, leadRepo.ErrLeadNotFound
	}
	return &lead, nil
}

func (r *fakeLeadRepo) ListByStatus(ctx context.Context, status models.LeadStatus) ([]models.Lead, error) {
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

func (r *fakeLeadRepo) ListByIDs(ctx context.Context, ids []string) ([]models.Lead, error) {
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

func (r *fakeLeadRepo) ListAll(ctx context.Context) ([]models.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Lead, 0, len(r.leads))
	for _, l := range r.leads {
		out = append(out, l)
	}
	return out, nil
}

func (r *fakeLeadRepo) markFromNew(id string, to models.LeadStatus) (bool, error) {
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

func (r *fakeLeadRepo) MarkPurchased(ctx context.Context, id string) (bool, error) {
	return r.markFromNew(id, models.LeadStatusPurchased)
}

func (r *fakeLeadRepo) MarkExpired(ctx context.Context, id string) (bool, error) {
	return r.markFromNew(id, models.LeadStatusExpired)
}

type fakePaymentRepo struct {
	mu       sync.Mutex
	payments []models.Payment
}

func (r *fakePaymentRepo) Create(ctx context.Context, payment models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments = append(r.payments, payment)
	return nil
}

func (r *fakePaymentRepo) GetByLeadAndUser(ctx context.Context, leadID, userID string) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.payments {
		if r.payments[i].LeadID == leadID && r.payments[i].UserID == userID {
			p := r.payments[i]
			return &p, nil
		}
	}
	return nil, paymentRepo.ErrPaymentNotFound
}

func (r *fakePaymentRepo) HasCompleted(ctx context.Context, leadID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if p.LeadID == leadID && p.UserID == userID && p.Status == models.PaymentStatusCompleted {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePaymentRepo) CompletePending(ctx context.Context, leadID, userID, paymentIntentID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.payments {
		p := &r.payments[i]
		if p.LeadID == leadID && p.UserID == userID && p.Status == models.PaymentStatusPending {
			p.Status = models.PaymentStatusCompleted
			p.StripePaymentIntentID = paymentIntentID
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePaymentRepo) FailStalePending(ctx context.Context, olderThan time.Time) (int64, error) {
	return 0, nil
}

func (r *fakePaymentRepo) ListCompletedByUser(ctx context.Context, userID string) ([]models.Payment, error) {
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

func (r *fakePaymentRepo) CountCompletedByUser(ctx context.Context, userID string) (int, error) {
	done, err := r.ListCompletedByUser(ctx, userID)
	return len(done), err
}

func (r *fakePaymentRepo) ListAll(ctx context.Context) ([]models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Payment(nil), r.payments...), nil
}

type fakeServiceRepo struct {
	services map[string]models.Service
}

func (r *fakeServiceRepo) Create(ctx context.Context, service models.Service) (string, error) {
	r.services[service.ID] = service
	return service.ID, nil
}

func (r *fakeServiceRepo) GetByID(ctx context.Context, id string) (*models.Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return &s, nil
}

func (r *fakeServiceRepo) List(ctx context.Context) ([]models.Service, error) {
	out := make([]models.Service, 0, len(r.services))
	for _, s := range r.services {
		out = append(out, s)
	}
	return out, nil
}

func newTestService() (*DefaultLeadService, *fakeLeadRepo, *fakePaymentRepo) {
	leads := newFakeLeadRepo()
	payments := &fakePaymentRepo{}
	services := &fakeServiceRepo{services: map[string]models.Service{
		"svc-plumbing": {ID: "svc-plumbing", Name: "Plumbing", PriceCents: 1500},
	}}
	svc := &DefaultLeadService{
		Repo:        leads,
		PaymentRepo: payments,
		ServiceRepo: services,
		Logger:      zap.NewNop(),
	}
	return svc, leads, payments
}

func validRequest() CreateLeadRequest {
	return CreateLeadRequest{
		ServiceID:         "svc-plumbing",
		Name:              "Pat Homeowner",
		Phone:             "555-0101",
		City:              "Springfield",
		ZipCode:           "12345",
		Description:       "Leaking kitchen faucet",
		ContactPreference: models.ContactByPhone,
	}
}

func TestCreateLead(t *testing.T) {
	svc, leads, _ := newTestService()

	lead, err := svc.CreateLead(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, models.LeadStatusNew, lead.Status)

	stored, err := leads.GetByID(context.Background(), lead.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pat Homeowner", stored.Name)
}

func TestCreateLeadValidation(t *testing.T) {
	svc, _, _ := newTestService()

	cases := []struct {
		name   string
		mutate func(*CreateLeadRequest)
	}{
		{"unknown preference", func(r *CreateLeadRequest) { r.ContactPreference = "fax" }},
		{"phone preference without phone", func(r *CreateLeadRequest) { r.Phone = "" }},
		{"email preference without email", func(r *CreateLeadRequest) {
			r.ContactPreference = models.ContactByEmail
			r.Email = ""
		}},
		{"unknown service", func(r *CreateLeadRequest) { r.ServiceID = "svc-nope" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			_, err := svc.CreateLead(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidLead)
		})
	}
}

func TestListAvailableMasksUnpurchased(t *testing.T) {
	svc, leads, payments := newTestService()

	require.NoError(t, leads.Create(context.Background(), models.Lead{
		ID: "lead-open", ServiceID: "svc-plumbing", Name: "Alex", Email: "alex@example.com",
		Phone: "555-0101", City: "Springfield", Status: models.LeadStatusNew,
	}))
	require.NoError(t, leads.Create(context.Background(), models.Lead{
		ID: "lead-mine", ServiceID: "svc-plumbing", Name: "Sam", Email: "sam@example.com",
		Phone: "555-0102", City: "Shelbyville", Status: models.LeadStatusNew,
	}))
	require.NoError(t, payments.Create(context.Background(), models.Payment{
		LeadID: "lead-mine", UserID: "biz-1", Status: models.PaymentStatusCompleted,
	}))

	views, err := svc.ListAvailable(context.Background(), "biz-1")
	require.NoError(t, err)
	require.Len(t, views, 2)

	byID := make(map[string]models.LeadView, len(views))
	for _, v := range views {
		byID[v.Lead.ID] = v
	}

	open := byID["lead-open"]
	assert.False(t, open.IsPurchased)
	assert.Empty(t, open.Lead.Name)
	assert.Empty(t, open.Lead.Email)
	assert.Empty(t, open.Lead.Phone)
	assert.Equal(t, "Springfield", open.Lead.City)

	mine := byID["lead-mine"]
	assert.True(t, mine.IsPurchased)
	assert.Equal(t, "Sam", mine.Lead.Name)
	assert.Equal(t, "sam@example.com", mine.Lead.Email)
}

func TestListPurchased(t *testing.T) {
	svc, leads, payments := newTestService()

	require.NoError(t, leads.Create(context.Background(), models.Lead{
		ID: "lead-1", Name: "Alex", Phone: "555-0101", Status: models.LeadStatusPurchased,
	}))
	require.NoError(t, payments.Create(context.Background(), models.Payment{
		LeadID: "lead-1", UserID: "biz-1", Status: models.PaymentStatusCompleted,
	}))
	require.NoError(t, payments.Create(context.Background(), models.Payment{
		LeadID: "lead-1", UserID: "biz-2", Status: models.PaymentStatusPending,
	}))

	got, err := svc.ListPurchased(context.Background(), "biz-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Alex", got[0].Name)

	// Pending payments unlock nothing.
	got, err = svc.ListPurchased(context.Background(), "biz-2")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExpireLead(t *testing.T) {
	svc, leads, _ := newTestService()

	require.NoError(t, leads.Create(context.Background(), models.Lead{
		ID: "lead-1", Status: models.LeadStatusNew,
	}))

	require.NoError(t, svc.ExpireLead(context.Background(), "lead-1"))

	got, err := leads.GetByID(context.Background(), "lead-1")
	require.NoError(t, err)
	assert.Equal(t, models.LeadStatusExpired, got.Status)

	// Second attempt loses the conditional update.
	assert.ErrorIs(t, svc.ExpireLead(context.Background(), "lead-1"), ErrLeadNotExpirable)
}

func TestExpireLeadNotNew(t *testing.T) {
	svc, leads, _ := newTestService()

	require.NoError(t, leads.Create(context.Background(), models.Lead{
		ID: "lead-sold", Status: models.LeadStatusPurchased,
	}))

	assert.ErrorIs(t, svc.ExpireLead(context.Background(), "lead-sold"), ErrLeadNotExpirable)
	assert.ErrorIs(t, svc.ExpireLead(context.Background(), "lead-missing"), ErrLeadNotExpirable)
}
