package lead

import (
	"context"
	"fmt"
	"time"

	"leadmarket/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateLead validates and stores a homeowner submission in the new state,
// then announces it to businesses subscribed to its category.
func (s *DefaultLeadService) CreateLead(ctx context.Context, req CreateLeadRequest) (*models.Lead, error) {
	if !req.ContactPreference.Valid() {
		return nil, fmt.Errorf("%w: unknown contact preference %q", ErrInvalidLead, req.ContactPreference)
	}
	if req.ContactPreference == models.ContactByPhone && req.Phone == "" {
		return nil, fmt.Errorf("%w: phone contact requested without a phone number", ErrInvalidLead)
	}
	if req.ContactPreference == models.ContactByEmail && req.Email == "" {
		return nil, fmt.Errorf("%w: email contact requested without an email address", ErrInvalidLead)
	}

	service, err := s.ServiceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown service category %q", ErrInvalidLead, req.ServiceID)
	}

	lead := models.Lead{
		ID:                uuid.New().String(),
		ServiceID:         service.ID,
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		City:              req.City,
		ZipCode:           req.ZipCode,
		Description:       req.Description,
		ContactPreference: req.ContactPreference,
		Status:            models.LeadStatusNew,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
	if err := s.Repo.Create(ctx, lead); err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}

	s.Logger.Info("lead created",
		zap.String("leadId", lead.ID),
		zap.String("serviceId", service.ID),
		zap.String("city", lead.City))

	if s.Notify != nil {
		go s.Notify.NotifyNewLead(context.Background(), lead, service.Name)
	}

	return &lead, nil
}

// ListAvailable returns all new leads with contact details masked, flagging
// the ones this business has already unlocked.
func (s *DefaultLeadService) ListAvailable(ctx context.Context, userID string) ([]models.LeadView, error) {
	leads, err := s.Repo.ListByStatus(ctx, models.LeadStatusNew)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}

	payments, err := s.PaymentRepo.ListCompletedByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	purchased := make(map[string]bool, len(payments))
	for _, p := range payments {
		purchased[p.LeadID] = true
	}

	views := make([]models.LeadView, 0, len(leads))
	for _, l := range leads {
		view := models.LeadView{Lead: l, IsPurchased: purchased[l.ID]}
		if !view.IsPurchased {
			view.Lead = l.Masked()
		}
		views = append(views, view)
	}
	return views, nil
}

// ListPurchased returns the leads this business holds completed payments on,
// with full contact details.
func (s *DefaultLeadService) ListPurchased(ctx context.Context, userID string) ([]models.Lead, error) {
	payments, err := s.PaymentRepo.ListCompletedByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	if len(payments) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(payments))
	for _, p := range payments {
		ids = append(ids, p.LeadID)
	}
	leads, err := s.Repo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchased leads: %w", err)
	}
	return leads, nil
}

// ListAll returns every lead for the admin dashboard.
func (s *DefaultLeadService) ListAll(ctx context.Context) ([]models.Lead, error) {
	return s.Repo.ListAll(ctx)
}

// ExpireLead conditionally transitions a lead from new to expired. The same
// status precondition the webhook uses guards the write, so an expiration
// can never land on a lead that was just purchased; losing the race is a
// user-facing failure here because the operation is operator-initiated.
func (s *DefaultLeadService) ExpireLead(ctx context.Context, leadID string) error {
	won, err := s.Repo.MarkExpired(ctx, leadID)
	if err != nil {
		return fmt.Errorf("failed to expire lead: %w", err)
	}
	if !won {
		return ErrLeadNotExpirable
	}
	s.Logger.Info("lead expired", zap.String("leadId", leadID))
	return nil
}
