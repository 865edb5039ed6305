package admin

import (
	"context"
	"fmt"

	leadRepo "leadmarket/database/repository/lead"
	paymentRepo "leadmarket/database/repository/payment"
	serviceRepo "leadmarket/database/repository/service"
	userRepo "leadmarket/database/repository/user"
	"leadmarket/models"
)

// AdminService exposes operator views over leads and payment activity.
type AdminService interface {
	GetAllLeads(ctx context.Context) ([]models.Lead, error)
	GetAllPayments(ctx context.Context) ([]models.AdminPayment, error)
}

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	Leads    leadRepo.LeadRepository
	Payments paymentRepo.PaymentRepository
	Users    userRepo.UserRepository
	Services serviceRepo.ServiceRepository
}

// GetAllLeads returns every lead, newest first.
func (s *DefaultAdminService) GetAllLeads(ctx context.Context) ([]models.Lead, error) {
	return s.Leads.ListAll(ctx)
}

// GetAllPayments returns every payment joined with business, lead and
// category summaries.
func (s *DefaultAdminService) GetAllPayments(ctx context.Context) ([]models.AdminPayment, error) {
	payments, err := s.Payments.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	if len(payments) == 0 {
		return nil, nil
	}

	leadIDs := make([]string, 0, len(payments))
	seen := make(map[string]bool, len(payments))
	for _, p := range payments {
		if !seen[p.LeadID] {
			seen[p.LeadID] = true
			leadIDs = append(leadIDs, p.LeadID)
		}
	}

	leads, err := s.Leads.ListByIDs(ctx, leadIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	leadByID := make(map[string]models.Lead, len(leads))
	for _, l := range leads {
		leadByID[l.ID] = l
	}

	services, err := s.Services.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	serviceByID := make(map[string]models.Service, len(services))
	for _, svc := range services {
		serviceByID[svc.ID] = svc
	}

	out := make([]models.AdminPayment, 0, len(payments))
	for _, p := range payments {
		ap := models.AdminPayment{Payment: p}
		if u, err := s.Users.GetByID(ctx, p.UserID); err == nil {
			ap.BusinessEmail = u.Email
			ap.BusinessName = u.BusinessName
		}
		if l, ok := leadByID[p.LeadID]; ok {
			ap.LeadName = l.Name
			ap.LeadCity = l.City
			if svc, ok := serviceByID[l.ServiceID]; ok {
				ap.ServiceName = svc.Name
			}
		}
		out = append(out, ap)
	}
	return out, nil
}
