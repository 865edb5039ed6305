package lead

import (
	"context"

	leadRepo "leadmarket/database/repository/lead"
	paymentRepo "leadmarket/database/repository/payment"
	serviceRepo "leadmarket/database/repository/service"
	"leadmarket/models"

	"go.uber.org/zap"
)

// Notifier announces new leads to subscribed businesses. Implemented by the
// notification service; nil disables announcements.
type Notifier interface {
	NotifyNewLead(ctx context.Context, lead models.Lead, serviceName string)
}

// CreateLeadRequest is a homeowner's lead submission.
type CreateLeadRequest struct {
	ServiceID         string                   `json:"service_id" binding:"required"`
	Name              string                   `json:"name" binding:"required"`
	Email             string                   `json:"email"`
	Phone             string                   `json:"phone"`
	City              string                   `json:"city" binding:"required"`
	ZipCode           string                   `json:"zip_code"`
	Description       string                   `json:"description" binding:"required"`
	ContactPreference models.ContactPreference `json:"contact_preference" binding:"required"`
}

// LeadService owns lead submission, the business-facing feeds and the
// administrative expiration transition.
type LeadService interface {
	CreateLead(ctx context.Context, req CreateLeadRequest) (*models.Lead, error)
	ListAvailable(ctx context.Context, userID string) ([]models.LeadView, error)
	ListPurchased(ctx context.Context, userID string) ([]models.Lead, error)
	ListAll(ctx context.Context) ([]models.Lead, error)
	ExpireLead(ctx context.Context, leadID string) error
}

// DefaultLeadService is the production implementation.
type DefaultLeadService struct {
	Repo        leadRepo.LeadRepository
	PaymentRepo paymentRepo.PaymentRepository
	ServiceRepo serviceRepo.ServiceRepository
	Notify      Notifier
	Logger      *zap.Logger
}
