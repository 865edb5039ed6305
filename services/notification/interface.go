package notification

import (
	"context"

	userRepo "leadmarket/database/repository/user"
	"leadmarket/models"

	"go.uber.org/zap"
)

// NotificationService announces marketplace events to business devices over
// FCM.
type NotificationService interface {
	NotifyNewLead(ctx context.Context, lead models.Lead, serviceName string)
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Users  userRepo.UserRepository
	Logger *zap.Logger
}
