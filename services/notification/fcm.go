package notification

import (
	"context"
	"fmt"

	"leadmarket/models"
	"leadmarket/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// NotifyNewLead pushes a new-lead announcement to every business subscribed
// to the lead's service category. Delivery is best-effort; failures are
// logged and never surfaced to the submitting homeowner. Contact details are
// never included in the push.
func (s *DefaultNotificationService) NotifyNewLead(ctx context.Context, lead models.Lead, serviceName string) {
	if utils.FCMClient == nil {
		return
	}

	businesses, err := s.Users.ListByService(ctx, lead.ServiceID)
	if err != nil {
		s.Logger.Error("failed to list subscribed businesses",
			zap.String("serviceId", lead.ServiceID), zap.Error(err))
		return
	}

	title := fmt.Sprintf("New %s lead", serviceName)
	body := fmt.Sprintf("A homeowner in %s is looking for %s.", lead.City, serviceName)
	data := map[string]string{
		"leadId":    lead.ID,
		"serviceId": lead.ServiceID,
		"city":      lead.City,
	}

	for _, b := range businesses {
		if b.FCMToken == "" {
			continue
		}
		msg := &messaging.Message{
			Token: b.FCMToken,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Data: data,
		}
		if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
			s.Logger.Warn("failed to send lead notification",
				zap.String("userId", b.ID), zap.Error(err))
		}
	}
}
