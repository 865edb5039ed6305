package paymentRepo

import (
	"context"
	"log"
	"time"

	"leadmarket/database"
	"leadmarket/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// PaymentRepository persists payment attempts. CompletePending is a
// conditional write scoped to (lead, user, status == pending); duplicate
// webhook deliveries race on it and only one can observe a modified document.
type PaymentRepository interface {
	Create(ctx context.Context, payment models.Payment) error
	GetByLeadAndUser(ctx context.Context, leadID, userID string) (*models.Payment, error)
	HasCompleted(ctx context.Context, leadID, userID string) (bool, error)
	CompletePending(ctx context.Context, leadID, userID, paymentIntentID string) (bool, error)
	FailStalePending(ctx context.Context, olderThan time.Time) (int64, error)
	ListCompletedByUser(ctx context.Context, userID string) ([]models.Payment, error)
	CountCompletedByUser(ctx context.Context, userID string) (int, error)
	ListAll(ctx context.Context) ([]models.Payment, error)
}

type mongoPaymentRepo struct {
	coll *mongo.Collection
}

// NewMongoPaymentRepo returns a PaymentRepository backed by MongoDB.
func NewMongoPaymentRepo() PaymentRepository {
	repo := &mongoPaymentRepo{
		coll: database.DB().Collection("payments"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		log.Printf("payment repo: %v", err)
	}
	return repo
}
