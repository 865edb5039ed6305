package paymentRepo

import (
	"context"
	"errors"
	"time"

	"leadmarket/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrPaymentNotFound is returned when no payment matches the given pair.
var ErrPaymentNotFound = errors.New("payment not found")

// Create inserts a new payment attempt.
func (r *mongoPaymentRepo) Create(ctx context.Context, payment models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	payment.CreatedAt = time.Now()
	payment.UpdatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, payment)
	return err
}

// GetByLeadAndUser returns the most recent payment for a (lead, user) pair.
func (r *mongoPaymentRepo) GetByLeadAndUser(ctx context.Context, leadID, userID string) (*models.Payment, error) {
	filter := bson.M{"lead_id": leadID, "user_id": userID}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var payment models.Payment
	err := r.coll.FindOne(ctx, filter, opts).Decode(&payment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}
