package paymentRepo

import (
	"context"

	"leadmarket/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// HasCompleted reports whether a completed payment exists for (lead, user).
func (r *mongoPaymentRepo) HasCompleted(ctx context.Context, leadID, userID string) (bool, error) {
	filter := bson.M{
		"lead_id": leadID,
		"user_id": userID,
		"status":  models.PaymentStatusCompleted,
	}
	count, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListCompletedByUser returns the completed payments held by a business,
// newest first.
func (r *mongoPaymentRepo) ListCompletedByUser(ctx context.Context, userID string) ([]models.Payment, error) {
	filter := bson.M{
		"user_id": userID,
		"status":  models.PaymentStatusCompleted,
	}
	return r.list(ctx, filter)
}

// CountCompletedByUser returns the number of completed payments held by a
// business.
func (r *mongoPaymentRepo) CountCompletedByUser(ctx context.Context, userID string) (int, error) {
	filter := bson.M{
		"user_id": userID,
		"status":  models.PaymentStatusCompleted,
	}
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// ListAll returns every payment, newest first.
func (r *mongoPaymentRepo) ListAll(ctx context.Context) ([]models.Payment, error) {
	return r.list(ctx, bson.M{})
}

func (r *mongoPaymentRepo) list(ctx context.Context, filter bson.M) ([]models.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}
