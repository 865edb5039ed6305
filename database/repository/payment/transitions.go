package paymentRepo

import (
	"context"
	"time"

	"leadmarket/models"

	"go.mongodb.org/mongo-driver/bson"
)

// CompletePending transitions the pending payment for (lead, user) to
// completed, recording the processor's payment intent reference. The
// status precondition lives in the filter itself, so of two concurrent
// deliveries only one update can modify a document; the other returns
// false and must be treated as already handled, not as a failure.
func (r *mongoPaymentRepo) CompletePending(ctx context.Context, leadID, userID, paymentIntentID string) (bool, error) {
	filter := bson.M{
		"lead_id": leadID,
		"user_id": userID,
		"status":  models.PaymentStatusPending,
	}
	update := bson.M{
		"$set": bson.M{
			"status":                   models.PaymentStatusCompleted,
			"stripe_payment_intent_id": paymentIntentID,
			"updated_at":               time.Now(),
		},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// FailStalePending marks pending payments created before the cutoff as
// failed and returns how many were swept. Abandoned checkout pages leave
// pending rows behind; this is the out-of-band cleanup for them.
func (r *mongoPaymentRepo) FailStalePending(ctx context.Context, olderThan time.Time) (int64, error) {
	filter := bson.M{
		"status":     models.PaymentStatusPending,
		"created_at": bson.M{"$lt": olderThan},
	}
	update := bson.M{
		"$set": bson.M{
			"status":     models.PaymentStatusFailed,
			"updated_at": time.Now(),
		},
	}
	res, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
