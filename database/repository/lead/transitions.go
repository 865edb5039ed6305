package leadRepo

import (
	"context"
	"time"

	"leadmarket/models"

	"go.mongodb.org/mongo-driver/bson"
)

// markFromNew applies the single allowed kind of lead transition: a
// conditional update that only matches while the lead is still new. The
// filter carries the precondition so concurrent actors cannot both win;
// the loser sees ModifiedCount == 0.
func (r *mongoLeadRepo) markFromNew(ctx context.Context, id string, to models.LeadStatus) (bool, error) {
	filter := bson.M{
		"id":     id,
		"status": models.LeadStatusNew,
	}
	update := bson.M{
		"$set": bson.M{
			"status":     to,
			"updated_at": time.Now(),
		},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// MarkPurchased transitions a lead from new to purchased.
func (r *mongoLeadRepo) MarkPurchased(ctx context.Context, id string) (bool, error) {
	return r.markFromNew(ctx, id, models.LeadStatusPurchased)
}

// MarkExpired transitions a lead from new to expired.
func (r *mongoLeadRepo) MarkExpired(ctx context.Context, id string) (bool, error) {
	return r.markFromNew(ctx, id, models.LeadStatusExpired)
}
