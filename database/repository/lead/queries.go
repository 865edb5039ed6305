package leadRepo

import (
	"context"

	"leadmarket/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoLeadRepo) list(ctx context.Context, filter bson.M) ([]models.Lead, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var leads []models.Lead
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, err
	}
	return leads, nil
}

// ListByStatus returns all leads in the given lifecycle state, newest first.
func (r *mongoLeadRepo) ListByStatus(ctx context.Context, status models.LeadStatus) ([]models.Lead, error) {
	return r.list(ctx, bson.M{"status": status})
}

// ListByIDs returns the leads matching the given ids, newest first.
func (r *mongoLeadRepo) ListByIDs(ctx context.Context, ids []string) ([]models.Lead, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.list(ctx, bson.M{"id": bson.M{"$in": ids}})
}

// ListAll returns every lead, newest first.
func (r *mongoLeadRepo) ListAll(ctx context.Context) ([]models.Lead, error) {
	return r.list(ctx, bson.M{})
}
