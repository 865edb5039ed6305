package leadRepo

import (
	"context"
	"errors"
	"time"

	"leadmarket/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrLeadNotFound is returned when no lead matches the given id.
var ErrLeadNotFound = errors.New("lead not found")

// Create inserts a new lead.
func (r *mongoLeadRepo) Create(ctx context.Context, lead models.Lead) error {
	if lead.ID == "" {
		lead.ID = uuid.New().String()
	}
	lead.CreatedAt = time.Now()
	lead.UpdatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, lead)
	return err
}

// GetByID returns a lead by its ID.
func (r *mongoLeadRepo) GetByID(ctx context.Context, id string) (*models.Lead, error) {
	var lead models.Lead
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&lead)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}
	return &lead, nil
}
