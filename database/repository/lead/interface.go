package leadRepo

import (
	"context"
	"log"

	"leadmarket/database"
	"leadmarket/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// LeadRepository persists leads. The MarkPurchased/MarkExpired operations are
// conditional writes: they apply only if the lead is still in the new state
// and report whether a document was actually modified. A false return with a
// nil error means another actor already moved the lead out of new.
type LeadRepository interface {
	Create(ctx context.Context, lead models.Lead) error
	GetByID(ctx context.Context, id string) (*models.Lead, error)
	ListByStatus(ctx context.Context, status models.LeadStatus) ([]models.Lead, error)
	ListByIDs(ctx context.Context, ids []string) ([]models.Lead, error)
	ListAll(ctx context.Context) ([]models.Lead, error)
	MarkPurchased(ctx context.Context, id string) (bool, error)
	MarkExpired(ctx context.Context, id string) (bool, error)
}

type mongoLeadRepo struct {
	coll *mongo.Collection
}

// NewMongoLeadRepo returns a LeadRepository backed by MongoDB.
func NewMongoLeadRepo() LeadRepository {
	repo := &mongoLeadRepo{
		coll: database.DB().Collection("leads"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		log.Printf("lead repo: %v", err)
	}
	return repo
}
