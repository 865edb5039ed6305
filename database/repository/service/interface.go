package serviceRepo

import (
	"context"
	"log"

	"leadmarket/database"
	"leadmarket/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ServiceRepository persists the service category catalog and its lead
// pricing.
type ServiceRepository interface {
	Create(ctx context.Context, service models.Service) (string, error)
	GetByID(ctx context.Context, id string) (*models.Service, error)
	List(ctx context.Context) ([]models.Service, error)
}

type mongoServiceRepo struct {
	coll *mongo.Collection
}

// NewMongoServiceRepo returns a ServiceRepository backed by MongoDB.
func NewMongoServiceRepo() ServiceRepository {
	repo := &mongoServiceRepo{
		coll: database.DB().Collection("services"),
	}
	if err := repo.ensureIndexes(); err != nil {
		log.Printf("service repo: %v", err)
	}
	return repo
}
