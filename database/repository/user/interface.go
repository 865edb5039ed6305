package userRepo

import (
	"context"
	"log"

	"leadmarket/database"
	"leadmarket/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository persists business and admin profiles.
type UserRepository interface {
	Create(ctx context.Context, user models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ListByService(ctx context.Context, serviceID string) ([]models.User, error)
	UpdateTokenHash(ctx context.Context, id, tokenHash string) error
	UpdateFCMToken(ctx context.Context, id, fcmToken string) error
}

type mongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo returns a UserRepository backed by MongoDB.
func NewMongoUserRepo() UserRepository {
	repo := &mongoUserRepo{
		coll: database.DB().Collection("users"),
	}
	if err := repo.ensureIndexes(); err != nil {
		log.Printf("user repo: %v", err)
	}
	return repo
}
