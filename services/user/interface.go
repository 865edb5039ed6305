package user

import (
	"context"

	userRepo "leadmarket/database/repository/user"
	"leadmarket/models"

	"go.uber.org/zap"
)

// RegisterRequest is a business sign-up.
type RegisterRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	BusinessName string `json:"business_name"`
	ServiceID    string `json:"service_id"`
}

// AuthResponse carries the issued token and the profile it belongs to.
type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// UserService owns business registration, authentication and token
// revocation.
type UserService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Authenticate(ctx context.Context, email, password string) (*AuthResponse, error)
	RevokeToken(ctx context.Context, userID string) error
	UpdateFCMToken(ctx context.Context, userID, fcmToken string) error
	GetByID(ctx context.Context, userID string) (*models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo   userRepo.UserRepository
	Logger *zap.Logger
}
