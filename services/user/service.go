package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	userRepo "leadmarket/database/repository/user"
	"leadmarket/models"
	"leadmarket/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenDuration = 72 * time.Hour

// Register creates a business profile and signs it in.
func (s *DefaultUserService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if _, err := s.Repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, userRepo.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing profile: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := models.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: string(hash),
		BusinessName: req.BusinessName,
		ServiceID:    req.ServiceID,
		Role:         models.RoleBusiness,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	s.Logger.Info("business registered", zap.String("userId", u.ID))
	return s.issueToken(ctx, u)
}

// Authenticate verifies credentials and issues a fresh token, rotating the
// stored token hash.
func (s *DefaultUserService) Authenticate(ctx context.Context, email, password string) (*AuthResponse, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issueToken(ctx, *u)
}

func (s *DefaultUserService) issueToken(ctx context.Context, u models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(u.ID, u.Email, string(u.Role), tokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	tokenHash := utils.HashToken(token)
	if err := s.Repo.UpdateTokenHash(ctx, u.ID, tokenHash); err != nil {
		return nil, fmt.Errorf("failed to store token hash: %w", err)
	}
	if err := utils.CacheTokenHash(utils.GetAuthCacheClient(), u.ID, tokenHash, tokenDuration); err != nil {
		s.Logger.Warn("failed to cache token hash", zap.Error(err))
	}

	u.TokenHash = tokenHash
	return &AuthResponse{Token: token, User: u}, nil
}

// RevokeToken invalidates the user's current token.
func (s *DefaultUserService) RevokeToken(ctx context.Context, userID string) error {
	if err := s.Repo.UpdateTokenHash(ctx, userID, ""); err != nil {
		return fmt.Errorf("failed to clear token hash: %w", err)
	}
	if err := utils.DeleteCachedTokenHash(utils.GetAuthCacheClient(), userID); err != nil {
		s.Logger.Warn("failed to drop cached token hash", zap.Error(err))
	}
	return nil
}

// UpdateFCMToken stores the device push token for new-lead announcements.
func (s *DefaultUserService) UpdateFCMToken(ctx context.Context, userID, fcmToken string) error {
	return s.Repo.UpdateFCMToken(ctx, userID, fcmToken)
}

// GetByID returns a profile by id.
func (s *DefaultUserService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	return s.Repo.GetByID(ctx, userID)
}
