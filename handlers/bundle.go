package handlers

import (
	userRepo "leadmarket/database/repository/user"

	"github.com/gin-gonic/gin"
)

// HandlerBundle aggregates all route handlers plus the repositories the
// auth middleware needs.
type HandlerBundle struct {
	UserRepo userRepo.UserRepository

	// Lead endpoints.
	CreateLeadHandler         gin.HandlerFunc
	ListLeadsHandler          gin.HandlerFunc
	ListPurchasedLeadsHandler gin.HandlerFunc

	// Checkout and webhook endpoints.
	CreateCheckoutHandler gin.HandlerFunc
	StripeWebhookHandler  gin.HandlerFunc

	// Service catalog endpoints.
	ListServicesHandler  gin.HandlerFunc
	CreateServiceHandler gin.HandlerFunc

	// User endpoints.
	RegisterUserHandler     gin.HandlerFunc
	AuthenticateUserHandler gin.HandlerFunc
	RevokeUserTokenHandler  gin.HandlerFunc
	UpdateFCMTokenHandler   gin.HandlerFunc

	// Admin endpoints.
	ExpireLeadHandler     gin.HandlerFunc
	GetAllLeadsHandler    gin.HandlerFunc
	GetAllPaymentsHandler gin.HandlerFunc
}
