package routes

import (
	"net/http"
	"time"

	"leadmarket/handlers"
	"leadmarket/middleware"
	"leadmarket/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.RegisterUserHandler)
		api.POST("/login", hb.AuthenticateUserHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthBusinessMiddleware(hb.UserRepo))
		api.DELETE("/revoke", hb.RevokeUserTokenHandler)
		api.PUT("/fcm-token", hb.UpdateFCMTokenHandler)
	}
}

// RegisterLeadRoutes registers lead submission and the business feeds.
func RegisterLeadRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/leads")
	{
		// Homeowner submission is public.
		api.POST("", hb.CreateLeadHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthBusinessMiddleware(hb.UserRepo))
		protected.GET("", hb.ListLeadsHandler)
		protected.GET("/purchased", hb.ListPurchasedLeadsHandler)
	}
}

// RegisterCheckoutRoutes registers checkout initiation and the processor
// webhook. The webhook is unauthenticated; the payload signature is its
// authentication.
func RegisterCheckoutRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	checkoutGroup := r.Group("/api/checkout")
	{
		checkoutGroup.Use(middleware.JWTAuthBusinessMiddleware(hb.UserRepo))
		checkoutGroup.POST("", hb.CreateCheckoutHandler)
	}

	r.POST("/api/webhooks/stripe", hb.StripeWebhookHandler)
}

// RegisterServiceRoutes registers the service category catalog.
func RegisterServiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/services")
	{
		api.GET("", hb.ListServicesHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthAdminMiddleware(hb.UserRepo))
		protected.POST("", hb.CreateServiceHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for operator actions.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthAdminMiddleware(hb.UserRepo))
		adminGroup.GET("/leads", hb.GetAllLeadsHandler)
		adminGroup.GET("/payments", hb.GetAllPaymentsHandler)
		adminGroup.PUT("/leads/:id/expire", hb.ExpireLeadHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterUserRoutes(r, hb)
	RegisterLeadRoutes(r, hb)
	RegisterCheckoutRoutes(r, hb)
	RegisterServiceRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
