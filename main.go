package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leadmarket/config"
	"leadmarket/cron"
	"leadmarket/database"
	leadRepoPkg "leadmarket/database/repository/lead"
	paymentRepoPkg "leadmarket/database/repository/payment"
	serviceRepoPkg "leadmarket/database/repository/service"
	userRepoPkg "leadmarket/database/repository/user"
	"leadmarket/handlers"
	"leadmarket/middleware"
	"leadmarket/routes"
	"leadmarket/services/admin"
	"leadmarket/services/checkout"
	"leadmarket/services/lead"
	"leadmarket/services/notification"
	"leadmarket/services/user"
	"leadmarket/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	leadRepo := leadRepoPkg.NewMongoLeadRepo()
	paymentRepo := paymentRepoPkg.NewMongoPaymentRepo()
	serviceRepo := serviceRepoPkg.NewMongoServiceRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// services.
	userService := &user.DefaultUserService{
		Repo:   userRepo,
		Logger: logger,
	}
	handlers.SetUserService(userService)

	notificationService := &notification.DefaultNotificationService{
		Users:  userRepo,
		Logger: logger,
	}

	leadService := &lead.DefaultLeadService{
		Repo:        leadRepo,
		PaymentRepo: paymentRepo,
		ServiceRepo: serviceRepo,
		Notify:      notificationService,
		Logger:      logger,
	}

	checkoutService := &checkout.DefaultCheckoutService{
		LeadRepo:      leadRepo,
		PaymentRepo:   paymentRepo,
		ServiceRepo:   serviceRepo,
		Provider:      checkout.NewStripeProvider(),
		Verify:        checkout.StripeSignatureVerifier(config.AppConfig.StripeWebhookSecret),
		Cache:         utils.GetCacheClient(),
		Logger:        logger,
		PublicBaseURL: config.AppConfig.PublicBaseURL,
	}

	adminService := &admin.DefaultAdminService{
		Leads:    leadRepo,
		Payments: paymentRepo,
		Users:    userRepo,
		Services: serviceRepo,
	}

	leadHandler := handlers.NewLeadHandler(leadService, logger)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, logger)
	serviceHandler := handlers.NewServiceHandler(serviceRepo, logger)
	adminHandler := handlers.NewAdminHandler(adminService, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo: userRepo,

		// Lead endpoints.
		CreateLeadHandler:         leadHandler.CreateLeadHandler,
		ListLeadsHandler:          leadHandler.ListLeadsHandler,
		ListPurchasedLeadsHandler: leadHandler.ListPurchasedLeadsHandler,

		// Checkout and webhook endpoints.
		CreateCheckoutHandler: checkoutHandler.CreateCheckoutHandler,
		StripeWebhookHandler:  checkoutHandler.StripeWebhookHandler,

		// Service catalog endpoints.
		ListServicesHandler:  serviceHandler.ListServicesHandler,
		CreateServiceHandler: serviceHandler.CreateServiceHandler,

		// User endpoints.
		RegisterUserHandler:     handlers.RegisterUserHandler,
		AuthenticateUserHandler: handlers.AuthenticateUserHandler,
		RevokeUserTokenHandler:  handlers.RevokeUserTokenHandler,
		UpdateFCMTokenHandler:   handlers.UpdateFCMTokenHandler,

		// Admin endpoints.
		ExpireLeadHandler:     leadHandler.ExpireLeadHandler,
		GetAllLeadsHandler:    adminHandler.GetAllLeadsHandler,
		GetAllPaymentsHandler: adminHandler.GetAllPaymentsHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background sweep of abandoned pending payments.
	cron.InitPaymentSweeper(paymentRepo)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()},
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
