package handlers

import (
	"errors"
	"net/http"

	"leadmarket/middleware"
	"leadmarket/services/checkout"
	"leadmarket/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CheckoutHandler exposes checkout initiation and the processor webhook.
type CheckoutHandler struct {
	svc    checkout.CheckoutService
	logger *zap.Logger
}

func NewCheckoutHandler(svc checkout.CheckoutService, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{svc: svc, logger: logger}
}

// CreateCheckoutHandler starts a checkout session for the authenticated
// business and returns the redirect URL of the hosted payment page.
func (h *CheckoutHandler) CreateCheckoutHandler(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "missing authenticated user")
		return
	}

	var input struct {
		LeadID string `json:"lead_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "lead_id is required", err.Error())
		return
	}

	session, err := h.svc.InitiateCheckout(c.Request.Context(), userID, input.LeadID)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrLeadUnavailable):
			utils.JSONError(c, http.StatusNotFound, "Lead not found or already purchased", "")
		case errors.Is(err, checkout.ErrAlreadyPurchased):
			utils.JSONError(c, http.StatusBadRequest, "Lead already purchased", "")
		case errors.Is(err, checkout.ErrProviderUnavailable):
			utils.JSONError(c, http.StatusBadGateway, "Payment provider unavailable", "")
		default:
			h.logger.Error("checkout initiation failed", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to create checkout session", "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"checkout_url": session.CheckoutURL,
		"session_id":   session.SessionID,
	})
}

// StripeWebhookHandler receives signed completion events from the payment
// processor. A 5xx response makes the processor redeliver; duplicates are
// acknowledged with 200.
func (h *CheckoutHandler) StripeWebhookHandler(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to read request body", err.Error())
		return
	}
	sigHeader := c.GetHeader("Stripe-Signature")

	err = h.svc.HandleProviderEvent(c.Request.Context(), payload, sigHeader)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrInvalidSignature):
			utils.JSONError(c, http.StatusBadRequest, "Invalid signature", "")
		case errors.Is(err, checkout.ErrMalformedEvent):
			utils.JSONError(c, http.StatusBadRequest, "Missing required metadata", "")
		default:
			// Store failure: surface it so the processor retries delivery.
			h.logger.Error("webhook reconciliation failed", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Webhook processing failed", "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
