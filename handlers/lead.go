package handlers

import (
	"errors"
	"net/http"

	"leadmarket/middleware"
	"leadmarket/services/lead"
	"leadmarket/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LeadHandler exposes lead submission, the business feeds and expiration.
type LeadHandler struct {
	svc    lead.LeadService
	logger *zap.Logger
}

func NewLeadHandler(svc lead.LeadService, logger *zap.Logger) *LeadHandler {
	return &LeadHandler{svc: svc, logger: logger}
}

// CreateLeadHandler accepts a homeowner's service request. Public endpoint.
func (h *LeadHandler) CreateLeadHandler(c *gin.Context) {
	var req lead.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	created, err := h.svc.CreateLead(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, lead.ErrInvalidLead) {
			utils.JSONError(c, http.StatusBadRequest, "invalid lead submission", err.Error())
			return
		}
		h.logger.Error("lead creation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to create lead", "")
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListLeadsHandler returns the available-lead feed for the authenticated
// business, contact details masked unless purchased.
func (h *LeadHandler) ListLeadsHandler(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	views, err := h.svc.ListAvailable(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list leads", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list leads", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"leads": views})
}

// ListPurchasedLeadsHandler returns the leads this business has unlocked,
// with full contact details.
func (h *LeadHandler) ListPurchasedLeadsHandler(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	leads, err := h.svc.ListPurchased(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list purchased leads", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list purchased leads", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"leads": leads})
}

// ExpireLeadHandler is the operator action retiring a stale lead. Losing the
// race against a purchase is reported, not swallowed.
func (h *LeadHandler) ExpireLeadHandler(c *gin.Context) {
	leadID := c.Param("id")
	if leadID == "" {
		utils.JSONError(c, http.StatusBadRequest, "lead id is required", "")
		return
	}

	err := h.svc.ExpireLead(c.Request.Context(), leadID)
	if err != nil {
		if errors.Is(err, lead.ErrLeadNotExpirable) {
			utils.JSONError(c, http.StatusConflict, "Lead is not expirable", "already purchased or already expired")
			return
		}
		h.logger.Error("lead expiration failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to expire lead", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "expired"})
}
