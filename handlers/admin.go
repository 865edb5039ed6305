package handlers

import (
	"net/http"

	"leadmarket/services/admin"
	"leadmarket/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler exposes the operator dashboard views.
type AdminHandler struct {
	svc    admin.AdminService
	logger *zap.Logger
}

func NewAdminHandler(svc admin.AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{svc: svc, logger: logger}
}

// GetAllLeadsHandler returns every lead on the platform.
func (h *AdminHandler) GetAllLeadsHandler(c *gin.Context) {
	leads, err := h.svc.GetAllLeads(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list leads", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list leads", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"leads": leads})
}

// GetAllPaymentsHandler returns every payment with its business, lead and
// category summaries.
func (h *AdminHandler) GetAllPaymentsHandler(c *gin.Context) {
	payments, err := h.svc.GetAllPayments(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list payments", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list payments", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}
