package handlers

import (
	"net/http"

	serviceRepo "leadmarket/database/repository/service"
	"leadmarket/models"
	"leadmarket/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ServiceHandler exposes the service category catalog.
type ServiceHandler struct {
	repo   serviceRepo.ServiceRepository
	logger *zap.Logger
}

func NewServiceHandler(repo serviceRepo.ServiceRepository, logger *zap.Logger) *ServiceHandler {
	return &ServiceHandler{repo: repo, logger: logger}
}

// ListServicesHandler returns all service categories with lead pricing.
func (h *ServiceHandler) ListServicesHandler(c *gin.Context) {
	services, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list services", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list services", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// CreateServiceHandler adds a service category. Admin only.
func (h *ServiceHandler) CreateServiceHandler(c *gin.Context) {
	var input struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		PriceCents  int64  `json:"price_cents" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	id, err := h.repo.Create(c.Request.Context(), models.Service{
		Name:        input.Name,
		Description: input.Description,
		PriceCents:  input.PriceCents,
	})
	if err != nil {
		h.logger.Error("failed to create service", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to create service", "")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}
