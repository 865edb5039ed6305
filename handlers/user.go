package handlers

import (
	"errors"
	"net/http"

	"leadmarket/middleware"
	"leadmarket/services/user"
	"leadmarket/utils"

	"github.com/gin-gonic/gin"
)

var userService user.UserService

// SetUserService wires the user service used by the package-level handlers.
func SetUserService(svc user.UserService) {
	userService = svc
}

// RegisterUserHandler creates a business account and signs it in.
func RegisterUserHandler(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	resp, err := userService.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			utils.JSONError(c, http.StatusConflict, "email already registered", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "registration failed", "")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// AuthenticateUserHandler verifies credentials and issues a token.
func AuthenticateUserHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	resp, err := userService.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			utils.JSONError(c, http.StatusUnauthorized, "invalid credentials", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "authentication failed", "")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RevokeUserTokenHandler signs the authenticated user out everywhere.
func RevokeUserTokenHandler(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	if err := userService.RevokeToken(c.Request.Context(), userID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to revoke token", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "revoked"})
}

// UpdateFCMTokenHandler stores the device push token for lead announcements.
func UpdateFCMTokenHandler(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	var input struct {
		FCMToken string `json:"fcm_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := userService.UpdateFCMToken(c.Request.Context(), userID, input.FCMToken); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update fcm token", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
