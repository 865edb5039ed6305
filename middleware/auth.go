package middleware

import (
	"context"
	"net/http"
	"strings"

	userRepo "leadmarket/database/repository/user"
	"leadmarket/models"
	"leadmarket/utils"

	"github.com/gin-gonic/gin"
)

const (
	// ContextUserID is the gin context key holding the authenticated user id.
	ContextUserID = "userID"
	// ContextUserRole is the gin context key holding the authenticated role.
	ContextUserRole = "userRole"
)

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
}

// authenticate validates the bearer token and checks it is the user's current
// token. The token hash is looked up in the Redis auth cache first; on a miss
// the profile is loaded and compared directly.
func authenticate(c *gin.Context, repo userRepo.UserRepository) (userID, role string, ok bool) {
	tokenString := bearerToken(c)
	if tokenString == "" {
		return "", "", false
	}

	userID, role, err := utils.ExtractClaimsFromToken(tokenString)
	if err != nil || userID == "" {
		return "", "", false
	}

	tokenHash := utils.HashToken(tokenString)
	if cached := utils.GetCachedTokenHash(utils.GetAuthCacheClient(), userID); cached != "" {
		if cached != tokenHash {
			return "", "", false
		}
		return userID, role, true
	}

	user, err := repo.GetByID(context.Background(), userID)
	if err != nil || user.TokenHash != tokenHash {
		return "", "", false
	}
	return userID, string(user.Role), true
}

// JWTAuthBusinessMiddleware guards endpoints that require an authenticated
// business account.
func JWTAuthBusinessMiddleware(repo userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role, ok := authenticate(c, repo)
		if !ok {
			abortUnauthorized(c)
			return
		}
		if role != string(models.RoleBusiness) && role != string(models.RoleAdmin) {
			abortUnauthorized(c)
			return
		}
		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, role)
		c.Next()
	}
}

// JWTAuthAdminMiddleware guards operator-only endpoints.
func JWTAuthAdminMiddleware(repo userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role, ok := authenticate(c, repo)
		if !ok || role != string(models.RoleAdmin) {
			abortUnauthorized(c)
			return
		}
		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, role)
		c.Next()
	}
}
