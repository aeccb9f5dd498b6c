package middleware

import (
	"net/http"
	"strings"

	"stayhub/models"
	"stayhub/utils"

	"github.com/gin-gonic/gin"
)

// actorKey is the context key under which the resolved actor is stored.
const actorKey = "actor"

// JWTAuthMiddleware resolves the bearer token into an Actor and stores it
// in the request context. Requests without a valid token are rejected.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, _, isAdmin, err := utils.ExtractIdentity(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(actorKey, models.Actor{UserID: userID, IsAdmin: isAdmin})
		c.Next()
	}
}

// AdminOnlyMiddleware rejects requests whose actor is not an admin. Must be
// mounted behind JWTAuthMiddleware.
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok || !actor.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

// CurrentActor retrieves the actor resolved by JWTAuthMiddleware.
func CurrentActor(c *gin.Context) (models.Actor, bool) {
	val, exists := c.Get(actorKey)
	if !exists {
		return models.Actor{}, false
	}
	actor, ok := val.(models.Actor)
	return actor, ok
}
