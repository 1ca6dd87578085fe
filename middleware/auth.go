package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ismaelescalante7/challenge-leverbox/utils"
)

const claimsKey = "token_claims"

// AuthMiddleware requires a valid bearer token signed with secret.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {

		authHeader := c.GetHeader("Authorization")

		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid authorization format"})
			return
		}

		claims, err := utils.ParseJWT(secret, parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token"})
			return
		}

		c.Set(claimsKey, claims)
		c.Set("subject", claims.Subject)
		c.Next()
	}
}

// ScopeMiddleware lets the request through when the token carries scope.
// It must run after AuthMiddleware.
func ScopeMiddleware(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get(claimsKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Token claims not found in context"})
			return
		}

		claims, ok := v.(*utils.TokenClaims)
		if !ok || !claims.Allows(scope) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "You do not have permission to access this resource"})
			return
		}

		c.Next()
	}
}

// WriteScope guards mutating methods and lets reads through.
func WriteScope() gin.HandlerFunc {
	guard := ScopeMiddleware(utils.ScopeWrite)
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
		default:
			guard(c)
		}
	}
}
