package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"haulhub/internal/access"
	"haulhub/internal/service"
)

// claimsContextKey is the gin context key under which verified token
// claims are stored.
const claimsContextKey = "auth_claims"

// RequireAuth returns middleware that verifies the Bearer token and
// stores its claims in the request context. Requests without a valid
// token are rejected with 401.
func RequireAuth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			abortUnauthorized(c)
			return
		}

		claims, err := authService.VerifyToken(token)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// RequireResource returns middleware that gates a route group on the
// role rules for the given resource. It must run after RequireAuth.
func RequireResource(resource access.Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			abortUnauthorized(c)
			return
		}

		if !access.CanAccess(claims.Role, resource) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"status":  "error",
				"message": service.ErrAccessDenied.Error(),
			})
			return
		}

		c.Next()
	}
}

// ClaimsFromContext returns the verified claims stored by RequireAuth.
func ClaimsFromContext(c *gin.Context) (*service.Claims, bool) {
	value, exists := c.Get(claimsContextKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*service.Claims)
	return claims, ok
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"status":  "error",
		"message": "authentication required",
	})
}
