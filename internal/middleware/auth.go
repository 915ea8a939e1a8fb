package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/staff-manager/internal/domain/policy"
	"github.com/BruksfildServices01/staff-manager/internal/httperr"
	"github.com/BruksfildServices01/staff-manager/internal/token"
)

const ContextPrincipal = "principal"

type PrincipalResolver interface {
	Execute(ctx context.Context, userID uint) (*policy.Principal, error)
}

// AuthMiddleware requires a valid bearer token.
func AuthMiddleware(issuer *token.Issuer, resolver PrincipalResolver) gin.HandlerFunc {
	return bearer(issuer, resolver, true)
}

// OptionalAuthMiddleware lets requests without an Authorization header
// through as anonymous. A header that is present must still be valid.
func OptionalAuthMiddleware(issuer *token.Issuer, resolver PrincipalResolver) gin.HandlerFunc {
	return bearer(issuer, resolver, false)
}

func bearer(issuer *token.Issuer, resolver PrincipalResolver, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			if required {
				abortUnauthorized(c, "missing_authorization_header", "Missing Authorization header.")
				return
			}
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "invalid_authorization_header", "Authorization header must be 'Bearer <token>'.")
			return
		}

		claims, err := issuer.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			abortUnauthorized(c, "invalid_token", "Invalid or expired token.")
			return
		}

		userID, _ := claims.UserID()
		p, err := resolver.Execute(c.Request.Context(), userID)
		if err != nil {
			if be, ok := httperr.As(err); ok {
				abortUnauthorized(c, be.Code, be.Message)
				return
			}
			httperr.Respond(c, err)
			c.Abort()
			return
		}

		c.Set(ContextPrincipal, p)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.HTTPError{Code: code, Message: message})
}

// Principal returns the caller set by the auth or session middleware, or nil
// for an anonymous request.
func Principal(c *gin.Context) *policy.Principal {
	v, ok := c.Get(ContextPrincipal)
	if !ok {
		return nil
	}
	p, _ := v.(*policy.Principal)
	return p
}
