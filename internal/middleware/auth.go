package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/geo-directory/backend/internal/auth"
	"github.com/geo-directory/backend/pkg/response"
)

const (
	// HeaderAPIKey carries the shared API key.
	HeaderAPIKey = "X-API-Key"
	// ContextPrincipal is the key for the authenticated auth.Principal in gin context.
	ContextPrincipal = "principal"
)

// APIKey returns a middleware that accepts either an X-API-Key header or an
// "Authorization: Bearer <jwt>" header and rejects everything else with 401 INVALID_API_KEY.
// The API key wins when both are sent.
func APIKey(authn *auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			p   auth.Principal
			err error
		)
		key := c.GetHeader(HeaderAPIKey)
		if token, ok := bearer(c.GetHeader("Authorization")); ok && key == "" {
			p, err = authn.CheckBearer(token)
		} else {
			p, err = authn.CheckAPIKey(key)
		}
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		c.Set(ContextPrincipal, p)
		c.Next()
	}
}

func bearer(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
