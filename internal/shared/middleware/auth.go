package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/auth"
	"blog-backend/internal/shared/response"
)

const identityKey = "identity"

// Authenticate resolves the Authorization header into an identity and
// stores it on the context. Requests without (or with bad) credentials
// continue as anonymous; individual routes decide whether that is
// acceptable.
func Authenticate(resolver *auth.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if credential := bearerCredential(c); credential != "" {
			if identity := resolver.Resolve(c.Request.Context(), credential); identity != nil {
				c.Set(identityKey, identity)
			}
		}
		c.Next()
	}
}

// RequireAuth aborts anonymous requests with a 401.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentIdentity(c) == nil {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireStaff aborts requests whose identity is not a staff account.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := CurrentIdentity(c)
		if identity == nil {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}
		if !identity.IsStaff {
			response.Forbidden(c, "staff access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the authenticated identity, or nil for
// anonymous requests.
func CurrentIdentity(c *gin.Context) *auth.Identity {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil
	}
	identity, ok := value.(*auth.Identity)
	if !ok {
		return nil
	}
	return identity
}

func bearerCredential(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
