package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kimbugp/ah-haven-space-sprinters/internal/domain"
	"github.com/kimbugp/ah-haven-space-sprinters/internal/identity"
	"github.com/kimbugp/ah-haven-space-sprinters/internal/logger"
)

const (
	// AuthScheme is the expected Authorization header scheme.
	AuthScheme = "Token"
	// ProfileKey is the context key for the authenticated caller's profile.
	ProfileKey = "auth_profile"
)

// Auth returns middleware that resolves the Authorization header into the
// caller's profile. With required=true a missing or invalid credential stops
// the request with 401. With required=false an absent credential passes
// through anonymously; a credential that is present but invalid is still
// rejected rather than silently downgraded.
func Auth(resolver identity.Resolver, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromHeader(c.GetHeader("Authorization"))
		if token == "" {
			if required {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
				return
			}
			c.Next()
			return
		}

		profile, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthenticated) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid authentication credentials"})
				return
			}
			logger.Error("Failed to resolve credentials",
				slog.String("request_id", GetRequestID(c)),
				slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "failed to resolve credentials"})
			return
		}

		c.Set(ProfileKey, profile)
		c.Next()
	}
}

// GetProfile retrieves the authenticated caller's profile from the gin
// context. Returns nil for anonymous requests.
func GetProfile(c *gin.Context) *domain.Profile {
	if v, exists := c.Get(ProfileKey); exists {
		if p, ok := v.(*domain.Profile); ok {
			return p
		}
	}
	return nil
}

func tokenFromHeader(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], AuthScheme) {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
