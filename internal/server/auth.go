package server

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/studiokit/atelier/internal/config"
)

// TokenVerifier checks admin credentials presented on a request.
type TokenVerifier interface {
	Verify(token string) bool
}

type staticKeyVerifier struct {
	key string
}

// NewTokenVerifier builds a verifier for the configured admin API key. An
// empty key verifies nothing, which effectively disables the admin surface.
func NewTokenVerifier(cfg config.Config) TokenVerifier {
	return staticKeyVerifier{key: strings.TrimSpace(cfg.AdminAPIKey)}
}

func (v staticKeyVerifier) Verify(token string) bool {
	if v.key == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(v.key), []byte(token)) == 1
}

// AdminRequired authenticates admin requests using a bearer token or the
// X-Api-Key header.
func (s *Server) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token = strings.TrimSpace(c.GetHeader("X-Api-Key"))
		}
		if !s.verifier.Verify(token) {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.Fields(strings.TrimSpace(header))
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
