package server

import (
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	apikeydomain "github.com/lugspot/lugspot/internal/apikey/domain"
	"github.com/lugspot/lugspot/internal/tenantcontext"
)

const scopeWrite = "write"

// APIKeyRequired authenticates requests with a Bearer API key. Tenant
// identity is derived solely from the api_keys table; mutating methods
// additionally need the write scope.
func (s *Server) APIKeyRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		if s.apiKeyLimiter != nil && !s.apiKeyLimiter.Allow(parts[1]) {
			AbortWithError(c, ErrRateLimited)
			return
		}

		hash := apikeydomain.HashAPIKey(parts[1])
		now := time.Now().UTC()

		var record apikeydomain.APIKey
		err := s.db.WithContext(c.Request.Context()).
			Where("key_hash = ? AND is_active = ? AND (expires_at IS NULL OR expires_at > ?)", hash, true, now).
			First(&record).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				AbortWithError(c, ErrUnauthorized)
				return
			}
			AbortWithError(c, err)
			return
		}

		if subtle.ConstantTimeCompare([]byte(record.KeyHash), []byte(hash)) != 1 {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		if isMutating(c.Request.Method) && !hasScope(record.Scopes, scopeWrite) {
			AbortWithError(c, ErrForbidden)
			return
		}

		// Best effort; losing an update here is fine.
		go func(id, usedAt any) {
			_ = s.db.Model(&apikeydomain.APIKey{}).
				Where("id = ?", id).
				Update("last_used_at", usedAt).Error
		}(record.ID, now)

		ctx := tenantcontext.WithTenantID(c.Request.Context(), record.TenantID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func isMutating(method string) bool {
	switch method {
	case "GET", "HEAD", "OPTIONS":
		return false
	}
	return true
}

func hasScope(scopes []string, want string) bool {
	for _, scope := range scopes {
		if scope == want || scope == "*" {
			return true
		}
	}
	return false
}
