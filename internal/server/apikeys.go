package server

import (
	"time"

	"github.com/gin-gonic/gin"

	apikeydomain "github.com/lugspot/lugspot/internal/apikey/domain"
)

type createAPIKeyRequest struct {
	Name      string     `json:"name" binding:"required"`
	Scopes    []string   `json:"scopes"`
	ExpiresAt *time.Time `json:"expires_at"`
}

func (s *Server) CreateAPIKey(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req createAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.apiKeySvc.Create(c.Request.Context(), apikeydomain.CreateRequest{
		TenantID:  tenant,
		Name:      req.Name,
		Scopes:    req.Scopes,
		ExpiresAt: req.ExpiresAt,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, resp)
}

func (s *Server) ListAPIKeys(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	keys, err := s.apiKeySvc.List(c.Request.Context(), tenant)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondList(c, keys, nil)
}

func (s *Server) RevokeAPIKey(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	id, err := pathID(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.apiKeySvc.Revoke(c.Request.Context(), tenant, id); err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, gin.H{"revoked": true})
}
