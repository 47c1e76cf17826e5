package server

import (
	"github.com/gin-gonic/gin"

	apikeydomain "github.com/lugspot/lugspot/internal/apikey/domain"
	quotadomain "github.com/lugspot/lugspot/internal/quota/domain"
	tenantdomain "github.com/lugspot/lugspot/internal/tenant/domain"
)

type createTenantRequest struct {
	Name         string `json:"name" binding:"required"`
	Slug         string `json:"slug" binding:"required"`
	ContactEmail string `json:"contact_email"`
}

type createTenantResponse struct {
	Tenant *tenantdomain.Tenant `json:"tenant"`
	APIKey apikeydomain.APIKey  `json:"api_key"`
	RawKey string               `json:"raw_key"`
}

// OnboardTenant creates a tenant together with its first API key. The raw
// key is returned exactly once here.
func (s *Server) OnboardTenant(c *gin.Context) {
	var req createTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	tenant, err := s.tenantSvc.Create(c.Request.Context(), tenantdomain.CreateRequest{
		Name:         req.Name,
		Slug:         req.Slug,
		ContactEmail: req.ContactEmail,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	key, err := s.apiKeySvc.Create(c.Request.Context(), apikeydomain.CreateRequest{
		TenantID: tenant.ID,
		Name:     "default",
		Scopes:   []string{"*"},
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, createTenantResponse{
		Tenant: tenant,
		APIKey: key.Key,
		RawKey: key.RawKey,
	})
}

func (s *Server) GetCurrentTenant(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	record, err := s.tenantSvc.Get(c.Request.Context(), tenant)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, record)
}

func (s *Server) GetTenantUsage(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	if s.quotaSvc == nil {
		AbortWithError(c, quotadomain.ErrQuotaDisabled)
		return
	}

	usage, err := s.quotaSvc.GetTenantUsage(c.Request.Context(), tenant)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, usage)
}
