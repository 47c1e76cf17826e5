package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	widgetdomain "github.com/lugspot/lugspot/internal/widget/domain"
)

// widgetRateLimit throttles the public widget endpoints per client IP. Keys
// are not secrets, so the IP is the only stable identity available here.
func (s *Server) widgetRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.widgetLimiter != nil && !s.widgetLimiter.Allow(c.ClientIP()) {
			AbortWithError(c, ErrRateLimited)
			return
		}
		c.Next()
	}
}

func widgetKey(c *gin.Context) (string, bool) {
	key := strings.TrimSpace(c.Param("key"))
	return key, key != ""
}

func (s *Server) WidgetEstimate(c *gin.Context) {
	key, ok := widgetKey(c)
	if !ok {
		AbortWithError(c, invalidRequestError())
		return
	}

	var req widgetdomain.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	estimate, err := s.widgetSvc.Estimate(c.Request.Context(), key, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, estimate)
}

func (s *Server) WidgetSubmit(c *gin.Context) {
	key, ok := widgetKey(c)
	if !ok {
		AbortWithError(c, invalidRequestError())
		return
	}

	var req widgetdomain.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.widgetSvc.Submit(c.Request.Context(), key, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, resp)
}

func (s *Server) WidgetReservation(c *gin.Context) {
	key, ok := widgetKey(c)
	if !ok {
		AbortWithError(c, invalidRequestError())
		return
	}

	reference := strings.TrimSpace(c.Param("reference"))
	if reference == "" {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.widgetSvc.Reservation(c.Request.Context(), key, reference)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, resp)
}

type createWidgetKeyRequest struct {
	Label string `json:"label" binding:"required"`
}

func (s *Server) CreateWidgetKey(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req createWidgetKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	key, err := s.widgetSvc.CreateKey(c.Request.Context(), tenant, req.Label)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, key)
}

func (s *Server) ListWidgetKeys(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	keys, err := s.widgetSvc.ListKeys(c.Request.Context(), tenant)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondList(c, keys, nil)
}

func (s *Server) RevokeWidgetKey(c *gin.Context) {
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

	if err := s.widgetSvc.RevokeKey(c.Request.Context(), tenant, id); err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, gin.H{"revoked": true})
}
