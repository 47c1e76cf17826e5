package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pricingdomain "github.com/lugspot/lugspot/internal/pricing/domain"
	reservationdomain "github.com/lugspot/lugspot/internal/reservation/domain"
	tenantdomain "github.com/lugspot/lugspot/internal/tenant/domain"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"rate limited", ErrRateLimited, http.StatusTooManyRequests, "rate_limited"},
		{"not found", reservationdomain.ErrReservationNotFound, http.StatusNotFound, "not_found"},
		{"slug conflict", tenantdomain.ErrSlugTaken, http.StatusConflict, "conflict"},
		{"bad transition", reservationdomain.ErrInvalidTransition, http.StatusConflict, "invalid_state"},
		{"invalid interval", pricingdomain.ErrInvalidInterval, http.StatusBadRequest, "invalid_request"},
		{"missing rate card", pricingdomain.ErrNoPricingRule, http.StatusBadGateway, "no_pricing_rule"},
		{"corrupt pricing type", pricingdomain.ErrUnsupportedPricingType, http.StatusInternalServerError, "internal"},
		{"unknown error", fmt.Errorf("boom"), http.StatusInternalServerError, "internal"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, code := classify(tc.err)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantCode, code)
		})
	}
}

func TestAbortWithErrorMasksInternals(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("internal details stay out of the body", func(t *testing.T) {
		resp := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(resp)
		AbortWithError(c, fmt.Errorf("pq: connection refused"))

		require.Equal(t, http.StatusInternalServerError, resp.Code)
		assert.Contains(t, resp.Body.String(), "internal server error")
		assert.NotContains(t, resp.Body.String(), "connection refused")
	})

	t.Run("missing rate card keeps its message", func(t *testing.T) {
		resp := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(resp)
		AbortWithError(c, pricingdomain.ErrNoPricingRule)

		require.Equal(t, http.StatusBadGateway, resp.Code)
		assert.Contains(t, resp.Body.String(), "no pricing rule")
	})
}
