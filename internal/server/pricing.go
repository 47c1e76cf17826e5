package server

import (
	"time"

	"github.com/gin-gonic/gin"

	pricingdomain "github.com/lugspot/lugspot/internal/pricing/domain"
)

type estimateRequest struct {
	LocationID    *string   `json:"location_id"`
	StorageUnitID *string   `json:"storage_unit_id"`
	StartAt       time.Time `json:"start_at" binding:"required"`
	EndAt         time.Time `json:"end_at" binding:"required"`
	BaggageCount  int       `json:"baggage_count"`
}

func (s *Server) EstimatePrice(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req estimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	locationID, err := optionalID(req.LocationID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	storageUnitID, err := optionalID(req.StorageUnitID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	baggageCount := req.BaggageCount
	if baggageCount == 0 {
		baggageCount = 1
	}

	estimate, err := s.pricingSvc.Estimate(c.Request.Context(), pricingdomain.EstimateRequest{
		TenantID:      tenant,
		Start:         req.StartAt,
		End:           req.EndAt,
		BaggageCount:  baggageCount,
		LocationID:    locationID,
		StorageUnitID: storageUnitID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, estimate)
}

type createRuleRequest struct {
	Scope         string  `json:"scope" binding:"required"`
	LocationID    *string `json:"location_id"`
	StorageUnitID *string `json:"storage_unit_id"`

	PricePerHourMinor  int64 `json:"price_per_hour_minor"`
	PricePerDayMinor   int64 `json:"price_per_day_minor"`
	PricePerWeekMinor  int64 `json:"price_per_week_minor"`
	PricePerMonthMinor int64 `json:"price_per_month_minor"`
	MinimumChargeMinor int64 `json:"minimum_charge_minor"`

	PricingType string         `json:"pricing_type" binding:"required"`
	Currency    string         `json:"currency" binding:"required"`
	IsActive    *bool          `json:"is_active"`
	Priority    int32          `json:"priority"`
	Metadata    map[string]any `json:"metadata"`
}

func (s *Server) CreatePricingRule(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req createRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	locationID, err := optionalID(req.LocationID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	storageUnitID, err := optionalID(req.StorageUnitID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	// API keys only create rules owned by their tenant. Global rules are
	// seeded operationally, not via this endpoint.
	rule, err := s.pricingSvc.Create(c.Request.Context(), pricingdomain.CreateRuleRequest{
		TenantID:           &tenant,
		Scope:              pricingdomain.Scope(req.Scope),
		LocationID:         locationID,
		StorageUnitID:      storageUnitID,
		PricePerHourMinor:  req.PricePerHourMinor,
		PricePerDayMinor:   req.PricePerDayMinor,
		PricePerWeekMinor:  req.PricePerWeekMinor,
		PricePerMonthMinor: req.PricePerMonthMinor,
		MinimumChargeMinor: req.MinimumChargeMinor,
		PricingType:        pricingdomain.PricingType(req.PricingType),
		Currency:           req.Currency,
		IsActive:           req.IsActive,
		Priority:           req.Priority,
		Metadata:           req.Metadata,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, rule)
}

func (s *Server) ListPricingRules(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var opts pricingdomain.ListOptions
	if err := c.ShouldBindQuery(&opts); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.pricingSvc.List(c.Request.Context(), tenant, opts, bindPagination(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondList(c, resp.Rules, &resp.PageInfo)
}

func (s *Server) GetPricingRule(c *gin.Context) {
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

	rule, err := s.pricingSvc.Get(c.Request.Context(), tenant, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, rule)
}

type updateRuleRequest struct {
	PricePerHourMinor  *int64 `json:"price_per_hour_minor"`
	PricePerDayMinor   *int64 `json:"price_per_day_minor"`
	PricePerWeekMinor  *int64 `json:"price_per_week_minor"`
	PricePerMonthMinor *int64 `json:"price_per_month_minor"`
	MinimumChargeMinor *int64 `json:"minimum_charge_minor"`

	PricingType *string `json:"pricing_type"`
	Currency    *string `json:"currency"`
	IsActive    *bool   `json:"is_active"`
	Priority    *int32  `json:"priority"`
}

func (s *Server) UpdatePricingRule(c *gin.Context) {
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

	var req updateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var pricingType *pricingdomain.PricingType
	if req.PricingType != nil {
		pt := pricingdomain.PricingType(*req.PricingType)
		pricingType = &pt
	}

	rule, err := s.pricingSvc.Update(c.Request.Context(), pricingdomain.UpdateRuleRequest{
		TenantID:           tenant,
		RuleID:             id,
		PricePerHourMinor:  req.PricePerHourMinor,
		PricePerDayMinor:   req.PricePerDayMinor,
		PricePerWeekMinor:  req.PricePerWeekMinor,
		PricePerMonthMinor: req.PricePerMonthMinor,
		MinimumChargeMinor: req.MinimumChargeMinor,
		PricingType:        pricingType,
		Currency:           req.Currency,
		IsActive:           req.IsActive,
		Priority:           req.Priority,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, rule)
}

func (s *Server) DeletePricingRule(c *gin.Context) {
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

	if err := s.pricingSvc.Delete(c.Request.Context(), tenant, id); err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, gin.H{"deleted": true})
}
