package service

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	pricingdomain "github.com/lugspot/lugspot/internal/pricing/domain"
	"github.com/lugspot/lugspot/pkg/db/pagination"
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  pricingdomain.Repository
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  pricingdomain.Repository
}

func New(p ServiceParam) pricingdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("pricing.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

func (s *Service) Estimate(ctx context.Context, req pricingdomain.EstimateRequest) (*pricingdomain.PriceEstimate, error) {
	if req.BaggageCount < 1 {
		return nil, pricingdomain.ErrInvalidBaggageCount
	}

	start := req.Start.UTC()
	end := req.End.UTC()
	if !end.After(start) {
		return nil, pricingdomain.ErrInvalidInterval
	}

	candidates, err := s.repo.ListCandidates(ctx, s.db, req.TenantID)
	if err != nil {
		return nil, err
	}

	rule, err := resolveRule(candidates, req.TenantID, req.LocationID, req.StorageUnitID)
	if err != nil {
		s.log.Warn("pricing resolution failed",
			zap.String("tenant_id", req.TenantID.String()),
			zap.Error(err))
		return nil, err
	}

	result, err := calculateAmount(rule, start, end)
	if err != nil {
		// An unsupported pricing type on a stored rule means the write path
		// let a bad value through. Log loudly.
		s.log.Error("pricing calculation failed",
			zap.String("tenant_id", req.TenantID.String()),
			zap.String("rule_id", rule.ID.String()),
			zap.String("pricing_type", string(rule.PricingType)),
			zap.Error(err))
		return nil, err
	}

	return &pricingdomain.PriceEstimate{
		TotalMinor:      result.TotalMinor,
		TotalFormatted:  formatAmount(result.TotalMinor, rule.Currency),
		DurationHours:   result.DurationHours,
		DurationDays:    result.DurationDays,
		HourlyRateMinor: rule.PricePerHourMinor,
		DailyRateMinor:  rule.PricePerDayMinor,
		PricingType:     rule.PricingType,
		Currency:        rule.Currency,
		BaggageCount:    req.BaggageCount,
		RuleID:          rule.ID,
		RuleScope:       rule.Scope,
	}, nil
}

func (s *Service) Create(ctx context.Context, req pricingdomain.CreateRuleRequest) (*pricingdomain.PricingRule, error) {
	if err := validateRuleShape(req.Scope, req.TenantID, req.LocationID, req.StorageUnitID); err != nil {
		return nil, err
	}
	if !req.PricingType.Valid() {
		return nil, pricingdomain.ErrInvalidPricingType
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if !currencyPattern.MatchString(currency) {
		return nil, pricingdomain.ErrInvalidCurrency
	}
	if req.PricePerHourMinor < 0 || req.PricePerDayMinor < 0 ||
		req.PricePerWeekMinor < 0 || req.PricePerMonthMinor < 0 ||
		req.MinimumChargeMinor < 0 {
		return nil, pricingdomain.ErrInvalidRate
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	rule := &pricingdomain.PricingRule{
		ID:                 s.genID.Generate(),
		TenantID:           req.TenantID,
		Scope:              req.Scope,
		LocationID:         req.LocationID,
		StorageUnitID:      req.StorageUnitID,
		PricePerHourMinor:  req.PricePerHourMinor,
		PricePerDayMinor:   req.PricePerDayMinor,
		PricePerWeekMinor:  req.PricePerWeekMinor,
		PricePerMonthMinor: req.PricePerMonthMinor,
		MinimumChargeMinor: req.MinimumChargeMinor,
		PricingType:        req.PricingType,
		Currency:           currency,
		IsActive:           active,
		Priority:           req.Priority,
	}

	if len(req.Metadata) > 0 {
		raw, err := json.Marshal(req.Metadata)
		if err != nil {
			return nil, err
		}
		rule.Metadata = datatypes.JSON(raw)
	}

	if err := s.repo.Insert(ctx, s.db, rule); err != nil {
		return nil, err
	}

	s.log.Info("pricing rule created",
		zap.String("rule_id", rule.ID.String()),
		zap.String("scope", string(rule.Scope)),
		zap.Int32("priority", rule.Priority))
	return rule, nil
}

func (s *Service) Update(ctx context.Context, req pricingdomain.UpdateRuleRequest) (*pricingdomain.PricingRule, error) {
	rule, err := s.repo.FindByID(ctx, s.db, req.TenantID, req.RuleID)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, pricingdomain.ErrRuleNotFound
	}

	if req.PricingType != nil {
		if !req.PricingType.Valid() {
			return nil, pricingdomain.ErrInvalidPricingType
		}
		rule.PricingType = *req.PricingType
	}
	if req.Currency != nil {
		currency := strings.ToUpper(strings.TrimSpace(*req.Currency))
		if !currencyPattern.MatchString(currency) {
			return nil, pricingdomain.ErrInvalidCurrency
		}
		rule.Currency = currency
	}
	for _, pair := range []struct {
		src *int64
		dst *int64
	}{
		{req.PricePerHourMinor, &rule.PricePerHourMinor},
		{req.PricePerDayMinor, &rule.PricePerDayMinor},
		{req.PricePerWeekMinor, &rule.PricePerWeekMinor},
		{req.PricePerMonthMinor, &rule.PricePerMonthMinor},
		{req.MinimumChargeMinor, &rule.MinimumChargeMinor},
	} {
		if pair.src == nil {
			continue
		}
		if *pair.src < 0 {
			return nil, pricingdomain.ErrInvalidRate
		}
		*pair.dst = *pair.src
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}
	if req.Priority != nil {
		rule.Priority = *req.Priority
	}

	if err := s.repo.Update(ctx, s.db, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *Service) Delete(ctx context.Context, tenantID, id snowflake.ID) error {
	return s.repo.Delete(ctx, s.db, tenantID, id)
}

func (s *Service) Get(ctx context.Context, tenantID, id snowflake.ID) (*pricingdomain.PricingRule, error) {
	rule, err := s.repo.FindByID(ctx, s.db, tenantID, id)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, pricingdomain.ErrRuleNotFound
	}
	return rule, nil
}

func (s *Service) List(ctx context.Context, tenantID snowflake.ID, opts pricingdomain.ListOptions, page pagination.Pagination) (*pricingdomain.ListRulesResponse, error) {
	rules, err := s.repo.List(ctx, s.db, tenantID, opts, page)
	if err != nil {
		return nil, err
	}
	return &pricingdomain.ListRulesResponse{
		Rules: rules,
		PageInfo: pagination.PageInfo{
			NextPageToken: page.NextToken(len(rules)),
			PageSize:      int32(page.Limit()),
		},
	}, nil
}

// validateRuleShape enforces scope/reference consistency: LOCATION requires a
// location, STORAGE requires a storage unit, TENANT and GLOBAL require
// neither, and GLOBAL must not belong to a tenant.
func validateRuleShape(scope pricingdomain.Scope, tenantID, locationID, storageUnitID *snowflake.ID) error {
	if !scope.Valid() {
		return pricingdomain.ErrInvalidScope
	}
	switch scope {
	case pricingdomain.ScopeGlobal:
		if tenantID != nil || locationID != nil || storageUnitID != nil {
			return pricingdomain.ErrInvalidReference
		}
	case pricingdomain.ScopeTenant:
		if tenantID == nil || locationID != nil || storageUnitID != nil {
			return pricingdomain.ErrInvalidReference
		}
	case pricingdomain.ScopeLocation:
		if tenantID == nil || locationID == nil || storageUnitID != nil {
			return pricingdomain.ErrInvalidReference
		}
	case pricingdomain.ScopeStorage:
		if tenantID == nil || storageUnitID == nil || locationID != nil {
			return pricingdomain.ErrInvalidReference
		}
	}
	return nil
}
