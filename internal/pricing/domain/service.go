package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"

	"github.com/lugspot/lugspot/pkg/db/pagination"
)

type CreateRuleRequest struct {
	TenantID      *snowflake.ID
	Scope         Scope
	LocationID    *snowflake.ID
	StorageUnitID *snowflake.ID

	PricePerHourMinor  int64
	PricePerDayMinor   int64
	PricePerWeekMinor  int64
	PricePerMonthMinor int64
	MinimumChargeMinor int64

	PricingType PricingType
	Currency    string
	IsActive    *bool
	Priority    int32
	Metadata    map[string]any
}

type UpdateRuleRequest struct {
	TenantID snowflake.ID
	RuleID   snowflake.ID

	PricePerHourMinor  *int64
	PricePerDayMinor   *int64
	PricePerWeekMinor  *int64
	PricePerMonthMinor *int64
	MinimumChargeMinor *int64

	PricingType *PricingType
	Currency    *string
	IsActive    *bool
	Priority    *int32
}

type ListRulesResponse struct {
	Rules    []*PricingRule      `json:"rules"`
	PageInfo pagination.PageInfo `json:"page_info"`
}

type Service interface {
	// Estimate resolves the applicable rule for the request context and
	// computes the billable amount. Read-only with respect to rules.
	Estimate(ctx context.Context, req EstimateRequest) (*PriceEstimate, error)

	Create(ctx context.Context, req CreateRuleRequest) (*PricingRule, error)
	Update(ctx context.Context, req UpdateRuleRequest) (*PricingRule, error)
	Delete(ctx context.Context, tenantID, id snowflake.ID) error
	Get(ctx context.Context, tenantID, id snowflake.ID) (*PricingRule, error)
	List(ctx context.Context, tenantID snowflake.ID, opts ListOptions, page pagination.Pagination) (*ListRulesResponse, error)
}
