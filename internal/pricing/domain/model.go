// Package domain contains the pricing rule model and the estimate contract.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Scope is the specificity level a rule applies at. Resolution always prefers
// the most specific matching scope.
type Scope string

const (
	ScopeGlobal   Scope = "global"
	ScopeTenant   Scope = "tenant"
	ScopeLocation Scope = "location"
	ScopeStorage  Scope = "storage"
)

func (s Scope) Valid() bool {
	switch s {
	case ScopeGlobal, ScopeTenant, ScopeLocation, ScopeStorage:
		return true
	}
	return false
}

type PricingType string

const (
	PricingHourly  PricingType = "hourly"
	PricingDaily   PricingType = "daily"
	PricingWeekly  PricingType = "weekly"
	PricingMonthly PricingType = "monthly"
)

func (t PricingType) Valid() bool {
	switch t {
	case PricingHourly, PricingDaily, PricingWeekly, PricingMonthly:
		return true
	}
	return false
}

// PricingRule is an administrator-managed rate card entry. All monetary
// fields are integers in minor currency units. A nil TenantID marks a global
// fallback rule shared by every tenant.
type PricingRule struct {
	ID            snowflake.ID  `json:"id" gorm:"primaryKey"`
	TenantID      *snowflake.ID `json:"tenant_id,omitempty" gorm:"index"`
	Scope         Scope         `json:"scope" gorm:"type:text;not null;index"`
	LocationID    *snowflake.ID `json:"location_id,omitempty" gorm:"index"`
	StorageUnitID *snowflake.ID `json:"storage_unit_id,omitempty" gorm:"index"`

	PricePerHourMinor  int64 `json:"price_per_hour_minor" gorm:"not null;default:0"`
	PricePerDayMinor   int64 `json:"price_per_day_minor" gorm:"not null;default:0"`
	PricePerWeekMinor  int64 `json:"price_per_week_minor" gorm:"not null;default:0"`
	PricePerMonthMinor int64 `json:"price_per_month_minor" gorm:"not null;default:0"`
	MinimumChargeMinor int64 `json:"minimum_charge_minor" gorm:"not null;default:0"`

	PricingType PricingType    `json:"pricing_type" gorm:"type:text;not null"`
	Currency    string         `json:"currency" gorm:"type:text;not null"`
	IsActive    bool           `json:"is_active" gorm:"not null;default:true;index"`
	Priority    int32          `json:"priority" gorm:"not null;default:0"`
	Metadata    datatypes.JSON `json:"metadata,omitempty" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PricingRule) TableName() string { return "pricing_rules" }

// EstimateRequest is the input of the estimate operation. Start and End are
// interpreted as UTC; BaggageCount is carried through as context only and
// never multiplies the total.
type EstimateRequest struct {
	TenantID      snowflake.ID
	Start         time.Time
	End           time.Time
	BaggageCount  int
	LocationID    *snowflake.ID
	StorageUnitID *snowflake.ID
}

// PriceEstimate is the derived output of the estimate operation. RuleID and
// RuleScope record which rule produced the amount.
type PriceEstimate struct {
	TotalMinor      int64        `json:"total_minor"`
	TotalFormatted  string       `json:"total_formatted"`
	DurationHours   float64      `json:"duration_hours"`
	DurationDays    int64        `json:"duration_days"`
	HourlyRateMinor int64        `json:"hourly_rate_minor"`
	DailyRateMinor  int64        `json:"daily_rate_minor"`
	PricingType     PricingType  `json:"pricing_type"`
	Currency        string       `json:"currency"`
	BaggageCount    int          `json:"baggage_count"`
	RuleID          snowflake.ID `json:"rule_id"`
	RuleScope       Scope        `json:"rule_scope"`
}
