package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/lugspot/lugspot/pkg/db/pagination"
)

type ListOptions struct {
	Scope         string `form:"scope"`
	LocationID    string `form:"location_id"`
	StorageUnitID string `form:"storage_unit_id"`
	ActiveOnly    bool   `form:"active_only"`
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, rule *PricingRule) error
	Update(ctx context.Context, db *gorm.DB, rule *PricingRule) error
	Delete(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (*PricingRule, error)
	List(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, opts ListOptions, page pagination.Pagination) ([]*PricingRule, error)

	// ListCandidates returns every active rule visible to the tenant: rules
	// owned by the tenant plus global rules with a null tenant id.
	ListCandidates(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) ([]PricingRule, error)
}
