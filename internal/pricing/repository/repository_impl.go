package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	pricingdomain "github.com/lugspot/lugspot/internal/pricing/domain"
	"github.com/lugspot/lugspot/pkg/db/option"
	"github.com/lugspot/lugspot/pkg/db/pagination"
)

type repo struct{}

func Provide() pricingdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, rule *pricingdomain.PricingRule) error {
	return db.WithContext(ctx).Create(rule).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, rule *pricingdomain.PricingRule) error {
	return db.WithContext(ctx).Save(rule).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) error {
	result := db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&pricingdomain.PricingRule{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pricingdomain.ErrRuleNotFound
	}
	return nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (*pricingdomain.PricingRule, error) {
	var rule pricingdomain.PricingRule
	err := db.WithContext(ctx).
		Where("id = ? AND (tenant_id = ? OR tenant_id IS NULL)", id, tenantID).
		First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, opts pricingdomain.ListOptions, page pagination.Pagination) ([]*pricingdomain.PricingRule, error) {
	var items []*pricingdomain.PricingRule

	query := db.WithContext(ctx).
		Model(&pricingdomain.PricingRule{}).
		Where("tenant_id = ? OR tenant_id IS NULL", tenantID)

	if opts.Scope != "" {
		query = query.Where("scope = ?", opts.Scope)
	}
	if opts.LocationID != "" {
		query = query.Where("location_id = ?", opts.LocationID)
	}
	if opts.StorageUnitID != "" {
		query = query.Where("storage_unit_id = ?", opts.StorageUnitID)
	}
	if opts.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	query = option.ApplyPagination(page).Apply(query)
	query = query.Order("priority DESC, created_at DESC, id DESC")

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListCandidates(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) ([]pricingdomain.PricingRule, error) {
	var items []pricingdomain.PricingRule
	err := db.WithContext(ctx).
		Where("is_active = ? AND (tenant_id = ? OR tenant_id IS NULL)", true, tenantID).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
