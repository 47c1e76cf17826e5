package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	locationdomain "github.com/lugspot/lugspot/internal/location/domain"
	"github.com/lugspot/lugspot/pkg/db/option"
	"github.com/lugspot/lugspot/pkg/db/pagination"
)

type repo struct{}

func Provide() locationdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, location *locationdomain.Location) error {
	return db.WithContext(ctx).Create(location).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, location *locationdomain.Location) error {
	return db.WithContext(ctx).Save(location).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) error {
	result := db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&locationdomain.Location{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return locationdomain.ErrLocationNotFound
	}
	return nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (*locationdomain.Location, error) {
	var location locationdomain.Location
	err := db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&location).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &location, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, opts locationdomain.ListOptions, page pagination.Pagination) ([]*locationdomain.Location, error) {
	var items []*locationdomain.Location

	query := db.WithContext(ctx).
		Model(&locationdomain.Location{}).
		Where("tenant_id = ?", tenantID)

	if opts.City != "" {
		query = query.Where("city = ?", opts.City)
	}
	if opts.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	query = option.ApplyPagination(page).Apply(query)
	query = query.Order("created_at DESC, id DESC")

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Count(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&locationdomain.Location{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}
