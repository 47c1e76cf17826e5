package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	storageunitdomain "github.com/lugspot/lugspot/internal/storageunit/domain"
	"github.com/lugspot/lugspot/pkg/db/option"
	"github.com/lugspot/lugspot/pkg/db/pagination"
)

type repo struct{}

func Provide() storageunitdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, unit *storageunitdomain.StorageUnit) error {
	return db.WithContext(ctx).Create(unit).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, unit *storageunitdomain.StorageUnit) error {
	return db.WithContext(ctx).Save(unit).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) error {
	result := db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&storageunitdomain.StorageUnit{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return storageunitdomain.ErrStorageUnitNotFound
	}
	return nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (*storageunitdomain.StorageUnit, error) {
	var unit storageunitdomain.StorageUnit
	err := db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&unit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &unit, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, opts storageunitdomain.ListOptions, page pagination.Pagination) ([]*storageunitdomain.StorageUnit, error) {
	var items []*storageunitdomain.StorageUnit

	query := db.WithContext(ctx).
		Model(&storageunitdomain.StorageUnit{}).
		Where("tenant_id = ?", tenantID)

	if opts.LocationID != "" {
		query = query.Where("location_id = ?", opts.LocationID)
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
		Model(&storageunitdomain.StorageUnit{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}
