package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	widgetdomain "github.com/lugspot/lugspot/internal/widget/domain"
)

type repo struct{}

func Provide() widgetdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, key *widgetdomain.WidgetKey) error {
	return db.WithContext(ctx).Create(key).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, key *widgetdomain.WidgetKey) error {
	return db.WithContext(ctx).Save(key).Error
}

func (r *repo) FindByKey(ctx context.Context, db *gorm.DB, key string) (*widgetdomain.WidgetKey, error) {
	var record widgetdomain.WidgetKey
	err := db.WithContext(ctx).
		Where("key = ?", key).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (*widgetdomain.WidgetKey, error) {
	var record widgetdomain.WidgetKey
	err := db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *repo) ListByTenant(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) ([]*widgetdomain.WidgetKey, error) {
	var items []*widgetdomain.WidgetKey
	err := db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC, id DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
