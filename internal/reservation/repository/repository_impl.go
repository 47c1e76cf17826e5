package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	reservationdomain "github.com/lugspot/lugspot/internal/reservation/domain"
	"github.com/lugspot/lugspot/pkg/db/option"
	"github.com/lugspot/lugspot/pkg/db/pagination"
)

type repo struct{}

func Provide() reservationdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, reservation *reservationdomain.Reservation) error {
	return db.WithContext(ctx).Create(reservation).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, reservation *reservationdomain.Reservation) error {
	return db.WithContext(ctx).Save(reservation).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (*reservationdomain.Reservation, error) {
	var reservation reservationdomain.Reservation
	err := db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&reservation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reservation, nil
}

func (r *repo) FindByReference(ctx context.Context, db *gorm.DB, reference string) (*reservationdomain.Reservation, error) {
	var reservation reservationdomain.Reservation
	err := db.WithContext(ctx).
		Where("reference = ?", reference).
		First(&reservation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reservation, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, opts reservationdomain.ListOptions, page pagination.Pagination) ([]*reservationdomain.Reservation, error) {
	var items []*reservationdomain.Reservation

	query := db.WithContext(ctx).
		Model(&reservationdomain.Reservation{}).
		Where("tenant_id = ?", tenantID)

	if opts.LocationID != "" {
		query = query.Where("location_id = ?", opts.LocationID)
	}
	if opts.Status != "" {
		query = query.Where("status = ?", opts.Status)
	}
	if opts.Reference != "" {
		query = query.Where("reference = ?", opts.Reference)
	}

	query = option.ApplyPagination(page).Apply(query)
	query = query.Order("created_at DESC, id DESC")

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ExpireStaleHolds(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.WithContext(ctx).
		Model(&reservationdomain.Reservation{}).
		Where("status = ? AND hold_expires_at IS NOT NULL AND hold_expires_at < ?", reservationdomain.StatusPending, cutoff).
		Update("status", reservationdomain.StatusExpired)
	return result.RowsAffected, result.Error
}
