package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	paymentdomain "github.com/lugspot/lugspot/internal/payment/domain"
)

type repo struct{}

func Provide() paymentdomain.Repository {
	return &repo{}
}

func (r *repo) InsertPayment(ctx context.Context, db *gorm.DB, payment *paymentdomain.Payment) error {
	return db.WithContext(ctx).Create(payment).Error
}

func (r *repo) FindPaymentByProviderEventID(ctx context.Context, db *gorm.DB, provider, eventID string) (*paymentdomain.Payment, error) {
	var payment paymentdomain.Payment
	err := db.WithContext(ctx).
		Where("provider = ? AND provider_event_id = ?", provider, eventID).
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

func (r *repo) ListPaymentsByTenant(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) ([]*paymentdomain.Payment, error) {
	var items []*paymentdomain.Payment
	err := db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("occurred_at DESC, id DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) InsertWebhookEvent(ctx context.Context, db *gorm.DB, event *paymentdomain.WebhookEvent) error {
	return db.WithContext(ctx).Create(event).Error
}

func (r *repo) PurgeWebhookEventsBefore(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&paymentdomain.WebhookEvent{})
	return result.RowsAffected, result.Error
}
