// Package domain defines the embeddable booking widget contracts.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	pricingdomain "github.com/lugspot/lugspot/internal/pricing/domain"
)

var (
	ErrWidgetKeyNotFound = errors.New("widget key not found")
	ErrWidgetKeyInactive = errors.New("widget key is inactive")
	ErrInvalidLabel      = errors.New("widget key label is required")
)

// WidgetKey is the public, non-secret token a tenant embeds in its site to
// let guests price and book through the widget endpoints.
type WidgetKey struct {
	ID       snowflake.ID `json:"id" gorm:"primaryKey"`
	TenantID snowflake.ID `json:"tenant_id" gorm:"not null;index"`
	Key      string       `json:"key" gorm:"type:text;not null;uniqueIndex"`
	Label    string       `json:"label" gorm:"type:text;not null"`
	IsActive bool         `json:"is_active" gorm:"not null;default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (WidgetKey) TableName() string { return "widget_keys" }

type EstimateRequest struct {
	LocationID    snowflake.ID  `json:"location_id"`
	StorageUnitID *snowflake.ID `json:"storage_unit_id,omitempty"`
	StartAt       time.Time     `json:"start_at"`
	EndAt         time.Time     `json:"end_at"`
	BaggageCount  int           `json:"baggage_count"`
}

type SubmitRequest struct {
	LocationID    snowflake.ID  `json:"location_id"`
	StorageUnitID *snowflake.ID `json:"storage_unit_id,omitempty"`

	GuestName  string `json:"guest_name"`
	GuestEmail string `json:"guest_email"`
	GuestPhone string `json:"guest_phone"`

	StartAt      time.Time `json:"start_at"`
	EndAt        time.Time `json:"end_at"`
	BaggageCount int       `json:"baggage_count"`
}

// SubmitResponse is the guest-facing view of a created hold. It exposes the
// reference but never internal identifiers.
type SubmitResponse struct {
	Reference     string     `json:"reference"`
	Status        string     `json:"status"`
	AmountMinor   int64      `json:"amount_minor"`
	Currency      string     `json:"currency"`
	HoldExpiresAt *time.Time `json:"hold_expires_at,omitempty"`
	StartAt       time.Time  `json:"start_at"`
	EndAt         time.Time  `json:"end_at"`
	BaggageCount  int        `json:"baggage_count"`
	GuestEmail    string     `json:"guest_email"`
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, key *WidgetKey) error
	Update(ctx context.Context, db *gorm.DB, key *WidgetKey) error
	FindByKey(ctx context.Context, db *gorm.DB, key string) (*WidgetKey, error)
	FindByID(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (*WidgetKey, error)
	ListByTenant(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) ([]*WidgetKey, error)
}

type Service interface {
	CreateKey(ctx context.Context, tenantID snowflake.ID, label string) (*WidgetKey, error)
	ListKeys(ctx context.Context, tenantID snowflake.ID) ([]*WidgetKey, error)
	RevokeKey(ctx context.Context, tenantID, id snowflake.ID) error

	// Estimate prices a prospective booking for the tenant behind key.
	Estimate(ctx context.Context, key string, req EstimateRequest) (*pricingdomain.PriceEstimate, error)

	// Submit creates a pending reservation hold for the tenant behind key,
	// counting it against the tenant's monthly widget quota.
	Submit(ctx context.Context, key string, req SubmitRequest) (*SubmitResponse, error)

	// Reservation returns the guest-facing view for a reference, scoped to
	// the tenant behind key.
	Reservation(ctx context.Context, key, reference string) (*SubmitResponse, error)
}
