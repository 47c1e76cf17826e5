// Package domain defines payment webhook ingestion contracts.
package domain

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrInvalidProvider  = errors.New("invalid payment provider")
	ErrProviderNotFound = errors.New("payment provider not configured")
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrInvalidPayload   = errors.New("invalid webhook payload")
	ErrInvalidEvent     = errors.New("invalid webhook event")
	ErrEventIgnored     = errors.New("webhook event ignored")
	ErrMissingReference = errors.New("webhook event carries no reservation reference")
)

const (
	EventTypePaymentSucceeded = "payment.succeeded"
	EventTypePaymentFailed    = "payment.failed"
)

// PaymentEvent is the provider-neutral form of a webhook notification.
// Reference carries the reservation reference the charge was made for.
type PaymentEvent struct {
	Provider          string
	ProviderEventID   string
	ProviderPaymentID string
	Type              string
	Reference         string
	AmountMinor       int64
	Currency          string
	OccurredAt        time.Time
	RawPayload        []byte
}

// Adapter verifies and parses webhooks for one provider.
type Adapter interface {
	Provider() string
	Verify(ctx context.Context, payload []byte, headers http.Header) error
	Parse(ctx context.Context, payload []byte) (*PaymentEvent, error)
}

// Payment is a settled (or failed) charge attributed to a reservation.
type Payment struct {
	ID            snowflake.ID  `json:"id" gorm:"primaryKey"`
	TenantID      snowflake.ID  `json:"tenant_id" gorm:"not null;index"`
	ReservationID *snowflake.ID `json:"reservation_id,omitempty" gorm:"index"`

	Provider          string `json:"provider" gorm:"type:text;not null"`
	ProviderEventID   string `json:"provider_event_id" gorm:"type:text;not null;uniqueIndex"`
	ProviderPaymentID string `json:"provider_payment_id" gorm:"type:text;not null;index"`

	Type        string    `json:"type" gorm:"type:text;not null"`
	AmountMinor int64     `json:"amount_minor" gorm:"not null"`
	Currency    string    `json:"currency" gorm:"type:text;not null"`
	OccurredAt  time.Time `json:"occurred_at" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
}

func (Payment) TableName() string { return "payments" }

// WebhookEvent is the audit row kept for every delivery, including ignored
// and failed ones. The scheduler prunes rows past the retention window.
type WebhookEvent struct {
	ID       snowflake.ID `json:"id" gorm:"primaryKey"`
	Provider string       `json:"provider" gorm:"type:text;not null;index"`
	EventID  string       `json:"event_id" gorm:"type:text;not null;index"`
	Status   string       `json:"status" gorm:"type:text;not null"` // processed, ignored, failed
	Detail   string       `json:"detail" gorm:"type:text"`

	Payload datatypes.JSON `json:"payload"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (WebhookEvent) TableName() string { return "payment_webhook_events" }

type Repository interface {
	InsertPayment(ctx context.Context, db *gorm.DB, payment *Payment) error
	FindPaymentByProviderEventID(ctx context.Context, db *gorm.DB, provider, eventID string) (*Payment, error)
	ListPaymentsByTenant(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) ([]*Payment, error)

	InsertWebhookEvent(ctx context.Context, db *gorm.DB, event *WebhookEvent) error
	PurgeWebhookEventsBefore(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error)
}

type Service interface {
	// Ingest verifies, parses and applies a provider webhook delivery.
	// Successful charges confirm the matching reservation by reference.
	Ingest(ctx context.Context, provider string, payload []byte, headers http.Header) error

	ListPayments(ctx context.Context, tenantID snowflake.ID) ([]*Payment, error)
}
