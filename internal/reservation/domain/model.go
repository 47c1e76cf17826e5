// Package domain contains the reservation model and lifecycle contracts.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/lugspot/lugspot/pkg/db/pagination"
)

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrInvalidGuest        = errors.New("guest name and email are required")
	ErrInvalidWindow       = errors.New("reservation end must be after start")
	ErrInvalidBaggageCount = errors.New("baggage count must be at least 1")
	ErrInvalidTransition   = errors.New("invalid reservation status transition")
	ErrLocationMismatch    = errors.New("location does not belong to tenant")
	ErrStorageMismatch     = errors.New("storage unit does not belong to location")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCheckedIn Status = "checked_in"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

// transitions holds the allowed status graph. Terminal states have no entry.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusExpired},
	StatusConfirmed: {StatusCheckedIn, StatusCancelled},
	StatusCheckedIn: {StatusCompleted},
}

// CanTransition reports whether moving from s to next is allowed.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Reservation is a booked storage window. AmountMinor is priced once at
// booking time and never recomputed when rules change later.
type Reservation struct {
	ID            snowflake.ID  `json:"id" gorm:"primaryKey"`
	TenantID      snowflake.ID  `json:"tenant_id" gorm:"not null;index"`
	LocationID    snowflake.ID  `json:"location_id" gorm:"not null;index"`
	StorageUnitID *snowflake.ID `json:"storage_unit_id,omitempty" gorm:"index"`

	// Reference is the opaque code shown to guests (ULID).
	Reference string `json:"reference" gorm:"type:text;not null;uniqueIndex"`

	GuestName  string `json:"guest_name" gorm:"type:text;not null"`
	GuestEmail string `json:"guest_email" gorm:"type:text;not null"`
	GuestPhone string `json:"guest_phone" gorm:"type:text"`

	StartAt      time.Time `json:"start_at" gorm:"not null;index"`
	EndAt        time.Time `json:"end_at" gorm:"not null"`
	BaggageCount int       `json:"baggage_count" gorm:"not null;default:1"`

	AmountMinor int64         `json:"amount_minor" gorm:"not null"`
	Currency    string        `json:"currency" gorm:"type:text;not null"`
	RuleID      *snowflake.ID `json:"rule_id,omitempty"` // provenance of the priced amount

	Status Status `json:"status" gorm:"type:text;not null;default:'pending';index"`
	Source string `json:"source" gorm:"type:text;not null;default:'admin'"` // admin or widget

	// HoldExpiresAt bounds how long an unpaid widget hold stays pending.
	HoldExpiresAt *time.Time `json:"hold_expires_at,omitempty" gorm:"index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Reservation) TableName() string { return "reservations" }

type CreateRequest struct {
	TenantID      snowflake.ID
	LocationID    snowflake.ID
	StorageUnitID *snowflake.ID

	GuestName  string
	GuestEmail string
	GuestPhone string

	StartAt      time.Time
	EndAt        time.Time
	BaggageCount int

	Source        string
	HoldExpiresAt *time.Time
}

type ListOptions struct {
	LocationID string `form:"location_id"`
	Status     string `form:"status"`
	Reference  string `form:"reference"`
}

type ListResponse struct {
	Reservations []*Reservation      `json:"reservations"`
	PageInfo     pagination.PageInfo `json:"page_info"`
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, r *Reservation) error
	Update(ctx context.Context, db *gorm.DB, r *Reservation) error
	FindByID(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (*Reservation, error)
	FindByReference(ctx context.Context, db *gorm.DB, reference string) (*Reservation, error)
	List(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, opts ListOptions, page pagination.Pagination) ([]*Reservation, error)

	// ExpireStaleHolds marks pending reservations whose hold window lapsed
	// before cutoff as expired, returning the number affected.
	ExpireStaleHolds(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error)
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Reservation, error)
	Get(ctx context.Context, tenantID, id snowflake.ID) (*Reservation, error)
	GetByReference(ctx context.Context, reference string) (*Reservation, error)
	List(ctx context.Context, tenantID snowflake.ID, opts ListOptions, page pagination.Pagination) (*ListResponse, error)

	Transition(ctx context.Context, tenantID, id snowflake.ID, next Status) (*Reservation, error)

	// ConfirmByReference is invoked by the payment webhook path once a charge
	// for the reservation's reference succeeds.
	ConfirmByReference(ctx context.Context, reference string) (*Reservation, error)
}
