// Package domain contains the storage location model and contracts.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/lugspot/lugspot/pkg/db/pagination"
)

var (
	ErrLocationNotFound = errors.New("location not found")
	ErrInvalidName      = errors.New("location name is required")
	ErrInvalidTimezone  = errors.New("invalid IANA timezone")
	ErrInvalidCapacity  = errors.New("capacity must be non-negative")
)

// Location is a physical drop-off point (hotel desk, shop counter) where
// luggage is accepted.
type Location struct {
	ID       snowflake.ID `json:"id" gorm:"primaryKey"`
	TenantID snowflake.ID `json:"tenant_id" gorm:"not null;index"`

	Name     string `json:"name" gorm:"type:text;not null"`
	Address  string `json:"address" gorm:"type:text"`
	City     string `json:"city" gorm:"type:text"`
	Country  string `json:"country" gorm:"type:text"` // ISO 3166-1 alpha-2
	Timezone string `json:"timezone" gorm:"type:text;not null;default:'UTC'"`

	Capacity     int            `json:"capacity" gorm:"not null;default:0"` // 0 = unlimited
	OpeningHours datatypes.JSON `json:"opening_hours,omitempty" gorm:"type:jsonb"`
	IsActive     bool           `json:"is_active" gorm:"not null;default:true;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Location) TableName() string { return "locations" }

type CreateRequest struct {
	TenantID     snowflake.ID
	Name         string
	Address      string
	City         string
	Country      string
	Timezone     string
	Capacity     int
	OpeningHours map[string]any
}

type UpdateRequest struct {
	TenantID   snowflake.ID
	LocationID snowflake.ID

	Name     *string
	Address  *string
	City     *string
	Country  *string
	Timezone *string
	Capacity *int
	IsActive *bool
}

type ListOptions struct {
	City       string `form:"city"`
	ActiveOnly bool   `form:"active_only"`
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, location *Location) error
	Update(ctx context.Context, db *gorm.DB, location *Location) error
	Delete(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (*Location, error)
	List(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, opts ListOptions, page pagination.Pagination) ([]*Location, error)
	Count(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) (int64, error)
}

type ListResponse struct {
	Locations []*Location         `json:"locations"`
	PageInfo  pagination.PageInfo `json:"page_info"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Location, error)
	Update(ctx context.Context, req UpdateRequest) (*Location, error)
	Delete(ctx context.Context, tenantID, id snowflake.ID) error
	Get(ctx context.Context, tenantID, id snowflake.ID) (*Location, error)
	List(ctx context.Context, tenantID snowflake.ID, opts ListOptions, page pagination.Pagination) (*ListResponse, error)
}
