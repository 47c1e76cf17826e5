// Package domain contains the storage unit model and contracts.
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
	ErrStorageUnitNotFound = errors.New("storage unit not found")
	ErrInvalidName         = errors.New("storage unit name is required")
	ErrInvalidSizeClass    = errors.New("invalid size class")
	ErrInvalidCapacity     = errors.New("capacity must be at least 1")
	ErrLocationMismatch    = errors.New("location does not belong to tenant")
)

type SizeClass string

const (
	SizeSmall  SizeClass = "small"  // handbag, backpack
	SizeMedium SizeClass = "medium" // cabin bag
	SizeLarge  SizeClass = "large"  // checked suitcase
	SizeBulky  SizeClass = "bulky"  // ski bags, bikes
)

func (s SizeClass) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge, SizeBulky:
		return true
	}
	return false
}

// StorageUnit is a bookable slot group inside a location (a shelf rack, a
// locker bank). Capacity is the number of bags it can hold at once.
type StorageUnit struct {
	ID         snowflake.ID `json:"id" gorm:"primaryKey"`
	TenantID   snowflake.ID `json:"tenant_id" gorm:"not null;index"`
	LocationID snowflake.ID `json:"location_id" gorm:"not null;index"`

	Name      string    `json:"name" gorm:"type:text;not null"`
	SizeClass SizeClass `json:"size_class" gorm:"type:text;not null;default:'medium'"`
	Capacity  int       `json:"capacity" gorm:"not null;default:1"`
	IsActive  bool      `json:"is_active" gorm:"not null;default:true;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (StorageUnit) TableName() string { return "storage_units" }

type CreateRequest struct {
	TenantID   snowflake.ID
	LocationID snowflake.ID
	Name       string
	SizeClass  SizeClass
	Capacity   int
}

type UpdateRequest struct {
	TenantID      snowflake.ID
	StorageUnitID snowflake.ID

	Name      *string
	SizeClass *SizeClass
	Capacity  *int
	IsActive  *bool
}

type ListOptions struct {
	LocationID string `form:"location_id"`
	ActiveOnly bool   `form:"active_only"`
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, unit *StorageUnit) error
	Update(ctx context.Context, db *gorm.DB, unit *StorageUnit) error
	Delete(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (*StorageUnit, error)
	List(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, opts ListOptions, page pagination.Pagination) ([]*StorageUnit, error)
	Count(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) (int64, error)
}

type ListResponse struct {
	StorageUnits []*StorageUnit      `json:"storage_units"`
	PageInfo     pagination.PageInfo `json:"page_info"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*StorageUnit, error)
	Update(ctx context.Context, req UpdateRequest) (*StorageUnit, error)
	Delete(ctx context.Context, tenantID, id snowflake.ID) error
	Get(ctx context.Context, tenantID, id snowflake.ID) (*StorageUnit, error)
	List(ctx context.Context, tenantID snowflake.ID, opts ListOptions, page pagination.Pagination) (*ListResponse, error)
}
