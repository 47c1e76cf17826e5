// Package domain contains the tenant model and contracts.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

var (
	ErrTenantNotFound = errors.New("tenant not found")
	ErrInvalidName    = errors.New("tenant name is required")
	ErrInvalidSlug    = errors.New("tenant slug must be lowercase alphanumeric with dashes")
	ErrSlugTaken      = errors.New("tenant slug already in use")
)

// Tenant is the top-level account a hotel or storage operator signs up as.
type Tenant struct {
	ID           snowflake.ID `json:"id" gorm:"primaryKey"`
	Name         string       `json:"name" gorm:"type:text;not null"`
	Slug         string       `json:"slug" gorm:"type:text;not null;uniqueIndex"`
	ContactEmail string       `json:"contact_email" gorm:"type:text"`
	IsActive     bool         `json:"is_active" gorm:"not null;default:true"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func (Tenant) TableName() string { return "tenants" }

type CreateRequest struct {
	Name         string
	Slug         string
	ContactEmail string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, tenant *Tenant) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Tenant, error)
	FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*Tenant, error)
	List(ctx context.Context, db *gorm.DB) ([]Tenant, error)
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Tenant, error)
	Get(ctx context.Context, id snowflake.ID) (*Tenant, error)
	List(ctx context.Context) ([]Tenant, error)
}
