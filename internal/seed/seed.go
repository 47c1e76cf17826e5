// Package seed creates development fixtures: a tenant, a location with
// storage units, pricing rules at every scope, and a widget key.
package seed

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"gorm.io/gorm"

	locationdomain "github.com/lugspot/lugspot/internal/location/domain"
	pricingdomain "github.com/lugspot/lugspot/internal/pricing/domain"
	storageunitdomain "github.com/lugspot/lugspot/internal/storageunit/domain"
	tenantdomain "github.com/lugspot/lugspot/internal/tenant/domain"
	widgetdomain "github.com/lugspot/lugspot/internal/widget/domain"
)

type TenantSeedOptions struct {
	Name string
	Slug string
}

// EnsureTenant creates the tenant if no tenant with the slug exists and
// returns it either way.
func EnsureTenant(db *gorm.DB, node *snowflake.Node, opts TenantSeedOptions) (*tenantdomain.Tenant, error) {
	if db == nil {
		return nil, errors.New("seed requires database handle")
	}
	if opts.Slug == "" {
		return nil, errors.New("seed tenant slug is required")
	}

	var tenant tenantdomain.Tenant
	err := db.Where("slug = ?", opts.Slug).First(&tenant).Error
	if err == nil {
		return &tenant, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tenant = tenantdomain.Tenant{
		ID:       node.Generate(),
		Name:     opts.Name,
		Slug:     opts.Slug,
		IsActive: true,
	}
	if err := db.Create(&tenant).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

// EnsureWidgetKey makes sure the tenant has at least one active widget key.
func EnsureWidgetKey(db *gorm.DB, node *snowflake.Node, tenantID snowflake.ID) (*widgetdomain.WidgetKey, error) {
	var key widgetdomain.WidgetKey
	err := db.Where("tenant_id = ? AND is_active = ?", tenantID, true).First(&key).Error
	if err == nil {
		return &key, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	key = widgetdomain.WidgetKey{
		ID:       node.Generate(),
		TenantID: tenantID,
		Key:      uuid.NewString(),
		Label:    "default",
		IsActive: true,
	}
	if err := db.Create(&key).Error; err != nil {
		return nil, err
	}
	return &key, nil
}

// SeedDemoData fills an empty tenant with a location, storage units and
// pricing rules covering every scope. Idempotent: it skips tenants that
// already have a location.
func SeedDemoData(db *gorm.DB, node *snowflake.Node, tenantID snowflake.ID) error {
	var count int64
	if err := db.Model(&locationdomain.Location{}).Where("tenant_id = ?", tenantID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	location := &locationdomain.Location{
		ID:       node.Generate(),
		TenantID: tenantID,
		Name:     "Central Station Desk",
		Address:  "1 Station Square",
		City:     "Amsterdam",
		Country:  "NL",
		Timezone: "Europe/Amsterdam",
		Capacity: 120,
		IsActive: true,
	}
	if err := db.Create(location).Error; err != nil {
		return err
	}

	sizeClasses := []storageunitdomain.SizeClass{
		storageunitdomain.SizeSmall,
		storageunitdomain.SizeMedium,
		storageunitdomain.SizeLarge,
	}
	for i, sizeClass := range sizeClasses {
		unit := &storageunitdomain.StorageUnit{
			ID:         node.Generate(),
			TenantID:   tenantID,
			LocationID: location.ID,
			Name:       fmt.Sprintf("Rack %c", 'A'+i),
			SizeClass:  sizeClass,
			Capacity:   40,
			IsActive:   true,
		}
		if err := db.Create(unit).Error; err != nil {
			return err
		}
	}

	tenantID2 := tenantID
	rules := []*pricingdomain.PricingRule{
		{
			ID:                 node.Generate(),
			Scope:              pricingdomain.ScopeGlobal,
			PricingType:        pricingdomain.PricingHourly,
			PricePerHourMinor:  500,
			MinimumChargeMinor: 500,
			Currency:           "EUR",
			IsActive:           true,
		},
		{
			ID:                 node.Generate(),
			TenantID:           &tenantID2,
			Scope:              pricingdomain.ScopeTenant,
			PricingType:        pricingdomain.PricingDaily,
			PricePerDayMinor:   1200,
			MinimumChargeMinor: 1200,
			Currency:           "EUR",
			IsActive:           true,
			Priority:           10,
		},
		{
			ID:                 node.Generate(),
			TenantID:           &tenantID2,
			LocationID:         &location.ID,
			Scope:              pricingdomain.ScopeLocation,
			PricingType:        pricingdomain.PricingDaily,
			PricePerDayMinor:   1500,
			MinimumChargeMinor: 1500,
			Currency:           "EUR",
			IsActive:           true,
			Priority:           20,
		},
	}
	for _, rule := range rules {
		if err := db.Create(rule).Error; err != nil {
			return err
		}
	}
	return nil
}
