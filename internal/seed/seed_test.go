package seed

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	locationdomain "github.com/lugspot/lugspot/internal/location/domain"
	pricingdomain "github.com/lugspot/lugspot/internal/pricing/domain"
	storageunitdomain "github.com/lugspot/lugspot/internal/storageunit/domain"
	tenantdomain "github.com/lugspot/lugspot/internal/tenant/domain"
	widgetdomain "github.com/lugspot/lugspot/internal/widget/domain"
)

func openSeedDB(t *testing.T) (*gorm.DB, *snowflake.Node) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&tenantdomain.Tenant{},
		&widgetdomain.WidgetKey{},
		&locationdomain.Location{},
		&storageunitdomain.StorageUnit{},
		&pricingdomain.PricingRule{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return gdb, node
}

func TestEnsureTenantIsIdempotent(t *testing.T) {
	gdb, node := openSeedDB(t)

	opts := TenantSeedOptions{Name: "Demo Storage Co", Slug: "demo"}
	first, err := EnsureTenant(gdb, node, opts)
	require.NoError(t, err)

	second, err := EnsureTenant(gdb, node, opts)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, gdb.Model(&tenantdomain.Tenant{}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	_, err = EnsureTenant(gdb, node, TenantSeedOptions{Name: "No Slug"})
	require.Error(t, err)
}

func TestEnsureWidgetKeyIsIdempotent(t *testing.T) {
	gdb, node := openSeedDB(t)

	tenant, err := EnsureTenant(gdb, node, TenantSeedOptions{Name: "Demo", Slug: "demo"})
	require.NoError(t, err)

	first, err := EnsureWidgetKey(gdb, node, tenant.ID)
	require.NoError(t, err)
	require.True(t, first.IsActive)
	require.NotEmpty(t, first.Key)

	second, err := EnsureWidgetKey(gdb, node, tenant.ID)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
}

func TestSeedDemoData(t *testing.T) {
	gdb, node := openSeedDB(t)

	tenant, err := EnsureTenant(gdb, node, TenantSeedOptions{Name: "Demo", Slug: "demo"})
	require.NoError(t, err)

	require.NoError(t, SeedDemoData(gdb, node, tenant.ID))

	var locations []locationdomain.Location
	require.NoError(t, gdb.Where("tenant_id = ?", tenant.ID).Find(&locations).Error)
	require.Len(t, locations, 1)

	var units []storageunitdomain.StorageUnit
	require.NoError(t, gdb.Where("tenant_id = ?", tenant.ID).Order("name asc").Find(&units).Error)
	require.Len(t, units, 3)
	require.Equal(t, storageunitdomain.SizeSmall, units[0].SizeClass)
	require.Equal(t, storageunitdomain.SizeMedium, units[1].SizeClass)
	require.Equal(t, storageunitdomain.SizeLarge, units[2].SizeClass)

	var rules []pricingdomain.PricingRule
	require.NoError(t, gdb.Order("priority asc").Find(&rules).Error)
	require.Len(t, rules, 3)

	require.Equal(t, pricingdomain.ScopeGlobal, rules[0].Scope)
	require.Nil(t, rules[0].TenantID)
	require.Equal(t, pricingdomain.PricingHourly, rules[0].PricingType)
	require.EqualValues(t, 500, rules[0].PricePerHourMinor)

	require.Equal(t, pricingdomain.ScopeTenant, rules[1].Scope)
	require.Equal(t, pricingdomain.PricingDaily, rules[1].PricingType)
	require.EqualValues(t, 1200, rules[1].PricePerDayMinor)

	require.Equal(t, pricingdomain.ScopeLocation, rules[2].Scope)
	require.NotNil(t, rules[2].LocationID)
	require.Equal(t, locations[0].ID, *rules[2].LocationID)
	require.EqualValues(t, 1500, rules[2].PricePerDayMinor)

	// Second run must not duplicate anything.
	require.NoError(t, SeedDemoData(gdb, node, tenant.ID))
	require.NoError(t, gdb.Where("tenant_id = ?", tenant.ID).Find(&units).Error)
	require.Len(t, units, 3)
}
