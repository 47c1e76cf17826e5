package service

import (
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pricingdomain "github.com/lugspot/lugspot/internal/pricing/domain"
)

var (
	testTenant   = snowflake.ID(1001)
	testLocation = snowflake.ID(2001)
	testStorage  = snowflake.ID(3001)
)

func rule(id int64, scope pricingdomain.Scope, opts ...func(*pricingdomain.PricingRule)) pricingdomain.PricingRule {
	r := pricingdomain.PricingRule{
		ID:          snowflake.ID(id),
		Scope:       scope,
		PricingType: pricingdomain.PricingHourly,
		Currency:    "USD",
		IsActive:    true,
		CreatedAt:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	switch scope {
	case pricingdomain.ScopeTenant:
		r.TenantID = idPtr(testTenant)
	case pricingdomain.ScopeLocation:
		r.TenantID = idPtr(testTenant)
		r.LocationID = idPtr(testLocation)
	case pricingdomain.ScopeStorage:
		r.TenantID = idPtr(testTenant)
		r.StorageUnitID = idPtr(testStorage)
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func withPriority(p int32) func(*pricingdomain.PricingRule) {
	return func(r *pricingdomain.PricingRule) { r.Priority = p }
}

func withCreatedAt(t time.Time) func(*pricingdomain.PricingRule) {
	return func(r *pricingdomain.PricingRule) { r.CreatedAt = t }
}

func idPtr(id snowflake.ID) *snowflake.ID { return &id }

func TestResolveSpecificityOrdering(t *testing.T) {
	// Broader scopes carry higher priorities; specificity must still win.
	candidates := []pricingdomain.PricingRule{
		rule(1, pricingdomain.ScopeGlobal, withPriority(100)),
		rule(2, pricingdomain.ScopeTenant, withPriority(90)),
		rule(3, pricingdomain.ScopeLocation, withPriority(80)),
		rule(4, pricingdomain.ScopeStorage, withPriority(0)),
	}

	got, err := resolveRule(candidates, testTenant, idPtr(testLocation), idPtr(testStorage))
	require.NoError(t, err)
	assert.Equal(t, snowflake.ID(4), got.ID)
	assert.Equal(t, pricingdomain.ScopeStorage, got.Scope)
}

func TestResolveFallbackChain(t *testing.T) {
	all := []pricingdomain.PricingRule{
		rule(1, pricingdomain.ScopeGlobal),
		rule(2, pricingdomain.ScopeTenant),
		rule(3, pricingdomain.ScopeLocation),
		rule(4, pricingdomain.ScopeStorage),
	}

	for _, tc := range []struct {
		name       string
		candidates []pricingdomain.PricingRule
		wantID     snowflake.ID
	}{
		{"storage wins", all, 4},
		{"falls to location", all[:3], 3},
		{"falls to tenant", all[:2], 2},
		{"falls to global", all[:1], 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := resolveRule(tc.candidates, testTenant, idPtr(testLocation), idPtr(testStorage))
			require.NoError(t, err)
			assert.Equal(t, tc.wantID, got.ID)
		})
	}

	_, err := resolveRule(nil, testTenant, idPtr(testLocation), idPtr(testStorage))
	assert.ErrorIs(t, err, pricingdomain.ErrNoPricingRule)
}

func TestResolvePriorityTieBreak(t *testing.T) {
	candidates := []pricingdomain.PricingRule{
		rule(1, pricingdomain.ScopeTenant, withPriority(5)),
		rule(2, pricingdomain.ScopeTenant, withPriority(10)),
	}

	got, err := resolveRule(candidates, testTenant, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, snowflake.ID(2), got.ID)
}

func TestResolveRecencyTieBreak(t *testing.T) {
	older := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	candidates := []pricingdomain.PricingRule{
		rule(1, pricingdomain.ScopeTenant, withPriority(5), withCreatedAt(older)),
		rule(2, pricingdomain.ScopeTenant, withPriority(5), withCreatedAt(newer)),
	}

	got, err := resolveRule(candidates, testTenant, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, snowflake.ID(2), got.ID)
}

func TestResolveIgnoresForeignReferences(t *testing.T) {
	otherStorage := snowflake.ID(9999)
	candidates := []pricingdomain.PricingRule{
		rule(1, pricingdomain.ScopeStorage), // configured for testStorage
		rule(2, pricingdomain.ScopeGlobal),
	}

	// Request targets a different storage unit: the storage rule must not match.
	got, err := resolveRule(candidates, testTenant, nil, idPtr(otherStorage))
	require.NoError(t, err)
	assert.Equal(t, pricingdomain.ScopeGlobal, got.Scope)
}

func TestResolveTenantIsolation(t *testing.T) {
	otherTenant := snowflake.ID(7777)
	candidates := []pricingdomain.PricingRule{
		rule(1, pricingdomain.ScopeTenant), // owned by testTenant
	}

	_, err := resolveRule(candidates, otherTenant, nil, nil)
	assert.ErrorIs(t, err, pricingdomain.ErrNoPricingRule)
}
