package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	pricingdomain "github.com/lugspot/lugspot/internal/pricing/domain"
	"github.com/lugspot/lugspot/pkg/db/pagination"
)

type fakeRepo struct {
	rules []pricingdomain.PricingRule
	calls int
}

func (f *fakeRepo) Insert(ctx context.Context, db *gorm.DB, rule *pricingdomain.PricingRule) error {
	f.rules = append(f.rules, *rule)
	return nil
}

func (f *fakeRepo) Update(context.Context, *gorm.DB, *pricingdomain.PricingRule) error { return nil }

func (f *fakeRepo) Delete(context.Context, *gorm.DB, snowflake.ID, snowflake.ID) error { return nil }

func (f *fakeRepo) FindByID(context.Context, *gorm.DB, snowflake.ID, snowflake.ID) (*pricingdomain.PricingRule, error) {
	return nil, nil
}

func (f *fakeRepo) List(context.Context, *gorm.DB, snowflake.ID, pricingdomain.ListOptions, pagination.Pagination) ([]*pricingdomain.PricingRule, error) {
	return nil, nil
}

func (f *fakeRepo) ListCandidates(_ context.Context, _ *gorm.DB, tenantID snowflake.ID) ([]pricingdomain.PricingRule, error) {
	f.calls++
	var out []pricingdomain.PricingRule
	for _, r := range f.rules {
		if !r.IsActive {
			continue
		}
		if r.TenantID == nil || *r.TenantID == tenantID {
			out = append(out, r)
		}
	}
	return out, nil
}

func newTestService(repo pricingdomain.Repository) *Service {
	return &Service{
		log:  zap.NewNop(),
		repo: repo,
	}
}

// Scenario from the product rate-card docs: tenant T has one global hourly
// rule (1500/hr, min 1500) and one location rule for L (daily, 12000/day,
// min 5000). A 26-hour window at L bills 2 days = 24000; the same window at
// an unconfigured location falls back to hourly: 26h * 1500 = 39000.
func TestEstimateScenario(t *testing.T) {
	locationL := snowflake.ID(2001)
	locationL2 := snowflake.ID(2002)

	repo := &fakeRepo{rules: []pricingdomain.PricingRule{
		{
			ID:                 1,
			Scope:              pricingdomain.ScopeGlobal,
			PricingType:        pricingdomain.PricingHourly,
			PricePerHourMinor:  1500,
			MinimumChargeMinor: 1500,
			Currency:           "USD",
			IsActive:           true,
		},
		{
			ID:                 2,
			TenantID:           idPtr(testTenant),
			Scope:              pricingdomain.ScopeLocation,
			LocationID:         idPtr(locationL),
			PricingType:        pricingdomain.PricingDaily,
			PricePerDayMinor:   12000,
			MinimumChargeMinor: 5000,
			Currency:           "USD",
			IsActive:           true,
		},
	}}

	svc := newTestService(repo)
	start := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(26 * time.Hour)

	atL, err := svc.Estimate(context.Background(), pricingdomain.EstimateRequest{
		TenantID:     testTenant,
		Start:        start,
		End:          end,
		BaggageCount: 2,
		LocationID:   &locationL,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(24000), atL.TotalMinor)
	assert.Equal(t, pricingdomain.PricingDaily, atL.PricingType)
	assert.Equal(t, pricingdomain.ScopeLocation, atL.RuleScope)
	assert.Equal(t, snowflake.ID(2), atL.RuleID)
	assert.Equal(t, int64(2), atL.DurationDays)
	assert.Equal(t, "$240.00", atL.TotalFormatted)
	assert.Equal(t, 2, atL.BaggageCount)

	atL2, err := svc.Estimate(context.Background(), pricingdomain.EstimateRequest{
		TenantID:     testTenant,
		Start:        start,
		End:          end,
		BaggageCount: 2,
		LocationID:   &locationL2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(39000), atL2.TotalMinor)
	assert.Equal(t, pricingdomain.ScopeGlobal, atL2.RuleScope)
	assert.Equal(t, pricingdomain.PricingHourly, atL2.PricingType)
}

func TestEstimateIdempotence(t *testing.T) {
	repo := &fakeRepo{rules: []pricingdomain.PricingRule{
		{
			ID:                1,
			Scope:             pricingdomain.ScopeGlobal,
			PricingType:       pricingdomain.PricingHourly,
			PricePerHourMinor: 1500,
			Currency:          "USD",
			IsActive:          true,
		},
	}}

	svc := newTestService(repo)
	req := pricingdomain.EstimateRequest{
		TenantID:     testTenant,
		Start:        time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
		End:          time.Date(2025, 5, 1, 13, 30, 0, 0, time.UTC),
		BaggageCount: 1,
	}

	first, err := svc.Estimate(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Estimate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEstimateRejectsInvalidInput(t *testing.T) {
	svc := newTestService(&fakeRepo{})
	start := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	_, err := svc.Estimate(context.Background(), pricingdomain.EstimateRequest{
		TenantID: testTenant, Start: start, End: start, BaggageCount: 1,
	})
	assert.ErrorIs(t, err, pricingdomain.ErrInvalidInterval)

	_, err = svc.Estimate(context.Background(), pricingdomain.EstimateRequest{
		TenantID: testTenant, Start: start, End: start.Add(time.Hour), BaggageCount: 0,
	})
	assert.ErrorIs(t, err, pricingdomain.ErrInvalidBaggageCount)
}

func TestEstimateNoRuleConfigured(t *testing.T) {
	svc := newTestService(&fakeRepo{})
	start := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	_, err := svc.Estimate(context.Background(), pricingdomain.EstimateRequest{
		TenantID: testTenant, Start: start, End: start.Add(time.Hour), BaggageCount: 1,
	})
	assert.ErrorIs(t, err, pricingdomain.ErrNoPricingRule)
}

func TestCreateRuleValidation(t *testing.T) {
	svc := newTestService(&fakeRepo{})
	// genID needed for the happy path only
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	svc.genID = node

	base := pricingdomain.CreateRuleRequest{
		TenantID:          idPtr(testTenant),
		Scope:             pricingdomain.ScopeTenant,
		PricingType:       pricingdomain.PricingHourly,
		PricePerHourMinor: 1000,
		Currency:          "usd",
	}

	created, err := svc.Create(context.Background(), base)
	require.NoError(t, err)
	assert.Equal(t, "USD", created.Currency, "currency normalized to upper case")
	assert.True(t, created.IsActive)

	bad := base
	bad.Scope = pricingdomain.ScopeLocation // requires a location id
	_, err = svc.Create(context.Background(), bad)
	assert.ErrorIs(t, err, pricingdomain.ErrInvalidReference)

	bad = base
	bad.Scope = pricingdomain.ScopeGlobal // must not carry a tenant id
	_, err = svc.Create(context.Background(), bad)
	assert.ErrorIs(t, err, pricingdomain.ErrInvalidReference)

	bad = base
	bad.Currency = "USDT"
	_, err = svc.Create(context.Background(), bad)
	assert.ErrorIs(t, err, pricingdomain.ErrInvalidCurrency)

	bad = base
	bad.PricePerDayMinor = -1
	_, err = svc.Create(context.Background(), bad)
	assert.ErrorIs(t, err, pricingdomain.ErrInvalidRate)

	bad = base
	bad.PricingType = "biweekly"
	_, err = svc.Create(context.Background(), bad)
	assert.ErrorIs(t, err, pricingdomain.ErrInvalidPricingType)
}
