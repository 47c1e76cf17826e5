package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lugspot/lugspot/internal/clock"
	locationdomain "github.com/lugspot/lugspot/internal/location/domain"
	locationrepo "github.com/lugspot/lugspot/internal/location/repository"
	pricingdomain "github.com/lugspot/lugspot/internal/pricing/domain"
	reservationdomain "github.com/lugspot/lugspot/internal/reservation/domain"
	reservationrepo "github.com/lugspot/lugspot/internal/reservation/repository"
	storageunitdomain "github.com/lugspot/lugspot/internal/storageunit/domain"
	storageunitrepo "github.com/lugspot/lugspot/internal/storageunit/repository"
)

type stubPricing struct {
	pricingdomain.Service
	estimate *pricingdomain.PriceEstimate
	err      error
}

func (s *stubPricing) Estimate(context.Context, pricingdomain.EstimateRequest) (*pricingdomain.PriceEstimate, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.estimate, nil
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&locationdomain.Location{},
		&storageunitdomain.StorageUnit{},
		&reservationdomain.Reservation{},
	))
	return db
}

func newReservationService(t *testing.T, db *gorm.DB, pricing pricingdomain.Service) *Service {
	t.Helper()
	node, err := snowflake.NewNode(2)
	require.NoError(t, err)
	return &Service{
		db:              db,
		log:             zap.NewNop(),
		genID:           node,
		clock:           clock.SystemClock{},
		repo:            reservationrepo.Provide(),
		locationRepo:    locationrepo.Provide(),
		storageUnitRepo: storageunitrepo.Provide(),
		pricingSvc:      pricing,
	}
}

func seedLocation(t *testing.T, db *gorm.DB, tenantID snowflake.ID) *locationdomain.Location {
	t.Helper()
	location := &locationdomain.Location{
		ID:       snowflake.ID(9001),
		TenantID: tenantID,
		Name:     "Central Station Desk",
		Timezone: "UTC",
		IsActive: true,
	}
	require.NoError(t, db.Create(location).Error)
	return location
}

func TestCreatePersistsPricedAmount(t *testing.T) {
	db := openTestDB(t)
	tenantID := snowflake.ID(100)
	location := seedLocation(t, db, tenantID)

	pricing := &stubPricing{estimate: &pricingdomain.PriceEstimate{
		TotalMinor: 24000,
		Currency:   "EUR",
		RuleID:     snowflake.ID(555),
		RuleScope:  pricingdomain.ScopeLocation,
	}}
	svc := newReservationService(t, db, pricing)

	start := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	created, err := svc.Create(context.Background(), reservationdomain.CreateRequest{
		TenantID:     tenantID,
		LocationID:   location.ID,
		GuestName:    "Ada Lovelace",
		GuestEmail:   "ada@example.com",
		StartAt:      start,
		EndAt:        start.Add(26 * time.Hour),
		BaggageCount: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(24000), created.AmountMinor)
	assert.Equal(t, "EUR", created.Currency)
	assert.Equal(t, reservationdomain.StatusPending, created.Status)
	assert.NotEmpty(t, created.Reference)
	require.NotNil(t, created.RuleID)
	assert.Equal(t, snowflake.ID(555), *created.RuleID)

	// Later rule edits must not change the booked amount.
	pricing.estimate.TotalMinor = 99999
	fetched, err := svc.Get(context.Background(), tenantID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(24000), fetched.AmountMinor)
}

func TestCreateValidation(t *testing.T) {
	db := openTestDB(t)
	tenantID := snowflake.ID(100)
	location := seedLocation(t, db, tenantID)
	svc := newReservationService(t, db, &stubPricing{estimate: &pricingdomain.PriceEstimate{Currency: "EUR"}})

	start := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	base := reservationdomain.CreateRequest{
		TenantID:     tenantID,
		LocationID:   location.ID,
		GuestName:    "Ada",
		GuestEmail:   "ada@example.com",
		StartAt:      start,
		EndAt:        start.Add(time.Hour),
		BaggageCount: 1,
	}

	bad := base
	bad.GuestName = "  "
	_, err := svc.Create(context.Background(), bad)
	assert.ErrorIs(t, err, reservationdomain.ErrInvalidGuest)

	bad = base
	bad.EndAt = start
	_, err = svc.Create(context.Background(), bad)
	assert.ErrorIs(t, err, reservationdomain.ErrInvalidWindow)

	bad = base
	bad.BaggageCount = 0
	_, err = svc.Create(context.Background(), bad)
	assert.ErrorIs(t, err, reservationdomain.ErrInvalidBaggageCount)

	bad = base
	bad.LocationID = snowflake.ID(424242)
	_, err = svc.Create(context.Background(), bad)
	assert.ErrorIs(t, err, reservationdomain.ErrLocationMismatch)
}

func TestStatusTransitions(t *testing.T) {
	db := openTestDB(t)
	tenantID := snowflake.ID(100)
	location := seedLocation(t, db, tenantID)
	svc := newReservationService(t, db, &stubPricing{estimate: &pricingdomain.PriceEstimate{TotalMinor: 1000, Currency: "EUR"}})

	start := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	created, err := svc.Create(context.Background(), reservationdomain.CreateRequest{
		TenantID:     tenantID,
		LocationID:   location.ID,
		GuestName:    "Ada",
		GuestEmail:   "ada@example.com",
		StartAt:      start,
		EndAt:        start.Add(time.Hour),
		BaggageCount: 1,
	})
	require.NoError(t, err)

	// pending -> checked_in is not allowed
	_, err = svc.Transition(context.Background(), tenantID, created.ID, reservationdomain.StatusCheckedIn)
	assert.ErrorIs(t, err, reservationdomain.ErrInvalidTransition)

	confirmed, err := svc.Transition(context.Background(), tenantID, created.ID, reservationdomain.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, reservationdomain.StatusConfirmed, confirmed.Status)

	checkedIn, err := svc.Transition(context.Background(), tenantID, created.ID, reservationdomain.StatusCheckedIn)
	require.NoError(t, err)

	completed, err := svc.Transition(context.Background(), tenantID, checkedIn.ID, reservationdomain.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, reservationdomain.StatusCompleted, completed.Status)

	_, err = svc.Transition(context.Background(), tenantID, completed.ID, reservationdomain.StatusCancelled)
	assert.ErrorIs(t, err, reservationdomain.ErrInvalidTransition)
}

func TestConfirmByReferenceIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	tenantID := snowflake.ID(100)
	location := seedLocation(t, db, tenantID)
	svc := newReservationService(t, db, &stubPricing{estimate: &pricingdomain.PriceEstimate{TotalMinor: 1000, Currency: "EUR"}})

	start := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	holdUntil := start.Add(30 * time.Minute)
	created, err := svc.Create(context.Background(), reservationdomain.CreateRequest{
		TenantID:      tenantID,
		LocationID:    location.ID,
		GuestName:     "Ada",
		GuestEmail:    "ada@example.com",
		StartAt:       start,
		EndAt:         start.Add(time.Hour),
		BaggageCount:  1,
		Source:        "widget",
		HoldExpiresAt: &holdUntil,
	})
	require.NoError(t, err)

	first, err := svc.ConfirmByReference(context.Background(), created.Reference)
	require.NoError(t, err)
	assert.Equal(t, reservationdomain.StatusConfirmed, first.Status)
	assert.Nil(t, first.HoldExpiresAt)

	second, err := svc.ConfirmByReference(context.Background(), created.Reference)
	require.NoError(t, err)
	assert.Equal(t, reservationdomain.StatusConfirmed, second.Status)
}

func TestExpireStaleHolds(t *testing.T) {
	db := openTestDB(t)
	tenantID := snowflake.ID(100)
	location := seedLocation(t, db, tenantID)
	svc := newReservationService(t, db, &stubPricing{estimate: &pricingdomain.PriceEstimate{TotalMinor: 1000, Currency: "EUR"}})

	start := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	expiredHold := start.Add(-time.Hour)
	created, err := svc.Create(context.Background(), reservationdomain.CreateRequest{
		TenantID:      tenantID,
		LocationID:    location.ID,
		GuestName:     "Ada",
		GuestEmail:    "ada@example.com",
		StartAt:       start,
		EndAt:         start.Add(time.Hour),
		BaggageCount:  1,
		Source:        "widget",
		HoldExpiresAt: &expiredHold,
	})
	require.NoError(t, err)

	// Cutoff comes from the fixture, not the wall clock: the hold lapsed an
	// hour before start, so start is strictly past it.
	affected, err := svc.repo.ExpireStaleHolds(context.Background(), db, start)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	// A second sweep with the same cutoff finds nothing left to expire.
	again, err := svc.repo.ExpireStaleHolds(context.Background(), db, start)
	require.NoError(t, err)
	assert.Equal(t, int64(0), again)

	fetched, err := svc.Get(context.Background(), tenantID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, reservationdomain.StatusExpired, fetched.Status)
}
