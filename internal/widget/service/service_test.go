package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lugspot/lugspot/internal/clock"
	"github.com/lugspot/lugspot/internal/config"
	pricingdomain "github.com/lugspot/lugspot/internal/pricing/domain"
	quotadomain "github.com/lugspot/lugspot/internal/quota/domain"
	reservationdomain "github.com/lugspot/lugspot/internal/reservation/domain"
	widgetdomain "github.com/lugspot/lugspot/internal/widget/domain"
	widgetrepo "github.com/lugspot/lugspot/internal/widget/repository"
)

type fakeReservationSvc struct {
	reservationdomain.Service

	lastCreate reservationdomain.CreateRequest
	stored     *reservationdomain.Reservation
}

func (f *fakeReservationSvc) Create(ctx context.Context, req reservationdomain.CreateRequest) (*reservationdomain.Reservation, error) {
	f.lastCreate = req
	f.stored = &reservationdomain.Reservation{
		TenantID:      req.TenantID,
		LocationID:    req.LocationID,
		Reference:     "01JREF",
		GuestName:     req.GuestName,
		GuestEmail:    req.GuestEmail,
		StartAt:       req.StartAt,
		EndAt:         req.EndAt,
		BaggageCount:  req.BaggageCount,
		AmountMinor:   1500,
		Currency:      "EUR",
		Status:        reservationdomain.StatusPending,
		Source:        req.Source,
		HoldExpiresAt: req.HoldExpiresAt,
	}
	return f.stored, nil
}

func (f *fakeReservationSvc) GetByReference(ctx context.Context, reference string) (*reservationdomain.Reservation, error) {
	if f.stored == nil || f.stored.Reference != reference {
		return nil, reservationdomain.ErrReservationNotFound
	}
	return f.stored, nil
}

type fakePricingSvc struct {
	pricingdomain.Service
}

func (fakePricingSvc) Estimate(ctx context.Context, req pricingdomain.EstimateRequest) (*pricingdomain.PriceEstimate, error) {
	return &pricingdomain.PriceEstimate{TotalMinor: 1500, Currency: "EUR"}, nil
}

type fakeQuotaSvc struct {
	quotadomain.Service

	denySubmit bool
}

func (f *fakeQuotaSvc) CanSubmitWidgetReservation(ctx context.Context, tenantID snowflake.ID) error {
	if f.denySubmit {
		return quotadomain.ErrWidgetQuotaExceeded
	}
	return nil
}

func newWidgetService(t *testing.T, now time.Time, reservations reservationdomain.Service, quotas quotadomain.Service) (*Service, *gorm.DB) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&widgetdomain.WidgetKey{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := &Service{
		db:    gdb,
		log:   zap.NewNop(),
		genID: node,
		clock: clock.Fixed(now),
		cfg: config.Config{
			Scheduler: config.SchedulerConfig{HoldTTL: 30 * time.Minute},
		},
		repo:           widgetrepo.Provide(),
		pricingSvc:     fakePricingSvc{},
		reservationSvc: reservations,
		quotaSvc:       quotas,
	}
	return svc, gdb
}

func TestCreateKey(t *testing.T) {
	ctx := context.Background()
	svc, _ := newWidgetService(t, time.Now().UTC(), &fakeReservationSvc{}, nil)

	node, err := snowflake.NewNode(3)
	require.NoError(t, err)
	tenant := node.Generate()

	_, err = svc.CreateKey(ctx, tenant, "  ")
	require.ErrorIs(t, err, widgetdomain.ErrInvalidLabel)

	key, err := svc.CreateKey(ctx, tenant, "homepage")
	require.NoError(t, err)
	require.NotEmpty(t, key.Key)
	require.True(t, key.IsActive)

	keys, err := svc.ListKeys(ctx, tenant)
	require.NoError(t, err)
	require.Len(t, keys, 1)
}

func TestSubmitCreatesHold(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	reservations := &fakeReservationSvc{}
	svc, _ := newWidgetService(t, now, reservations, &fakeQuotaSvc{})

	node, err := snowflake.NewNode(3)
	require.NoError(t, err)
	tenant := node.Generate()
	location := node.Generate()

	key, err := svc.CreateKey(ctx, tenant, "homepage")
	require.NoError(t, err)

	resp, err := svc.Submit(ctx, key.Key, widgetdomain.SubmitRequest{
		LocationID:   location,
		GuestName:    "Ada",
		GuestEmail:   "ada@example.com",
		StartAt:      now.Add(time.Hour),
		EndAt:        now.Add(5 * time.Hour),
		BaggageCount: 2,
	})
	require.NoError(t, err)

	require.Equal(t, "widget", reservations.lastCreate.Source)
	require.NotNil(t, reservations.lastCreate.HoldExpiresAt)
	require.Equal(t, now.Add(30*time.Minute), *reservations.lastCreate.HoldExpiresAt)

	require.Equal(t, "01JREF", resp.Reference)
	require.Equal(t, string(reservationdomain.StatusPending), resp.Status)
	require.Equal(t, int64(1500), resp.AmountMinor)
}

func TestSubmitKeyChecks(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	svc, _ := newWidgetService(t, now, &fakeReservationSvc{}, nil)

	node, err := snowflake.NewNode(3)
	require.NoError(t, err)
	tenant := node.Generate()

	req := widgetdomain.SubmitRequest{
		LocationID: node.Generate(),
		GuestName:  "Ada",
		GuestEmail: "ada@example.com",
		StartAt:    now,
		EndAt:      now.Add(time.Hour),
	}

	_, err = svc.Submit(ctx, "missing", req)
	require.ErrorIs(t, err, widgetdomain.ErrWidgetKeyNotFound)

	key, err := svc.CreateKey(ctx, tenant, "homepage")
	require.NoError(t, err)
	require.NoError(t, svc.RevokeKey(ctx, tenant, key.ID))

	_, err = svc.Submit(ctx, key.Key, req)
	require.ErrorIs(t, err, widgetdomain.ErrWidgetKeyInactive)
}

func TestSubmitQuotaExceeded(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	svc, _ := newWidgetService(t, now, &fakeReservationSvc{}, &fakeQuotaSvc{denySubmit: true})

	node, err := snowflake.NewNode(3)
	require.NoError(t, err)
	tenant := node.Generate()

	key, err := svc.CreateKey(ctx, tenant, "homepage")
	require.NoError(t, err)

	_, err = svc.Submit(ctx, key.Key, widgetdomain.SubmitRequest{
		LocationID: node.Generate(),
		GuestName:  "Ada",
		GuestEmail: "ada@example.com",
		StartAt:    now,
		EndAt:      now.Add(time.Hour),
	})
	require.ErrorIs(t, err, quotadomain.ErrWidgetQuotaExceeded)
}

func TestReservationScopedToKeyTenant(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	reservations := &fakeReservationSvc{}
	svc, _ := newWidgetService(t, now, reservations, nil)

	node, err := snowflake.NewNode(3)
	require.NoError(t, err)
	tenant := node.Generate()
	other := node.Generate()

	key, err := svc.CreateKey(ctx, tenant, "homepage")
	require.NoError(t, err)
	otherKey, err := svc.CreateKey(ctx, other, "other site")
	require.NoError(t, err)

	_, err = svc.Submit(ctx, key.Key, widgetdomain.SubmitRequest{
		LocationID: node.Generate(),
		GuestName:  "Ada",
		GuestEmail: "ada@example.com",
		StartAt:    now,
		EndAt:      now.Add(time.Hour),
	})
	require.NoError(t, err)

	resp, err := svc.Reservation(ctx, key.Key, "01JREF")
	require.NoError(t, err)
	require.Equal(t, "01JREF", resp.Reference)

	_, err = svc.Reservation(ctx, otherKey.Key, "01JREF")
	require.ErrorIs(t, err, reservationdomain.ErrReservationNotFound)
}
