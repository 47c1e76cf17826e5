package service

import (
	"context"
	"crypto/rand"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/oklog/ulid/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lugspot/lugspot/internal/clock"
	locationdomain "github.com/lugspot/lugspot/internal/location/domain"
	pricingdomain "github.com/lugspot/lugspot/internal/pricing/domain"
	reservationdomain "github.com/lugspot/lugspot/internal/reservation/domain"
	storageunitdomain "github.com/lugspot/lugspot/internal/storageunit/domain"
	"github.com/lugspot/lugspot/pkg/db/pagination"
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock

	repo            reservationdomain.Repository
	locationRepo    locationdomain.Repository
	storageUnitRepo storageunitdomain.Repository
	pricingSvc      pricingdomain.Service
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock

	Repo            reservationdomain.Repository
	LocationRepo    locationdomain.Repository
	StorageUnitRepo storageunitdomain.Repository
	PricingSvc      pricingdomain.Service
}

func New(p ServiceParam) reservationdomain.Service {
	return &Service{
		db:              p.DB,
		log:             p.Log.Named("reservation.service"),
		genID:           p.GenID,
		clock:           p.Clock,
		repo:            p.Repo,
		locationRepo:    p.LocationRepo,
		storageUnitRepo: p.StorageUnitRepo,
		pricingSvc:      p.PricingSvc,
	}
}

func (s *Service) Create(ctx context.Context, req reservationdomain.CreateRequest) (*reservationdomain.Reservation, error) {
	guestName := strings.TrimSpace(req.GuestName)
	guestEmail := strings.TrimSpace(req.GuestEmail)
	if guestName == "" || guestEmail == "" {
		return nil, reservationdomain.ErrInvalidGuest
	}
	if req.BaggageCount < 1 {
		return nil, reservationdomain.ErrInvalidBaggageCount
	}

	start := req.StartAt.UTC()
	end := req.EndAt.UTC()
	if !end.After(start) {
		return nil, reservationdomain.ErrInvalidWindow
	}

	location, err := s.locationRepo.FindByID(ctx, s.db, req.TenantID, req.LocationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, reservationdomain.ErrLocationMismatch
	}

	if req.StorageUnitID != nil {
		unit, err := s.storageUnitRepo.FindByID(ctx, s.db, req.TenantID, *req.StorageUnitID)
		if err != nil {
			return nil, err
		}
		if unit == nil || unit.LocationID != req.LocationID {
			return nil, reservationdomain.ErrStorageMismatch
		}
	}

	// Price once at booking time. The stored amount stays fixed even if the
	// rule changes later.
	estimate, err := s.pricingSvc.Estimate(ctx, pricingdomain.EstimateRequest{
		TenantID:      req.TenantID,
		Start:         start,
		End:           end,
		BaggageCount:  req.BaggageCount,
		LocationID:    &req.LocationID,
		StorageUnitID: req.StorageUnitID,
	})
	if err != nil {
		return nil, err
	}

	source := strings.TrimSpace(req.Source)
	if source == "" {
		source = "admin"
	}

	ruleID := estimate.RuleID
	reservation := &reservationdomain.Reservation{
		ID:            s.genID.Generate(),
		TenantID:      req.TenantID,
		LocationID:    req.LocationID,
		StorageUnitID: req.StorageUnitID,
		Reference:     newReference(s.clock.Now(ctx)),
		GuestName:     guestName,
		GuestEmail:    guestEmail,
		GuestPhone:    strings.TrimSpace(req.GuestPhone),
		StartAt:       start,
		EndAt:         end,
		BaggageCount:  req.BaggageCount,
		AmountMinor:   estimate.TotalMinor,
		Currency:      estimate.Currency,
		RuleID:        &ruleID,
		Status:        reservationdomain.StatusPending,
		Source:        source,
		HoldExpiresAt: req.HoldExpiresAt,
	}

	if err := s.repo.Insert(ctx, s.db, reservation); err != nil {
		return nil, err
	}

	s.log.Info("reservation created",
		zap.String("tenant_id", req.TenantID.String()),
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("reference", reservation.Reference),
		zap.Int64("amount_minor", reservation.AmountMinor),
		zap.String("source", source))
	return reservation, nil
}

func (s *Service) Get(ctx context.Context, tenantID, id snowflake.ID) (*reservationdomain.Reservation, error) {
	reservation, err := s.repo.FindByID(ctx, s.db, tenantID, id)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, reservationdomain.ErrReservationNotFound
	}
	return reservation, nil
}

func (s *Service) GetByReference(ctx context.Context, reference string) (*reservationdomain.Reservation, error) {
	reservation, err := s.repo.FindByReference(ctx, s.db, strings.TrimSpace(reference))
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, reservationdomain.ErrReservationNotFound
	}
	return reservation, nil
}

func (s *Service) List(ctx context.Context, tenantID snowflake.ID, opts reservationdomain.ListOptions, page pagination.Pagination) (*reservationdomain.ListResponse, error) {
	reservations, err := s.repo.List(ctx, s.db, tenantID, opts, page)
	if err != nil {
		return nil, err
	}
	return &reservationdomain.ListResponse{
		Reservations: reservations,
		PageInfo: pagination.PageInfo{
			NextPageToken: page.NextToken(len(reservations)),
			PageSize:      int32(page.Limit()),
		},
	}, nil
}

func (s *Service) Transition(ctx context.Context, tenantID, id snowflake.ID, next reservationdomain.Status) (*reservationdomain.Reservation, error) {
	reservation, err := s.repo.FindByID(ctx, s.db, tenantID, id)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, reservationdomain.ErrReservationNotFound
	}
	if !reservation.Status.CanTransition(next) {
		return nil, reservationdomain.ErrInvalidTransition
	}

	reservation.Status = next
	if err := s.repo.Update(ctx, s.db, reservation); err != nil {
		return nil, err
	}

	s.log.Info("reservation status changed",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("status", string(next)))
	return reservation, nil
}

func (s *Service) ConfirmByReference(ctx context.Context, reference string) (*reservationdomain.Reservation, error) {
	reservation, err := s.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if reservation.Status == reservationdomain.StatusConfirmed {
		// Webhook retries land here; confirming twice is a no-op.
		return reservation, nil
	}
	if !reservation.Status.CanTransition(reservationdomain.StatusConfirmed) {
		return nil, reservationdomain.ErrInvalidTransition
	}

	reservation.Status = reservationdomain.StatusConfirmed
	reservation.HoldExpiresAt = nil
	if err := s.repo.Update(ctx, s.db, reservation); err != nil {
		return nil, err
	}
	return reservation, nil
}

func newReference(now time.Time) string {
	return ulid.MustNew(ulid.Timestamp(now), ulid.Monotonic(rand.Reader, 0)).String()
}
