package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lugspot/lugspot/internal/clock"
	"github.com/lugspot/lugspot/internal/config"
	pricingdomain "github.com/lugspot/lugspot/internal/pricing/domain"
	quotadomain "github.com/lugspot/lugspot/internal/quota/domain"
	reservationdomain "github.com/lugspot/lugspot/internal/reservation/domain"
	widgetdomain "github.com/lugspot/lugspot/internal/widget/domain"
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	cfg   config.Config

	repo           widgetdomain.Repository
	pricingSvc     pricingdomain.Service
	reservationSvc reservationdomain.Service
	quotaSvc       quotadomain.Service
}

type ServiceParam struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Clock  clock.Clock
	Config config.Config

	Repo           widgetdomain.Repository
	PricingSvc     pricingdomain.Service
	ReservationSvc reservationdomain.Service
	QuotaSvc       quotadomain.Service `optional:"true"`
}

func New(p ServiceParam) widgetdomain.Service {
	return &Service{
		db:             p.DB,
		log:            p.Log.Named("widget.service"),
		genID:          p.GenID,
		clock:          p.Clock,
		cfg:            p.Config,
		repo:           p.Repo,
		pricingSvc:     p.PricingSvc,
		reservationSvc: p.ReservationSvc,
		quotaSvc:       p.QuotaSvc,
	}
}

func (s *Service) CreateKey(ctx context.Context, tenantID snowflake.ID, label string) (*widgetdomain.WidgetKey, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, widgetdomain.ErrInvalidLabel
	}

	key := &widgetdomain.WidgetKey{
		ID:       s.genID.Generate(),
		TenantID: tenantID,
		Key:      uuid.NewString(),
		Label:    label,
		IsActive: true,
	}
	if err := s.repo.Insert(ctx, s.db, key); err != nil {
		return nil, err
	}

	s.log.Info("widget key created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("key_id", key.ID.String()))
	return key, nil
}

func (s *Service) ListKeys(ctx context.Context, tenantID snowflake.ID) ([]*widgetdomain.WidgetKey, error) {
	return s.repo.ListByTenant(ctx, s.db, tenantID)
}

func (s *Service) RevokeKey(ctx context.Context, tenantID, id snowflake.ID) error {
	key, err := s.repo.FindByID(ctx, s.db, tenantID, id)
	if err != nil {
		return err
	}
	if key == nil {
		return widgetdomain.ErrWidgetKeyNotFound
	}
	if !key.IsActive {
		return nil
	}

	key.IsActive = false
	if err := s.repo.Update(ctx, s.db, key); err != nil {
		return err
	}

	s.log.Info("widget key revoked",
		zap.String("tenant_id", tenantID.String()),
		zap.String("key_id", key.ID.String()))
	return nil
}

func (s *Service) Estimate(ctx context.Context, key string, req widgetdomain.EstimateRequest) (*pricingdomain.PriceEstimate, error) {
	record, err := s.resolveKey(ctx, key)
	if err != nil {
		return nil, err
	}

	return s.pricingSvc.Estimate(ctx, pricingdomain.EstimateRequest{
		TenantID:      record.TenantID,
		Start:         req.StartAt,
		End:           req.EndAt,
		BaggageCount:  req.BaggageCount,
		LocationID:    &req.LocationID,
		StorageUnitID: req.StorageUnitID,
	})
}

func (s *Service) Submit(ctx context.Context, key string, req widgetdomain.SubmitRequest) (*widgetdomain.SubmitResponse, error) {
	record, err := s.resolveKey(ctx, key)
	if err != nil {
		return nil, err
	}

	if s.quotaSvc != nil {
		if err := s.quotaSvc.CanSubmitWidgetReservation(ctx, record.TenantID); err != nil {
			return nil, err
		}
	}

	holdExpires := s.clock.Now(ctx).Add(s.cfg.Scheduler.HoldTTL)
	reservation, err := s.reservationSvc.Create(ctx, reservationdomain.CreateRequest{
		TenantID:      record.TenantID,
		LocationID:    req.LocationID,
		StorageUnitID: req.StorageUnitID,
		GuestName:     req.GuestName,
		GuestEmail:    req.GuestEmail,
		GuestPhone:    req.GuestPhone,
		StartAt:       req.StartAt,
		EndAt:         req.EndAt,
		BaggageCount:  req.BaggageCount,
		Source:        "widget",
		HoldExpiresAt: &holdExpires,
	})
	if err != nil {
		return nil, err
	}

	return guestView(reservation), nil
}

func (s *Service) Reservation(ctx context.Context, key, reference string) (*widgetdomain.SubmitResponse, error) {
	record, err := s.resolveKey(ctx, key)
	if err != nil {
		return nil, err
	}

	reservation, err := s.reservationSvc.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if reservation.TenantID != record.TenantID {
		return nil, reservationdomain.ErrReservationNotFound
	}
	return guestView(reservation), nil
}

func (s *Service) resolveKey(ctx context.Context, key string) (*widgetdomain.WidgetKey, error) {
	record, err := s.repo.FindByKey(ctx, s.db, strings.TrimSpace(key))
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, widgetdomain.ErrWidgetKeyNotFound
	}
	if !record.IsActive {
		return nil, widgetdomain.ErrWidgetKeyInactive
	}
	return record, nil
}

func guestView(r *reservationdomain.Reservation) *widgetdomain.SubmitResponse {
	return &widgetdomain.SubmitResponse{
		Reference:     r.Reference,
		Status:        string(r.Status),
		AmountMinor:   r.AmountMinor,
		Currency:      r.Currency,
		HoldExpiresAt: r.HoldExpiresAt,
		StartAt:       r.StartAt,
		EndAt:         r.EndAt,
		BaggageCount:  r.BaggageCount,
		GuestEmail:    r.GuestEmail,
	}
}
