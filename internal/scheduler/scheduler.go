// Package scheduler runs the periodic background jobs.
package scheduler

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lugspot/lugspot/internal/clock"
	"github.com/lugspot/lugspot/internal/config"
	paymentdomain "github.com/lugspot/lugspot/internal/payment/domain"
	reservationdomain "github.com/lugspot/lugspot/internal/reservation/domain"
)

type Scheduler struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	cfg   config.SchedulerConfig

	reservationRepo reservationdomain.Repository
	paymentRepo     paymentdomain.Repository
}

type Param struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	Clock  clock.Clock
	Config config.Config

	ReservationRepo reservationdomain.Repository
	PaymentRepo     paymentdomain.Repository
}

func New(p Param) *Scheduler {
	return &Scheduler{
		db:              p.DB,
		log:             p.Log.Named("scheduler"),
		clock:           p.Clock,
		cfg:             p.Config.Scheduler,
		reservationRepo: p.ReservationRepo,
		paymentRepo:     p.PaymentRepo,
	}
}

var Module = fx.Module("scheduler",
	fx.Provide(New),
)

// RunForever ticks at the configured interval until ctx is cancelled.
func (s *Scheduler) RunForever(ctx context.Context) {
	interval := s.cfg.Interval
	if interval <= 0 {
		interval = time.Minute
	}

	s.log.Info("scheduler started", zap.Duration("interval", interval))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce executes every job a single time. Jobs are independent; one
// failing does not stop the others.
func (s *Scheduler) RunOnce(ctx context.Context) {
	if err := s.ExpireHoldsJob(ctx); err != nil {
		s.log.Error("expire holds job failed", zap.Error(err))
	}
	if err := s.CleanupWebhookLogsJob(ctx); err != nil {
		s.log.Error("cleanup webhook logs job failed", zap.Error(err))
	}
}

// ExpireHoldsJob marks pending reservations whose payment hold lapsed as
// expired.
func (s *Scheduler) ExpireHoldsJob(ctx context.Context) error {
	cutoff := s.clock.Now(ctx)
	affected, err := s.reservationRepo.ExpireStaleHolds(ctx, s.db, cutoff)
	if err != nil {
		return err
	}
	if affected > 0 {
		s.log.Info("expired stale reservation holds", zap.Int64("count", affected))
	}
	return nil
}

// CleanupWebhookLogsJob prunes webhook audit rows past the retention window.
func (s *Scheduler) CleanupWebhookLogsJob(ctx context.Context) error {
	retentionDays := s.cfg.WebhookRetentionDays
	if retentionDays <= 0 {
		return nil
	}

	cutoff := s.clock.Now(ctx).AddDate(0, 0, -retentionDays)
	deleted, err := s.paymentRepo.PurgeWebhookEventsBefore(ctx, s.db, cutoff)
	if err != nil {
		return err
	}
	if deleted > 0 {
		s.log.Info("cleaned up webhook logs",
			zap.Time("cutoff", cutoff),
			zap.Int64("deleted", deleted))
	}
	return nil
}
