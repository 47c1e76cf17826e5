package scheduler

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
	"github.com/lugspot/lugspot/internal/config"
	paymentdomain "github.com/lugspot/lugspot/internal/payment/domain"
	paymentrepo "github.com/lugspot/lugspot/internal/payment/repository"
	reservationdomain "github.com/lugspot/lugspot/internal/reservation/domain"
	reservationrepo "github.com/lugspot/lugspot/internal/reservation/repository"
)

func newScheduler(t *testing.T, now time.Time, cfg config.SchedulerConfig) (*Scheduler, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&reservationdomain.Reservation{},
		&paymentdomain.Payment{},
		&paymentdomain.WebhookEvent{},
	))

	return &Scheduler{
		db:              db,
		log:             zap.NewNop(),
		clock:           clock.Fixed(now),
		cfg:             cfg,
		reservationRepo: reservationrepo.Provide(),
		paymentRepo:     paymentrepo.Provide(),
	}, db
}

func seedReservation(t *testing.T, db *gorm.DB, id int64, status reservationdomain.Status, holdExpiresAt *time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&reservationdomain.Reservation{
		ID:            snowflake.ID(id),
		TenantID:      snowflake.ID(100),
		LocationID:    snowflake.ID(200),
		Reference:     "REF" + snowflake.ID(id).String(),
		GuestName:     "Ada",
		GuestEmail:    "ada@example.com",
		StartAt:       time.Now(),
		EndAt:         time.Now().Add(time.Hour),
		BaggageCount:  1,
		AmountMinor:   1000,
		Currency:      "EUR",
		Status:        status,
		Source:        "widget",
		HoldExpiresAt: holdExpiresAt,
	}).Error)
}

func TestExpireHoldsJob(t *testing.T) {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	s, db := newScheduler(t, now, config.SchedulerConfig{})

	lapsed := now.Add(-time.Minute)
	live := now.Add(time.Hour)
	seedReservation(t, db, 1, reservationdomain.StatusPending, &lapsed)
	seedReservation(t, db, 2, reservationdomain.StatusPending, &live)
	seedReservation(t, db, 3, reservationdomain.StatusConfirmed, &lapsed)
	seedReservation(t, db, 4, reservationdomain.StatusPending, nil)

	require.NoError(t, s.ExpireHoldsJob(context.Background()))

	var statuses []string
	require.NoError(t, db.Model(&reservationdomain.Reservation{}).
		Order("id ASC").Pluck("status", &statuses).Error)
	assert.Equal(t, []string{"expired", "pending", "confirmed", "pending"}, statuses)
}

func TestCleanupWebhookLogsJob(t *testing.T) {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	s, db := newScheduler(t, now, config.SchedulerConfig{WebhookRetentionDays: 90})

	old := &paymentdomain.WebhookEvent{ID: snowflake.ID(1), Provider: "stripe", Status: "processed"}
	recent := &paymentdomain.WebhookEvent{ID: snowflake.ID(2), Provider: "stripe", Status: "processed"}
	require.NoError(t, db.Create(old).Error)
	require.NoError(t, db.Create(recent).Error)

	require.NoError(t, db.Model(old).Update("created_at", now.AddDate(0, 0, -91)).Error)
	require.NoError(t, db.Model(recent).Update("created_at", now.AddDate(0, 0, -1)).Error)

	require.NoError(t, s.CleanupWebhookLogsJob(context.Background()))

	var count int64
	require.NoError(t, db.Model(&paymentdomain.WebhookEvent{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCleanupWebhookLogsJobDisabled(t *testing.T) {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	s, db := newScheduler(t, now, config.SchedulerConfig{WebhookRetentionDays: 0})

	stale := &paymentdomain.WebhookEvent{ID: snowflake.ID(1), Provider: "stripe", Status: "processed"}
	require.NoError(t, db.Create(stale).Error)
	require.NoError(t, db.Model(stale).Update("created_at", now.AddDate(-1, 0, 0)).Error)

	require.NoError(t, s.CleanupWebhookLogsJob(context.Background()))

	var count int64
	require.NoError(t, db.Model(&paymentdomain.WebhookEvent{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
