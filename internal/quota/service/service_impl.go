package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lugspot/lugspot/internal/config"
	locationdomain "github.com/lugspot/lugspot/internal/location/domain"
	quotadomain "github.com/lugspot/lugspot/internal/quota/domain"
	storageunitdomain "github.com/lugspot/lugspot/internal/storageunit/domain"
)

type ServiceParam struct {
	fx.In

	DB              *gorm.DB
	Redis           *redis.Client `optional:"true"`
	Log             *zap.Logger
	Cfg             config.Config
	LocationRepo    locationdomain.Repository
	StorageUnitRepo storageunitdomain.Repository
}

type service struct {
	db              *gorm.DB
	redis           *redis.Client
	log             *zap.Logger
	cfg             config.QuotaConfig
	locationRepo    locationdomain.Repository
	storageUnitRepo storageunitdomain.Repository
}

func NewService(p ServiceParam) quotadomain.Service {
	return &service{
		db:              p.DB,
		redis:           p.Redis,
		log:             p.Log.Named("quota.service"),
		cfg:             p.Cfg.Quota,
		locationRepo:    p.LocationRepo,
		storageUnitRepo: p.StorageUnitRepo,
	}
}

func (s *service) CanCreateLocation(ctx context.Context, tenantID snowflake.ID) error {
	if !s.cfg.Enabled {
		return nil
	}

	count, err := s.locationRepo.Count(ctx, s.db, tenantID)
	if err != nil {
		s.log.Error("failed to count locations", zap.Error(err))
		return err
	}
	if count >= int64(s.cfg.TenantLocations) {
		return quotadomain.ErrLocationQuotaExceeded
	}
	return nil
}

func (s *service) CanCreateStorageUnit(ctx context.Context, tenantID snowflake.ID) error {
	if !s.cfg.Enabled {
		return nil
	}

	count, err := s.storageUnitRepo.Count(ctx, s.db, tenantID)
	if err != nil {
		s.log.Error("failed to count storage units", zap.Error(err))
		return err
	}
	if count >= int64(s.cfg.TenantStorageUnits) {
		return quotadomain.ErrStorageUnitQuotaExceeded
	}
	return nil
}

func (s *service) CanSubmitWidgetReservation(ctx context.Context, tenantID snowflake.ID) error {
	if !s.cfg.Enabled || s.redis == nil {
		return nil
	}

	// Key: quota:widget:{tenant_id}:{month} e.g. quota:widget:123:2026-08
	now := time.Now().UTC()
	key := fmt.Sprintf("quota:widget:%s:%s", tenantID.String(), now.Format("2006-01"))

	val, err := s.redis.Incr(ctx, key).Result()
	if err != nil {
		s.log.Error("failed to increment widget quota", zap.Error(err))
		// Fail open to avoid blocking bookings on redis errors
		return nil
	}

	// New key: give it a generous expiry past month end
	if val == 1 {
		s.redis.Expire(ctx, key, 35*24*time.Hour)
	}

	if val > int64(s.cfg.TenantWidgetMonthly) {
		return quotadomain.ErrWidgetQuotaExceeded
	}
	return nil
}

func (s *service) GetTenantUsage(ctx context.Context, tenantID snowflake.ID) (map[string]int64, error) {
	if !s.cfg.Enabled {
		return nil, quotadomain.ErrQuotaDisabled
	}

	usage := make(map[string]int64)

	if count, err := s.locationRepo.Count(ctx, s.db, tenantID); err == nil {
		usage["locations"] = count
	}
	if count, err := s.storageUnitRepo.Count(ctx, s.db, tenantID); err == nil {
		usage["storage_units"] = count
	}
	return usage, nil
}
