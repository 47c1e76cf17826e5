// Package server exposes the HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apikeydomain "github.com/lugspot/lugspot/internal/apikey/domain"
	assistantdomain "github.com/lugspot/lugspot/internal/assistant/domain"
	"github.com/lugspot/lugspot/internal/config"
	locationdomain "github.com/lugspot/lugspot/internal/location/domain"
	paymentdomain "github.com/lugspot/lugspot/internal/payment/domain"
	pricingdomain "github.com/lugspot/lugspot/internal/pricing/domain"
	quotadomain "github.com/lugspot/lugspot/internal/quota/domain"
	"github.com/lugspot/lugspot/internal/ratelimit"
	reservationdomain "github.com/lugspot/lugspot/internal/reservation/domain"
	storageunitdomain "github.com/lugspot/lugspot/internal/storageunit/domain"
	tenantdomain "github.com/lugspot/lugspot/internal/tenant/domain"
	ticketdomain "github.com/lugspot/lugspot/internal/ticket/domain"
	widgetdomain "github.com/lugspot/lugspot/internal/widget/domain"
)

type Server struct {
	cfg    config.Config
	log    *zap.Logger
	db     *gorm.DB
	rdb    *redislib.Client
	engine *gin.Engine

	apiKeyLimiter *ratelimit.Limiter
	widgetLimiter *ratelimit.Limiter

	tenantSvc      tenantdomain.Service
	apiKeySvc      apikeydomain.Service
	locationSvc    locationdomain.Service
	storageUnitSvc storageunitdomain.Service
	pricingSvc     pricingdomain.Service
	reservationSvc reservationdomain.Service
	widgetSvc      widgetdomain.Service
	paymentSvc     paymentdomain.Service
	ticketSvc      ticketdomain.Service
	assistantSvc   assistantdomain.Service
	quotaSvc       quotadomain.Service
}

type ServerParam struct {
	fx.In

	Config config.Config
	Log    *zap.Logger
	DB     *gorm.DB
	Redis  *redislib.Client `optional:"true"`

	TenantSvc      tenantdomain.Service
	APIKeySvc      apikeydomain.Service
	LocationSvc    locationdomain.Service
	StorageUnitSvc storageunitdomain.Service
	PricingSvc     pricingdomain.Service
	ReservationSvc reservationdomain.Service
	WidgetSvc      widgetdomain.Service
	PaymentSvc     paymentdomain.Service
	TicketSvc      ticketdomain.Service
	AssistantSvc   assistantdomain.Service
	QuotaSvc       quotadomain.Service `optional:"true"`
}

func New(p ServerParam) *Server {
	if !p.Config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:            p.Config,
		log:            p.Log.Named("server"),
		db:             p.DB,
		rdb:            p.Redis,
		tenantSvc:      p.TenantSvc,
		apiKeySvc:      p.APIKeySvc,
		locationSvc:    p.LocationSvc,
		storageUnitSvc: p.StorageUnitSvc,
		pricingSvc:     p.PricingSvc,
		reservationSvc: p.ReservationSvc,
		widgetSvc:      p.WidgetSvc,
		paymentSvc:     p.PaymentSvc,
		ticketSvc:      p.TicketSvc,
		assistantSvc:   p.AssistantSvc,
		quotaSvc:       p.QuotaSvc,
	}

	if p.Config.RateLimit.Enabled {
		s.apiKeyLimiter = ratelimit.NewLimiter(p.Config.RateLimit.Limit, p.Config.RateLimit.Window)
		s.widgetLimiter = ratelimit.NewLimiter(p.Config.RateLimit.Limit, p.Config.RateLimit.Window)
	}

	engine := gin.New()
	engine.Use(s.RequestLogger(), s.Metrics(), gin.Recovery())
	s.engine = engine
	s.registerRoutes(engine)
	return s
}

// Start runs the HTTP listener under the fx lifecycle.
func Start(lc fx.Lifecycle, s *Server) {
	srv := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.log.Info("http server starting", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					s.log.Error("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, s.cfg.Server.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Module("server",
	fx.Provide(New),
	fx.Invoke(Start),
)
