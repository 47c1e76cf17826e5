package pricing

import (
	"go.uber.org/fx"

	"github.com/lugspot/lugspot/internal/pricing/repository"
	"github.com/lugspot/lugspot/internal/pricing/service"
)

var Module = fx.Module("pricing.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
