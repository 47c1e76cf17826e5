package tenant

import (
	"go.uber.org/fx"

	"github.com/lugspot/lugspot/internal/tenant/repository"
	"github.com/lugspot/lugspot/internal/tenant/service"
)

var Module = fx.Module("tenant.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
