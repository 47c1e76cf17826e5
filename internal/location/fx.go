package location

import (
	"go.uber.org/fx"

	"github.com/lugspot/lugspot/internal/location/repository"
	"github.com/lugspot/lugspot/internal/location/service"
)

var Module = fx.Module("location.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
