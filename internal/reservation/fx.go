package reservation

import (
	"go.uber.org/fx"

	"github.com/lugspot/lugspot/internal/reservation/repository"
	"github.com/lugspot/lugspot/internal/reservation/service"
)

var Module = fx.Module("reservation.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
