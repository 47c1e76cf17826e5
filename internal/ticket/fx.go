package ticket

import (
	"go.uber.org/fx"

	"github.com/lugspot/lugspot/internal/ticket/repository"
	"github.com/lugspot/lugspot/internal/ticket/service"
)

var Module = fx.Module("ticket.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
