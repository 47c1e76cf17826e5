package apikey

import (
	"go.uber.org/fx"

	"github.com/lugspot/lugspot/internal/apikey/repository"
	"github.com/lugspot/lugspot/internal/apikey/service"
)

var Module = fx.Module("apikey.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
