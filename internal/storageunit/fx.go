package storageunit

import (
	"go.uber.org/fx"

	"github.com/lugspot/lugspot/internal/storageunit/repository"
	"github.com/lugspot/lugspot/internal/storageunit/service"
)

var Module = fx.Module("storageunit.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
