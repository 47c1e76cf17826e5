package widget

import (
	"go.uber.org/fx"

	"github.com/lugspot/lugspot/internal/widget/repository"
	"github.com/lugspot/lugspot/internal/widget/service"
)

var Module = fx.Module("widget.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
