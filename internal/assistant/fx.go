package assistant

import (
	"go.uber.org/fx"

	"github.com/lugspot/lugspot/internal/assistant/service"
)

var Module = fx.Module("assistant.service",
	fx.Provide(service.NewChainFromConfig),
	fx.Provide(service.New),
)
