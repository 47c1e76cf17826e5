package payment

import (
	"go.uber.org/fx"

	"github.com/lugspot/lugspot/internal/payment/adapters"
	"github.com/lugspot/lugspot/internal/payment/repository"
	"github.com/lugspot/lugspot/internal/payment/webhook"
)

var Module = fx.Module("payment.service",
	fx.Provide(adapters.NewRegistry),
	fx.Provide(repository.Provide),
	fx.Provide(webhook.New),
)
