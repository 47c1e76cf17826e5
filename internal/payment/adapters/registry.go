// Package adapters holds the provider adapter registry.
package adapters

import (
	"strings"

	"github.com/lugspot/lugspot/internal/config"
	"github.com/lugspot/lugspot/internal/payment/adapters/stripe"
	paymentdomain "github.com/lugspot/lugspot/internal/payment/domain"
)

type Registry struct {
	adapters map[string]paymentdomain.Adapter
}

// NewRegistry wires every adapter that has usable configuration. A provider
// without a secret is left unregistered so its webhooks are rejected early.
func NewRegistry(cfg config.Config) *Registry {
	r := &Registry{adapters: map[string]paymentdomain.Adapter{}}

	if strings.TrimSpace(cfg.Payment.StripeWebhookSecret) != "" {
		r.register(stripe.New(cfg.Payment.StripeWebhookSecret))
	}
	return r
}

func (r *Registry) register(adapter paymentdomain.Adapter) {
	r.adapters[strings.ToLower(adapter.Provider())] = adapter
}

func (r *Registry) Get(provider string) (paymentdomain.Adapter, bool) {
	adapter, ok := r.adapters[strings.ToLower(strings.TrimSpace(provider))]
	return adapter, ok
}
