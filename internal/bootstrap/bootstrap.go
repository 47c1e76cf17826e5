// Package bootstrap performs env-gated startup provisioning.
package bootstrap

import (
	"errors"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lugspot/lugspot/internal/config"
	"github.com/lugspot/lugspot/internal/seed"
)

// EnsureDefaultTenant creates the default tenant, a widget key and demo
// fixtures when explicitly enabled. Intended for development setups.
func EnsureDefaultTenant(cfg config.Config, db *gorm.DB, node *snowflake.Node, log *zap.Logger) error {
	if !cfg.Bootstrap.EnsureDefaultTenant {
		return nil
	}
	if db == nil {
		return errors.New("bootstrap requires database handle")
	}

	tenant, err := seed.EnsureTenant(db, node, seed.TenantSeedOptions{
		Name: cfg.Bootstrap.DefaultTenantName,
		Slug: cfg.Bootstrap.DefaultTenantSlug,
	})
	if err != nil {
		return err
	}

	key, err := seed.EnsureWidgetKey(db, node, tenant.ID)
	if err != nil {
		return err
	}

	if cfg.IsDevelopment() {
		if err := seed.SeedDemoData(db, node, tenant.ID); err != nil {
			return err
		}
	}

	log.Info("default tenant bootstrap ensured",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("slug", tenant.Slug),
		zap.String("widget_key", key.Key))
	return nil
}
