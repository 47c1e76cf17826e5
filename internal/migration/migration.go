// Package migration applies the database schema.
package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"

	apikeydomain "github.com/lugspot/lugspot/internal/apikey/domain"
	"github.com/lugspot/lugspot/internal/config"
	locationdomain "github.com/lugspot/lugspot/internal/location/domain"
	paymentdomain "github.com/lugspot/lugspot/internal/payment/domain"
	pricingdomain "github.com/lugspot/lugspot/internal/pricing/domain"
	reservationdomain "github.com/lugspot/lugspot/internal/reservation/domain"
	storageunitdomain "github.com/lugspot/lugspot/internal/storageunit/domain"
	tenantdomain "github.com/lugspot/lugspot/internal/tenant/domain"
	ticketdomain "github.com/lugspot/lugspot/internal/ticket/domain"
	widgetdomain "github.com/lugspot/lugspot/internal/widget/domain"
)

// Run applies the schema for the configured driver. Postgres uses the
// embedded versioned migrations under an advisory lock; sqlite auto-migrates
// from the models, which is enough for development and tests.
func Run(conn *gorm.DB, cfg config.DatabaseConfig) error {
	if conn == nil {
		return errors.New("migration database handle is required")
	}

	if cfg.Driver == "postgres" {
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return runPostgres(sqlDB)
	}
	return conn.AutoMigrate(models()...)
}

func models() []any {
	return []any{
		&tenantdomain.Tenant{},
		&apikeydomain.APIKey{},
		&locationdomain.Location{},
		&storageunitdomain.StorageUnit{},
		&pricingdomain.PricingRule{},
		&reservationdomain.Reservation{},
		&widgetdomain.WidgetKey{},
		&paymentdomain.Payment{},
		&paymentdomain.WebhookEvent{},
		&ticketdomain.Ticket{},
		&ticketdomain.TicketMessage{},
	}
}

func runPostgres(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	unlock, err := acquireAdvisoryLock(ctx, db)
	if err != nil {
		return err
	}
	defer func() {
		_ = unlock(context.Background())
	}()

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := ensureNotDirty(migrator); err != nil {
		return err
	}

	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return ensureNotDirty(migrator)
}

func ensureNotDirty(migrator *migrate.Migrate) error {
	version, dirty, err := migrator.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return nil
		}
		return fmt.Errorf("read migration version: %w", err)
	}
	if dirty {
		return fmt.Errorf("database migrations are dirty at version %d", version)
	}
	return nil
}
