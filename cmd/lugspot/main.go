package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/lugspot/lugspot/internal/apikey"
	"github.com/lugspot/lugspot/internal/assistant"
	"github.com/lugspot/lugspot/internal/bootstrap"
	"github.com/lugspot/lugspot/internal/clock"
	"github.com/lugspot/lugspot/internal/config"
	"github.com/lugspot/lugspot/internal/location"
	"github.com/lugspot/lugspot/internal/migration"
	"github.com/lugspot/lugspot/internal/observability"
	"github.com/lugspot/lugspot/internal/payment"
	"github.com/lugspot/lugspot/internal/pricing"
	"github.com/lugspot/lugspot/internal/quota"
	"github.com/lugspot/lugspot/internal/redis"
	"github.com/lugspot/lugspot/internal/reservation"
	"github.com/lugspot/lugspot/internal/scheduler"
	"github.com/lugspot/lugspot/internal/server"
	"github.com/lugspot/lugspot/internal/storageunit"
	"github.com/lugspot/lugspot/internal/tenant"
	"github.com/lugspot/lugspot/internal/ticket"
	"github.com/lugspot/lugspot/internal/widget"
	"github.com/lugspot/lugspot/pkg/db"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "lugspot",
		Short:   "Lugspot CLI",
		Version: readVersionFromEnv(),
	}
	root.AddCommand(newMigrateCmd(), newServeCmd(), newSchedulerCmd(), newAllCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate()
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			runServe()
			return nil
		},
	}
}

func newSchedulerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scheduler",
		Short: "Run background scheduler workers",
		RunE: func(cmd *cobra.Command, args []string) error {
			runScheduler()
			return nil
		},
	}
}

func newAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Run migrations, then start the API server and scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runMigrate(); err != nil {
				return err
			}
			runMonolith()
			return nil
		},
	}
}

// domainModules wires every business domain. The server and scheduler both
// pull their dependencies out of this set.
func domainModules() fx.Option {
	return fx.Options(
		tenant.Module,
		apikey.Module,
		location.Module,
		storageunit.Module,
		pricing.Module,
		quota.Module,
		reservation.Module,
		widget.Module,
		payment.Module,
		ticket.Module,
		assistant.Module,
	)
}

func runMigrate() error {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
			return migration.Run(conn, cfg.Database)
		}),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("migrate failed: %w", err)
	}
	_ = app.Stop(context.Background())
	return nil
}

func runServe() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,
		redis.Module,
		domainModules(),
		fx.Invoke(bootstrap.EnsureDefaultTenant),
		server.Module,
	)
	app.Run()
}

func runScheduler() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,
		redis.Module,
		domainModules(),
		scheduler.Module,
		fx.Invoke(startScheduler),
	)
	app.Run()
}

func runMonolith() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,
		redis.Module,
		domainModules(),
		fx.Invoke(bootstrap.EnsureDefaultTenant),
		server.Module,
		scheduler.Module,
		fx.Invoke(startScheduler),
	)
	app.Run()
}

func registerSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

func readVersionFromEnv() string {
	if v := strings.TrimSpace(os.Getenv("APP_VERSION")); v != "" {
		return v
	}
	return "dev"
}

func startScheduler(lc fx.Lifecycle, s *scheduler.Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go s.RunForever(context.Background())
			return nil
		},
	})
}
