package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/urfave/cli/v2"

	"github.com/ahmetcoskunkizilkaya/order-tracker/internal/config"
	"github.com/ahmetcoskunkizilkaya/order-tracker/internal/database"
	"github.com/ahmetcoskunkizilkaya/order-tracker/internal/importer"
	"github.com/ahmetcoskunkizilkaya/order-tracker/internal/logging"
)

func main() {
	app := &cli.App{
		Name:  "importer",
		Usage: "load the customer and tracking CSV exports into the database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "customers",
				Usage:    "customer login export (Customer ID, Username)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "orders",
				Usage:    "order tracking export",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "atomic",
				Usage: "roll back customers too when the order phase fails",
			},
			&cli.BoolFlag{
				Name:  "first-item-only",
				Usage: "record only the first package line of each shipment",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("import failed", "component", "importer", "error", err)
		sentry.CaptureException(err)
		sentry.Flush(2 * time.Second)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg := config.Load()
	sinks := logging.Setup(cfg)
	defer sinks.Close()

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		}
	}

	customers, err := os.Open(c.String("customers"))
	if err != nil {
		return fmt.Errorf("open customers file: %w", err)
	}
	defer customers.Close()

	orders, err := os.Open(c.String("orders"))
	if err != nil {
		return fmt.Errorf("open orders file: %w", err)
	}
	defer orders.Close()

	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	opts := importer.Options{Atomic: c.Bool("atomic")}
	if c.Bool("first-item-only") {
		opts.ItemPolicy = importer.ItemsFirstRowOnly
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary, runErr := importer.New(db, opts).Run(ctx, customers, orders)
	if summary != nil {
		if err := summary.Render(os.Stdout); err != nil {
			slog.Warn("failed to render summary", "error", err)
		}
	}
	return runErr
}

