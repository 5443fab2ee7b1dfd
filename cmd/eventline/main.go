// @title			Eventline API
// @version		1.0
// @description	University event management backend with an automatic event-status lifecycle engine.
// @BasePath		/api/v1

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campushub/eventline/internal/config"
	"github.com/campushub/eventline/internal/database"
	"github.com/campushub/eventline/internal/handler"
	"github.com/campushub/eventline/internal/logger"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "eventline",
		Usage: "University event management backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:     "database-url",
				Aliases:  []string{"d"},
				Value:    config.DefaultDatabaseURL,
				Usage:    "PostgreSQL database URL",
				EnvVars:  []string{"DATABASE_URL"},
				Required: true,
			},
		},
		Before: func(c *cli.Context) error {
			logger.Setup(logger.ParseLevel(c.String("log-level")))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the web server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Value:   config.DefaultPort,
						Usage:   "HTTP server port",
						EnvVars: []string{"PORT"},
					},
					&cli.IntFlag{
						Name:    "status-interval",
						Value:   config.DefaultStatusIntervalMinutes,
						Usage:   "Minutes between automatic event-status update passes",
						EnvVars: []string{"STATUS_UPDATE_INTERVAL_MINUTES"},
					},
					&cli.BoolFlag{
						Name:    "status-updates",
						Value:   true,
						Usage:   "Enable the recurring event-status updater",
						EnvVars: []string{"STATUS_UPDATES_ENABLED"},
					},
				},
				Action: runServe,
			},
			{
				Name:   "update-statuses",
				Usage:  "Run one event-status reconciliation pass and exit",
				Action: runUpdateStatuses,
			},
		},
		Action: runServe,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func runServe(c *cli.Context) error {
	ctx := c.Context

	port := c.String("port")
	if port == "" {
		port = config.DefaultPort
	}
	databaseURL := c.String("database-url")

	// Flag defaults apply only under the serve subcommand; running the bare
	// binary lands here with zero values.
	interval := time.Duration(c.Int("status-interval")) * time.Minute
	if interval == 0 {
		interval = config.DefaultStatusIntervalMinutes * time.Minute
	}
	enabled := true
	if c.IsSet("status-updates") {
		enabled = c.Bool("status-updates")
	}

	db, err := database.New(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db.Pool()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	h := handler.New(db.Pool(), handler.Config{
		SessionTTL:     config.DefaultSessionTTLHours * time.Hour,
		StatusInterval: interval,
		StatusEnabled:  enabled,
	})

	updater := h.StatusUpdater()
	if err := updater.Start(ctx); err != nil {
		return fmt.Errorf("failed to start status updater: %w", err)
	}
	defer updater.Stop()

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "server_addr", "http://localhost:"+port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-done:
		slog.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func runUpdateStatuses(c *cli.Context) error {
	ctx := c.Context
	databaseURL := c.String("database-url")

	db, err := database.New(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db.Pool()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	h := handler.New(db.Pool(), handler.Config{
		SessionTTL:     config.DefaultSessionTTLHours * time.Hour,
		StatusInterval: config.DefaultStatusIntervalMinutes * time.Minute,
		StatusEnabled:  false,
	})

	summary, err := h.StatusUpdater().TriggerUpdate(ctx)
	if err != nil {
		return fmt.Errorf("status update pass failed: %w", err)
	}

	slog.Info("status update pass finished",
		"scanned", summary.Scanned,
		"updated", summary.Updated,
		"failed", summary.Failed,
	)
	for status, count := range summary.CountsByStatus {
		slog.Info("event count", "status", status, "count", count)
	}

	return nil
}
