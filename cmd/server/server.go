// Package server implements the HTTP API server command.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	api "github.com/fluwatch/fluwatch-go/internal/api/v2"
	"github.com/fluwatch/fluwatch-go/internal/conf"
	"github.com/fluwatch/fluwatch-go/internal/datastore"
	"github.com/fluwatch/fluwatch-go/internal/errors"
	"github.com/fluwatch/fluwatch-go/internal/logging"
	"github.com/fluwatch/fluwatch-go/internal/observability"
)

const shutdownTimeout = 10 * time.Second

// Command returns the server command.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Run the FluWatch API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(settings)
		},
	}

	cmd.Flags().StringVar(&settings.WebServer.Port, "port", settings.WebServer.Port, "Port to listen on")
	return cmd
}

func runServer(settings *conf.Settings) error {
	log := logging.ForService("server")
	if settings.Main.Log.Enabled && settings.Main.Log.Path != "" {
		fileLogger, closeFunc, err := logging.NewFileLogger(settings.Main.Log.Path, "server", slog.LevelInfo)
		if err != nil {
			log.Warn("falling back to console logging", slog.Any("error", err))
		} else {
			log = fileLogger
			defer closeFunc() //nolint:errcheck // best-effort close on exit
		}
	}

	metrics, err := observability.NewMetrics()
	if err != nil {
		return err
	}

	ds := datastore.New(settings)
	if err := ds.Open(); err != nil {
		return errors.New(err).
			Component("server").
			Category(errors.CategoryDatabase).
			Build()
	}
	defer func() {
		if err := ds.Close(); err != nil {
			log.Error("failed to close datastore", slog.Any("error", err))
		}
	}()

	e := echo.New()
	e.HideBanner = true
	controller := api.New(e, ds, settings, metrics)
	defer func() {
		if err := controller.Shutdown(); err != nil {
			log.Error("failed to shut down controller", slog.Any("error", err))
		}
	}()

	errChan := make(chan error, 1)
	go func() {
		addr := ":" + settings.WebServer.Port
		log.Info("starting server", slog.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return errors.New(err).
			Component("server").
			Category(errors.CategoryHTTP).
			Build()
	case sig := <-quit:
		log.Info("shutting down", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return errors.New(err).
			Component("server").
			Category(errors.CategoryHTTP).
			Build()
	}
	return nil
}
