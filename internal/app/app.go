package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/ShelterApp/internal/config"
	"github.com/GoArmGo/ShelterApp/internal/core/ports"
	"github.com/GoArmGo/ShelterApp/internal/messaging/payloads"
)

const (
	ModeServer = "server"
	ModeWorker = "worker"
)

type App struct {
	Config *config.Config
	logger *slog.Logger

	router http.Handler

	auditConsumer ports.AuditConsumer
	auditHandler  func(context.Context, payloads.AuditEvent) error

	closers []func() error
}

func NewApp(cfg *config.Config, logger *slog.Logger) *App {
	return &App{Config: cfg, logger: logger}
}

func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

// Handler returns the HTTP API, nil outside server mode.
func (a *App) Handler() http.Handler {
	return a.router
}

func (a *App) SetRouter(router http.Handler) {
	a.router = router
}

func (a *App) SetWorker(consumer ports.AuditConsumer, handler func(context.Context, payloads.AuditEvent) error) {
	a.auditConsumer = consumer
	a.auditHandler = handler
}

// AddCloser registers a resource released by Shutdown, in reverse order.
func (a *App) AddCloser(fn func() error) {
	a.closers = append(a.closers, fn)
}

// Run blocks until SIGINT/SIGTERM or ctx cancellation, then releases resources.
func (a *App) Run(ctx context.Context, mode string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("starting", "mode", mode)

	var err error
	switch mode {
	case ModeServer:
		if a.router == nil {
			return errors.New("server mode without router")
		}
		err = runServer(ctx, a.Config, a.router, a.logger)
	case ModeWorker:
		if a.auditConsumer == nil {
			return errors.New("worker mode without consumer")
		}
		err = runWorker(ctx, a.auditConsumer, a.auditHandler, a.logger)
	default:
		err = fmt.Errorf("unknown mode %q (use %q or %q)", mode, ModeServer, ModeWorker)
	}

	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("shutdown failed", "error", closeErr)
	}
	if err != nil {
		return err
	}

	a.logger.Info("stopped gracefully")
	return nil
}

// Shutdown releases every registered resource and reports all failures.
func (a *App) Shutdown() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
