package di

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/ShelterApp/internal/adapter/storage/minio"
	"github.com/GoArmGo/ShelterApp/internal/app"
	"github.com/GoArmGo/ShelterApp/internal/audit"
	"github.com/GoArmGo/ShelterApp/internal/auth"
	"github.com/GoArmGo/ShelterApp/internal/config"
	"github.com/GoArmGo/ShelterApp/internal/core/ports"
	"github.com/GoArmGo/ShelterApp/internal/handler"
	"github.com/GoArmGo/ShelterApp/internal/logger"
	"github.com/GoArmGo/ShelterApp/internal/metrics"
	"github.com/GoArmGo/ShelterApp/internal/rabbitmq"
	"github.com/GoArmGo/ShelterApp/internal/usecase"
)

// BuildApp loads the configuration and wires everything the given mode needs.
func BuildApp(ctx context.Context, mode string) (*app.App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	application := app.NewApp(cfg, slogger)
	var buildErr error
	defer func() {
		if buildErr != nil {
			_ = application.Shutdown()
		}
	}()

	auditLogger, auditFile, err := logger.NewFileSlog(cfg.AuditLogFile)
	if err != nil {
		buildErr = err
		return nil, err
	}
	application.AddCloser(auditFile.Close)

	switch mode {
	case app.ModeServer:
		buildErr = buildServer(cfg, slogger, auditLogger, application)
	case app.ModeWorker:
		buildErr = buildWorker(ctx, cfg, slogger, auditLogger, application)
	default:
		buildErr = fmt.Errorf("unknown mode %q (use %q or %q)", mode, app.ModeServer, app.ModeWorker)
	}
	if buildErr != nil {
		return nil, buildErr
	}

	slogger.Info("all dependencies initialized", "mode", mode, "backend", cfg.DAOBackend)
	return application, nil
}

func buildServer(cfg *config.Config, slogger, auditLogger *slog.Logger, application *app.App) error {
	store, closeStore, err := openStorage(cfg, slogger)
	if err != nil {
		return err
	}
	application.AddCloser(closeStore)

	var recorder ports.AuditRecorder = audit.NewLogRecorder(auditLogger)
	if cfg.RabbitMQ.RabbitMQURL != "" {
		mq, err := rabbitmq.NewClient(cfg, slogger)
		if err != nil {
			return err
		}
		application.AddCloser(func() error { mq.Close(); return nil })
		recorder = audit.NewQueueRecorder(mq, slogger)
	}

	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL)
	shelterUseCase := usecase.NewShelterUseCase(store, issuer, cfg.AnimalMutationPolicy == config.PolicyOwner, slogger)
	m := metrics.New()

	router := handler.NewRouter(handler.NewShelterHandler(shelterUseCase, recorder, slogger), handler.RouterOptions{
		Tokens:         issuer,
		Logger:         slogger,
		RequestTimeout: cfg.RequestTimeout,
		Metrics:        m.Middleware,
		MetricsHandler: m.Handler(),
	})
	application.SetRouter(router)
	return nil
}

func buildWorker(ctx context.Context, cfg *config.Config, slogger, auditLogger *slog.Logger, application *app.App) error {
	if cfg.RabbitMQ.RabbitMQURL == "" {
		return fmt.Errorf("worker mode requires RABBITMQ_URL")
	}

	mq, err := rabbitmq.NewClient(cfg, slogger)
	if err != nil {
		return err
	}
	application.AddCloser(func() error { mq.Close(); return nil })

	var archive ports.ArchiveStorage
	if cfg.Archive.Bucket != "" {
		archiveClient, err := minio.NewMinioClient(ctx, minio.Config{
			Endpoint:        cfg.Archive.Endpoint,
			AccessKeyID:     cfg.Archive.AccessKeyID,
			SecretAccessKey: cfg.Archive.SecretAccessKey,
			Bucket:          cfg.Archive.Bucket,
			Region:          cfg.Archive.Region,
			UseSSL:          cfg.Archive.UseSSL,
		}, slogger)
		if err != nil {
			return err
		}
		archive = archiveClient
	}

	application.SetWorker(mq, audit.WorkerHandler(audit.NewLogRecorder(auditLogger), archive))
	return nil
}
