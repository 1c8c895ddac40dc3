package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"nappu/internal/adapter/amqp"
	adapthttp "nappu/internal/adapter/http"
	"nappu/internal/adapter/memory"
	"nappu/internal/adapter/postgres"
	"nappu/internal/adapter/s3"
	"nappu/internal/adapter/sqlite"
	"nappu/internal/app"
	"nappu/internal/config"
	"nappu/internal/domain"
	"nappu/internal/export"
	"nappu/internal/log"
	"nappu/internal/reminder"
	"nappu/internal/storage"
)

func main() {
	config.LoadDotEnv()
	cfg := config.Load()

	logCfg := log.DefaultConfig()
	logCfg.Level = log.ParseLevel(cfg.LogLevel)
	logCfg.Format = cfg.LogFormat
	logger := log.New(logCfg)
	log.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("nappu stopped", log.FieldError, err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *log.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, closeBackend, err := openBackend(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeBackend.Close() }()
	logger.Info("storage ready", "backend", cfg.DataBackend, "namespace", cfg.StorageNamespace)

	st := storage.New(backend,
		storage.WithNamespace(cfg.StorageNamespace),
		storage.WithLogger(logger),
	)
	repo := app.NewRepository(st, app.WithLogger(logger))
	repo.Load(ctx)

	sink, err := openSink(ctx, cfg)
	if err != nil {
		return err
	}
	exporter := export.NewExporter(sink, time.Now, logger)

	notifier, closeNotifier, err := openNotifier(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = closeNotifier.Close() }()

	scheduler := reminder.NewScheduler(repo, notifier, time.Now, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	lang, err := language.Parse(cfg.Locale)
	if err != nil {
		logger.Warn("unknown locale, using zh-Hans", "locale", cfg.Locale, log.FieldError, err)
		lang = language.SimplifiedChinese
	}

	h := adapthttp.New(repo, exporter,
		adapthttp.WithLanguage(lang),
		adapthttp.WithLogger(logger),
	).Handler()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func openBackend(cfg *config.Config) (domain.KVBackend, io.Closer, error) {
	switch cfg.DataBackend {
	case config.BackendSQLite:
		kv, err := sqlite.Open(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("sqlite open: %w", err)
		}
		return kv, kv, nil
	case config.BackendPostgres:
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("db open: %w", err)
		}
		return db, db, nil
	default:
		return memory.New(), nopCloser{}, nil
	}
}

func openSink(ctx context.Context, cfg *config.Config) (export.Sink, error) {
	if cfg.ExportS3Bucket == "" {
		return export.FileSink{Dir: cfg.ExportDir}, nil
	}
	sink, err := s3.New(ctx, s3.Config{
		Bucket:    cfg.ExportS3Bucket,
		Region:    cfg.ExportS3Region,
		Endpoint:  cfg.ExportS3Endpoint,
		Prefix:    cfg.ExportS3Prefix,
		PathStyle: cfg.ExportS3PathStyle,

		AccessKeyID:     cfg.ExportS3AccessKeyID,
		SecretAccessKey: cfg.ExportS3SecretAccessKey,
	})
	if err != nil {
		return nil, fmt.Errorf("s3 sink: %w", err)
	}
	return sink, nil
}

func openNotifier(cfg *config.Config, logger *log.Logger) (reminder.Notifier, io.Closer, error) {
	if cfg.AMQPURL == "" {
		return reminder.LogNotifier{Logger: logger}, nopCloser{}, nil
	}
	pub, err := amqp.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("amqp publisher: %w", err)
	}
	return pub, pub, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
