package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resume-builder/internal/adapter/cache"
	httpadapter "resume-builder/internal/adapter/http"
	repo "resume-builder/internal/adapter/repository"
	"resume-builder/internal/analytics"
	"resume-builder/internal/auth"
	"resume-builder/internal/config"
	"resume-builder/internal/export"
	"resume-builder/internal/infrastructure/migration"
	"resume-builder/internal/logging"
	"resume-builder/internal/session"
	"resume-builder/internal/usecase"
	"resume-builder/pkg/ai"
	infra "resume-builder/pkg/infrastructure"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.MustLoad()
	log := logging.New(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

type stores struct {
	users   auth.UserStore
	resumes usecase.ResumeStore
	events  interface {
		analytics.EventStore
		httpadapter.EventLister
	}
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (stores, *pgxpool.Pool, error) {
	pool, err := infra.NewPool(ctx, cfg.DB.DatabaseURL)
	if errors.Is(err, infra.ErrNoDatabase) {
		log.Warn().Msg("DATABASE_URL not set, keeping users and resumes in memory")
		return stores{
			users:   repo.NewMemoryUsers(),
			resumes: repo.NewMemoryResumes(),
			events:  repo.NewMemoryEvents(),
		}, nil, nil
	}
	if err != nil {
		return stores{}, nil, err
	}
	if err := migration.RunMigrations(ctx, pool, log); err != nil {
		pool.Close()
		return stores{}, nil, err
	}
	return stores{
		users:   repo.NewUsersRepo(pool),
		resumes: repo.NewResumesRepo(pool),
		events:  repo.NewEventsRepo(pool),
	}, pool, nil
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	st, pool, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	if pool != nil {
		defer pool.Close()
	}

	tracker, err := analytics.NewTracker(st.events, log)
	if err != nil {
		return err
	}
	defer tracker.Close()

	authSvc := auth.NewService(st.users, auth.Config{
		Secret:   cfg.Auth.JWTSecret,
		TokenTTL: cfg.Auth.TokenTTL,
		Issuer:   cfg.Auth.Issuer,
	}, log)
	unsubscribe := authSvc.OnAuthChange(func(ev auth.AuthEvent) {
		e := log.Info().Str("kind", string(ev.Kind))
		if ev.User != nil {
			e = e.Str("user_id", ev.User.ID.String())
		}
		e.Msg("auth state changed")
	})
	defer unsubscribe()

	var remote ai.Remote
	if cfg.AI.ServiceURL != "" {
		remote = ai.NewClient(cfg.AI.ServiceURL, cfg.AI.Timeout, log)
	}
	generator := ai.NewGenerator(remote, log)

	rasterizer, printer, closeRaster, err := newRasterizer(cfg.Export, log)
	if err != nil {
		return err
	}
	defer closeRaster()

	redisClient, err := cache.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, preview cache disabled")
		redisClient = nil
	}
	previews := cache.NewPreviewCache(redisClient, cfg.Redis.TTL, log)
	defer previews.Close()

	exportOpts := []usecase.ExportOption{usecase.WithPreviewCache(previews), usecase.WithExportTracker(tracker)}
	if printer != nil {
		exportOpts = append(exportOpts, usecase.WithPrinter(printer))
	}
	exports := usecase.NewExportService(
		export.NewRasterExporter(rasterizer, log, export.WithScale(cfg.Export.Scale), export.WithTracker(tracker)),
		log, exportOpts...,
	)

	sessions := session.NewManager(nil, log)
	defer sessions.CloseAll()

	h := httpadapter.NewHandler(httpadapter.Deps{
		Auth:     authSvc,
		Resumes:  usecase.NewResumeService(st.resumes, tracker, cfg.HTTP.PublicBaseURL, log),
		Exports:  exports,
		Sessions: sessions,
		AI:       generator,
		Events:   st.events,
		Tracker:  tracker,
		Log:      log,
	})
	app := httpadapter.NewApp(h, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr()).Str("rasterizer", cfg.Export.Rasterizer).Msg("listening")
		errCh <- app.Listen(cfg.HTTP.Addr())
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")
	return app.ShutdownWithTimeout(shutdownTimeout)
}

// newRasterizer picks the configured bitmap source. Chrome also serves the
// print strategy whenever a Chrome binary is configured.
func newRasterizer(cfg config.ExportConfig, log zerolog.Logger) (export.Rasterizer, usecase.Printer, func(), error) {
	var printer usecase.Printer
	var chrome *infra.ChromeRenderer
	if cfg.Rasterizer == config.RasterizerChrome || cfg.ChromePath != "" {
		chrome = infra.NewChromeRenderer(cfg.ChromePath, log)
		printer = chrome
	}
	if cfg.Rasterizer == config.RasterizerChrome {
		return chrome, printer, func() {}, nil
	}
	sw, err := export.NewSoftwareRasterizer()
	if err != nil {
		return nil, nil, nil, err
	}
	return sw, printer, func() { _ = sw.Close() }, nil
}
