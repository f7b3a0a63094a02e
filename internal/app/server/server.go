package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"dataprotection/internal/domain/audit"
	"dataprotection/internal/domain/auth"
	"dataprotection/internal/domain/breach"
	"dataprotection/internal/domain/dsr"
	"dataprotection/internal/domain/reports"
	"dataprotection/internal/platform/config"
	cryptoutil "dataprotection/internal/platform/crypto"
	"dataprotection/internal/platform/db"
	"dataprotection/internal/platform/jobs"
	"dataprotection/internal/platform/metrics"
	audithandler "dataprotection/internal/transport/http/handlers/audit"
	authhandler "dataprotection/internal/transport/http/handlers/auth"
	breachhandler "dataprotection/internal/transport/http/handlers/breach"
	dsrhandler "dataprotection/internal/transport/http/handlers/dsr"
	reportshandler "dataprotection/internal/transport/http/handlers/reports"
	"dataprotection/internal/transport/http/middleware"
)

const schedulerActor = "scheduler"

type App struct {
	Config  config.Config
	Logger  *slog.Logger
	DB      *pgxpool.Pool
	Router  http.Handler
	Jobs    *jobs.Service
	Metrics *metrics.Collector
	Audit   audit.Recorder
	RunAt   time.Time
}

// New wires the service. Every request is answered relative to the timestamp
// captured here.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	app := &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics.New(),
		RunAt:   time.Now(),
	}

	crypto, err := cryptoutil.New(cfg.DataEncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("encryption key: %w", err)
	}

	var auditStore *audit.Store
	jobOpts := []jobs.Option{jobs.WithLogger(logger), jobs.WithObserver(app.Metrics), jobs.WithQueueSize(cfg.JobQueueSize)}
	if cfg.DatabaseURL != "" {
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("db connect: %w", err)
		}
		if err := db.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
		app.DB = pool
		auditStore = audit.NewStore(pool)
		app.Audit = auditStore
		jobOpts = append(jobOpts, jobs.WithRunStore(jobs.NewStore(pool)))
	} else {
		logger.Info("DATABASE_URL not set, audit events go to the log")
		app.Audit = audit.NewLogRecorder(logger)
	}
	app.Jobs = jobs.New(jobOpts...)

	authService := auth.NewService(cfg.OperatorEmail, cfg.OperatorPasswordHash, cfg.OperatorRole, cfg.JWTSecret, cfg.TokenTTL)
	if !authService.Enabled() {
		logger.Warn("operator login disabled, API routes will reject every token")
	}
	perms := auth.StaticPermissions{}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger, app.Metrics))
	router.Use(chimw.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.IsProduction()))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(authService))
	router.Use(middleware.SensitiveMutationRateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/readyz", app.handleReady)
	if cfg.MetricsEnabled {
		router.Handle("/metrics", app.Metrics.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))

		authHandler := authhandler.NewHandler(authService, app.Audit)
		r.Post("/auth/login", authHandler.HandleLogin)

		dsrHandler := dsrhandler.NewHandler(dsr.NewProcessor(app.RunAt), crypto, app.Audit, app.Metrics, perms)
		dsrHandler.RegisterRoutes(r)

		breachHandler := breachhandler.NewHandler(app.Audit, app.Metrics, perms)
		breachHandler.RegisterRoutes(r)

		reportsHandler := reportshandler.NewHandler(reports.NewService(app.RunAt), app.Audit, perms)
		reportsHandler.RegisterRoutes(r)

		if auditStore != nil {
			auditHandler := audithandler.NewHandler(auditStore, perms)
			auditHandler.RegisterRoutes(r)
		}
	})

	app.Router = router
	return app, nil
}

func (a *App) handleReady(w http.ResponseWriter, r *http.Request) {
	if a.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.DB.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// Start runs the job worker and the periodic breach check until ctx ends.
func (a *App) Start(ctx context.Context) {
	a.Jobs.Start(ctx)
	a.Jobs.Schedule(ctx, jobs.JobBreachCheck, a.Config.BreachCheckInterval, BreachCheckJob(a.Audit, a.Metrics))
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

func BreachCheckJob(recorder audit.Recorder, collector *metrics.Collector) jobs.RunFunc {
	return func(ctx context.Context) (any, error) {
		status := breach.Check()
		if collector != nil {
			collector.RecordBreachCheck(status.BreachDetected)
		}
		if recorder == nil {
			return status, nil
		}
		evt, err := audit.NewEvent(audit.ActionBreachChecked, audit.EntityBreachCheck, "", status)
		if err != nil {
			return status, err
		}
		evt.ActorID = schedulerActor
		if err := recorder.Record(ctx, evt); err != nil {
			return status, fmt.Errorf("record breach check: %w", err)
		}
		return status, nil
	}
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	app, err := New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	jobCtx, stopJobs := context.WithCancel(ctx)
	defer stopJobs()
	app.Start(jobCtx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		app.Logger.Info("data protection service listening", "addr", cfg.Addr, "runAt", app.RunAt.Format(time.RFC3339))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		stopJobs()
		app.Jobs.Wait()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	stopJobs()
	app.Jobs.Wait()
	return nil
}
