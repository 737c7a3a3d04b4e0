package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/artium/indicacoes-api/config"
	"github.com/artium/indicacoes-api/internal/handlers"
	"github.com/artium/indicacoes-api/internal/models"
	"github.com/artium/indicacoes-api/internal/repository"
	"github.com/artium/indicacoes-api/internal/services"
	"github.com/artium/indicacoes-api/internal/session"
	"github.com/artium/indicacoes-api/internal/workflow"
	"github.com/artium/indicacoes-api/pkg/db"
	"github.com/artium/indicacoes-api/pkg/httpclient"
	"github.com/artium/indicacoes-api/pkg/jwt"
	"github.com/artium/indicacoes-api/pkg/logger"
	"github.com/artium/indicacoes-api/pkg/metrics"
	"github.com/artium/indicacoes-api/pkg/profiling"
	"github.com/artium/indicacoes-api/pkg/recaptcha"
	"github.com/artium/indicacoes-api/pkg/storage"
	"github.com/artium/indicacoes-api/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
		MaxSizeMB:   cfg.Logging.MaxSizeMB,
		MaxBackups:  cfg.Logging.MaxBackups,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Artium referral service",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
		zap.String("submission_mode", cfg.Submission.Mode),
	)

	tracerShutdown, err := tracing.InitTracer(tracing.Config{
		ServiceName:       cfg.Observability.ServiceName,
		ServiceNamespace:  cfg.Observability.ServiceNamespace,
		ServiceVersion:    cfg.Observability.ServiceVersion,
		ServiceInstanceID: cfg.Observability.ServiceInstanceID,
		Environment:       cfg.Server.AppEnv,
		ExporterEndpoint:  cfg.Observability.ExporterEndpoint,
	})
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	stopProfiler, err := profiling.InitProfiler(cfg.Profiling, profiling.Target{
		ServiceName: cfg.Observability.ServiceName,
		Namespace:   cfg.Observability.ServiceNamespace,
		Version:     cfg.Observability.ServiceVersion,
		InstanceID:  cfg.Observability.ServiceInstanceID,
		Environment: cfg.Server.AppEnv,
	})
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer stopProfiler()

	metrics.Init(cfg.Observability.ServiceName, cfg.Observability.ServiceVersion)
	metrics.RecordInfrastructureMetrics()

	rootCtx, cancelRoot := context.WithCancel(context.Background())
	defer cancelRoot()

	httpClient := httpclient.NewStandardClient(10 * time.Second)

	submitter, ping, closeBackend, err := newSubmitter(rootCtx, cfg, httpClient)
	if err != nil {
		logger.Fatal("Failed to initialize submission backend", zap.Error(err))
	}
	defer closeBackend()

	sessions := session.NewStore(cfg.SessionIdleTTL(), func(kind models.ReferralKind, notifier workflow.Notifier) *workflow.Workflow {
		return workflow.New(kind, submitter, notifier, workflow.Options{
			Dwell:        cfg.DwellTime(),
			Organization: cfg.Site.OrganizationName,
		})
	})
	defer sessions.Flush()

	router, err := newRouter(rootCtx, cfg, routerDeps{
		tokens:   jwt.NewTokenManager(cfg.Session.Secret, cfg.Session.Issuer, cfg.Session.TTLHours),
		sessions: sessions,
		ping:     ping,
	})
	if err != nil {
		logger.Fatal("Failed to build router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       60 * time.Second, // resumes up to 10MB on slow links
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// newSubmitter picks the submission backend. Live mode persists to PostgreSQL
// and object storage; simulated mode only waits and logs.
func newSubmitter(ctx context.Context, cfg *config.Config, httpClient httpclient.Client) (workflow.Submitter, handlers.PingFunc, func(), error) {
	if !cfg.IsLive() {
		logger.Warn("Submission mode is simulated: referrals are logged, not stored",
			zap.Duration("latency", cfg.SubmissionLatency()))
		return services.NewSimulatedSubmitter(cfg.SubmissionLatency()), nil, func() {}, nil
	}

	pool, err := db.NewPool(ctx, db.PoolConfig{
		URL:           cfg.Database.URL,
		MaxConns:      cfg.Database.MaxConns,
		MinConns:      cfg.Database.MinConns,
		CACertPath:    cfg.Database.CACertPath,
		TLSServerName: cfg.Database.TLSServerName,
	})
	if err != nil {
		return nil, nil, nil, err
	}

	repo := repository.NewReferralRepository(pool)
	documents := storage.NewClient(storage.Config{
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
		BucketName:      cfg.Storage.BucketName,
		Endpoint:        cfg.Storage.Endpoint,
		Region:          cfg.Storage.Region,
	})
	captcha := recaptcha.NewVerifier(cfg.ReCAPTCHA.SecretKey, httpClient)
	if !captcha.Enabled() {
		logger.Warn("ReCAPTCHA disabled: RECAPTCHA_SECRET_KEY not set")
	}

	service := services.NewReferralService(repo, documents, captcha, cfg, httpClient)
	return service, repo.Ping, func() { db.Close(pool) }, nil
}
