package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Z335han/bmc-banking-ai/internal/agent"
	"github.com/Z335han/bmc-banking-ai/internal/config"
	"github.com/Z335han/bmc-banking-ai/internal/evaluation"
	"github.com/Z335han/bmc-banking-ai/internal/llm"
	"github.com/Z335han/bmc-banking-ai/internal/metrics"
	"github.com/Z335han/bmc-banking-ai/internal/report"
	"github.com/Z335han/bmc-banking-ai/internal/repository"
	"github.com/Z335han/bmc-banking-ai/pkg/cache"
	dbbuilder "github.com/Z335han/bmc-banking-ai/pkg/database"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App wires the support pipeline: sqlite ticket store, completion client,
// classifier, handlers, orchestrator, evaluator, and the cached report
// service.
type App struct {
	logger *zap.Logger
	dbPool *sql.DB
	cache  *cache.Cache

	Tickets      *repository.TicketRepository
	Orchestrator *agent.Orchestrator
	Evaluator    *evaluation.Evaluator
	Reports      *report.Service

	metricsSrv *http.Server
}

func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	dbPool, err := dbbuilder.New(
		dbbuilder.WithDriver(cfg.DBDriver),
		dbbuilder.WithDataSource(cfg.DBPath),
	)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	logger.Info("Database pool initialized", zap.String("path", cfg.DBPath))

	tickets, err := repository.Open(ctx, dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("ticket store init failed: %w", err)
	}

	completion := llm.NewClient(llm.Options{
		APIKey: cfg.AnthropicAPIKey,
		Model:  cfg.AnthropicModel,
	}, logger)

	classifier := agent.NewClassifier(completion, logger)
	feedback := agent.NewFeedbackHandler(tickets, completion, logger)
	query := agent.NewQueryHandler(tickets, logger)
	orchestrator := agent.NewOrchestrator(classifier, feedback, query, logger)

	evaluator := evaluation.NewEvaluator(tickets, logger)

	var cacheClient *cache.Cache
	if cfg.CacheEnabled {
		cacheClient, err = cache.New(ctx, cache.WithAddress(cfg.RedisAddr))
		if err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("cache init failed: %w", err)
		}
		logger.Info("Cache client initialized", zap.String("addr", cfg.RedisAddr))
	}

	var cacher report.Cacher
	if cacheClient != nil {
		cacher = cacheClient
	}
	reports := report.NewService(evaluator, classifier, cacher, logger, cfg.ReportCacheTTL)

	a := &App{
		logger:       logger,
		dbPool:       dbPool,
		cache:        cacheClient,
		Tickets:      tickets,
		Orchestrator: orchestrator,
		Evaluator:    evaluator,
		Reports:      reports,
	}

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
		a.metricsSrv = &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
	}

	return a, nil
}

// ServeMetrics exposes the prometheus registry and blocks until a shutdown
// signal is received. Returns an error when no metrics address is configured.
func (a *App) ServeMetrics() error {
	if a.metricsSrv == nil {
		return errors.New("METRICS_ADDR is not configured")
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("metrics server listening", zap.String("addr", a.metricsSrv.Addr))
		if err := a.metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return a.metricsSrv.Shutdown(ctx)
}

// Close releases held resources.
func (a *App) Close() {
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("cache shutdown error", zap.Error(err))
		}
	}
	if err := a.dbPool.Close(); err != nil {
		a.logger.Error("database shutdown error", zap.Error(err))
	}
	_ = a.logger.Sync()
}
