// Package report serves evaluation reports behind a cache: report generation
// replays the whole corpus through the live classifier, so repeated requests
// should not each pay for model calls.
package report

import (
	"context"
	"time"

	"github.com/Z335han/bmc-banking-ai/internal/evaluation"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	comprehensiveReportKey = "report:comprehensive"
	defaultReportTTL       = 10 * time.Minute
)

type Service struct {
	evaluator  *evaluation.Evaluator
	classifier evaluation.MessageClassifier
	cache      Cacher
	logger     *zap.Logger
	sfGroup    singleflight.Group
	cacheTTL   time.Duration
}

// NewService builds the report service. cache may be nil, in which case every
// request recomputes the report.
func NewService(evaluator *evaluation.Evaluator, classifier evaluation.MessageClassifier, cache Cacher, logger *zap.Logger, ttl time.Duration) *Service {
	if evaluator == nil {
		panic("evaluator must not be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = defaultReportTTL
	}
	return &Service{
		evaluator:  evaluator,
		classifier: classifier,
		cache:      cache,
		logger:     logger.Named("report"),
		cacheTTL:   ttl,
	}
}

// ComprehensiveReport returns the full evaluation report, served from cache
// when one is configured and fresh.
func (s *Service) ComprehensiveReport(ctx context.Context) (evaluation.ComprehensiveReport, error) {
	generate := func(ctx context.Context) (evaluation.ComprehensiveReport, error) {
		return s.evaluator.GenerateComprehensiveReport(ctx, s.classifier)
	}

	if s.cache == nil {
		return generate(ctx)
	}
	return findAndCache(ctx, s.cache, &s.sfGroup, comprehensiveReportKey, s.cacheTTL, s.logger, generate)
}
