package evaluation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Z335han/bmc-banking-ai/internal/agent"
	"go.uber.org/zap"
)

var (
	ErrEmptyCorpus    = errors.New("no test cases in corpus")
	ErrNoInteractions = errors.New("no interactions found for evaluation")
	ErrNoRoutingData  = errors.New("no routing data available")
	ErrStorageFailure = errors.New("storage failure")
)

// recentLogLimit caps how many interaction rows the quality evaluation reads.
const recentLogLimit = 50

// clarityTargetWords normalizes reply word counts: 20 words scores 1.0.
const clarityTargetWords = 20

var empathyKeywords = []string{"apologize", "sorry", "thank", "appreciate", "understand", "delighted"}

var completenessKeywords = []string{"ticket", "status", "resolved", "created", "team"}

// expectedRouting maps each routable label to the handler that must serve it.
var expectedRouting = map[string]string{
	string(agent.LabelPositiveFeedback): agent.FeedbackHandlerName,
	string(agent.LabelNegativeFeedback): agent.FeedbackHandlerName,
	string(agent.LabelQuery):            agent.QueryHandlerName,
}

// MessageClassifier is the slice of the pipeline the classification replay
// needs.
type MessageClassifier interface {
	Classify(ctx context.Context, text string) agent.ClassificationResult
}

// Evaluator is the offline scoring harness. It replays a fixed corpus through
// the live classifier and aggregates the historical interaction log; it never
// writes anything.
type Evaluator struct {
	store  agent.TicketStore
	corpus []TestCase
	logger *zap.Logger
}

func NewEvaluator(store agent.TicketStore, logger *zap.Logger) *Evaluator {
	if store == nil {
		panic("ticket store must not be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Evaluator{
		store:  store,
		corpus: defaultCorpus,
		logger: logger.Named("evaluator"),
	}
}

// EvaluateClassification replays the corpus through the classifier and scores
// overall and per-category accuracy.
func (e *Evaluator) EvaluateClassification(ctx context.Context, classifier MessageClassifier) (ClassificationReport, error) {
	if len(e.corpus) == 0 {
		return ClassificationReport{NoData: true}, ErrEmptyCorpus
	}

	report := ClassificationReport{
		TotalTests:          len(e.corpus),
		DetailedResults:     make([]DetailedResult, 0, len(e.corpus)),
		CategoryPerformance: make(map[string]CategoryPerformance),
	}

	categoryStats := make(map[string]*CategoryPerformance)

	for _, tc := range e.corpus {
		result := classifier.Classify(ctx, tc.Message)
		correct := result.Label == tc.Expected
		if correct {
			report.CorrectClassifications++
		}

		stats, ok := categoryStats[tc.Category]
		if !ok {
			stats = &CategoryPerformance{}
			categoryStats[tc.Category] = stats
		}
		stats.Total++
		if correct {
			stats.Correct++
		}

		report.DetailedResults = append(report.DetailedResults, DetailedResult{
			Message:    tc.Message,
			Expected:   tc.Expected,
			Actual:     result.Label,
			Correct:    correct,
			Category:   tc.Category,
			Confidence: result.Confidence,
		})
	}

	report.AccuracyPercentage = float64(report.CorrectClassifications) / float64(report.TotalTests) * 100

	for category, stats := range categoryStats {
		stats.Accuracy = float64(stats.Correct) / float64(stats.Total) * 100
		report.CategoryPerformance[category] = *stats
	}

	e.logger.Info("classification evaluation complete",
		zap.Int("total", report.TotalTests),
		zap.Float64("accuracy_pct", report.AccuracyPercentage))

	return report, nil
}

// EvaluateResponseQuality scores the most recent logged interactions:
// success rate plus empathy, clarity and completeness heuristics averaged
// over successful replies.
func (e *Evaluator) EvaluateResponseQuality(ctx context.Context) (ResponseQualityReport, error) {
	interactions, err := e.store.RecentInteractions(ctx, recentLogLimit)
	if err != nil {
		return ResponseQualityReport{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	if len(interactions) == 0 {
		return ResponseQualityReport{NoData: true}, ErrNoInteractions
	}

	report := ResponseQualityReport{
		TotalInteractions:  len(interactions),
		HandlerPerformance: make(map[string]HandlerPerformance),
		LabelDistribution:  make(map[string]int),
	}

	handlerStats := make(map[string]*HandlerPerformance)
	successCounts := make(map[string]int)

	successful := 0
	var empathySum, claritySum, completenessSum float64

	for _, row := range interactions {
		if row.Success {
			successful++
		}

		stats, ok := handlerStats[row.Handler]
		if !ok {
			stats = &HandlerPerformance{}
			handlerStats[row.Handler] = stats
		}
		stats.TotalInteractions++
		if row.Success {
			successCounts[row.Handler]++
		}

		report.LabelDistribution[row.Classification]++

		if row.Success && row.Response != "" {
			empathySum += empathyScore(row.Response)
			claritySum += clarityScore(row.Response)
			completenessSum += completenessScore(row.Response)
		}
	}

	report.SuccessRate = float64(successful) / float64(len(interactions)) * 100

	if successful > 0 {
		report.QualityScores = QualityScores{
			Empathy:      empathySum / float64(successful),
			Clarity:      claritySum / float64(successful),
			Completeness: completenessSum / float64(successful),
		}
	}

	for handler, stats := range handlerStats {
		stats.SuccessRate = float64(successCounts[handler]) / float64(stats.TotalInteractions) * 100
		report.HandlerPerformance[handler] = *stats
	}

	return report, nil
}

// empathyScore counts how many empathy keywords appear in the reply.
func empathyScore(response string) float64 {
	lower := strings.ToLower(response)
	score := 0.0
	for _, kw := range empathyKeywords {
		if strings.Contains(lower, kw) {
			score++
		}
	}
	return score
}

// clarityScore normalizes reply length against the target, capped at 1.0.
func clarityScore(response string) float64 {
	words := float64(len(strings.Fields(response)))
	score := words / clarityTargetWords
	if score > 1.0 {
		return 1.0
	}
	return score
}

// completenessScore is 1.0 when the reply references the ticket process at
// all, 0.5 otherwise.
func completenessScore(response string) float64 {
	lower := strings.ToLower(response)
	for _, kw := range completenessKeywords {
		if strings.Contains(lower, kw) {
			return 1.0
		}
	}
	return 0.5
}

// EvaluateRouting checks every logged (label, handler) pair against the
// expected mapping and builds the routing matrix. The handler match uses
// substring containment, so decorated handler names still count.
func (e *Evaluator) EvaluateRouting(ctx context.Context) (RoutingReport, error) {
	records, err := e.store.RoutingRecords(ctx)
	if err != nil {
		return RoutingReport{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	if len(records) == 0 {
		return RoutingReport{NoData: true}, ErrNoRoutingData
	}

	report := RoutingReport{
		TotalRoutings: len(records),
		RoutingMatrix: make(map[string]map[string]RoutingCell),
	}

	for _, rec := range records {
		row, ok := report.RoutingMatrix[rec.Classification]
		if !ok {
			row = make(map[string]RoutingCell)
			report.RoutingMatrix[rec.Classification] = row
		}
		cell := row[rec.Handler]
		cell.Count++
		if rec.Success {
			cell.Successful++
		}
		row[rec.Handler] = cell

		if expected, ok := expectedRouting[rec.Classification]; ok && strings.Contains(rec.Handler, expected) {
			report.CorrectRoutings++
		}
	}

	report.RoutingAccuracy = float64(report.CorrectRoutings) / float64(report.TotalRoutings) * 100
	return report, nil
}

// GenerateComprehensiveReport composes all three evaluations and the
// aggregate health score. Sections without data contribute zero and are
// flagged rather than failing the whole report.
func (e *Evaluator) GenerateComprehensiveReport(ctx context.Context, classifier MessageClassifier) (ComprehensiveReport, error) {
	report := ComprehensiveReport{GeneratedAt: time.Now()}

	classification, err := e.EvaluateClassification(ctx, classifier)
	if err != nil && !errors.Is(err, ErrEmptyCorpus) {
		return ComprehensiveReport{}, fmt.Errorf("classification evaluation: %w", err)
	}
	report.Classification = classification

	quality, err := e.EvaluateResponseQuality(ctx)
	if err != nil && !errors.Is(err, ErrNoInteractions) {
		return ComprehensiveReport{}, fmt.Errorf("response quality evaluation: %w", err)
	}
	report.ResponseQuality = quality

	routing, err := e.EvaluateRouting(ctx)
	if err != nil && !errors.Is(err, ErrNoRoutingData) {
		return ComprehensiveReport{}, fmt.Errorf("routing evaluation: %w", err)
	}
	report.Routing = routing

	score := (classification.AccuracyPercentage + quality.SuccessRate + routing.RoutingAccuracy) / 3
	report.Health = SystemHealth{
		Score:           score,
		Grade:           grade(score),
		Recommendations: recommendations(report),
	}
	return report, nil
}

func grade(score float64) string {
	switch {
	case score >= 90:
		return "A - Excellent"
	case score >= 80:
		return "B - Good"
	case score >= 70:
		return "C - Satisfactory"
	case score >= 60:
		return "D - Needs Improvement"
	default:
		return "F - Poor"
	}
}

func recommendations(report ComprehensiveReport) []string {
	var recs []string
	if report.Classification.AccuracyPercentage < 85 {
		recs = append(recs, "Improve classification model with more training examples")
	}
	if report.ResponseQuality.QualityScores.Empathy < 0.5 {
		recs = append(recs, "Enhance response templates with more empathetic language")
	}
	if report.Routing.RoutingAccuracy < 90 {
		recs = append(recs, "Review agent routing logic for edge cases")
	}
	if len(recs) == 0 {
		recs = append(recs, "System performing well - continue monitoring")
	}
	return recs
}
