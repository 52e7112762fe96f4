package evaluation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Z335han/bmc-banking-ai/internal/agent"
	"github.com/Z335han/bmc-banking-ai/internal/agent/mocks"
	"github.com/Z335han/bmc-banking-ai/internal/evaluation"
	"github.com/Z335han/bmc-banking-ai/internal/repository/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// scriptedClassifier answers from a fixed message-to-label table; unmatched
// messages come back unknown.
type scriptedClassifier struct {
	answers map[string]agent.Label
}

func (s *scriptedClassifier) Classify(ctx context.Context, text string) agent.ClassificationResult {
	if label, ok := s.answers[text]; ok {
		return agent.ClassificationResult{Label: label, Confidence: 0.8, Success: true}
	}
	return agent.ClassificationResult{Label: agent.LabelUnknown}
}

// perfectClassifier routes ticket references by rule and everything else by
// simple keyword spotting, enough to ace the default corpus.
func perfectClassifier() evaluation.MessageClassifier {
	return &scriptedClassifier{answers: map[string]agent.Label{
		"Thank you for solving my issue!":     agent.LabelPositiveFeedback,
		"Great service from your team!":       agent.LabelPositiveFeedback,
		"My card is still not working":        agent.LabelNegativeFeedback,
		"Very disappointed with the delay":    agent.LabelNegativeFeedback,
		"What's the status of INC1234567890?": agent.LabelQuery,
		"Can you check ticket REQ0987654321?": agent.LabelQuery,
		"Please help me with my account":      agent.LabelQuery,
		"Thanks for the quick resolution!":    agent.LabelPositiveFeedback,
		"This is taking too long":             agent.LabelNegativeFeedback,
		"Status of PBI5555555555?":            agent.LabelQuery,
	}}
}

func TestEvaluateClassification(t *testing.T) {
	ctx := context.Background()
	store := &mocks.MockTicketStore{}

	t.Run("perfect classifier scores 100", func(t *testing.T) {
		evaluator := evaluation.NewEvaluator(store, zap.NewNop())

		report, err := evaluator.EvaluateClassification(ctx, perfectClassifier())

		require.NoError(t, err)
		assert.Equal(t, 10, report.TotalTests)
		assert.Equal(t, 10, report.CorrectClassifications)
		assert.Equal(t, 100.0, report.AccuracyPercentage)
		assert.Len(t, report.DetailedResults, 10)

		// Every corpus category appears once with full accuracy.
		assert.Len(t, report.CategoryPerformance, 10)
		for category, perf := range report.CategoryPerformance {
			assert.Equal(t, 100.0, perf.Accuracy, category)
			assert.Equal(t, 1, perf.Total)
		}
	})

	t.Run("failing classifier records mismatches", func(t *testing.T) {
		evaluator := evaluation.NewEvaluator(store, zap.NewNop())
		broken := &scriptedClassifier{answers: map[string]agent.Label{}}

		report, err := evaluator.EvaluateClassification(ctx, broken)

		require.NoError(t, err)
		assert.Equal(t, 0, report.CorrectClassifications)
		assert.Equal(t, 0.0, report.AccuracyPercentage)
		for _, detail := range report.DetailedResults {
			assert.False(t, detail.Correct)
			assert.Equal(t, agent.LabelUnknown, detail.Actual)
		}
	})

	t.Run("live classifier rule path needs no model", func(t *testing.T) {
		evaluator := evaluation.NewEvaluator(store, zap.NewNop())
		classifier := agent.NewClassifier(mocks.FailingCompletion(errors.New("down")), zap.NewNop())

		report, err := evaluator.EvaluateClassification(ctx, classifier)
		require.NoError(t, err)

		// The three ticket-reference cases still classify correctly.
		correct := 0
		for _, d := range report.DetailedResults {
			if d.Correct {
				correct++
				assert.Equal(t, agent.LabelQuery, d.Actual)
			}
		}
		assert.Equal(t, 3, correct)
	})
}

func TestEvaluateResponseQuality(t *testing.T) {
	ctx := context.Background()

	t.Run("empty log returns no-data indicator", func(t *testing.T) {
		store := &mocks.MockTicketStore{
			RecentInteractionsFunc: func(ctx context.Context, limit int) ([]models.InteractionLogEntry, error) {
				assert.Equal(t, 50, limit)
				return nil, nil
			},
		}
		evaluator := evaluation.NewEvaluator(store, zap.NewNop())

		report, err := evaluator.EvaluateResponseQuality(ctx)

		assert.ErrorIs(t, err, evaluation.ErrNoInteractions)
		assert.True(t, report.NoData)
	})

	t.Run("storage failure is wrapped", func(t *testing.T) {
		store := &mocks.MockTicketStore{
			RecentInteractionsFunc: func(ctx context.Context, limit int) ([]models.InteractionLogEntry, error) {
				return nil, errors.New("db locked")
			},
		}
		evaluator := evaluation.NewEvaluator(store, zap.NewNop())

		_, err := evaluator.EvaluateResponseQuality(ctx)

		assert.ErrorIs(t, err, evaluation.ErrStorageFailure)
		assert.Contains(t, err.Error(), "db locked")
	})

	t.Run("scores and distributions", func(t *testing.T) {
		rows := []models.InteractionLogEntry{
			{
				Classification: "negative_feedback",
				Handler:        "FeedbackHandler",
				// 20 words, "apologize"+"sorry" empathy hits, "team"+"created" completeness hits.
				Response: "We sincerely apologize and are sorry for the trouble a new incident was created and our team will help today",
				Success:  true,
			},
			{
				Classification: "query",
				Handler:        "QueryHandler",
				Response:       "Your ticket is resolved.", // 4 words, no empathy keyword
				Success:        true,
			},
			{
				Classification: "query",
				Handler:        "QueryHandler",
				Response:       "Ticket REQ0000000000 not found. Please verify the number.",
				Success:        false,
			},
		}
		store := &mocks.MockTicketStore{
			RecentInteractionsFunc: func(ctx context.Context, limit int) ([]models.InteractionLogEntry, error) {
				return rows, nil
			},
		}
		evaluator := evaluation.NewEvaluator(store, zap.NewNop())

		report, err := evaluator.EvaluateResponseQuality(ctx)
		require.NoError(t, err)

		assert.Equal(t, 3, report.TotalInteractions)
		assert.InDelta(t, 66.67, report.SuccessRate, 0.01)

		// Averaged over the 2 successful rows:
		// empathy (2+0)/2, clarity (1.0+0.2)/2, completeness (1.0+1.0)/2.
		assert.InDelta(t, 1.0, report.QualityScores.Empathy, 0.001)
		assert.InDelta(t, 0.6, report.QualityScores.Clarity, 0.001)
		assert.InDelta(t, 1.0, report.QualityScores.Completeness, 0.001)

		assert.Equal(t, 100.0, report.HandlerPerformance["FeedbackHandler"].SuccessRate)
		assert.Equal(t, 1, report.HandlerPerformance["FeedbackHandler"].TotalInteractions)
		assert.Equal(t, 50.0, report.HandlerPerformance["QueryHandler"].SuccessRate)
		assert.Equal(t, 2, report.HandlerPerformance["QueryHandler"].TotalInteractions)

		assert.Equal(t, map[string]int{"negative_feedback": 1, "query": 2}, report.LabelDistribution)
	})
}

func TestEvaluateRouting(t *testing.T) {
	ctx := context.Background()

	t.Run("empty log returns no-data indicator", func(t *testing.T) {
		store := &mocks.MockTicketStore{
			RoutingRecordsFunc: func(ctx context.Context) ([]models.RoutingRecord, error) {
				return nil, nil
			},
		}
		evaluator := evaluation.NewEvaluator(store, zap.NewNop())

		report, err := evaluator.EvaluateRouting(ctx)

		assert.ErrorIs(t, err, evaluation.ErrNoRoutingData)
		assert.True(t, report.NoData)
	})

	t.Run("accuracy and matrix", func(t *testing.T) {
		records := []models.RoutingRecord{
			{Classification: "positive_feedback", Handler: "FeedbackHandler", Success: true},
			{Classification: "negative_feedback", Handler: "FeedbackHandler", Success: true},
			{Classification: "query", Handler: "QueryHandler", Success: true},
			{Classification: "query", Handler: "QueryHandler", Success: false},
			{Classification: "query", Handler: "FeedbackHandler", Success: true}, // misroute
		}
		store := &mocks.MockTicketStore{
			RoutingRecordsFunc: func(ctx context.Context) ([]models.RoutingRecord, error) {
				return records, nil
			},
		}
		evaluator := evaluation.NewEvaluator(store, zap.NewNop())

		report, err := evaluator.EvaluateRouting(ctx)
		require.NoError(t, err)

		assert.Equal(t, 5, report.TotalRoutings)
		assert.Equal(t, 4, report.CorrectRoutings)
		assert.Equal(t, 80.0, report.RoutingAccuracy)

		queryRow := report.RoutingMatrix["query"]
		assert.Equal(t, evaluation.RoutingCell{Count: 2, Successful: 1}, queryRow["QueryHandler"])
		assert.Equal(t, evaluation.RoutingCell{Count: 1, Successful: 1}, queryRow["FeedbackHandler"])
	})

	t.Run("handler match tolerates decorated names", func(t *testing.T) {
		records := []models.RoutingRecord{
			{Classification: "query", Handler: "banking.QueryHandler.v2", Success: true},
		}
		store := &mocks.MockTicketStore{
			RoutingRecordsFunc: func(ctx context.Context) ([]models.RoutingRecord, error) {
				return records, nil
			},
		}
		evaluator := evaluation.NewEvaluator(store, zap.NewNop())

		report, err := evaluator.EvaluateRouting(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, report.CorrectRoutings)
	})
}

func TestGenerateComprehensiveReport(t *testing.T) {
	ctx := context.Background()

	t.Run("aggregates the three headline percentages", func(t *testing.T) {
		store := &mocks.MockTicketStore{
			RecentInteractionsFunc: func(ctx context.Context, limit int) ([]models.InteractionLogEntry, error) {
				return []models.InteractionLogEntry{
					{Classification: "query", Handler: "QueryHandler", Response: "Your ticket status is resolved and our team thanks you for waiting patiently today", Success: true},
				}, nil
			},
			RoutingRecordsFunc: func(ctx context.Context) ([]models.RoutingRecord, error) {
				return []models.RoutingRecord{
					{Classification: "query", Handler: "QueryHandler", Success: true},
				}, nil
			},
		}
		evaluator := evaluation.NewEvaluator(store, zap.NewNop())

		report, err := evaluator.GenerateComprehensiveReport(ctx, perfectClassifier())
		require.NoError(t, err)

		// (100 + 100 + 100) / 3
		assert.Equal(t, 100.0, report.Health.Score)
		assert.Equal(t, "A - Excellent", report.Health.Grade)
		assert.False(t, report.GeneratedAt.IsZero())
	})

	t.Run("empty history still produces a report", func(t *testing.T) {
		store := &mocks.MockTicketStore{
			RecentInteractionsFunc: func(ctx context.Context, limit int) ([]models.InteractionLogEntry, error) {
				return nil, nil
			},
			RoutingRecordsFunc: func(ctx context.Context) ([]models.RoutingRecord, error) {
				return nil, nil
			},
		}
		evaluator := evaluation.NewEvaluator(store, zap.NewNop())

		report, err := evaluator.GenerateComprehensiveReport(ctx, perfectClassifier())
		require.NoError(t, err)

		assert.True(t, report.ResponseQuality.NoData)
		assert.True(t, report.Routing.NoData)
		// (100 + 0 + 0) / 3
		assert.InDelta(t, 33.33, report.Health.Score, 0.01)
		assert.Equal(t, "F - Poor", report.Health.Grade)
	})

	t.Run("recommendations follow fixed thresholds", func(t *testing.T) {
		store := &mocks.MockTicketStore{
			RecentInteractionsFunc: func(ctx context.Context, limit int) ([]models.InteractionLogEntry, error) {
				return []models.InteractionLogEntry{
					{Classification: "query", Handler: "QueryHandler", Response: "It is in progress.", Success: true},
				}, nil
			},
			RoutingRecordsFunc: func(ctx context.Context) ([]models.RoutingRecord, error) {
				return []models.RoutingRecord{
					{Classification: "query", Handler: "FeedbackHandler", Success: true},
				}, nil
			},
		}
		evaluator := evaluation.NewEvaluator(store, zap.NewNop())
		broken := &scriptedClassifier{answers: map[string]agent.Label{}}

		report, err := evaluator.GenerateComprehensiveReport(ctx, broken)
		require.NoError(t, err)

		assert.Contains(t, report.Health.Recommendations, "Improve classification model with more training examples")
		assert.Contains(t, report.Health.Recommendations, "Enhance response templates with more empathetic language")
		assert.Contains(t, report.Health.Recommendations, "Review agent routing logic for edge cases")
	})

	t.Run("healthy system gets the monitoring note", func(t *testing.T) {
		store := &mocks.MockTicketStore{
			RecentInteractionsFunc: func(ctx context.Context, limit int) ([]models.InteractionLogEntry, error) {
				return []models.InteractionLogEntry{
					{Classification: "negative_feedback", Handler: "FeedbackHandler", Response: "We sincerely apologize, a new incident has been created and our team will address this promptly.", Success: true},
				}, nil
			},
			RoutingRecordsFunc: func(ctx context.Context) ([]models.RoutingRecord, error) {
				return []models.RoutingRecord{
					{Classification: "negative_feedback", Handler: "FeedbackHandler", Success: true},
				}, nil
			},
		}
		evaluator := evaluation.NewEvaluator(store, zap.NewNop())

		report, err := evaluator.GenerateComprehensiveReport(ctx, perfectClassifier())
		require.NoError(t, err)

		assert.Equal(t, []string{"System performing well - continue monitoring"}, report.Health.Recommendations)
	})
}
