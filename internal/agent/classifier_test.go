package agent_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Z335han/bmc-banking-ai/internal/agent"
	"github.com/Z335han/bmc-banking-ai/internal/agent/mocks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestClassifierRuleBased(t *testing.T) {
	ctx := context.Background()

	t.Run("ticket reference always wins over the model", func(t *testing.T) {
		// A broken completion service must not matter on this path.
		completion := mocks.FailingCompletion(errors.New("service unavailable"))
		classifier := agent.NewClassifier(completion, zap.NewNop())

		result := classifier.Classify(ctx, "What's the status of INC1234567890?")

		assert.True(t, result.Success)
		assert.Equal(t, agent.LabelQuery, result.Label)
		assert.Equal(t, 0.95, result.Confidence)
		assert.Equal(t, agent.MethodRuleBased, result.Method)
		assert.Empty(t, completion.Calls)
	})

	t.Run("lowercase reference is still detected", func(t *testing.T) {
		completion := mocks.StaticCompletion("negative_feedback")
		classifier := agent.NewClassifier(completion, zap.NewNop())

		result := classifier.Classify(ctx, "check req0987654321 please")

		assert.Equal(t, agent.LabelQuery, result.Label)
		assert.Equal(t, agent.MethodRuleBased, result.Method)
		assert.Empty(t, completion.Calls)
	})
}

func TestClassifierLLMBased(t *testing.T) {
	ctx := context.Background()

	t.Run("accepts each allowed label", func(t *testing.T) {
		for _, label := range []agent.Label{
			agent.LabelPositiveFeedback,
			agent.LabelNegativeFeedback,
			agent.LabelQuery,
		} {
			classifier := agent.NewClassifier(mocks.StaticCompletion(string(label)), zap.NewNop())
			result := classifier.Classify(ctx, "some message")

			assert.True(t, result.Success)
			assert.Equal(t, label, result.Label)
			assert.Equal(t, 0.8, result.Confidence)
			assert.Equal(t, agent.MethodLLMBased, result.Method)
		}
	})

	t.Run("normalizes model output", func(t *testing.T) {
		classifier := agent.NewClassifier(mocks.StaticCompletion("  Positive_Feedback \n"), zap.NewNop())
		result := classifier.Classify(ctx, "thanks a lot")

		assert.True(t, result.Success)
		assert.Equal(t, agent.LabelPositiveFeedback, result.Label)
	})

	t.Run("anything outside the label set is unknown", func(t *testing.T) {
		classifier := agent.NewClassifier(mocks.StaticCompletion("this looks like praise to me"), zap.NewNop())
		result := classifier.Classify(ctx, "some message")

		assert.False(t, result.Success)
		assert.Equal(t, agent.LabelUnknown, result.Label)
		assert.Equal(t, 0.0, result.Confidence)
	})

	t.Run("completion failure degrades to unknown", func(t *testing.T) {
		classifier := agent.NewClassifier(mocks.FailingCompletion(errors.New("completion timeout: deadline exceeded")), zap.NewNop())
		result := classifier.Classify(ctx, "some message")

		assert.False(t, result.Success)
		assert.Equal(t, agent.LabelUnknown, result.Label)
		assert.Contains(t, result.Detail, "deadline exceeded")
	})
}

func TestNewClassifier(t *testing.T) {
	t.Run("nil completion panics", func(t *testing.T) {
		assert.Panics(t, func() {
			agent.NewClassifier(nil, zap.NewNop())
		})
	})

	t.Run("nil logger is tolerated", func(t *testing.T) {
		classifier := agent.NewClassifier(mocks.StaticCompletion("query"), nil)
		assert.NotNil(t, classifier)
	})
}
