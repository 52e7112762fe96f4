package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// ruleBasedConfidence is fixed: a well-formed ticket reference leaves no
	// real ambiguity about intent.
	ruleBasedConfidence = 0.95
	llmBasedConfidence  = 0.8

	// ruleBasedElapsed is the nominal cost reported for the regex path.
	ruleBasedElapsed = 5 * time.Millisecond
)

const classifySystemPrompt = `Classify as: positive_feedback, negative_feedback, or query
Respond with only the classification.`

// Classifier turns raw message text into a classification label. A rule-based
// ticket-reference check always wins over the model so ticket lookups are
// never misrouted.
type Classifier struct {
	completion CompletionService
	logger     *zap.Logger
}

func NewClassifier(completion CompletionService, logger *zap.Logger) *Classifier {
	if completion == nil {
		panic("completion service must not be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{
		completion: completion,
		logger:     logger.Named("classifier"),
	}
}

// Classify never returns an error: a failed completion call degrades to
// LabelUnknown with the failure description in Detail.
func (c *Classifier) Classify(ctx context.Context, text string) ClassificationResult {
	if _, ok := ExtractTicketRef(text); ok {
		return ClassificationResult{
			Label:      LabelQuery,
			Confidence: ruleBasedConfidence,
			Method:     MethodRuleBased,
			Elapsed:    ruleBasedElapsed,
			Success:    true,
		}
	}

	start := time.Now()
	comp, err := c.completion.Complete(ctx, fmt.Sprintf("Message: '%s'", text), classifySystemPrompt)
	if err != nil {
		c.logger.Warn("completion call failed", zap.Error(err))
		return ClassificationResult{
			Label:   LabelUnknown,
			Method:  MethodLLMBased,
			Detail:  err.Error(),
			Elapsed: time.Since(start),
		}
	}

	normalized := strings.ToLower(strings.TrimSpace(comp.Text))
	label := ParseLabel(normalized)

	result := ClassificationResult{
		Label:   label,
		Method:  MethodLLMBased,
		Detail:  normalized,
		Elapsed: comp.Elapsed,
		Success: label != LabelUnknown,
	}
	if result.Success {
		result.Confidence = llmBasedConfidence
	}
	return result
}
