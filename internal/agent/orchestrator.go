package agent

import (
	"context"
	"time"

	"github.com/Z335han/bmc-banking-ai/internal/metrics"
	"go.uber.org/zap"
)

const (
	notUnderstoodReply = "Unable to understand your message. Please try again."
	cannotProcessReply = "Unable to process your request."

	feedbackPath = "Classifier → FeedbackHandler"
	queryPath    = "Classifier → QueryHandler"
)

// Orchestrator sequences Classifier then exactly one handler, assembling the
// unified result. One message is fully processed per call; nothing is retried.
type Orchestrator struct {
	classifier *Classifier
	feedback   *FeedbackHandler
	query      *QueryHandler
	logger     *zap.Logger
}

func NewOrchestrator(classifier *Classifier, feedback *FeedbackHandler, query *QueryHandler, logger *zap.Logger) *Orchestrator {
	if classifier == nil || feedback == nil || query == nil {
		panic("orchestrator requires classifier and both handlers")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		classifier: classifier,
		feedback:   feedback,
		query:      query,
		logger:     logger.Named("orchestrator"),
	}
}

// Classifier exposes the classifier for offline evaluation replays.
func (o *Orchestrator) Classifier() *Classifier {
	return o.classifier
}

// ProcessMessage classifies text, dispatches it to the matching handler, and
// merges the handler outcome with classification metadata. Total elapsed time
// is wall-clock around the whole pipeline, independent of component timings.
func (o *Orchestrator) ProcessMessage(ctx context.Context, text, customerName string) OrchestrationResult {
	start := time.Now()
	if customerName == "" {
		customerName = DefaultCustomerName
	}

	classification := o.classifier.Classify(ctx, text)
	if !classification.Success {
		o.logger.Info("message rejected at classification",
			zap.String("detail", classification.Detail))
		return o.finish(OrchestrationResult{
			Response: notUnderstoodReply,
			Label:    classification.Label,
		}, start)
	}

	var (
		handled HandlerResult
		path    string
	)
	switch classification.Label {
	case LabelPositiveFeedback, LabelNegativeFeedback:
		handled = o.feedback.Handle(ctx, text, classification.Label, customerName)
		path = feedbackPath
	case LabelQuery:
		handled = o.query.Handle(ctx, text)
		path = queryPath
	default:
		// Unreachable: a successful classification carries a routable label.
		return o.finish(OrchestrationResult{
			Response: cannotProcessReply,
			Label:    classification.Label,
		}, start)
	}

	if handled.Action == ActionIncidentCreated {
		metrics.IncidentsCreated.Inc()
	}

	result := OrchestrationResult{
		Success:      handled.Success,
		Response:     handled.Response,
		Label:        classification.Label,
		Confidence:   classification.Confidence,
		AgentPath:    path,
		Action:       handled.Action,
		TicketNumber: handled.TicketNumber,
		Ticket:       handled.Ticket,
	}

	o.logger.Info("message processed",
		zap.String("label", string(result.Label)),
		zap.String("agent_path", path),
		zap.Bool("success", result.Success))

	return o.finish(result, start)
}

func (o *Orchestrator) finish(result OrchestrationResult, start time.Time) OrchestrationResult {
	result.Elapsed = time.Since(start)

	outcome := "rejected"
	if result.Success {
		outcome = "done"
	}
	metrics.MessagesProcessed.WithLabelValues(string(result.Label), outcome).Inc()
	metrics.PipelineDuration.Observe(result.Elapsed.Seconds())

	return result
}
