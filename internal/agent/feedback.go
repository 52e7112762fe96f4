package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/Z335han/bmc-banking-ai/internal/repository/models"
	"go.uber.org/zap"
)

// FeedbackHandlerName is the handler name recorded in the interaction log.
const FeedbackHandlerName = "FeedbackHandler"

const (
	invalidFeedbackReply = "Invalid classification"

	complaintTitle    = "Customer Complaint"
	complaintType     = "INC"
	complaintPriority = "High"
)

// DefaultCustomerName is used when the caller does not know the customer.
const DefaultCustomerName = "Valued Customer"

// FeedbackHandler reacts to feedback classifications: positive feedback gets
// a model-generated thank-you, negative feedback always produces an incident
// ticket with a deterministic confirmation.
type FeedbackHandler struct {
	store      TicketStore
	completion CompletionService
	logger     *zap.Logger
}

func NewFeedbackHandler(store TicketStore, completion CompletionService, logger *zap.Logger) *FeedbackHandler {
	if store == nil {
		panic("ticket store must not be nil")
	}
	if completion == nil {
		panic("completion service must not be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedbackHandler{
		store:      store,
		completion: completion,
		logger:     logger.Named("feedback-handler"),
	}
}

// Handle accepts only the two feedback labels; anything else yields a
// success-false result with no side effects.
func (h *FeedbackHandler) Handle(ctx context.Context, text string, label Label, customerName string) HandlerResult {
	if customerName == "" {
		customerName = DefaultCustomerName
	}

	switch label {
	case LabelPositiveFeedback:
		return h.handlePositive(ctx, text, customerName)
	case LabelNegativeFeedback:
		return h.handleNegative(ctx, text, customerName)
	default:
		return HandlerResult{Response: invalidFeedbackReply}
	}
}

func (h *FeedbackHandler) handlePositive(ctx context.Context, text, customerName string) HandlerResult {
	systemMsg := fmt.Sprintf(`Create a warm thank you response for positive banking feedback.
Customer name: %s
Keep under 80 words.`, customerName)

	start := time.Now()
	comp, err := h.completion.Complete(ctx, fmt.Sprintf("Feedback: '%s'", text), systemMsg)

	response := comp.Text
	elapsed := comp.Elapsed
	if err != nil {
		// Degraded but still a warm, honest reply; the model being down must
		// not lose a thank-you.
		h.logger.Warn("thank-you generation failed, using template", zap.Error(err))
		response = fmt.Sprintf("Thank you for your kind feedback, %s. We truly appreciate you taking the time to share it with us.", customerName)
		elapsed = time.Since(start)
	}

	h.appendLog(ctx, models.InteractionLogEntry{
		UserMessage:    text,
		Classification: string(LabelPositiveFeedback),
		Handler:        FeedbackHandlerName,
		Response:       response,
		Success:        true,
	})

	return HandlerResult{
		Success:  true,
		Response: response,
		Action:   ActionThankedCustomer,
		Elapsed:  elapsed,
	}
}

func (h *FeedbackHandler) handleNegative(ctx context.Context, text, customerName string) HandlerResult {
	start := time.Now()

	ticketNumber, err := h.store.CreateTicket(ctx, complaintType, complaintTitle, text, customerName, complaintPriority)
	if err != nil {
		// The reply must not claim a ticket exists when none was created.
		h.logger.Error("incident creation failed", zap.Error(err))
		response := fmt.Sprintf("We sincerely apologize for the inconvenience, %s. We could not register your complaint right now; please contact our support desk directly.", customerName)
		h.appendLog(ctx, models.InteractionLogEntry{
			UserMessage:    text,
			Classification: string(LabelNegativeFeedback),
			Handler:        FeedbackHandlerName,
			Response:       response,
			Success:        false,
		})
		return HandlerResult{
			Response: response,
			Elapsed:  time.Since(start),
		}
	}

	// Deterministic on purpose: an incident confirmation must never be
	// garbled by model output.
	response := fmt.Sprintf("We sincerely apologize for the inconvenience, %s. A new incident %s has been created and our team will address this issue promptly.", customerName, ticketNumber)

	h.appendLog(ctx, models.InteractionLogEntry{
		UserMessage:    text,
		Classification: string(LabelNegativeFeedback),
		Handler:        FeedbackHandlerName,
		Response:       response,
		TicketNumber:   ticketNumber,
		Success:        true,
	})

	return HandlerResult{
		Success:      true,
		Response:     response,
		Action:       ActionIncidentCreated,
		TicketNumber: ticketNumber,
		Elapsed:      time.Since(start),
	}
}

// appendLog swallows log-append failures: logging never aborts the
// user-visible flow.
func (h *FeedbackHandler) appendLog(ctx context.Context, entry models.InteractionLogEntry) {
	if err := h.store.LogInteraction(ctx, entry); err != nil {
		h.logger.Warn("interaction log append failed", zap.Error(err))
	}
}
