package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Z335han/bmc-banking-ai/internal/repository"
	"github.com/Z335han/bmc-banking-ai/internal/repository/models"
	"go.uber.org/zap"
)

// QueryHandlerName is the handler name recorded in the interaction log.
const QueryHandlerName = "QueryHandler"

const (
	missingRefReply   = "Please provide a valid ticket number (INC/REQ/CRQ/PBI/RLM + 10 digits)"
	defaultResolution = "Issue resolved."
)

// QueryHandler answers ticket status inquiries. It never calls the model:
// status replies are fully deterministic so evaluation stays reproducible.
type QueryHandler struct {
	store  TicketStore
	logger *zap.Logger
}

func NewQueryHandler(store TicketStore, logger *zap.Logger) *QueryHandler {
	if store == nil {
		panic("ticket store must not be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueryHandler{
		store:  store,
		logger: logger.Named("query-handler"),
	}
}

func (h *QueryHandler) Handle(ctx context.Context, text string) HandlerResult {
	start := time.Now()

	ticketNumber, ok := ExtractTicketRef(text)
	if !ok {
		return HandlerResult{
			Response: missingRefReply,
			Elapsed:  time.Since(start),
		}
	}

	ticket, err := h.store.GetTicket(ctx, ticketNumber)
	if err != nil {
		if !errors.Is(err, repository.ErrTicketNotFound) {
			h.logger.Error("ticket lookup failed", zap.String("ticket", ticketNumber), zap.Error(err))
		}
		response := fmt.Sprintf("Ticket %s not found. Please verify the number.", ticketNumber)
		h.appendLog(ctx, text, response, ticketNumber, false)
		return HandlerResult{
			Response:     response,
			TicketNumber: ticketNumber,
			Elapsed:      time.Since(start),
		}
	}

	response := statusResponse(ticket)
	h.appendLog(ctx, text, response, ticketNumber, true)

	return HandlerResult{
		Success:      true,
		Response:     response,
		TicketNumber: ticketNumber,
		Ticket:       &ticket,
		Elapsed:      time.Since(start),
	}
}

// statusResponse phrases the current ticket state. The wording per status is
// fixed; unknown statuses get the generic form.
func statusResponse(t models.Ticket) string {
	typeName := TicketTypeName(t.Type)

	switch t.Status {
	case "New":
		return fmt.Sprintf("Your %s %s '%s' has been logged and is awaiting assignment.", typeName, t.Number, t.Title)
	case "In Progress":
		return fmt.Sprintf("Your %s %s '%s' is currently being worked on by our team.", typeName, t.Number, t.Title)
	case "Resolved":
		resolution := t.Resolution
		if resolution == "" {
			resolution = defaultResolution
		}
		return fmt.Sprintf("Your %s %s '%s' has been resolved. %s", typeName, t.Number, t.Title, resolution)
	case "Closed":
		return fmt.Sprintf("Your %s %s '%s' has been closed.", typeName, t.Number, t.Title)
	default:
		return fmt.Sprintf("Your %s %s is currently '%s'.", typeName, t.Number, t.Status)
	}
}

func (h *QueryHandler) appendLog(ctx context.Context, message, response, ticketNumber string, success bool) {
	entry := models.InteractionLogEntry{
		UserMessage:    message,
		Classification: string(LabelQuery),
		Handler:        QueryHandlerName,
		Response:       response,
		TicketNumber:   ticketNumber,
		Success:        success,
	}
	if err := h.store.LogInteraction(ctx, entry); err != nil {
		h.logger.Warn("interaction log append failed", zap.Error(err))
	}
}
