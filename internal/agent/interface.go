package agent

import (
	"context"
	"time"

	"github.com/Z335han/bmc-banking-ai/internal/repository/models"
)

// Completion is a single-turn text generation outcome.
type Completion struct {
	Text    string
	Elapsed time.Duration
}

// CompletionService is the stateless text-generation capability used by the
// Classifier and the positive-feedback path. Failures are returned as values
// and never crash the caller.
type CompletionService interface {
	Complete(ctx context.Context, userPrompt, systemInstruction string) (Completion, error)
}

// TicketStore is the persistence contract the handlers and evaluator require:
// CRUD over ticket records plus an append-only interaction log.
type TicketStore interface {
	CreateTicket(ctx context.Context, ticketType, title, description, customerName, priority string) (string, error)
	GetTicket(ctx context.Context, number string) (models.Ticket, error)
	UpdateStatus(ctx context.Context, number, status, resolution string) (bool, error)
	LogInteraction(ctx context.Context, entry models.InteractionLogEntry) error
	RecentInteractions(ctx context.Context, limit int) ([]models.InteractionLogEntry, error)
	RoutingRecords(ctx context.Context) ([]models.RoutingRecord, error)
}
