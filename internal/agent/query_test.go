package agent_test

import (
	"context"
	"testing"

	"github.com/Z335han/bmc-banking-ai/internal/agent"
	"github.com/Z335han/bmc-banking-ai/internal/agent/mocks"
	"github.com/Z335han/bmc-banking-ai/internal/repository"
	"github.com/Z335han/bmc-banking-ai/internal/repository/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func storeWithTicket(ticket models.Ticket) *mocks.MockTicketStore {
	return &mocks.MockTicketStore{
		GetTicketFunc: func(ctx context.Context, number string) (models.Ticket, error) {
			if number == ticket.Number {
				return ticket, nil
			}
			return models.Ticket{}, repository.ErrTicketNotFound
		},
	}
}

func TestQueryHandlerMissingReference(t *testing.T) {
	store := &mocks.MockTicketStore{}
	handler := agent.NewQueryHandler(store, zap.NewNop())

	result := handler.Handle(context.Background(), "where is my ticket?")

	assert.False(t, result.Success)
	assert.Equal(t, "Please provide a valid ticket number (INC/REQ/CRQ/PBI/RLM + 10 digits)", result.Response)
	assert.Empty(t, store.Logged, "no store access without a reference")
}

func TestQueryHandlerNotFound(t *testing.T) {
	store := storeWithTicket(models.Ticket{Number: "INC1234567890"})
	handler := agent.NewQueryHandler(store, zap.NewNop())

	result := handler.Handle(context.Background(), "Can you check REQ0000000000?")

	assert.False(t, result.Success)
	assert.Equal(t, "Ticket REQ0000000000 not found. Please verify the number.", result.Response)
	assert.Equal(t, "REQ0000000000", result.TicketNumber)

	require.Len(t, store.Logged, 1)
	entry := store.Logged[0]
	assert.False(t, entry.Success)
	assert.Equal(t, "REQ0000000000", entry.TicketNumber)
	assert.Equal(t, agent.QueryHandlerName, entry.Handler)
}

func TestQueryHandlerStatusPhrasing(t *testing.T) {
	ctx := context.Background()

	t.Run("resolved with resolution text", func(t *testing.T) {
		store := storeWithTicket(models.Ticket{
			Number:     "INC1234567890",
			Type:       "INC",
			Title:      "Credit Card Blocked",
			Status:     "Resolved",
			Resolution: "Card unblocked after verification",
		})
		handler := agent.NewQueryHandler(store, zap.NewNop())

		result := handler.Handle(ctx, "What's the status of INC1234567890?")

		assert.True(t, result.Success)
		assert.Equal(t, "Your Incident INC1234567890 'Credit Card Blocked' has been resolved. Card unblocked after verification", result.Response)
		require.NotNil(t, result.Ticket)
		assert.Equal(t, "Resolved", result.Ticket.Status)

		require.Len(t, store.Logged, 1)
		assert.True(t, store.Logged[0].Success)
		assert.Equal(t, "INC1234567890", store.Logged[0].TicketNumber)
	})

	t.Run("resolved without resolution uses the default", func(t *testing.T) {
		store := storeWithTicket(models.Ticket{
			Number: "PBI5555555555", Type: "PBI", Title: "ATM Network Down", Status: "Resolved",
		})
		handler := agent.NewQueryHandler(store, zap.NewNop())

		result := handler.Handle(ctx, "status PBI5555555555")
		assert.Equal(t, "Your Problem PBI5555555555 'ATM Network Down' has been resolved. Issue resolved.", result.Response)
	})

	t.Run("new", func(t *testing.T) {
		store := storeWithTicket(models.Ticket{
			Number: "REQ2233445566", Type: "REQ", Title: "New Debit Card", Status: "New",
		})
		handler := agent.NewQueryHandler(store, zap.NewNop())

		result := handler.Handle(ctx, "where is REQ2233445566")
		assert.Equal(t, "Your Service Request REQ2233445566 'New Debit Card' has been logged and is awaiting assignment.", result.Response)
	})

	t.Run("in progress", func(t *testing.T) {
		store := storeWithTicket(models.Ticket{
			Number: "CRQ3344556677", Type: "CRQ", Title: "System Upgrade", Status: "In Progress",
		})
		handler := agent.NewQueryHandler(store, zap.NewNop())

		result := handler.Handle(ctx, "CRQ3344556677?")
		assert.Equal(t, "Your Change Request CRQ3344556677 'System Upgrade' is currently being worked on by our team.", result.Response)
	})

	t.Run("closed", func(t *testing.T) {
		store := storeWithTicket(models.Ticket{
			Number: "RLM4455667788", Type: "RLM", Title: "Mobile App v2.1", Status: "Closed",
		})
		handler := agent.NewQueryHandler(store, zap.NewNop())

		result := handler.Handle(ctx, "RLM4455667788 status")
		assert.Equal(t, "Your Release RLM4455667788 'Mobile App v2.1' has been closed.", result.Response)
	})

	t.Run("other status falls back to the generic phrasing", func(t *testing.T) {
		store := storeWithTicket(models.Ticket{
			Number: "INC9999999999", Type: "INC", Title: "Weird State", Status: "On Hold",
		})
		handler := agent.NewQueryHandler(store, zap.NewNop())

		result := handler.Handle(ctx, "INC9999999999")
		assert.Equal(t, "Your Incident INC9999999999 is currently 'On Hold'.", result.Response)
	})
}

// Classifier and QueryHandler must extract the identical substring from the
// same message.
func TestQueryHandlerClassifierLockStep(t *testing.T) {
	text := "Any news on crq1112223334 today?"

	classifier := agent.NewClassifier(mocks.StaticCompletion("unused"), zap.NewNop())
	classification := classifier.Classify(context.Background(), text)
	assert.Equal(t, agent.LabelQuery, classification.Label)
	assert.Equal(t, agent.MethodRuleBased, classification.Method)

	ref, ok := agent.ExtractTicketRef(text)
	require.True(t, ok)
	assert.Equal(t, "CRQ1112223334", ref)

	store := storeWithTicket(models.Ticket{Number: "CRQ1112223334", Type: "CRQ", Title: "x", Status: "New"})
	handler := agent.NewQueryHandler(store, zap.NewNop())
	result := handler.Handle(context.Background(), text)
	assert.Equal(t, ref, result.TicketNumber)
}
