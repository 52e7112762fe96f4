package mocks

import (
	"context"
	"errors"

	"github.com/Z335han/bmc-banking-ai/internal/repository/models"
)

// MockTicketStore is a mock implementation of the agent.TicketStore interface
// for testing handlers and the evaluator.
type MockTicketStore struct {
	CreateTicketFunc       func(ctx context.Context, ticketType, title, description, customerName, priority string) (string, error)
	GetTicketFunc          func(ctx context.Context, number string) (models.Ticket, error)
	UpdateStatusFunc       func(ctx context.Context, number, status, resolution string) (bool, error)
	LogInteractionFunc     func(ctx context.Context, entry models.InteractionLogEntry) error
	RecentInteractionsFunc func(ctx context.Context, limit int) ([]models.InteractionLogEntry, error)
	RoutingRecordsFunc     func(ctx context.Context) ([]models.RoutingRecord, error)

	// Logged collects every entry passed to LogInteraction when
	// LogInteractionFunc is unset.
	Logged []models.InteractionLogEntry
}

func (m *MockTicketStore) CreateTicket(ctx context.Context, ticketType, title, description, customerName, priority string) (string, error) {
	if m.CreateTicketFunc != nil {
		return m.CreateTicketFunc(ctx, ticketType, title, description, customerName, priority)
	}
	return "", errors.New("CreateTicketFunc not implemented")
}

func (m *MockTicketStore) GetTicket(ctx context.Context, number string) (models.Ticket, error) {
	if m.GetTicketFunc != nil {
		return m.GetTicketFunc(ctx, number)
	}
	return models.Ticket{}, errors.New("GetTicketFunc not implemented")
}

func (m *MockTicketStore) UpdateStatus(ctx context.Context, number, status, resolution string) (bool, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, number, status, resolution)
	}
	return false, errors.New("UpdateStatusFunc not implemented")
}

func (m *MockTicketStore) LogInteraction(ctx context.Context, entry models.InteractionLogEntry) error {
	if m.LogInteractionFunc != nil {
		return m.LogInteractionFunc(ctx, entry)
	}
	m.Logged = append(m.Logged, entry)
	return nil
}

func (m *MockTicketStore) RecentInteractions(ctx context.Context, limit int) ([]models.InteractionLogEntry, error) {
	if m.RecentInteractionsFunc != nil {
		return m.RecentInteractionsFunc(ctx, limit)
	}
	return nil, errors.New("RecentInteractionsFunc not implemented")
}

func (m *MockTicketStore) RoutingRecords(ctx context.Context) ([]models.RoutingRecord, error) {
	if m.RoutingRecordsFunc != nil {
		return m.RoutingRecordsFunc(ctx)
	}
	return nil, errors.New("RoutingRecordsFunc not implemented")
}
