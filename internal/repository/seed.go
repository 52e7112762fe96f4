package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// sampleTickets mirrors the demo data the support desk ships with. The
// resolved incident keeps its fixed number so status-inquiry walkthroughs
// stay reproducible.
var sampleTickets = []struct {
	number      string
	ticketType  string
	title       string
	description string
	customer    string
	priority    string
	status      string
	resolution  string
}{
	{"INC1234567890", "INC", "Credit Card Blocked", "Card blocked after suspicious activity", "John Smith", "High", "Resolved", "Card unblocked after verification"},
	{"REQ2233445566", "REQ", "New Debit Card", "Request new debit card", "Jane Doe", "Medium", "New", ""},
	{"PBI5566778899", "PBI", "ATM Network Down", "Multiple ATM failures", "System", "Critical", "In Progress", ""},
	{"CRQ3344556677", "CRQ", "System Upgrade", "Core banking upgrade", "IT Team", "High", "New", ""},
	{"RLM4455667788", "RLM", "Mobile App v2.1", "New mobile app release", "Dev Team", "Medium", "Closed", ""},
}

// Seed inserts the sample tickets, skipping any that already exist.
func (r *TicketRepository) Seed(ctx context.Context) error {
	const query = `
		INSERT INTO tickets (ticket_number, ticket_type, title, description, priority, customer_name, status, resolution)
		VALUES (?, ?, ?, ?, ?, ?, ?, NULLIF(?, ''))
		ON CONFLICT(ticket_number) DO NOTHING
	`
	for _, s := range sampleTickets {
		if _, err := r.db.ExecContext(ctx, query,
			s.number, s.ticketType, s.title, s.description,
			s.priority, s.customer, s.status, s.resolution); err != nil {
			return fmt.Errorf("seed ticket %s: %w", s.number, err)
		}
	}
	return nil
}

// Open is a convenience for tests and the CLI: it wraps an already-open
// database, initializes the schema, and returns a ready repository.
func Open(ctx context.Context, db *sql.DB) (*TicketRepository, error) {
	repo := NewTicketRepository(db)
	if err := repo.Init(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}
