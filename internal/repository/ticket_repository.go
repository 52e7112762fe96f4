package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/Z335han/bmc-banking-ai/internal/repository/models"
)

var (
	// ErrTicketNotFound is returned by GetTicket when no record matches.
	ErrTicketNotFound = errors.New("ticket not found")
	// ErrNumberExhausted is returned when a unique ticket number could not
	// be generated within the retry budget.
	ErrNumberExhausted = errors.New("ticket number space exhausted")
)

const numberGenAttempts = 10

// TicketRepository implements the TicketStore contract over sqlite: a single
// tickets table for all ticket types plus an append-only ai_logs table.
type TicketRepository struct {
	db   *sql.DB
	rand *rand.Rand
}

func NewTicketRepository(db *sql.DB) *TicketRepository {
	return &TicketRepository{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Init creates the schema if it does not exist yet.
func (r *TicketRepository) Init(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS tickets (
		ticket_number VARCHAR(13) PRIMARY KEY,
		ticket_type VARCHAR(3) NOT NULL,
		title VARCHAR(200) NOT NULL,
		description TEXT,
		status VARCHAR(20) NOT NULL DEFAULT 'New',
		priority VARCHAR(10) NOT NULL DEFAULT 'Medium',
		customer_name VARCHAR(100),
		created_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		resolution TEXT
	);
	CREATE TABLE IF NOT EXISTS ai_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_message TEXT,
		classification VARCHAR(20),
		agent_used VARCHAR(30),
		response TEXT,
		ticket_number VARCHAR(13),
		success BOOLEAN NOT NULL DEFAULT 1,
		timestamp TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// CreateTicket inserts a new ticket with a freshly generated unique number
// and returns that number.
func (r *TicketRepository) CreateTicket(ctx context.Context, ticketType, title, description, customerName, priority string) (string, error) {
	number, err := r.generateNumber(ctx, ticketType)
	if err != nil {
		return "", err
	}

	const query = `
		INSERT INTO tickets (ticket_number, ticket_type, title, description, priority, customer_name)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	if _, err := r.db.ExecContext(ctx, query, number, ticketType, title, description, priority, customerName); err != nil {
		return "", fmt.Errorf("insert ticket: %w", err)
	}
	return number, nil
}

// generateNumber produces an unused number of the form prefix + 10 digits.
// Uniqueness is double-checked against existing rows; the tickets primary key
// is the final arbiter.
func (r *TicketRepository) generateNumber(ctx context.Context, ticketType string) (string, error) {
	for i := 0; i < numberGenAttempts; i++ {
		candidate := fmt.Sprintf("%s%010d", ticketType, 1000000000+r.rand.Int63n(9000000000))
		exists, err := r.ticketExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", ErrNumberExhausted
}

func (r *TicketRepository) ticketExists(ctx context.Context, number string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM tickets WHERE ticket_number = ?`, number).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check ticket exists: %w", err)
	}
	return true, nil
}

// GetTicket returns the ticket with the given number, or ErrTicketNotFound.
func (r *TicketRepository) GetTicket(ctx context.Context, number string) (models.Ticket, error) {
	const query = `
		SELECT ticket_number, ticket_type, title, description, status, priority,
		       customer_name, created_date, COALESCE(resolution, '')
		FROM tickets
		WHERE ticket_number = ?
	`

	var t models.Ticket
	err := r.db.QueryRowContext(ctx, query, number).Scan(
		&t.Number, &t.Type, &t.Title, &t.Description, &t.Status,
		&t.Priority, &t.CustomerName, &t.CreatedAt, &t.Resolution,
	)
	if err == sql.ErrNoRows {
		return models.Ticket{}, ErrTicketNotFound
	}
	if err != nil {
		return models.Ticket{}, fmt.Errorf("query ticket %s: %w", number, err)
	}
	return t, nil
}

// UpdateStatus sets the status (and resolution) of an existing ticket.
// Returns false when no row matched.
func (r *TicketRepository) UpdateStatus(ctx context.Context, number, status, resolution string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tickets SET status = ?, resolution = ? WHERE ticket_number = ?`,
		status, resolution, number)
	if err != nil {
		return false, fmt.Errorf("update ticket %s: %w", number, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update ticket %s: %w", number, err)
	}
	return affected > 0, nil
}

// LogInteraction appends one row to the interaction log. Callers treat a
// failure here as non-fatal for the user-visible flow.
func (r *TicketRepository) LogInteraction(ctx context.Context, entry models.InteractionLogEntry) error {
	const query = `
		INSERT INTO ai_logs (user_message, classification, agent_used, response, ticket_number, success)
		VALUES (?, ?, ?, ?, NULLIF(?, ''), ?)
	`
	if _, err := r.db.ExecContext(ctx, query,
		entry.UserMessage, entry.Classification, entry.Handler,
		entry.Response, entry.TicketNumber, entry.Success); err != nil {
		return fmt.Errorf("insert interaction log: %w", err)
	}
	return nil
}

// RecentInteractions returns up to limit log rows, most recent first.
func (r *TicketRepository) RecentInteractions(ctx context.Context, limit int) ([]models.InteractionLogEntry, error) {
	const query = `
		SELECT id, user_message, classification, agent_used, response,
		       COALESCE(ticket_number, ''), success, timestamp
		FROM ai_logs
		ORDER BY id DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent interactions: %w", err)
	}
	defer rows.Close()

	var entries []models.InteractionLogEntry
	for rows.Next() {
		var e models.InteractionLogEntry
		if err := rows.Scan(&e.ID, &e.UserMessage, &e.Classification, &e.Handler,
			&e.Response, &e.TicketNumber, &e.Success, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan interaction row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interactions: %w", err)
	}
	return entries, nil
}

// RoutingRecords returns every log row that carries both a classification and
// a handler name.
func (r *TicketRepository) RoutingRecords(ctx context.Context) ([]models.RoutingRecord, error) {
	const query = `
		SELECT classification, agent_used, success
		FROM ai_logs
		WHERE classification IS NOT NULL AND agent_used IS NOT NULL
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query routing records: %w", err)
	}
	defer rows.Close()

	var records []models.RoutingRecord
	for rows.Next() {
		var rec models.RoutingRecord
		if err := rows.Scan(&rec.Classification, &rec.Handler, &rec.Success); err != nil {
			return nil, fmt.Errorf("scan routing row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate routing records: %w", err)
	}
	return records, nil
}
