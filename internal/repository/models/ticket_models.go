package models

import "time"

// Ticket is a tracked work item keyed by a type-prefixed 10-digit number.
type Ticket struct {
	Number       string
	Type         string
	Title        string
	Description  string
	Status       string
	Priority     string
	CustomerName string
	CreatedAt    time.Time
	Resolution   string
}

// InteractionLogEntry is one append-only row of the AI interaction log.
type InteractionLogEntry struct {
	ID             int64
	UserMessage    string
	Classification string
	Handler        string
	Response       string
	TicketNumber   string
	Success        bool
	Timestamp      time.Time
}

// RoutingRecord is the (label, handler, success) projection used by the
// routing-accuracy evaluation.
type RoutingRecord struct {
	Classification string
	Handler        string
	Success        bool
}
