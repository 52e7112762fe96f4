package agent

import (
	"regexp"
	"strings"
)

// TicketTypeNames maps the ticket type prefixes to their display names.
var TicketTypeNames = map[string]string{
	"INC": "Incident",
	"REQ": "Service Request",
	"CRQ": "Change Request",
	"PBI": "Problem",
	"RLM": "Release",
}

// ticketRefPattern matches a ticket type prefix followed by exactly 10 digits.
// Classifier and QueryHandler must stay in lock-step on this pattern, so both
// go through ExtractTicketRef.
var ticketRefPattern = regexp.MustCompile(`(INC|REQ|CRQ|PBI|RLM)\d{10}`)

// ExtractTicketRef returns the first ticket reference in text, uppercased,
// and whether one was found. Matching is case-insensitive.
func ExtractTicketRef(text string) (string, bool) {
	match := ticketRefPattern.FindString(strings.ToUpper(text))
	if match == "" {
		return "", false
	}
	return match, true
}

// TicketTypeName expands a type prefix to its display name, falling back to
// the generic "Ticket" for unrecognized prefixes.
func TicketTypeName(ticketType string) string {
	if name, ok := TicketTypeNames[ticketType]; ok {
		return name
	}
	return "Ticket"
}
