package agent

import (
	"time"

	"github.com/Z335han/bmc-banking-ai/internal/repository/models"
)

// Label is the closed set of classification outcomes.
type Label string

const (
	LabelPositiveFeedback Label = "positive_feedback"
	LabelNegativeFeedback Label = "negative_feedback"
	LabelQuery            Label = "query"
	LabelUnknown          Label = "unknown"
)

// ParseLabel maps normalized model output onto the closed label set. Anything
// outside the three routable labels collapses to LabelUnknown.
func ParseLabel(s string) Label {
	switch Label(s) {
	case LabelPositiveFeedback, LabelNegativeFeedback, LabelQuery:
		return Label(s)
	default:
		return LabelUnknown
	}
}

// Method records how a classification was produced.
type Method string

const (
	MethodRuleBased Method = "rule_based"
	MethodLLMBased  Method = "llm_based"
)

// Action tags the side effect a handler performed.
type Action string

const (
	ActionThankedCustomer Action = "thanked_customer"
	ActionIncidentCreated Action = "incident_created"
)

// ClassificationResult is the Classifier's output. Success is true iff Label
// is not LabelUnknown.
type ClassificationResult struct {
	Label      Label
	Confidence float64
	Method     Method
	Detail     string // raw model output, or the failure description
	Elapsed    time.Duration
	Success    bool
}

// HandlerResult is the ephemeral outcome of one handler invocation.
type HandlerResult struct {
	Success      bool
	Response     string
	Action       Action
	TicketNumber string
	Ticket       *models.Ticket
	Elapsed      time.Duration
}

// OrchestrationResult merges a HandlerResult with classification metadata and
// the component trace.
type OrchestrationResult struct {
	Success      bool
	Response     string
	Label        Label
	Confidence   float64
	AgentPath    string
	Action       Action
	TicketNumber string
	Ticket       *models.Ticket
	Elapsed      time.Duration
}
