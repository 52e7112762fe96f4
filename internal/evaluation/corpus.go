package evaluation

import "github.com/Z335han/bmc-banking-ai/internal/agent"

// defaultCorpus is the fixed labeled test set replayed through the live
// classifier. Categories tag what kind of phrasing each case probes.
var defaultCorpus = []TestCase{
	{Message: "Thank you for solving my issue!", Expected: agent.LabelPositiveFeedback, Category: "gratitude"},
	{Message: "Great service from your team!", Expected: agent.LabelPositiveFeedback, Category: "praise"},
	{Message: "My card is still not working", Expected: agent.LabelNegativeFeedback, Category: "complaint"},
	{Message: "Very disappointed with the delay", Expected: agent.LabelNegativeFeedback, Category: "dissatisfaction"},
	{Message: "What's the status of INC1234567890?", Expected: agent.LabelQuery, Category: "status_inquiry"},
	{Message: "Can you check ticket REQ0987654321?", Expected: agent.LabelQuery, Category: "ticket_lookup"},
	{Message: "Please help me with my account", Expected: agent.LabelQuery, Category: "help_request"},
	{Message: "Thanks for the quick resolution!", Expected: agent.LabelPositiveFeedback, Category: "appreciation"},
	{Message: "This is taking too long", Expected: agent.LabelNegativeFeedback, Category: "frustration"},
	{Message: "Status of PBI5555555555?", Expected: agent.LabelQuery, Category: "problem_inquiry"},
}
