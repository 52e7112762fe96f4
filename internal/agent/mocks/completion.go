package mocks

import (
	"context"
	"errors"

	"github.com/Z335han/bmc-banking-ai/internal/agent"
)

// MockCompletionService is a mock implementation of the
// agent.CompletionService interface.
type MockCompletionService struct {
	CompleteFunc func(ctx context.Context, userPrompt, systemInstruction string) (agent.Completion, error)

	// Calls records the prompts of every invocation.
	Calls []string
}

func (m *MockCompletionService) Complete(ctx context.Context, userPrompt, systemInstruction string) (agent.Completion, error) {
	m.Calls = append(m.Calls, userPrompt)
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, userPrompt, systemInstruction)
	}
	return agent.Completion{}, errors.New("CompleteFunc not implemented")
}

// StaticCompletion returns a mock that always answers with text.
func StaticCompletion(text string) *MockCompletionService {
	return &MockCompletionService{
		CompleteFunc: func(ctx context.Context, userPrompt, systemInstruction string) (agent.Completion, error) {
			return agent.Completion{Text: text}, nil
		},
	}
}

// FailingCompletion returns a mock whose calls always fail with err.
func FailingCompletion(err error) *MockCompletionService {
	return &MockCompletionService{
		CompleteFunc: func(ctx context.Context, userPrompt, systemInstruction string) (agent.Completion, error) {
			return agent.Completion{}, err
		},
	}
}
