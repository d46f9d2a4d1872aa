package llm

import (
	"context"
	"sync"
)

const defaultMockReply = `{"technique":"coherent","reasoning":"Coherent breathing keeps you balanced right now","personalNote":"Mock advisor reply","confidence":60}`

// MockLLM is an in-process LLMClient for local mode and tests. It replies with
// Reply, or fails with Err when set.
type MockLLM struct {
	Reply        string
	Err          error
	Unconfigured bool

	mu      sync.Mutex
	prompts []string
}

func NewMockLLM() *MockLLM {
	return &MockLLM{Reply: defaultMockReply}
}

// NewFailingLLM returns a configured client whose every call fails with err.
func NewFailingLLM(err error) *MockLLM {
	return &MockLLM{Err: err}
}

func (m *MockLLM) Configured() bool {
	return !m.Unconfigured
}

func (m *MockLLM) GenerateReply(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Reply, nil
}

// Prompts returns every prompt received so far.
func (m *MockLLM) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}
