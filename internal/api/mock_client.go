package api

import (
	"context"
	"sync"
)

// MockSender is a scripted sender for tests of the chat hosts.
type MockSender struct {
	mu sync.Mutex

	// Replies maps a message to its response body; Default answers the rest.
	Replies map[string]string
	Default string
	Err     error

	// Sent records every message in send order.
	Sent []string
}

// Send records text and returns the scripted reply.
func (m *MockSender) Send(ctx context.Context, text string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Sent = append(m.Sent, text)
	if m.Err != nil {
		return "", m.Err
	}
	if body, ok := m.Replies[text]; ok {
		return body, nil
	}
	return m.Default, nil
}

// Calls returns how many messages were sent.
func (m *MockSender) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}
