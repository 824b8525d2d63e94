package messaging

import (
	"context"
	"sync"
)

// SentMessage records one message passed to a MockSender.
type SentMessage struct {
	To   string
	Body string
}

// MockSender records messages instead of sending them.
type MockSender struct {
	mu   sync.Mutex
	sent []SentMessage
	Err  error
}

// NewMockSender creates an empty MockSender.
func NewMockSender() *MockSender {
	return &MockSender{}
}

// SendMessage records the message, or returns Err when set.
func (m *MockSender) SendMessage(ctx context.Context, to string, body string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, SentMessage{To: to, Body: body})
	return nil
}

// Sent returns a copy of the recorded messages.
func (m *MockSender) Sent() []SentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentMessage, len(m.sent))
	copy(out, m.sent)
	return out
}
