package mocks

import (
	"context"
	"sync"
)

// SentCode records one delivered login code
type SentCode struct {
	Email string
	Code  string
}

// MockNotifier implements domain.Notifier for testing
type MockNotifier struct {
	SendLoginCodeFunc func(ctx context.Context, email, code string) error

	mu   sync.Mutex
	sent []SentCode
}

// NewMockNotifier creates a new MockNotifier with default behaviors
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// SendLoginCode delivers a login code
func (m *MockNotifier) SendLoginCode(ctx context.Context, email, code string) error {
	if m.SendLoginCodeFunc != nil {
		return m.SendLoginCodeFunc(ctx, email, code)
	}
	// Default behavior: record and succeed
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, SentCode{Email: email, Code: code})
	return nil
}

// Sent returns a copy of the recorded deliveries
func (m *MockNotifier) Sent() []SentCode {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentCode, len(m.sent))
	copy(out, m.sent)
	return out
}
