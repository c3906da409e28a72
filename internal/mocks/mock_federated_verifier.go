package mocks

import (
	"context"

	"github.com/you/authsvc/domain"
)

// MockFederatedVerifier implements domain.FederatedVerifier for testing
type MockFederatedVerifier struct {
	VerifyFunc func(ctx context.Context, token string) (*domain.FederatedIdentity, error)
}

// NewMockFederatedVerifier creates a new MockFederatedVerifier with default behaviors
func NewMockFederatedVerifier() *MockFederatedVerifier {
	return &MockFederatedVerifier{}
}

// Verify validates a federated identity token
func (m *MockFederatedVerifier) Verify(ctx context.Context, token string) (*domain.FederatedIdentity, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, token)
	}
	// Default behavior: reject
	return nil, domain.ErrFederatedTokenInvalid
}
