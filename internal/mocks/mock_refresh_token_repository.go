package mocks

import (
	"context"

	"github.com/you/authsvc/domain"
)

// MockRefreshTokenRepository implements domain.RefreshTokenRepository for testing
type MockRefreshTokenRepository struct {
	CreateFunc func(ctx context.Context, token *domain.RefreshToken) error
	FindFunc   func(ctx context.Context, token string) (*domain.RefreshToken, error)
	DeleteFunc func(ctx context.Context, token string) error
}

// NewMockRefreshTokenRepository creates a new MockRefreshTokenRepository with default behaviors
func NewMockRefreshTokenRepository() *MockRefreshTokenRepository {
	return &MockRefreshTokenRepository{}
}

// Create persists a refresh token
func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, token)
	}
	// Default behavior: success
	return nil
}

// Find looks up a refresh token
func (m *MockRefreshTokenRepository) Find(ctx context.Context, token string) (*domain.RefreshToken, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, token)
	}
	// Default behavior: invalid
	return nil, domain.ErrRefreshTokenInvalid
}

// Delete removes a refresh token
func (m *MockRefreshTokenRepository) Delete(ctx context.Context, token string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, token)
	}
	// Default behavior: success
	return nil
}
