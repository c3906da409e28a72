package mocks

import (
	"context"

	"github.com/you/authsvc/domain"
)

// MockOTPRepository implements domain.OTPRepository for testing
type MockOTPRepository struct {
	CreateFunc     func(ctx context.Context, otp *domain.OneTimeCode) error
	FindNewestFunc func(ctx context.Context, email, code string) (*domain.OneTimeCode, error)
}

// NewMockOTPRepository creates a new MockOTPRepository with default behaviors
func NewMockOTPRepository() *MockOTPRepository {
	return &MockOTPRepository{}
}

// Create appends a new one-time code record
func (m *MockOTPRepository) Create(ctx context.Context, otp *domain.OneTimeCode) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, otp)
	}
	// Default behavior: success
	return nil
}

// FindNewest returns the newest matching record
func (m *MockOTPRepository) FindNewest(ctx context.Context, email, code string) (*domain.OneTimeCode, error) {
	if m.FindNewestFunc != nil {
		return m.FindNewestFunc(ctx, email, code)
	}
	// Default behavior: not found
	return nil, domain.ErrCodeNotFound
}
