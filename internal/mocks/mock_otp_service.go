package mocks

import (
	"context"

	"github.com/you/authsvc/domain"
)

// MockOTPService implements domain.OTPService for testing
type MockOTPService struct {
	RequestCodeFunc func(ctx context.Context, email string) (string, error)
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

// RequestCode generates and delivers a login code
func (m *MockOTPService) RequestCode(ctx context.Context, email string) (string, error) {
	if m.RequestCodeFunc != nil {
		return m.RequestCodeFunc(ctx, email)
	}
	// Default behavior: echo the normalized email
	return domain.NormalizeEmail(email), nil
}
