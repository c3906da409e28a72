package mocks

import (
	"fmt"
	"time"

	"github.com/you/authsvc/domain"
)

// MockTokenService implements domain.TokenService for testing
type MockTokenService struct {
	GenerateAccessTokenFunc func(userID uint) (string, error)
	ValidateAccessTokenFunc func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// GenerateAccessToken mints an access token
func (m *MockTokenService) GenerateAccessToken(userID uint) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(userID)
	}
	// Default behavior: deterministic token
	return fmt.Sprintf("access_token_%d", userID), nil
}

// ValidateAccessToken validates an access token
func (m *MockTokenService) ValidateAccessToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateAccessTokenFunc != nil {
		return m.ValidateAccessTokenFunc(token)
	}
	// Default behavior: valid claims for user 1
	now := time.Now()
	return &domain.TokenClaims{
		UserID:    1,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(time.Hour).Unix(),
	}, nil
}
