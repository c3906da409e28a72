package mocks

import (
	"context"

	"github.com/you/authsvc/domain"
)

// MockAuthService implements domain.AuthService for testing
type MockAuthService struct {
	LoginFunc          func(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error)
	RefreshFunc        func(ctx context.Context, email, refreshToken string) (*domain.AuthResult, error)
	LogoutFunc         func(ctx context.Context, email string) error
	AccountFunc        func(ctx context.Context, userID uint) (*domain.User, error)
	UpdateAccountFunc  func(ctx context.Context, userID uint, update domain.ProfileUpdate) (*domain.User, error)
	PublicProfilesFunc func(ctx context.Context, requester *domain.User) ([]*domain.User, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Login authenticates a login request
func (m *MockAuthService) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	// Default behavior: invalid code
	return nil, domain.ErrCodeInvalid
}

// Refresh re-issues an access token
func (m *MockAuthService) Refresh(ctx context.Context, email, refreshToken string) (*domain.AuthResult, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, email, refreshToken)
	}
	// Default behavior: invalid token
	return nil, domain.ErrRefreshTokenInvalid
}

// Logout marks a user inactive
func (m *MockAuthService) Logout(ctx context.Context, email string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, email)
	}
	// Default behavior: success
	return nil
}

// Account returns a user's profile
func (m *MockAuthService) Account(ctx context.Context, userID uint) (*domain.User, error) {
	if m.AccountFunc != nil {
		return m.AccountFunc(ctx, userID)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// UpdateAccount applies a partial profile update
func (m *MockAuthService) UpdateAccount(ctx context.Context, userID uint, update domain.ProfileUpdate) (*domain.User, error) {
	if m.UpdateAccountFunc != nil {
		return m.UpdateAccountFunc(ctx, userID, update)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// PublicProfiles lists visible profiles
func (m *MockAuthService) PublicProfiles(ctx context.Context, requester *domain.User) ([]*domain.User, error) {
	if m.PublicProfilesFunc != nil {
		return m.PublicProfilesFunc(ctx, requester)
	}
	// Default behavior: empty
	return nil, nil
}
