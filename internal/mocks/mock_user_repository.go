package mocks

import (
	"context"

	"github.com/you/authsvc/domain"
)

// MockUserRepository implements domain.UserRepository for testing
type MockUserRepository struct {
	CreateFunc      func(ctx context.Context, user *domain.User) error
	FindByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	FindByIDFunc    func(ctx context.Context, id uint) (*domain.User, error)
	UpdateFunc      func(ctx context.Context, user *domain.User) error
	ListAllFunc     func(ctx context.Context) ([]*domain.User, error)
	ListPublicFunc  func(ctx context.Context, excludeEmail string) ([]*domain.User, error)
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

// Create creates a new user
func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	// Default behavior: success
	return nil
}

// FindByEmail finds a user by email
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// FindByID finds a user by ID
func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// Update updates an existing user
func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	// Default behavior: success
	return nil
}

// ListAll returns every user
func (m *MockUserRepository) ListAll(ctx context.Context) ([]*domain.User, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	// Default behavior: empty
	return nil, nil
}

// ListPublic returns public profiles excluding the given email
func (m *MockUserRepository) ListPublic(ctx context.Context, excludeEmail string) ([]*domain.User, error) {
	if m.ListPublicFunc != nil {
		return m.ListPublicFunc(ctx, excludeEmail)
	}
	// Default behavior: empty
	return nil, nil
}
