package domain

import "context"

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	Update(ctx context.Context, user *User) error
	ListAll(ctx context.Context) ([]*User, error)
	ListPublic(ctx context.Context, excludeEmail string) ([]*User, error)
}

// OTPRepository defines one-time code data access operations. Create appends
// a new record; FindNewest returns the most recently created record matching
// both email and code, or ErrCodeNotFound.
type OTPRepository interface {
	Create(ctx context.Context, otp *OneTimeCode) error
	FindNewest(ctx context.Context, email, code string) (*OneTimeCode, error)
}

// RefreshTokenRepository defines refresh token data access operations
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *RefreshToken) error
	Find(ctx context.Context, token string) (*RefreshToken, error)
	Delete(ctx context.Context, token string) error
}

// AuthService defines authentication business logic
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*AuthResult, error)
	Refresh(ctx context.Context, email, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, email string) error
	Account(ctx context.Context, userID uint) (*User, error)
	UpdateAccount(ctx context.Context, userID uint, update ProfileUpdate) (*User, error)
	PublicProfiles(ctx context.Context, requester *User) ([]*User, error)
}

// ProfileUpdate carries the optional profile fields of an account update.
// Nil pointers leave the corresponding field untouched.
type ProfileUpdate struct {
	Name           *string
	ProfilePicture *string
	Bio            *string
	Phone          *string
	AccountType    *AccountType
}

// OTPService defines one-time code issuance
type OTPService interface {
	RequestCode(ctx context.Context, email string) (string, error)
}

// TokenService defines access token operations
type TokenService interface {
	GenerateAccessToken(userID uint) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}

// FederatedVerifier validates a third-party identity token and extracts the
// verified email and display name
type FederatedVerifier interface {
	Verify(ctx context.Context, token string) (*FederatedIdentity, error)
}

// Notifier delivers a login code to a user out-of-band
type Notifier interface {
	SendLoginCode(ctx context.Context, email, code string) error
}
