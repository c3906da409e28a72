package domain

import (
	"regexp"
	"strings"
	"time"
)

// Role is the closed set of user roles
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the known values
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

// AccountType is the closed set of profile visibilities
type AccountType string

const (
	AccountPublic  AccountType = "public"
	AccountPrivate AccountType = "private"
)

// Valid reports whether the account type is one of the known values
func (a AccountType) Valid() bool {
	switch a {
	case AccountPublic, AccountPrivate:
		return true
	}
	return false
}

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// NormalizeEmail lower-cases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail reports whether the address matches the basic email pattern
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// User represents a user in the system
type User struct {
	ID             uint
	UID            string
	Email          string
	Name           string
	ProfilePicture string
	Bio            string
	Phone          string
	AccountType    AccountType
	Role           Role
	Active         bool
	NewUser        bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OneTimeCode is one issued login code. Records are append-only; only the
// newest (email, code) match counts at login and validity is purely age-based.
type OneTimeCode struct {
	ID        uint
	Email     string
	Code      string
	CreatedAt time.Time
}

// RefreshToken is an opaque long-lived credential bound to a user
type RefreshToken struct {
	Token     string    `json:"token"`
	UserID    uint      `json:"user_id"`
	UserEmail string    `json:"user_email"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest carries the credentials presented to Login
type LoginRequest struct {
	Email          string
	Code           string
	AuthType       string
	FederatedToken string
}

// AuthResult represents a successful login outcome
type AuthResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresIn    int64
}

// FederatedIdentity is the verified output of a federated token check
type FederatedIdentity struct {
	Email string
	Name  string
}

// TokenClaims represents access token claims
type TokenClaims struct {
	UserID    uint  `json:"user_id"`
	IssuedAt  int64 `json:"iat"`
	ExpiresAt int64 `json:"exp"`
}
