package domain

import "errors"

// Authentication errors
var (
	ErrCodeInvalid           = errors.New("invalid login code")
	ErrCodeExpired           = errors.New("login code has expired")
	ErrCodeNotFound          = errors.New("login code not found")
	ErrFederatedTokenInvalid = errors.New("invalid federated identity token")
)

// User errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserConflict      = errors.New("conflicting user creation")
	ErrInvalidEmail      = errors.New("invalid email address")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")

	ErrRefreshTokenInvalid = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token has expired")
)

// Collaborator errors
var (
	ErrStorageFailed  = errors.New("storage unavailable")
	ErrDeliveryFailed = errors.New("code delivery failed")
)

// Authorization errors
var (
	ErrUnauthorized = errors.New("unauthorized access")
)
