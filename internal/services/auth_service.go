package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/you/authsvc/domain"
	infraauth "github.com/you/authsvc/internal/infrastructure/auth"
)

const federatedTypeGoogle = "google"

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	otpRepo     domain.OTPRepository
	refreshRepo domain.RefreshTokenRepository
	tokenSvc    domain.TokenService
	verifier    domain.FederatedVerifier
	config      AuthConfig
}

type AuthConfig struct {
	CodeTTL    time.Duration
	RefreshTTL time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	otpRepo domain.OTPRepository,
	refreshRepo domain.RefreshTokenRepository,
	tokenSvc domain.TokenService,
	verifier domain.FederatedVerifier,
	config AuthConfig,
) domain.AuthService {
	if config.CodeTTL <= 0 {
		config.CodeTTL = 5 * time.Minute
	}
	if config.RefreshTTL <= 0 {
		config.RefreshTTL = 365 * 24 * time.Hour
	}
	return &AuthServiceImpl{
		userRepo:    userRepo,
		otpRepo:     otpRepo,
		refreshRepo: refreshRepo,
		tokenSvc:    tokenSvc,
		verifier:    verifier,
		config:      config,
	}
}

// Login implements domain.AuthService. The flow is a single-request state
// machine: federated verification may replace the client-supplied email,
// then any supplied code is validated, then the user is resolved (created
// lazily on first login) and a token pair is issued.
func (s *AuthServiceImpl) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error) {
	email := domain.NormalizeEmail(req.Email)
	name := ""
	federated := false

	if req.AuthType == federatedTypeGoogle && req.FederatedToken != "" {
		identity, err := s.verifier.Verify(ctx, req.FederatedToken)
		if err != nil {
			return nil, domain.ErrFederatedTokenInvalid
		}
		email = identity.Email
		name = identity.Name
		federated = true
	}

	if req.Code != "" {
		if err := s.validateCode(ctx, email, req.Code); err != nil {
			return nil, err
		}
	} else if !federated {
		// Neither a code nor a verified federated identity: nothing
		// authenticates this request.
		return nil, domain.ErrCodeInvalid
	}

	user, err := s.resolveUser(ctx, email, name)
	if err != nil {
		return nil, err
	}

	result, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	domain.NewAuditEvent(domain.UserLoginEvent, user.Email).WithUserID(user.ID).Log()
	return result, nil
}

// validateCode checks the newest matching (email, code) record against the
// expiry window. A mismatched code yields no record at all, so both cases
// report ErrCodeInvalid.
func (s *AuthServiceImpl) validateCode(ctx context.Context, email, code string) error {
	otp, err := s.otpRepo.FindNewest(ctx, email, code)
	if err != nil {
		if errors.Is(err, domain.ErrCodeNotFound) {
			return domain.ErrCodeInvalid
		}
		return fmt.Errorf("%w: %v", domain.ErrStorageFailed, err)
	}

	if time.Since(otp.CreatedAt) >= s.config.CodeTTL {
		return domain.ErrCodeExpired
	}
	return nil
}

// resolveUser finds the user by normalized email, creating it lazily on
// first login. Concurrent creation races are settled by the store's unique
// constraint: the loser retries as a lookup.
func (s *AuthServiceImpl) resolveUser(ctx context.Context, email, name string) (*domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		if user.NewUser {
			user.NewUser = false
		}
		user.Active = true
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrStorageFailed, err)
		}
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageFailed, err)
	}

	user = &domain.User{
		Email:       email,
		Name:        name,
		Role:        domain.RoleUser,
		AccountType: domain.AccountPublic,
		Active:      true,
		NewUser:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			// Lost the creation race; the winner's row is authoritative.
			existing, ferr := s.userRepo.FindByEmail(ctx, email)
			if ferr != nil {
				return nil, domain.ErrUserConflict
			}
			return existing, nil
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageFailed, err)
	}

	domain.NewAuditEvent(domain.UserCreatedEvent, user.Email).WithUserID(user.ID).Log()
	return user, nil
}

// issueTokens mints the access token and persists a refresh token bound to
// the user's email
func (s *AuthServiceImpl) issueTokens(ctx context.Context, user *domain.User) (*domain.AuthResult, error) {
	accessToken, err := s.tokenSvc.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refresh := &domain.RefreshToken{
		Token:     infraauth.NewOpaqueToken(),
		UserID:    user.ID,
		UserEmail: user.Email,
		ExpiresAt: time.Now().Add(s.config.RefreshTTL),
		CreatedAt: time.Now(),
	}
	if err := s.refreshRepo.Create(ctx, refresh); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageFailed, err)
	}

	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refresh.Token,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.config.RefreshTTL.Seconds()),
	}, nil
}

// Refresh implements domain.AuthService. The stored token must exist, be
// unexpired and belong to the presented email; the same refresh token is
// kept and only the access token is re-minted.
func (s *AuthServiceImpl) Refresh(ctx context.Context, email, refreshToken string) (*domain.AuthResult, error) {
	record, err := s.refreshRepo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrRefreshTokenInvalid) || errors.Is(err, domain.ErrRefreshTokenExpired) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageFailed, err)
	}

	if record.UserEmail != domain.NormalizeEmail(email) {
		return nil, domain.ErrRefreshTokenInvalid
	}

	user, err := s.userRepo.FindByEmail(ctx, record.UserEmail)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrRefreshTokenInvalid
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageFailed, err)
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	domain.NewAuditEvent(domain.TokenRefreshEvent, user.Email).WithUserID(user.ID).Log()

	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.config.RefreshTTL.Seconds()),
	}, nil
}

// Logout implements domain.AuthService
func (s *AuthServiceImpl) Logout(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return err
	}

	user.Active = false
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageFailed, err)
	}

	domain.NewAuditEvent(domain.UserLogoutEvent, user.Email).WithUserID(user.ID).Log()
	return nil
}

// Account implements domain.AuthService
func (s *AuthServiceImpl) Account(ctx context.Context, userID uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// UpdateAccount implements domain.AuthService. Only the supplied fields
// change; the update is applied to a fresh snapshot and saved in one write.
func (s *AuthServiceImpl) UpdateAccount(ctx context.Context, userID uint, update domain.ProfileUpdate) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.ProfilePicture != nil {
		user.ProfilePicture = *update.ProfilePicture
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}
	if update.Phone != nil {
		user.Phone = *update.Phone
	}
	if update.AccountType != nil {
		if !update.AccountType.Valid() {
			return nil, fmt.Errorf("invalid account type %q", *update.AccountType)
		}
		user.AccountType = *update.AccountType
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageFailed, err)
	}
	return user, nil
}

// PublicProfiles implements domain.AuthService. Admins see every profile;
// everyone else sees public accounts excluding their own.
func (s *AuthServiceImpl) PublicProfiles(ctx context.Context, requester *domain.User) ([]*domain.User, error) {
	switch requester.Role {
	case domain.RoleAdmin:
		return s.userRepo.ListAll(ctx)
	case domain.RoleUser:
		return s.userRepo.ListPublic(ctx, requester.Email)
	default:
		return nil, domain.ErrUnauthorized
	}
}
