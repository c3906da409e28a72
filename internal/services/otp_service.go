package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/you/authsvc/domain"
)

// OTPServiceImpl implements domain.OTPService
type OTPServiceImpl struct {
	otpRepo  domain.OTPRepository
	notifier domain.Notifier
	config   OTPConfig
}

type OTPConfig struct {
	Length int
	TTL    time.Duration
}

// NewOTPService creates a new OTP issuance service
func NewOTPService(otpRepo domain.OTPRepository, notifier domain.Notifier, config OTPConfig) domain.OTPService {
	if config.Length <= 0 {
		config.Length = 6
	}
	return &OTPServiceImpl{
		otpRepo:  otpRepo,
		notifier: notifier,
		config:   config,
	}
}

// RequestCode implements domain.OTPService. A new code is appended
// unconditionally: outstanding codes for the same email coexist and only the
// newest one matters at login. Storage and delivery failures surface as
// distinct sentinels.
func (s *OTPServiceImpl) RequestCode(ctx context.Context, email string) (string, error) {
	email = domain.NormalizeEmail(email)
	if !domain.ValidEmail(email) {
		return "", domain.ErrInvalidEmail
	}

	code, err := s.generateSecureCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate login code: %w", err)
	}

	otp := &domain.OneTimeCode{
		Email: email,
		Code:  code,
	}
	if err := s.otpRepo.Create(ctx, otp); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStorageFailed, err)
	}

	if err := s.notifier.SendLoginCode(ctx, email, code); err != nil {
		domain.NewAuditEvent(domain.OTPDeliveryFailedEvent, email).WithError(err).Log()
		return "", fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}

	domain.NewAuditEvent(domain.OTPRequestEvent, email).Log()
	return email, nil
}

// generateSecureCode draws uniformly from the 26 uppercase letters
func (s *OTPServiceImpl) generateSecureCode() (string, error) {
	letters := make([]byte, s.config.Length)
	for i := 0; i < s.config.Length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(26))
		if err != nil {
			return "", fmt.Errorf("failed to generate random letter: %w", err)
		}
		letters[i] = byte('A' + num.Int64())
	}
	return string(letters), nil
}
