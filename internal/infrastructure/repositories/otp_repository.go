package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/you/authsvc/domain"
)

// OTPRepositoryImpl implements domain.OTPRepository using GORM. The table is
// append-only: codes are never updated or deleted, and expiry is decided by
// the caller from created_at.
type OTPRepositoryImpl struct {
	db *gorm.DB
}

// DBOneTimeCode represents the database model for OneTimeCode
type DBOneTimeCode struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"index:idx_otps_email_code;size:255"`
	Code      string    `gorm:"index:idx_otps_email_code;size:16"`
	CreatedAt time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBOneTimeCode) TableName() string {
	return "otps"
}

// NewOTPRepository creates a new one-time code repository
func NewOTPRepository(db *gorm.DB) domain.OTPRepository {
	return &OTPRepositoryImpl{db: db}
}

// Create implements domain.OTPRepository
func (r *OTPRepositoryImpl) Create(ctx context.Context, otp *domain.OneTimeCode) error {
	dbOTP := &DBOneTimeCode{
		Email: otp.Email,
		Code:  otp.Code,
	}
	if err := r.db.WithContext(ctx).Create(dbOTP).Error; err != nil {
		return err
	}
	otp.ID = dbOTP.ID
	otp.CreatedAt = dbOTP.CreatedAt
	return nil
}

// FindNewest implements domain.OTPRepository. A non-matching code simply
// yields no row, so the caller cannot distinguish a wrong code from a
// never-issued one.
func (r *OTPRepositoryImpl) FindNewest(ctx context.Context, email, code string) (*domain.OneTimeCode, error) {
	var dbOTP DBOneTimeCode
	err := r.db.WithContext(ctx).
		Where("email = ? AND code = ?", email, code).
		Order("created_at DESC").
		First(&dbOTP).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCodeNotFound
		}
		return nil, err
	}
	return &domain.OneTimeCode{
		ID:        dbOTP.ID,
		Email:     dbOTP.Email,
		Code:      dbOTP.Code,
		CreatedAt: dbOTP.CreatedAt,
	}, nil
}
