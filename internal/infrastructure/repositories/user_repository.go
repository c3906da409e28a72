package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/you/authsvc/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID             uint   `gorm:"primaryKey"`
	UID            string `gorm:"uniqueIndex;size:64"`
	Email          string `gorm:"uniqueIndex;size:255"`
	Name           string `gorm:"size:128"`
	ProfilePicture string `gorm:"size:512"`
	Bio            string
	Phone          string    `gorm:"size:32"`
	AccountType    string    `gorm:"index;size:32;default:public"`
	Role           string    `gorm:"index;size:64;default:user"`
	Active         bool      `gorm:"index"`
	NewUser        bool      `gorm:"index"`
	CreatedAt      time.Time `gorm:"index"`
	UpdatedAt      time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository. The unique index on email is the
// synchronization primitive for concurrent creation: the loser of a race
// gets domain.ErrUserAlreadyExists, never a silent overwrite.
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	if user.UID == "" {
		user.UID = uuid.NewString()
	}
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrUserAlreadyExists
		}
		return err
	}
	user.ID = dbUser.ID
	user.CreatedAt = dbUser.CreatedAt
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// Update implements domain.UserRepository
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	return r.db.WithContext(ctx).Save(dbUser).Error
}

// ListAll implements domain.UserRepository
func (r *UserRepositoryImpl) ListAll(ctx context.Context) ([]*domain.User, error) {
	var dbUsers []DBUser
	if err := r.db.WithContext(ctx).Order("created_at").Find(&dbUsers).Error; err != nil {
		return nil, err
	}
	return r.dbListToDomain(dbUsers), nil
}

// ListPublic implements domain.UserRepository. Returns public-account
// profiles, excluding the given email.
func (r *UserRepositoryImpl) ListPublic(ctx context.Context, excludeEmail string) ([]*domain.User, error) {
	var dbUsers []DBUser
	err := r.db.WithContext(ctx).
		Where("account_type = ?", string(domain.AccountPublic)).
		Where("email <> ?", excludeEmail).
		Order("created_at").
		Find(&dbUsers).Error
	if err != nil {
		return nil, err
	}
	return r.dbListToDomain(dbUsers), nil
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:             user.ID,
		UID:            user.UID,
		Email:          user.Email,
		Name:           user.Name,
		ProfilePicture: user.ProfilePicture,
		Bio:            user.Bio,
		Phone:          user.Phone,
		AccountType:    string(user.AccountType),
		Role:           string(user.Role),
		Active:         user.Active,
		NewUser:        user.NewUser,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:             dbUser.ID,
		UID:            dbUser.UID,
		Email:          dbUser.Email,
		Name:           dbUser.Name,
		ProfilePicture: dbUser.ProfilePicture,
		Bio:            dbUser.Bio,
		Phone:          dbUser.Phone,
		AccountType:    domain.AccountType(dbUser.AccountType),
		Role:           domain.Role(dbUser.Role),
		Active:         dbUser.Active,
		NewUser:        dbUser.NewUser,
		CreatedAt:      dbUser.CreatedAt,
		UpdatedAt:      dbUser.UpdatedAt,
	}
}

func (r *UserRepositoryImpl) dbListToDomain(dbUsers []DBUser) []*domain.User {
	users := make([]*domain.User, 0, len(dbUsers))
	for i := range dbUsers {
		users = append(users, r.dbToDomain(&dbUsers[i]))
	}
	return users
}
