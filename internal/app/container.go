package app

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/you/authsvc/domain"
	"github.com/you/authsvc/internal/config"
	"github.com/you/authsvc/internal/infrastructure/auth"
	"github.com/you/authsvc/internal/infrastructure/database"
	"github.com/you/authsvc/internal/infrastructure/notifications"
	"github.com/you/authsvc/internal/infrastructure/repositories"
	"github.com/you/authsvc/internal/services"
)

// Container holds all dependencies. Stores are explicit instances injected
// into the services, never process-wide singletons.
type Container struct {
	Config *config.Config

	DB          *gorm.DB
	RedisClient *redis.Client

	UserRepo    domain.UserRepository
	OTPRepo     domain.OTPRepository
	RefreshRepo domain.RefreshTokenRepository

	TokenSvc domain.TokenService
	Verifier domain.FederatedVerifier
	Notifier domain.Notifier
	OTPSvc   domain.OTPService
	AuthSvc  domain.AuthService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	if err := container.initDatabase(); err != nil {
		return nil, err
	}
	container.initRedis()
	container.initRepositories()
	container.initServices()

	return container, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	c.DB = db
	return nil
}

func (c *Container) initRedis() {
	c.RedisClient = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB).Client
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.OTPRepo = repositories.NewOTPRepository(c.DB)
	c.RefreshRepo = repositories.NewRefreshTokenRepository(c.RedisClient)
}

func (c *Container) initServices() {
	c.TokenSvc = auth.NewJWTService(c.Config.JWTSecret, c.Config.JWTIssuer, c.Config.AccessTTL)
	c.Verifier = auth.NewGoogleVerifier(c.Config.GoogleClientID)
	c.Notifier = notifications.NewMailerSendService(
		c.Config.MailerAPIKey,
		c.Config.MailerFromName,
		c.Config.MailerFromEmail,
	)

	c.OTPSvc = services.NewOTPService(c.OTPRepo, c.Notifier, services.OTPConfig{
		Length: c.Config.OTP_Length,
		TTL:    c.Config.OTP_TTL,
	})

	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.OTPRepo,
		c.RefreshRepo,
		c.TokenSvc,
		c.Verifier,
		services.AuthConfig{
			CodeTTL:    c.Config.OTP_TTL,
			RefreshTTL: c.Config.RefreshTTL,
		},
	)
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
