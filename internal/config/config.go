package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	Issuer     string `yaml:"issuer"`
	AccessTTL  string `yaml:"access_ttl"`
	RefreshTTL string `yaml:"refresh_ttl"`
}

type OTPConfig struct {
	TTL    string `yaml:"ttl"`
	Length int    `yaml:"length"`
}

type MailerConfig struct {
	APIKey    string `yaml:"api_key"`
	FromName  string `yaml:"from_name"`
	FromEmail string `yaml:"from_email"`
}

type GoogleConfig struct {
	ClientID string `yaml:"client_id"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	OTP      OTPConfig      `yaml:"otp"`
	Mailer   MailerConfig   `yaml:"mailer"`
	Google   GoogleConfig   `yaml:"google"`
}

type Config struct {
	Port            string
	GinMode         string
	DSN             string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	JWTSecret       string
	JWTIssuer       string
	AccessTTL       time.Duration
	RefreshTTL      time.Duration
	OTP_TTL         time.Duration
	OTP_Length      int
	MailerAPIKey    string
	MailerFromName  string
	MailerFromEmail string
	GoogleClientID  string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	return LoadFrom(env("CONFIG_PATH", "config/config.yml"))
}

func LoadFrom(path string) (*Config, error) {
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	accTTL, err := time.ParseDuration(configFile.JWT.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}

	refTTL, err := time.ParseDuration(configFile.JWT.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT refresh TTL: %w", err)
	}

	otpTTL, err := time.ParseDuration(configFile.OTP.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP TTL: %w", err)
	}

	otpLength := configFile.OTP.Length
	if otpLength <= 0 {
		otpLength = 6
	}

	port := configFile.App.Port
	if port <= 0 {
		port = 8080
	}

	return &Config{
		Port:            fmt.Sprintf("%d", port),
		GinMode:         configFile.App.GinMode,
		DSN:             env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:       env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:   env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:         configFile.Redis.DB,
		JWTSecret:       env("JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer:       configFile.JWT.Issuer,
		AccessTTL:       accTTL,
		RefreshTTL:      refTTL,
		OTP_TTL:         otpTTL,
		OTP_Length:      otpLength,
		MailerAPIKey:    env("MAILERSEND_API_KEY", configFile.Mailer.APIKey),
		MailerFromName:  configFile.Mailer.FromName,
		MailerFromEmail: configFile.Mailer.FromEmail,
		GoogleClientID:  env("GOOGLE_CLIENT_ID", configFile.Google.ClientID),
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
