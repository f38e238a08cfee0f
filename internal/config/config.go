package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Carrier   CarrierConfig
	Upload    UploadConfig
	Worker    WorkerConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port        string
	Host        string
	Environment string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	Secret             string
	ExpiryHours        int
	RefreshExpiryHours int
}

// CarrierConfig holds the credentials for the external carrier tracking API.
type CarrierConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
}

type UploadConfig struct {
	Directory  string // local public directory for stored files
	PublicBase string // URL prefix returned to clients
	MaxSizeMB  int64
}

type WorkerConfig struct {
	InvoiceSweepSchedule    string
	TrackingRefreshSchedule string
	TokenCleanupSchedule    string
}

type RateLimitConfig struct {
	GeneralRPS   float64 // Requests per second for general endpoints
	GeneralBurst int     // Burst size for general endpoints
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type LogConfig struct {
	Directory string // when set, logs also go to rotated files
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AddConfigPath(".")
	if homeDir, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(homeDir)
	}
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// With an explicit config file a missing .env surfaces as a plain
		// path error rather than viper's not-found type.
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		log.Printf("Warning: config file not found: %v. Falling back to environment variables only.", err)
	}

	viper.SetDefault("UPLOAD_DIR", "public/uploads")
	viper.SetDefault("UPLOAD_PUBLIC_BASE", "/uploads")
	viper.SetDefault("UPLOAD_MAX_SIZE_MB", 5)
	viper.SetDefault("INVOICE_SWEEP_SCHEDULE", "0 * * * *")
	viper.SetDefault("TRACKING_REFRESH_SCHEDULE", "*/30 * * * *")
	viper.SetDefault("TOKEN_CLEANUP_SCHEDULE", "0 3 * * *")
	viper.SetDefault("RATE_LIMIT_GENERAL_RPS", 50)
	viper.SetDefault("RATE_LIMIT_GENERAL_BURST", 100)

	config := &Config{
		Server: ServerConfig{
			Port:        viper.GetString("SERVER_PORT"),
			Host:        viper.GetString("SERVER_HOST"),
			Environment: viper.GetString("ENVIRONMENT"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
		},
		JWT: JWTConfig{
			Secret:             viper.GetString("JWT_SECRET"),
			ExpiryHours:        viper.GetInt("JWT_EXPIRY_HOURS"),
			RefreshExpiryHours: viper.GetInt("JWT_REFRESH_EXPIRY_HOURS"),
		},
		Carrier: CarrierConfig{
			BaseURL:      viper.GetString("CARRIER_BASE_URL"),
			ClientID:     viper.GetString("CARRIER_CLIENT_ID"),
			ClientSecret: viper.GetString("CARRIER_CLIENT_SECRET"),
		},
		Upload: UploadConfig{
			Directory:  viper.GetString("UPLOAD_DIR"),
			PublicBase: viper.GetString("UPLOAD_PUBLIC_BASE"),
			MaxSizeMB:  viper.GetInt64("UPLOAD_MAX_SIZE_MB"),
		},
		Worker: WorkerConfig{
			InvoiceSweepSchedule:    viper.GetString("INVOICE_SWEEP_SCHEDULE"),
			TrackingRefreshSchedule: viper.GetString("TRACKING_REFRESH_SCHEDULE"),
			TokenCleanupSchedule:    viper.GetString("TOKEN_CLEANUP_SCHEDULE"),
		},
		RateLimit: RateLimitConfig{
			GeneralRPS:   viper.GetFloat64("RATE_LIMIT_GENERAL_RPS"),
			GeneralBurst: viper.GetInt("RATE_LIMIT_GENERAL_BURST"),
		},
		CORS: CORSConfig{
			AllowedOrigins:   viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods:   viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders:   viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
			ExposedHeaders:   viper.GetStringSlice("CORS_EXPOSED_HEADERS"),
			AllowCredentials: viper.GetBool("CORS_ALLOW_CREDENTIALS"),
			MaxAge:           viper.GetInt("CORS_MAX_AGE"),
		},
		Log: LogConfig{
			Directory: viper.GetString("LOG_DIR"),
		},
	}

	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}
