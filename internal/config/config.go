package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string
	LogLevel    string

	// CompanyDomain is the mandatory suffix for employee emails,
	// including the leading "@".
	CompanyDomain string

	// StaticOTP is the passcode issued on every request. The POC
	// intentionally does not generate random codes; see DESIGN.md.
	StaticOTP string

	AuthJWTSecret string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int

	Storage   StorageConfig
	RateLimit RateLimitConfig

	// Seed controls whether a default admin employee is created at
	// startup when no admin exists yet.
	SeedDefaultAdmin  bool
	DefaultAdminEmail string
}

type StorageConfig struct {
	// Type selects the backend: "s3" or "local".
	Type      string
	BasePath  string
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string
}

// RateLimitConfig throttles passcode requests per email and per caller IP.
// Disabled unless a redis address is configured.
type RateLimitConfig struct {
	Enabled       bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	OTPRequestRate  float64
	OTPRequestBurst int
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:       getenv("APP_SERVICE", "hrms"),
		AppVersion:    getenv("APP_VERSION", "0.1.0"),
		Environment:   getenv("ENVIRONMENT", "development"),
		HTTPAddr:      getenv("HTTP_ADDR", ":8080"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		CompanyDomain: strings.ToLower(getenv("COMPANY_DOMAIN", "@intellious.tech")),
		StaticOTP:     getenv("DUMMY_OTP", "123456"),
		AuthJWTSecret: getenv("AUTH_JWT_SECRET", "dev_secret_key"),

		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "hrms"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", "postgres"),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 5),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 25),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 300),

		Storage: StorageConfig{
			Type:      getenv("STORAGE_TYPE", "local"),
			BasePath:  getenv("STORAGE_BASE_PATH", "./uploads"),
			Bucket:    getenv("STORAGE_BUCKET", ""),
			Region:    getenv("STORAGE_REGION", "ap-south-1"),
			AccessKey: getenv("STORAGE_ACCESS_KEY", ""),
			SecretKey: getenv("STORAGE_SECRET_KEY", ""),
			Endpoint:  getenv("STORAGE_ENDPOINT", ""),
		},

		RateLimit: RateLimitConfig{
			Enabled:         getenvBool("RATE_LIMIT_ENABLED", false),
			RedisAddr:       getenv("RATE_LIMIT_REDIS_ADDR", ""),
			RedisPassword:   getenv("RATE_LIMIT_REDIS_PASSWORD", ""),
			RedisDB:         getenvInt("RATE_LIMIT_REDIS_DB", 0),
			OTPRequestRate:  getenvFloat("RATE_LIMIT_OTP_RATE", 0.2),
			OTPRequestBurst: getenvInt("RATE_LIMIT_OTP_BURST", 5),
		},

		SeedDefaultAdmin:  getenvBool("SEED_DEFAULT_ADMIN", true),
		DefaultAdminEmail: getenv("DEFAULT_ADMIN_EMAIL", "admin@intellious.tech"),
	}
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func getenv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}

func getenvFloat(key string, fallback float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
