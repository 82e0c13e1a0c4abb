package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type DB struct {
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
}

type MinIO struct {
	Enabled    bool
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
	PublicURL  string
}

type Mail struct {
	BrevoAPIKey  string
	BrevoBaseURL string
	LeadEmailTo  string
	SenderEmail  string
	Timeout      time.Duration
}

type RateLimit struct {
	Window      time.Duration
	MaxRequests int
}

type Config struct {
	Env                  string
	ServerPort           int
	DB                   DB
	MigrationsPath       string
	MinIO                MinIO
	Mail                 Mail
	RateLimit            RateLimit
	CORSOrigins          []string
	JWTSecretKey         string
	AccessTokenDuration  time.Duration
	RefreshTokenDuration time.Duration
	MaxUploadSize        int64
}

// IsDevelopment reports whether internal error details may be exposed to clients.
func (c *Config) IsDevelopment() bool {
	return c != nil && c.Env == "development"
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// ParseDuration accepts Go durations ("2h", "15m") and whole days ("7d").
func ParseDuration(value string, fallback time.Duration) time.Duration {
	value = strings.TrimSpace(value)
	if days, ok := strings.CutSuffix(value, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return fallback
		}
		return time.Duration(n) * 24 * time.Hour
	}

	duration, err := time.ParseDuration(value)
	if err != nil || duration <= 0 {
		return fallback
	}
	return duration
}

func parseOrigins(value string) []string {
	var origins []string
	for _, origin := range strings.Split(value, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func parseMaxUploadSize(value string) int64 {
	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil || size <= 0 {
		return 5 * 1024 * 1024
	}
	return size
}

func LoadDB() DB {
	return DB{
		DbHOST:     getEnv("DB_HOST", "localhost"),
		DbPORT:     getEnv("DB_PORT", "5432"),
		DbUSER:     getEnv("DB_USER", "postgres"),
		DbPASSWORD: getEnv("DB_PASSWORD", "password"),
		DbNAME:     getEnv("DB_NAME", "studiosite"),
		DbSSLMODE:  getEnv("DB_SSLMODE", "disable"),
	}
}

func LoadMinIO() MinIO {
	return MinIO{
		Enabled:    getEnvBool("MINIO_ENABLED", false),
		Endpoint:   getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "avatars"),
		UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		Region:     getEnv("MINIO_REGION", "us-east-1"),
		PublicURL:  getEnv("MINIO_PUBLIC_URL", ""),
	}
}

func LoadMail() Mail {
	return Mail{
		BrevoAPIKey:  getEnv("BREVO_API_KEY", ""),
		BrevoBaseURL: getEnv("BREVO_BASE_URL", "https://api.brevo.com/v3"),
		LeadEmailTo:  getEnv("LEAD_EMAIL_TO", "your@email.com"),
		SenderEmail:  getEnv("MAIL_SENDER_EMAIL", "no-reply@example.com"),
		Timeout:      ParseDuration(getEnv("MAIL_TIMEOUT", "10s"), 10*time.Second),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		Env:            getEnv("APP_ENV", "development"),
		ServerPort:     getEnvAsInt("SERVER_PORT", 3001),
		DB:             LoadDB(),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations/001_create_tables.sql"),
		MinIO:          LoadMinIO(),
		Mail:           LoadMail(),
		RateLimit: RateLimit{
			Window:      ParseDuration(getEnv("RATE_LIMIT_WINDOW", "15m"), 15*time.Minute),
			MaxRequests: getEnvAsInt("RATE_LIMIT_MAX_REQUESTS", 100),
		},
		CORSOrigins:          parseOrigins(getEnv("CORS_ORIGIN", "http://localhost:5173")),
		JWTSecretKey:         getEnv("JWT_SECRET_KEY", ""),
		AccessTokenDuration:  ParseDuration(getEnv("ACCESS_TOKEN_DURATION", "7d"), 7*24*time.Hour),
		RefreshTokenDuration: ParseDuration(getEnv("REFRESH_TOKEN_DURATION", "30d"), 30*24*time.Hour),
		MaxUploadSize:        parseMaxUploadSize(getEnv("MAX_FILE_SIZE", "5242880")),
	}
}
