package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Tokens are issued by the firm's session service; this backend only
	// verifies them.
	JWTSecret string
	JWTIssuer string

	// Redis session tier. Empty address disables the tier entirely.
	RedisAddress   string
	RedisPassword  string
	SessionTierTTL time.Duration

	// Rate limit expressed in limiter's notation, e.g. "100-M".
	RateLimit string

	// Import hard limits.
	MaxImportRows   int
	MaxUploadSizeMB int64
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "compta-recon-app")
	viper.SetDefault("REDIS_ADDRESS", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("SESSION_TIER_TTL", "24h")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("MAX_IMPORT_ROWS", 20000)
	viper.SetDefault("MAX_UPLOAD_SIZE_MB", 16)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtIssuer := viper.GetString("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "compta-recon-app"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", jwtIssuer)
	}

	sessionTTLStr := viper.GetString("SESSION_TIER_TTL")
	sessionTTL, err := time.ParseDuration(sessionTTLStr)
	if err != nil {
		sessionTTL = time.Hour * 24
		if sessionTTLStr != "" {
			log.Printf("Warning: Invalid value for SESSION_TIER_TTL ('%s'). Defaulting to %s.\n", sessionTTLStr, sessionTTL.String())
		}
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.JWTSecret = jwtSecret
	cfg.JWTIssuer = jwtIssuer
	cfg.RedisAddress = viper.GetString("REDIS_ADDRESS")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")
	cfg.SessionTierTTL = sessionTTL
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.MaxImportRows = viper.GetInt("MAX_IMPORT_ROWS")
	cfg.MaxUploadSizeMB = viper.GetInt64("MAX_UPLOAD_SIZE_MB")

	if cfg.RedisAddress == "" {
		log.Println("Warning: REDIS_ADDRESS not set. Session cache tier disabled.")
	}

	return cfg, nil
}
