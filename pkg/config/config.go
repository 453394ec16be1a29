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

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	// Refresh Token Config
	RefreshTokenExpiryDuration time.Duration

	// PIN lockout
	PinMaxAttempts     int
	PinLockoutDuration time.Duration

	// Report timezone: date-only filter bounds are interpreted in this
	// location.
	ReportTimezone string

	// Google Sheets export
	GoogleCredentialsJSON string
	SheetsExportEnabled   bool

	FrontendBaseURL string
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
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "rupeebook")
	viper.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	viper.SetDefault("PIN_MAX_ATTEMPTS", 5)
	viper.SetDefault("PIN_LOCKOUT_DURATION", "15m")
	viper.SetDefault("REPORT_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("GOOGLE_CREDENTIALS_JSON", "")
	viper.SetDefault("SHEETS_EXPORT_ENABLED", false)
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	refreshExpiryStr := viper.GetString("REFRESH_TOKEN_EXPIRY_DURATION")
	refreshExpiry, err := time.ParseDuration(refreshExpiryStr)
	if err != nil {
		refreshExpiry = time.Hour * 24 * 7
		log.Printf("Warning: Invalid value for REFRESH_TOKEN_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", refreshExpiryStr, refreshExpiry)
	}
	cfg.RefreshTokenExpiryDuration = refreshExpiry

	cfg.PinMaxAttempts = viper.GetInt("PIN_MAX_ATTEMPTS")
	if cfg.PinMaxAttempts <= 0 {
		cfg.PinMaxAttempts = 5
	}
	lockoutStr := viper.GetString("PIN_LOCKOUT_DURATION")
	lockout, err := time.ParseDuration(lockoutStr)
	if err != nil {
		lockout = 15 * time.Minute
		log.Printf("Warning: Invalid value for PIN_LOCKOUT_DURATION ('%s'). Defaulting to %s.\n", lockoutStr, lockout)
	}
	cfg.PinLockoutDuration = lockout

	cfg.ReportTimezone = viper.GetString("REPORT_TIMEZONE")
	cfg.GoogleCredentialsJSON = viper.GetString("GOOGLE_CREDENTIALS_JSON")
	cfg.SheetsExportEnabled = viper.GetBool("SHEETS_EXPORT_ENABLED")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")

	return cfg, nil
}

// ReportLocation resolves the configured report timezone, falling back to UTC
// when the name is unknown.
func (c *Config) ReportLocation() *time.Location {
	loc, err := time.LoadLocation(c.ReportTimezone)
	if err != nil {
		log.Printf("Warning: unknown REPORT_TIMEZONE %q, falling back to UTC\n", c.ReportTimezone)
		return time.UTC
	}
	return loc
}
