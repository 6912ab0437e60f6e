package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Database drivers supported by store.Open.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
)

type Config struct {
	Port   string
	AppEnv string

	DBDriver    string
	DatabaseURL string
	SQLitePath  string
	MongoURI    string
	MongoDB     string

	JWTSecret    string
	SessionTTL   time.Duration
	BcryptCost   int
	CookieSecure bool

	CORSOrigins []string

	UploadsDir       string
	UploadsURLPrefix string
	ImageMaxWidth    uint
	BackupDir        string
	BackupRetention  time.Duration

	CatalogAPIKey       string
	CatalogRequireAdmin bool
	// DisableAdminSignup rejects registrations that ask for the admin role.
	DisableAdminSignup bool

	AuthRateLimit float64
	AuthRateBurst int

	LogLevel  string
	LogFormat string
}

// IsProduction reports whether cookies and logs should use production settings.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "5000"),
		AppEnv:           strings.ToLower(getEnv("APP_ENV", "development")),
		DBDriver:         strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		SQLitePath:       getEnv("SQLITE_PATH", "./storefront.db"),
		MongoURI:         getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:          getEnv("MONGO_DB", "storefront"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		CORSOrigins:      splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		UploadsDir:       getEnv("UPLOADS_DIR", "./uploads"),
		UploadsURLPrefix: getEnv("UPLOADS_URL_PREFIX", "/uploads"),
		BackupDir:        os.Getenv("BACKUP_DIR"),
		CatalogAPIKey:    os.Getenv("CATALOG_API_KEY"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        os.Getenv("LOG_FORMAT"),
	}

	var err error
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.BackupRetention, err = getDuration("BACKUP_RETENTION", 4*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.BcryptCost, err = getInt("BCRYPT_COST", 10); err != nil {
		return nil, err
	}
	if cfg.AuthRateBurst, err = getInt("AUTH_RATE_BURST", 10); err != nil {
		return nil, err
	}
	width, err := getInt("IMAGE_MAX_WIDTH", 800)
	if err != nil {
		return nil, err
	}
	cfg.ImageMaxWidth = uint(width)
	if cfg.AuthRateLimit, err = strconv.ParseFloat(getEnv("AUTH_RATE_LIMIT", "1"), 64); err != nil {
		return nil, fmt.Errorf("invalid AUTH_RATE_LIMIT: %w", err)
	}
	cfg.CatalogRequireAdmin = getEnv("CATALOG_REQUIRE_ADMIN", "false") == "true"
	// Self-registered admins would pass the admin catalog guard, so admin
	// signup defaults to off whenever that guard is on.
	cfg.DisableAdminSignup = getEnv("ADMIN_SIGNUP", strconv.FormatBool(!cfg.CatalogRequireAdmin)) != "true"
	cfg.CookieSecure = getEnv("COOKIE_SECURE", strconv.FormatBool(cfg.IsProduction())) == "true"

	if cfg.LogFormat == "" {
		cfg.LogFormat = "console"
		if cfg.IsProduction() {
			cfg.LogFormat = "json"
		}
	}

	if cfg.DBDriver == DriverPostgres && cfg.DatabaseURL == "" {
		cfg.DatabaseURL = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_USER", "postgres"),
			os.Getenv("DB_PASSWORD"),
			getEnv("DB_NAME", "storefront"),
			getEnv("DB_PORT", "5432"),
		)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that have no usable default.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.DBDriver {
	case DriverPostgres, DriverSQLite, DriverMongo:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid PORT %q", c.Port)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	raw := getEnv(key, strconv.Itoa(defaultValue))
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := getEnv(key, defaultValue.String())
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
