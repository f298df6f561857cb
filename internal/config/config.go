package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration settings
type Config struct {
	// Commodities tracked by the batch scan
	Commodities []string `yaml:"commodities" mapstructure:"commodities"`

	// Open Prices API configuration
	API APIConfig `yaml:"api" mapstructure:"api"`

	// Risk classification thresholds
	Risk RiskConfig `yaml:"risk" mapstructure:"risk"`

	// Report persistence
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`

	// Alert delivery
	Alerts AlertConfig `yaml:"alerts" mapstructure:"alerts"`

	// Scan behavior
	Scan ScanConfig `yaml:"scan" mapstructure:"scan"`
}

type APIConfig struct {
	BaseURL    string  `yaml:"base_url" mapstructure:"base_url"`
	PageSize   int     `yaml:"page_size" mapstructure:"page_size"`
	RateLimit  float64 `yaml:"rate_limit" mapstructure:"rate_limit"` // requests per second
	MaxRetries int     `yaml:"max_retries" mapstructure:"max_retries"`
}

// RiskConfig carries the CV cutoffs between tiers. Keeping them in config
// rather than hard-coded makes the tiers tunable without code changes.
type RiskConfig struct {
	WarningThreshold  float64 `yaml:"warning_threshold" mapstructure:"warning_threshold"`
	CriticalThreshold float64 `yaml:"critical_threshold" mapstructure:"critical_threshold"`
}

type StorageConfig struct {
	Type        string `yaml:"type" mapstructure:"type"` // "file", "sqlite", "postgres"
	ReportPath  string `yaml:"report_path" mapstructure:"report_path"`
	LocalPath   string `yaml:"local_path" mapstructure:"local_path"`
	PostgresDSN string `yaml:"postgres_dsn" mapstructure:"postgres_dsn"`
}

type AlertConfig struct {
	Email string `yaml:"email" mapstructure:"email"` // recipient for scan alerts
	Phone string `yaml:"phone" mapstructure:"phone"`

	ResendAPIKey string `yaml:"resend_api_key" mapstructure:"resend_api_key"`

	SMTPHost     string `yaml:"smtp_host" mapstructure:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port" mapstructure:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user" mapstructure:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password" mapstructure:"smtp_password"`
	SMTPFrom     string `yaml:"smtp_from" mapstructure:"smtp_from"`

	TwilioAccountSID  string `yaml:"twilio_account_sid" mapstructure:"twilio_account_sid"`
	TwilioAuthToken   string `yaml:"twilio_auth_token" mapstructure:"twilio_auth_token"`
	TwilioPhoneNumber string `yaml:"twilio_phone_number" mapstructure:"twilio_phone_number"`
}

type ScanConfig struct {
	MaxParallel int           `yaml:"max_parallel" mapstructure:"max_parallel"`
	CacheTTL    time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
}

// Default returns default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		Commodities: []string{"rice", "milk", "eggs", "oil", "wheat"},
		API: APIConfig{
			BaseURL:    "https://prices.openfoodfacts.org/api/v1/prices",
			PageSize:   50,
			RateLimit:  1,
			MaxRetries: 3,
		},
		Risk: RiskConfig{
			WarningThreshold:  0.3,
			CriticalThreshold: 0.5,
		},
		Storage: StorageConfig{
			Type:       "file",
			ReportPath: "data/latest_report.json",
			LocalPath:  filepath.Join(homeDir, ".chainwatch", "chainwatch.db"),
		},
		Scan: ScanConfig{
			MaxParallel: 2,
			CacheTTL:    5 * time.Minute,
		},
	}
}

// Load loads configuration from file
func Load(path string) (*Config, error) {
	// Load .env files first (in order of precedence)
	loadEnvFiles()

	v := viper.New()
	v.SetConfigType("yaml")

	// Set defaults
	cfg := Default()
	v.SetDefault("commodities", cfg.Commodities)
	v.SetDefault("api", cfg.API)
	v.SetDefault("risk", cfg.Risk)
	v.SetDefault("storage", cfg.Storage)
	v.SetDefault("scan", cfg.Scan)

	// Load from environment variables
	v.SetEnvPrefix("CHAINWATCH")
	v.AutomaticEnv()

	// Try to find config file
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".chainwatch")
		v.AddConfigPath(".")
		homeDir, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(homeDir, ".chainwatch"))
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	// Unmarshal into struct
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects configurations the engine cannot run with.
func (c *Config) Validate() error {
	if c.Risk.WarningThreshold <= 0 || c.Risk.CriticalThreshold <= c.Risk.WarningThreshold {
		return fmt.Errorf("invalid risk thresholds: warning=%v critical=%v",
			c.Risk.WarningThreshold, c.Risk.CriticalThreshold)
	}
	switch c.Storage.Type {
	case "file", "sqlite", "postgres":
	default:
		return fmt.Errorf("unknown storage type %q", c.Storage.Type)
	}
	if c.Storage.Type == "postgres" && c.Storage.PostgresDSN == "" {
		return fmt.Errorf("storage type postgres requires a DSN")
	}
	return nil
}

// loadEnvFiles loads .env files in order of precedence
func loadEnvFiles() {
	envFiles := []string{
		".env.local", // Local overrides (highest precedence)
		".env",       // Main environment file
	}

	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			godotenv.Load(file)
		}
	}

	// Also try loading from home directory
	homeDir, _ := os.UserHomeDir()
	homeEnvFile := filepath.Join(homeDir, ".chainwatch", ".env")
	if _, err := os.Stat(homeEnvFile); err == nil {
		godotenv.Load(homeEnvFile)
	}
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	// API configuration
	if base := os.Getenv("OPEN_PRICES_BASE_URL"); base != "" {
		cfg.API.BaseURL = base
	}
	if size := os.Getenv("OPEN_PRICES_PAGE_SIZE"); size != "" {
		if n, err := strconv.Atoi(size); err == nil {
			cfg.API.PageSize = n
		}
	}

	// Risk thresholds
	if warn := os.Getenv("RISK_WARNING_THRESHOLD"); warn != "" {
		if f, err := strconv.ParseFloat(warn, 64); err == nil {
			cfg.Risk.WarningThreshold = f
		}
	}
	if crit := os.Getenv("RISK_CRITICAL_THRESHOLD"); crit != "" {
		if f, err := strconv.ParseFloat(crit, 64); err == nil {
			cfg.Risk.CriticalThreshold = f
		}
	}

	// Storage configuration
	if storageType := os.Getenv("STORAGE_TYPE"); storageType != "" {
		cfg.Storage.Type = storageType
	}
	if path := os.Getenv("REPORT_PATH"); path != "" {
		cfg.Storage.ReportPath = expandPath(path)
	}
	if path := os.Getenv("LOCAL_DB_PATH"); path != "" {
		cfg.Storage.LocalPath = expandPath(path)
	}
	if dsn := os.Getenv("POSTGRES_DSN"); dsn != "" {
		cfg.Storage.PostgresDSN = dsn
	}

	// Alert configuration
	if email := os.Getenv("ALERT_EMAIL"); email != "" {
		cfg.Alerts.Email = email
	}
	if phone := os.Getenv("ALERT_PHONE"); phone != "" {
		cfg.Alerts.Phone = phone
	}
	if key := os.Getenv("RESEND_API_KEY"); key != "" {
		cfg.Alerts.ResendAPIKey = key
	}
	if host := os.Getenv("SMTP_HOST"); host != "" {
		cfg.Alerts.SMTPHost = host
	}
	if port := os.Getenv("SMTP_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil {
			cfg.Alerts.SMTPPort = n
		}
	}
	if user := os.Getenv("SMTP_USER"); user != "" {
		cfg.Alerts.SMTPUser = user
	}
	if pass := os.Getenv("SMTP_PASSWORD"); pass != "" {
		cfg.Alerts.SMTPPassword = pass
	}
	if from := os.Getenv("SMTP_FROM"); from != "" {
		cfg.Alerts.SMTPFrom = from
	}
	if sid := os.Getenv("TWILIO_ACCOUNT_SID"); sid != "" {
		cfg.Alerts.TwilioAccountSID = sid
	}
	if token := os.Getenv("TWILIO_AUTH_TOKEN"); token != "" {
		cfg.Alerts.TwilioAuthToken = token
	}
	if num := os.Getenv("TWILIO_PHONE_NUMBER"); num != "" {
		cfg.Alerts.TwilioPhoneNumber = num
	}
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if path == "" {
		return path
	}
	if path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}

// Save saves configuration to file
func (c *Config) Save(path string) error {
	v := viper.New()
	v.SetConfigType("yaml")

	v.Set("commodities", c.Commodities)
	v.Set("api", c.API)
	v.Set("risk", c.Risk)
	v.Set("storage", c.Storage)
	v.Set("scan", c.Scan)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
