package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the growth simulator
type Config struct {
	// Growth simulation defaults
	Growth GrowthConfig `yaml:"growth" json:"growth"`

	// Profile fetching
	Instagram InstagramConfig `yaml:"instagram" json:"instagram"`

	// Rate limiting configuration
	RateLimit RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`

	// Profile snapshot cache
	Cache CacheConfig `yaml:"cache" json:"cache"`

	// Local data storage
	Storage StorageConfig `yaml:"storage" json:"storage"`

	// Remote backup
	Backup BackupConfig `yaml:"backup" json:"backup"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// GrowthConfig holds the default engine settings applied before the user
// has persisted any of their own.
type GrowthConfig struct {
	FollowersPerDay int    `yaml:"followers_per_day" json:"followers_per_day"`
	Speed           string `yaml:"speed" json:"speed"`
	GrowthMode      string `yaml:"growth_mode" json:"growth_mode"`
	TargetGoal      int    `yaml:"target_goal" json:"target_goal"`
}

// ProfileHost describes one third-party profile API in the fallback chain.
type ProfileHost struct {
	URL  string `yaml:"url" json:"url"`
	Key  string `yaml:"key" json:"key"`
	Host string `yaml:"host" json:"host"`
}

// InstagramConfig holds profile-fetching configuration
type InstagramConfig struct {
	UserAgent      string        `yaml:"user_agent" json:"user_agent"`
	PublicEndpoint string        `yaml:"public_endpoint" json:"public_endpoint"`
	ProfileHosts   []ProfileHost `yaml:"profile_hosts" json:"profile_hosts"`
	FetchTimeout   time.Duration `yaml:"fetch_timeout" json:"fetch_timeout"`
}

// RateLimitConfig holds the advisory self-throttling ceiling
type RateLimitConfig struct {
	RequestsPerHour int           `yaml:"requests_per_hour" json:"requests_per_hour"`
	Window          time.Duration `yaml:"window" json:"window"`
}

// CacheConfig holds profile snapshot cache configuration
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" json:"enabled"`
	SizeMB  int           `yaml:"size_mb" json:"size_mb"`
	TTL     time.Duration `yaml:"ttl" json:"ttl"`
}

// StorageConfig holds local persistence configuration
type StorageConfig struct {
	DataDir   string `yaml:"data_dir" json:"data_dir"`
	Obfuscate bool   `yaml:"obfuscate" json:"obfuscate"`
}

// BackupConfig holds remote backup configuration
type BackupConfig struct {
	Endpoint string `yaml:"endpoint" json:"endpoint"`
	Token    string `yaml:"token" json:"token"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Growth: GrowthConfig{
			FollowersPerDay: 100,
			Speed:           "fast",
			GrowthMode:      "normal",
			TargetGoal:      10000,
		},
		Instagram: InstagramConfig{
			UserAgent:      "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
			PublicEndpoint: "https://i.instagram.com/api/v1/users/web_profile_info/?username=",
			FetchTimeout:   5 * time.Second,
		},
		RateLimit: RateLimitConfig{
			RequestsPerHour: 100,
			Window:          time.Hour,
		},
		Cache: CacheConfig{
			Enabled: true,
			SizeMB:  8,
			TTL:     5 * time.Minute,
		},
		Storage: StorageConfig{
			Obfuscate: true,
		},
		Backup: BackupConfig{
			Endpoint: "https://api.github.com/gists",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if perDay := os.Getenv("INSTAGROWTH_FOLLOWERS_PER_DAY"); perDay != "" {
		if val, err := strconv.Atoi(perDay); err == nil && val > 0 {
			c.Growth.FollowersPerDay = val
		}
	}
	if speed := os.Getenv("INSTAGROWTH_SPEED"); speed != "" {
		c.Growth.Speed = speed
	}
	if mode := os.Getenv("INSTAGROWTH_GROWTH_MODE"); mode != "" {
		c.Growth.GrowthMode = mode
	}
	if goal := os.Getenv("INSTAGROWTH_TARGET_GOAL"); goal != "" {
		if val, err := strconv.Atoi(goal); err == nil && val > 0 {
			c.Growth.TargetGoal = val
		}
	}
	if rph := os.Getenv("INSTAGROWTH_REQUESTS_PER_HOUR"); rph != "" {
		if val, err := strconv.Atoi(rph); err == nil && val > 0 {
			c.RateLimit.RequestsPerHour = val
		}
	}
	if dataDir := os.Getenv("INSTAGROWTH_DATA_DIR"); dataDir != "" {
		c.Storage.DataDir = dataDir
	}
	if obfuscate := os.Getenv("INSTAGROWTH_OBFUSCATE"); obfuscate != "" {
		c.Storage.Obfuscate = strings.ToLower(obfuscate) == "true"
	}
	if token := os.Getenv("INSTAGROWTH_BACKUP_TOKEN"); token != "" {
		c.Backup.Token = token
	}
	if logLevel := os.Getenv("INSTAGROWTH_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	locations := []string{
		".instagrowth.yaml",
		".instagrowth.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "instagrowth", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "instagrowth", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".instagrowth.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Growth.FollowersPerDay <= 0 {
		errs = append(errs, errors.New("followers per day must be positive"))
	}
	if c.Growth.TargetGoal <= 0 {
		errs = append(errs, errors.New("target goal must be positive"))
	}

	validSpeeds := map[string]bool{
		"slow": true, "medium": true, "fast": true, "turbo": true,
	}
	if !validSpeeds[strings.ToLower(c.Growth.Speed)] {
		errs = append(errs, errors.New("invalid growth speed"))
	}

	validModes := map[string]bool{
		"conservative": true, "normal": true, "aggressive": true, "turbo": true,
	}
	if !validModes[strings.ToLower(c.Growth.GrowthMode)] {
		errs = append(errs, errors.New("invalid growth mode"))
	}

	if c.RateLimit.RequestsPerHour <= 0 {
		errs = append(errs, errors.New("requests per hour must be positive"))
	}
	if c.RateLimit.Window <= 0 {
		errs = append(errs, errors.New("rate limit window must be positive"))
	}

	if c.Instagram.FetchTimeout <= 0 {
		errs = append(errs, errors.New("fetch timeout must be positive"))
	}

	if c.Cache.Enabled && c.Cache.SizeMB <= 0 {
		errs = append(errs, errors.New("cache size must be positive when cache is enabled"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "disabled": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if perDay, ok := flags["followers-per-day"].(int); ok && perDay > 0 {
		c.Growth.FollowersPerDay = perDay
	}
	if speed, ok := flags["speed"].(string); ok && speed != "" {
		c.Growth.Speed = speed
	}
	if mode, ok := flags["growth-mode"].(string); ok && mode != "" {
		c.Growth.GrowthMode = mode
	}
	if goal, ok := flags["target-goal"].(int); ok && goal > 0 {
		c.Growth.TargetGoal = goal
	}
	if dataDir, ok := flags["data-dir"].(string); ok && dataDir != "" {
		c.Storage.DataDir = dataDir
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// DataDir resolves the directory used for persisted records, defaulting to
// the platform data directory.
func (c *Config) DataDir() (string, error) {
	if c.Storage.DataDir != "" {
		return c.Storage.DataDir, nil
	}

	if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
		return filepath.Join(xdgDataHome, "instagrowth"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "instagrowth"), nil
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".instagrowth.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
