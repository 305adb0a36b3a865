package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr string `yaml:"addr" validate:"required"`
}

// DatabaseConfig configures the subscriber store
type DatabaseConfig struct {
	URL string `yaml:"url" validate:"required"`
}

// ContentConfig configures the headless content store
type ContentConfig struct {
	BaseURL         string `yaml:"baseURL" validate:"required,url"`
	Dataset         string `yaml:"dataset" validate:"required"`
	Token           string `yaml:"token,omitempty"`
	CacheTTLMinutes int    `yaml:"cacheTTLMinutes,omitempty" validate:"omitempty,min=1"`
}

// RedisConfig configures the content cache. An empty addr disables caching.
type RedisConfig struct {
	Addr     string `yaml:"addr,omitempty"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db,omitempty"`
}

// MailConfig configures outgoing email
type MailConfig struct {
	GmailUserID string `yaml:"gmailUserID" validate:"required"`
	Sender      string `yaml:"sender" validate:"required,email"`
}

// SiteConfig carries site-wide values used when composing emails and links
type SiteConfig struct {
	BaseURL  string `yaml:"baseURL" validate:"required,url"`
	Name     string `yaml:"name" validate:"required"`
	Timezone string `yaml:"timezone,omitempty"`
}

// JobsConfig holds the cron schedules for the in-process dispatch jobs
type JobsConfig struct {
	TrashReminderCron   string `yaml:"trashReminderCron,omitempty"`
	NewsletterCheckCron string `yaml:"newsletterCheckCron,omitempty"`
}

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" validate:"required"`
	Database DatabaseConfig `yaml:"database" validate:"required"`
	Content  ContentConfig  `yaml:"content" validate:"required"`
	Redis    RedisConfig    `yaml:"redis,omitempty"`
	Mail     MailConfig     `yaml:"mail" validate:"required"`
	Site     SiteConfig     `yaml:"site" validate:"required"`
	Jobs     JobsConfig     `yaml:"jobs,omitempty"`
}

const configFileName = "hoa_config.yaml"

// Defaults applied before validation
const (
	DefaultTrashReminderCron   = "0 18 * * SUN"
	DefaultNewsletterCheckCron = "0 9 * * *"
	DefaultCacheTTLMinutes     = 5
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from hoa_config.yaml.
// It looks for the config file in the current directory first, then in the user's home directory.
func Load() (*Config, error) {
	configPath, err := findConfigFile("")
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadWithEnv loads the configuration for an environment, e.g. env="test"
// looks for hoa_config.test.yaml.
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Jobs.TrashReminderCron == "" {
		cfg.Jobs.TrashReminderCron = DefaultTrashReminderCron
	}
	if cfg.Jobs.NewsletterCheckCron == "" {
		cfg.Jobs.NewsletterCheckCron = DefaultNewsletterCheckCron
	}
	if cfg.Content.CacheTTLMinutes == 0 {
		cfg.Content.CacheTTLMinutes = DefaultCacheTTLMinutes
	}
	if cfg.Site.Timezone == "" {
		cfg.Site.Timezone = "America/Chicago"
	}
}

// Validate validates the configuration struct and checks cron syntax
func Validate(cfg *Config) error {
	// Run struct validation
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	// Validate cron syntax for the job schedules
	parser := cron.ParseStandard
	if _, err := parser(cfg.Jobs.TrashReminderCron); err != nil {
		return fmt.Errorf("invalid trashReminderCron: %w", err)
	}
	if _, err := parser(cfg.Jobs.NewsletterCheckCron); err != nil {
		return fmt.Errorf("invalid newsletterCheckCron: %w", err)
	}

	return nil
}

// findConfigFile searches for the config file in current directory and home directory
func findConfigFile(env string) (string, error) {
	name := configFileName
	if env != "" {
		name = fmt.Sprintf("hoa_config.%s.yaml", env)
	}

	// Check current directory
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, name)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file %s not found in current directory or home directory", name)
}
