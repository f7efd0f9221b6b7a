package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN          string `yaml:"url"`
		MaxOpenConns int    `yaml:"max_open_conns"`
		MaxIdleConns int    `yaml:"max_idle_conns"`
		AutoMigrate  bool   `yaml:"auto_migrate"`
	} `yaml:"database"`

	JWT struct {
		Secret           string `yaml:"secret"`
		Issuer           string `yaml:"issuer"`
		AccessTTLMinutes int    `yaml:"access_ttl_minutes"`
		RefreshTTLDays   int    `yaml:"refresh_ttl_days"`
	} `yaml:"jwt"`

	Auth struct {
		CookieName        string `yaml:"cookie_name"`
		PasswordMinLength int    `yaml:"password_min_length"`
	} `yaml:"auth"`

	Email struct {
		Enabled      bool   `yaml:"enabled"`
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
}

var AppConfig *Config

// LoadConfig reads .env (if any), then either the environment alone (when
// DATABASE_URL is set) or the YAML file at CONFIG_PATH overlaid with env vars.
func LoadConfig() {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	AppConfig = cfg
}

// Load builds a validated Config without touching the global.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	cfg := &Config{}
	cfg.applyDefaults()

	if os.Getenv("DATABASE_URL") == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}
		if err := cfg.loadYAML(configPath); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	c.Server.Host = "0.0.0.0"
	c.Server.Port = 4000
	c.Server.Env = "development"
	c.Database.MaxOpenConns = 25
	c.Database.MaxIdleConns = 5
	c.Database.AutoMigrate = true
	c.JWT.Issuer = "disccount"
	c.JWT.AccessTTLMinutes = 15
	c.JWT.RefreshTTLDays = 30
	c.Auth.CookieName = "refreshToken"
	c.Auth.PasswordMinLength = 12
	c.Email.SMTPPort = 587
	c.Email.FromName = "Disccount"
}

func (c *Config) loadYAML(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file at %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(c); err != nil {
		return fmt.Errorf("failed to parse config file at %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	setString(&c.Server.Host, "SERVER_HOST")
	setInt(&c.Server.Port, "SERVER_PORT")
	setString(&c.Server.Env, "SERVER_ENV")
	setString(&c.Database.DSN, "DATABASE_URL")
	setBool(&c.Database.AutoMigrate, "DATABASE_AUTO_MIGRATE")
	setString(&c.JWT.Secret, "JWT_SECRET")
	setString(&c.JWT.Issuer, "JWT_ISSUER")
	setInt(&c.JWT.AccessTTLMinutes, "JWT_ACCESS_TTL_MINUTES")
	setInt(&c.JWT.RefreshTTLDays, "JWT_REFRESH_TTL_DAYS")
	setString(&c.Auth.CookieName, "AUTH_COOKIE_NAME")
	setBool(&c.Email.Enabled, "EMAIL_ENABLED")
	setString(&c.Email.SMTPHost, "SMTP_HOST")
	setInt(&c.Email.SMTPPort, "SMTP_PORT")
	setString(&c.Email.SMTPUsername, "SMTP_USER")
	setString(&c.Email.SMTPPassword, "SMTP_PASSWORD")
	setString(&c.Email.FromEmail, "EMAIL_FROM")

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		c.CORS.AllowedOrigins = strings.Split(origins, ",")
	}
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	var problems []string
	if c.Database.DSN == "" {
		problems = append(problems, "database url is required")
	}
	if c.JWT.Secret == "" {
		problems = append(problems, "jwt secret is required")
	}
	if c.JWT.AccessTTLMinutes <= 0 || c.JWT.RefreshTTLDays <= 0 {
		problems = append(problems, "token lifetimes must be positive")
	}
	if c.Email.Enabled && (c.Email.SMTPHost == "" || c.Email.FromEmail == "") {
		problems = append(problems, "smtp host and from address are required when email is enabled")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func (c *Config) AccessTTL() time.Duration {
	return time.Duration(c.JWT.AccessTTLMinutes) * time.Minute
}

func (c *Config) RefreshTTL() time.Duration {
	return time.Duration(c.JWT.RefreshTTLDays) * 24 * time.Hour
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
