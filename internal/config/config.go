package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Database     DatabaseConfig   `json:"database"`
	JWTSecret    string           `json:"jwt_secret"`
	Port         int              `json:"port"`
	JWTTTLHours  int              `json:"jwt_ttl_hours"`
	Mail         MailConfig       `json:"mail"`
	CORSOrigins  []string         `json:"cors_origins"`
	ResetCleanup string           `json:"reset_cleanup_spec"`
	LogConfig    logger.LogConfig `json:"log_config"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
	SSLMode  string `json:"sslmode"`
}

type MailConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	From     string `json:"from"`
}

// Load reads and validates the JSON config. Missing store, signing-secret or
// mail settings are startup errors; the process must not come up without them.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Database.DSN == "" && (cfg.Database.Host == "" || cfg.Database.DBName == "" || cfg.Database.User == "") {
		return nil, fmt.Errorf("database dsn or host/user/dbname is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required")
	}
	if cfg.Mail.Host == "" || cfg.Mail.From == "" {
		return nil, fmt.Errorf("mail.host and mail.from are required")
	}
	if cfg.Mail.Port == 0 {
		cfg.Mail.Port = 587
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.JWTTTLHours == 0 {
		cfg.JWTTTLHours = 1
	}
	if cfg.ResetCleanup == "" {
		cfg.ResetCleanup = "0 * * * *"
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	return &cfg, nil
}
