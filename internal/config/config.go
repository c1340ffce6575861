package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all application configuration
type Config struct {
	General       GeneralConfig       `toml:"general"`
	Email         EmailConfig         `toml:"email"`
	Notifications NotificationsConfig `toml:"notifications"`
	Schedule      ScheduleConfig      `toml:"schedule"`
	Web           WebConfig           `toml:"web"`
}

// GeneralConfig holds general settings
type GeneralConfig struct {
	BaseDir      string `toml:"base_dir"`
	DatabasePath string `toml:"database_path"`
	ChecksFile   string `toml:"checks_file"`
}

// EmailConfig holds SMTP delivery settings. The account password comes from
// the REPOWATCH_EMAIL_TOKEN environment variable, never from the file.
type EmailConfig struct {
	Server          string   `toml:"server"`
	Port            int      `toml:"port"`
	User            string   `toml:"user"`
	DefaultTo       string   `toml:"default_to"`
	Maintainers     []string `toml:"maintainers"`
	OnlyMaintainers bool     `toml:"only_maintainers"`
	StartTLS        bool     `toml:"starttls"`
	SubjectPrefix   string   `toml:"subject_prefix"`
}

// NotificationsConfig holds secondary notification settings
type NotificationsConfig struct {
	SlackWebhook string `toml:"slack_webhook"`
}

// ScheduleConfig holds the daemon-mode schedule
type ScheduleConfig struct {
	Cron string `toml:"cron"`
}

// WebConfig holds the status server settings
type WebConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		General: GeneralConfig{
			BaseDir:      filepath.Join(home, ".repowatch", "repos"),
			DatabasePath: filepath.Join(home, ".repowatch", "repowatch.db"),
			ChecksFile:   filepath.Join(home, ".config", "repowatch", "checks.yaml"),
		},
		Email: EmailConfig{
			Port:     587,
			StartTLS: true,
		},
		Schedule: ScheduleConfig{
			Cron: "0 6 * * *",
		},
		Web: WebConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
	}
}

// Load reads configuration from a TOML file, falling back to defaults
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	// Expand paths
	cfg.General.BaseDir = ExpandPath(cfg.General.BaseDir)
	cfg.General.DatabasePath = ExpandPath(cfg.General.DatabasePath)
	cfg.General.ChecksFile = ExpandPath(cfg.General.ChecksFile)

	return cfg, nil
}

// ExpandPath expands ~ to the user's home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// DefaultConfigPath returns the default config file location
func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "repowatch", "config.toml")
}
