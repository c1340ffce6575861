package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Default()

	if cfg.Email.Port != 587 {
		t.Errorf("Email.Port = %d, want 587", cfg.Email.Port)
	}
	if !cfg.Email.StartTLS {
		t.Error("StartTLS should default to true")
	}
	if cfg.Web.Host != "127.0.0.1" {
		t.Errorf("Web.Host = %q, want 127.0.0.1", cfg.Web.Host)
	}
	if cfg.Schedule.Cron == "" {
		t.Error("Schedule.Cron should have a default")
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")

	content := `
[general]
base_dir = "/var/lib/repowatch"
checks_file = "/etc/repowatch/checks.yaml"

[email]
server = "smtp.example.com"
port = 465
user = "bot@example.com"
default_to = "team@example.com"
maintainers = ["alice@example.com", "bob@example.com"]
only_maintainers = true
starttls = false
subject_prefix = "[Internal]"

[notifications]
slack_webhook = "https://hooks.slack.invalid/T000"

[schedule]
cron = "30 5 * * 1-5"

[web]
port = 9000
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.General.BaseDir != "/var/lib/repowatch" {
		t.Errorf("BaseDir = %q", cfg.General.BaseDir)
	}
	if cfg.Email.Server != "smtp.example.com" || cfg.Email.Port != 465 {
		t.Errorf("Email = %q:%d", cfg.Email.Server, cfg.Email.Port)
	}
	if len(cfg.Email.Maintainers) != 2 {
		t.Errorf("Maintainers = %v", cfg.Email.Maintainers)
	}
	if !cfg.Email.OnlyMaintainers {
		t.Error("OnlyMaintainers should be true")
	}
	if cfg.Email.StartTLS {
		t.Error("StartTLS should be false when set in the file")
	}
	if cfg.Schedule.Cron != "30 5 * * 1-5" {
		t.Errorf("Cron = %q", cfg.Schedule.Cron)
	}
	if cfg.Web.Port != 9000 {
		t.Errorf("Web.Port = %d, want 9000", cfg.Web.Port)
	}
	// Defaults survive for sections the file does not set.
	if cfg.Web.Host != "127.0.0.1" {
		t.Errorf("Web.Host = %q, want default", cfg.Web.Host)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing config file should fall back to defaults: %v", err)
	}
	if cfg.Web.Port != 8080 {
		t.Errorf("Web.Port = %d, want default 8080", cfg.Web.Port)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input string
		want  string
	}{
		{"~/repos", filepath.Join(home, "repos")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tt := range tests {
		if got := ExpandPath(tt.input); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
