package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName            string        `mapstructure:"app_name"`
	Env                string        `mapstructure:"app_env"`
	LogLevel           string        `mapstructure:"log_level"`
	Timezone           string        `mapstructure:"timezone"`
	HTTPTimeoutSeconds int64         `mapstructure:"http_timeout_seconds"`
	HTTPTimeout        time.Duration `mapstructure:"-"`

	NotionTokenFile  string `mapstructure:"notion_token_file"`
	NotionDatabaseID string `mapstructure:"notion_database_id"`
	NotionCategory   string `mapstructure:"notion_category"`

	BriefingPath string `mapstructure:"briefing_path"`
	MarkdownPath string `mapstructure:"markdown_path"`

	ArchiveType           string        `mapstructure:"archive_type"`
	ArchivePath           string        `mapstructure:"archive_path"`
	ArchiveTTLDays        int64         `mapstructure:"archive_ttl_days"`
	ArchiveCleanupSeconds int64         `mapstructure:"archive_cleanup_interval_seconds"`
	ArchiveTTL            time.Duration `mapstructure:"-"`
	ArchiveCleanup        time.Duration `mapstructure:"-"`

	NotifiersFile string `mapstructure:"notifiers_file"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "sport-briefing")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("timezone", "Europe/Rome")
	v.SetDefault("http_timeout_seconds", 30)
	v.SetDefault("notion_token_file", "~/.sport-briefing/credentials/notion.token")
	v.SetDefault("notion_database_id", "315c392a8f7a80cbb1b6d16994e18f58")
	v.SetDefault("notion_category", "Riepilogo Sportivo Giornaliero")
	v.SetDefault("briefing_path", "./data/briefing/briefing.json")
	v.SetDefault("markdown_path", "./data/briefing/daily.md")
	v.SetDefault("archive_type", "bbolt")
	v.SetDefault("archive_path", "./data/archive.db")
	v.SetDefault("archive_ttl_days", 30)
	v.SetDefault("archive_cleanup_interval_seconds", int64((12*time.Hour)/time.Second))
	v.SetDefault("notifiers_file", "")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.HTTPTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid http_timeout_seconds (must be positive seconds)")
	}
	cfg.HTTPTimeout = time.Duration(cfg.HTTPTimeoutSeconds) * time.Second

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	if cfg.ArchiveTTLDays <= 0 {
		return nil, fmt.Errorf("invalid archive_ttl_days (must be positive)")
	}
	if cfg.ArchiveCleanupSeconds <= 0 {
		return nil, fmt.Errorf("invalid archive_cleanup_interval_seconds (must be positive seconds)")
	}
	cfg.ArchiveTTL = time.Duration(cfg.ArchiveTTLDays) * 24 * time.Hour
	cfg.ArchiveCleanup = time.Duration(cfg.ArchiveCleanupSeconds) * time.Second

	cfg.NotionTokenFile = expandHome(cfg.NotionTokenFile)

	return &cfg, nil
}

// Location resolves the configured briefing timezone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// NotionToken reads and trims the Notion integration token from the configured file.
func (c *Config) NotionToken() (string, error) {
	raw, err := os.ReadFile(c.NotionTokenFile)
	if err != nil {
		return "", fmt.Errorf("read notion token file: %w", err)
	}
	token := strings.TrimSpace(string(raw))
	if token == "" {
		return "", fmt.Errorf("notion token file %s is empty", c.NotionTokenFile)
	}
	return token, nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
