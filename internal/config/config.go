// Package config handles configuration and API key management for copilotdesk.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/diogo/copilotdesk/internal/models"
)

const (
	appDir     = ".copilotdesk"
	configName = "config.json"
	envPrefix  = "COPILOTDESK"
)

// MarkdownConfig configures markdown rendering options
type MarkdownConfig struct {
	Style            string `mapstructure:"style" json:"style"`                           // "dark", "light", or path to JSON theme
	EnableEmoji      bool   `mapstructure:"enable_emoji" json:"enable_emoji"`             // Convert :emoji: to unicode
	PreserveNewLines bool   `mapstructure:"preserve_newlines" json:"preserve_newlines"`   // Preserve original line breaks
	TableWrap        bool   `mapstructure:"table_wrap" json:"table_wrap"`                 // Enable word wrap in table cells
	InlineTableLinks bool   `mapstructure:"inline_table_links" json:"inline_table_links"` // Render links inline in tables
}

// Config represents the user configuration
type Config struct {
	// Model is the generateContent model name, e.g. "gemini-1.5-flash".
	Model string `mapstructure:"model" json:"model"`
	// Endpoint overrides the API base URL. Used for proxies and tests.
	Endpoint string `mapstructure:"endpoint" json:"endpoint"`
	// RequestTimeout bounds a copilot query, in seconds. Zero means no limit.
	RequestTimeout  int    `mapstructure:"request_timeout" json:"request_timeout"`
	TUITheme        string `mapstructure:"tui_theme" json:"tui_theme"`
	DarkMode        bool   `mapstructure:"dark_mode" json:"dark_mode"`
	CopyToClipboard bool   `mapstructure:"copy_to_clipboard" json:"copy_to_clipboard"`
	// FixturePath points at a YAML inbox. Empty uses the built-in sample.
	FixturePath string         `mapstructure:"fixture_path" json:"fixture_path"`
	LogFile     string         `mapstructure:"log_file" json:"log_file"`
	LogLevel    string         `mapstructure:"log_level" json:"log_level"`
	Markdown    MarkdownConfig `mapstructure:"markdown" json:"markdown"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
		InlineTableLinks: false,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	homeDir, _ := os.UserHomeDir()
	return Config{
		Model:           models.DefaultModel.Name,
		RequestTimeout:  60,
		TUITheme:        "tokyonight",
		DarkMode:        false,
		CopyToClipboard: false,
		LogFile:         filepath.Join(homeDir, appDir, "copilotdesk.log"),
		LogLevel:        "info",
		Markdown:        DefaultMarkdownConfig(),
	}
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, appDir), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	// 0o700: the file keyring backend may live here
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configName), nil
}

// newViper builds a viper instance with defaults and COPILOTDESK_* env binding
func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := DefaultConfig()
	v.SetDefault("model", def.Model)
	v.SetDefault("endpoint", def.Endpoint)
	v.SetDefault("request_timeout", def.RequestTimeout)
	v.SetDefault("tui_theme", def.TUITheme)
	v.SetDefault("dark_mode", def.DarkMode)
	v.SetDefault("copy_to_clipboard", def.CopyToClipboard)
	v.SetDefault("fixture_path", def.FixturePath)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("markdown.style", def.Markdown.Style)
	v.SetDefault("markdown.enable_emoji", def.Markdown.EnableEmoji)
	v.SetDefault("markdown.preserve_newlines", def.Markdown.PreserveNewLines)
	v.SetDefault("markdown.table_wrap", def.Markdown.TableWrap)
	v.SetDefault("markdown.inline_table_links", def.Markdown.InlineTableLinks)
	return v
}

// LoadConfig loads the configuration from the default location
func LoadConfig() (Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return DefaultConfig(), err
	}
	return LoadConfigFrom(configPath)
}

// LoadConfigFrom loads the configuration at path. A missing file yields the
// defaults overlaid with any COPILOTDESK_* environment variables.
func LoadConfigFrom(path string) (Config, error) {
	v := newViper(path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		var pathErr *os.PathError
		if !errors.As(err, &notFound) && !errors.As(err, &pathErr) {
			return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to decode config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to the default location
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}
	return SaveConfigTo(filepath.Join(configDir, configName), cfg)
}

// SaveConfigTo writes cfg as JSON to path
func SaveConfigTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("json")
	v.Set("model", cfg.Model)
	v.Set("endpoint", cfg.Endpoint)
	v.Set("request_timeout", cfg.RequestTimeout)
	v.Set("tui_theme", cfg.TUITheme)
	v.Set("dark_mode", cfg.DarkMode)
	v.Set("copy_to_clipboard", cfg.CopyToClipboard)
	v.Set("fixture_path", cfg.FixturePath)
	v.Set("log_file", cfg.LogFile)
	v.Set("log_level", cfg.LogLevel)
	v.Set("markdown.style", cfg.Markdown.Style)
	v.Set("markdown.enable_emoji", cfg.Markdown.EnableEmoji)
	v.Set("markdown.preserve_newlines", cfg.Markdown.PreserveNewLines)
	v.Set("markdown.table_wrap", cfg.Markdown.TableWrap)
	v.Set("markdown.inline_table_links", cfg.Markdown.InlineTableLinks)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	if err := os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("failed to restrict config file: %w", err)
	}

	return nil
}

// AvailableModels returns a list of available model names
func AvailableModels() []string {
	all := models.AllModels()
	names := make([]string, 0, len(all))
	for _, m := range all {
		names = append(names, m.Name)
	}
	return names
}
