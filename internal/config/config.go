// Package config provides configuration management for Tempo.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Config holds all configuration for the Tempo application.
type Config struct {
	Storage       StorageConfig      `mapstructure:"storage"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	MCP           MCPConfig          `mapstructure:"mcp"`
	TUI           TUIConfig          `mapstructure:"tui"`
	Theme         ThemeConfig        `mapstructure:"theme"`
}

// ThemeConfig holds the colors of the interactive screen.
// Values are lipgloss colors: ANSI numbers or hex strings.
type ThemeConfig struct {
	ColorFocus        string `mapstructure:"color_focus"`
	ColorBorder       string `mapstructure:"color_border"`
	ColorSelected     string `mapstructure:"color_selected"`
	ColorRunning      string `mapstructure:"color_running"`
	ColorClock        string `mapstructure:"color_clock"`
	ColorEditing      string `mapstructure:"color_editing"`
	ColorHelp         string `mapstructure:"color_help"`
	ColorError        string `mapstructure:"color_error"`
	GoalGradientStart string `mapstructure:"goal_gradient_start"`
	GoalGradientEnd   string `mapstructure:"goal_gradient_end"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorFocus:        "5",
		ColorBorder:       "8",
		ColorSelected:     "6",
		ColorRunning:      "2",
		ColorClock:        "1",
		ColorEditing:      "3",
		ColorHelp:         "#95A5A6",
		ColorError:        "#E74C3C",
		GoalGradientStart: "#4ECDC4",
		GoalGradientEnd:   "#2ECC71",
	}
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Sound   bool `mapstructure:"sound"`
}

// MCPConfig holds MCP server settings.
type MCPConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
	File    string `mapstructure:"file"`
	Backend string `mapstructure:"backend"`
}

// TUIConfig holds interactive screen settings.
type TUIConfig struct {
	DailyGoal Duration `mapstructure:"daily_goal"`
	DebugLog  string   `mapstructure:"debug_log"`
}

// Duration is a wrapper around time.Duration for TOML parsing.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// String returns the string representation of the duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

const defaultDataDir = "~/.tempo"

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			DataDir: defaultDataDir,
			File:    "projects.json",
			Backend: "json",
		},
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   false,
		},
		MCP: MCPConfig{
			Enabled: true,
		},
		TUI: TUIConfig{
			DailyGoal: Duration(8 * time.Hour),
		},
		Theme: DefaultThemeConfig(),
	}
}

// Load loads the configuration from the default config file,
// creating it with defaults when it does not exist.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from the given TOML file.
func LoadFrom(configPath string) (*Config, error) {
	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	// If config file doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := SaveTo(configPath, DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	hooks := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hooks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	dataDir, err := expandHome(cfg.Storage.DataDir)
	if err != nil {
		return nil, err
	}
	cfg.Storage.DataDir = dataDir

	return &cfg, nil
}

// Save saves the configuration to the default config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	return SaveTo(configPath, cfg)
}

// SaveTo writes the configuration to the given TOML file.
func SaveTo(configPath string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	v.Set("storage.data_dir", cfg.Storage.DataDir)
	v.Set("storage.file", cfg.Storage.File)
	v.Set("storage.backend", cfg.Storage.Backend)
	v.Set("notifications.enabled", cfg.Notifications.Enabled)
	v.Set("notifications.sound", cfg.Notifications.Sound)
	v.Set("mcp.enabled", cfg.MCP.Enabled)
	v.Set("tui.daily_goal", cfg.TUI.DailyGoal.String())
	v.Set("tui.debug_log", cfg.TUI.DebugLog)
	v.Set("theme.color_focus", cfg.Theme.ColorFocus)
	v.Set("theme.color_border", cfg.Theme.ColorBorder)
	v.Set("theme.color_selected", cfg.Theme.ColorSelected)
	v.Set("theme.color_running", cfg.Theme.ColorRunning)
	v.Set("theme.color_clock", cfg.Theme.ColorClock)
	v.Set("theme.color_editing", cfg.Theme.ColorEditing)
	v.Set("theme.color_help", cfg.Theme.ColorHelp)
	v.Set("theme.color_error", cfg.Theme.ColorError)
	v.Set("theme.goal_gradient_start", cfg.Theme.GoalGradientStart)
	v.Set("theme.goal_gradient_end", cfg.Theme.GoalGradientEnd)

	return v.WriteConfig()
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".tempo", "config.toml"), nil
}

// GetDataPath returns the path of the project store for the configured backend.
func GetDataPath(cfg *Config) string {
	file := cfg.Storage.File
	if cfg.Storage.Backend == "sqlite" && (file == "" || file == "projects.json") {
		file = "tempo.db"
	}
	if file == "" {
		file = "projects.json"
	}
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(cfg.Storage.DataDir, file)
}

// expandHome resolves a leading ~ against the user's home directory.
func expandHome(path string) (string, error) {
	if path == "" {
		path = defaultDataDir
	}
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~")), nil
}

// setDefaults sets default values for viper.
func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()
	v.SetDefault("storage.data_dir", defaults.Storage.DataDir)
	v.SetDefault("storage.file", defaults.Storage.File)
	v.SetDefault("storage.backend", defaults.Storage.Backend)
	v.SetDefault("notifications.enabled", defaults.Notifications.Enabled)
	v.SetDefault("notifications.sound", defaults.Notifications.Sound)
	v.SetDefault("mcp.enabled", defaults.MCP.Enabled)
	v.SetDefault("tui.daily_goal", defaults.TUI.DailyGoal.String())
	v.SetDefault("tui.debug_log", "")

	// Theme defaults
	theme := defaults.Theme
	v.SetDefault("theme.color_focus", theme.ColorFocus)
	v.SetDefault("theme.color_border", theme.ColorBorder)
	v.SetDefault("theme.color_selected", theme.ColorSelected)
	v.SetDefault("theme.color_running", theme.ColorRunning)
	v.SetDefault("theme.color_clock", theme.ColorClock)
	v.SetDefault("theme.color_editing", theme.ColorEditing)
	v.SetDefault("theme.color_help", theme.ColorHelp)
	v.SetDefault("theme.color_error", theme.ColorError)
	v.SetDefault("theme.goal_gradient_start", theme.GoalGradientStart)
	v.SetDefault("theme.goal_gradient_end", theme.GoalGradientEnd)
}
