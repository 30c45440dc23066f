package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	DataFile string         `koanf:"data_file"`
	Defaults DefaultsConfig `koanf:"defaults"`
	Telegram TelegramConfig `koanf:"telegram"`
	UI       UIConfig       `koanf:"ui"`
}

// DefaultsConfig supplies the ambient owner/target identity for
// frontends that have no chat context of their own (remindctl, and MCP
// calls that omit the optional identity arguments).
type DefaultsConfig struct {
	Owner      string `koanf:"owner"`
	Target     string `koanf:"target"`
	TargetKind string `koanf:"target_kind"`
}

type TelegramConfig struct {
	Enabled  bool   `koanf:"enabled"`
	BotToken string `koanf:"bot_token"`
	ChatID   string `koanf:"chat_id"`
}

type UIConfig struct {
	ColoredOutput bool `koanf:"colored_output"`
}

// Load reads configuration in precedence order: built-in defaults, then
// the YAML file at configPath (if it exists), then environment
// variables.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		configPath = expandPath(configPath)

		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider("REMINDBOT_", ".", func(s string) string {
		return s
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// Env overrides with underscores in the key name need explicit
	// mapping.
	if v := os.Getenv("REMINDBOT_DATA_FILE"); v != "" {
		k.Set("data_file", v)
	}
	if v := os.Getenv("REMINDBOT_TELEGRAM_BOT_TOKEN"); v != "" {
		k.Set("telegram.bot_token", v)
		k.Set("telegram.enabled", true)
	}
	if v := os.Getenv("REMINDBOT_TELEGRAM_CHAT_ID"); v != "" {
		k.Set("telegram.chat_id", v)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.DataFile = expandPath(cfg.DataFile)

	return &cfg, nil
}

// Validate checks that the loaded configuration is usable.
func (c *Config) Validate() error {
	if c.DataFile == "" {
		return fmt.Errorf("data_file is required")
	}
	if c.Telegram.Enabled && c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram is enabled but bot_token is empty (set REMINDBOT_TELEGRAM_BOT_TOKEN or add it to the config file)")
	}
	switch c.Defaults.TargetKind {
	case "person", "group":
	default:
		return fmt.Errorf("defaults.target_kind must be person or group, got %q", c.Defaults.TargetKind)
	}
	return nil
}

// EnsureDataDir creates the directory holding the data file.
func (c *Config) EnsureDataDir() error {
	dir := filepath.Dir(c.DataFile)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func expandPath(p string) string {
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[2:])
		}
	}
	return p
}
