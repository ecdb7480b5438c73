package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/notexe/taskdeck/internal/task"
)

// Notification platforms.
const (
	PlatformTerminal = "terminal"
	PlatformTelegram = "telegram"
	PlatformNone     = "none"
)

// Permission policies. "ask" prompts the user once; the others answer the
// permission request without asking.
const (
	PermissionAsk     = "ask"
	PermissionGranted = "granted"
	PermissionDenied  = "denied"
)

const envPrefix = "TASKDECK_"

type Config struct {
	Monitor MonitorConfig `koanf:"monitor"`
	Notify  NotifyConfig  `koanf:"notify"`
	UI      UIConfig      `koanf:"ui"`
}

type MonitorConfig struct {
	Interval time.Duration `koanf:"interval"` // How often due tasks are checked
}

type NotifyConfig struct {
	ToastDuration time.Duration  `koanf:"toast_duration"`
	Platform      string         `koanf:"platform"`
	Permission    string         `koanf:"permission"`
	Telegram      TelegramConfig `koanf:"telegram"`
}

type TelegramConfig struct {
	BotToken string `koanf:"bot_token"`
	ChatID   string `koanf:"chat_id"`
	APIURL   string `koanf:"api_url"`
}

type UIConfig struct {
	ColoredOutput  bool   `koanf:"colored_output"`
	ShowTimestamps bool   `koanf:"show_timestamps"`
	DefaultColor   string `koanf:"default_color"`
}

// Load layers defaults, the YAML file at configPath (if it exists) and
// TASKDECK_* environment variables. TASKDECK_NOTIFY__TOAST_DURATION maps to
// notify.toast_duration.
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

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// Handle the conventional Telegram variables
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		k.Set("notify.telegram.bot_token", token)
	}
	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		k.Set("notify.telegram.chat_id", chatID)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Notify.Platform = strings.ToLower(cfg.Notify.Platform)
	cfg.Notify.Permission = strings.ToLower(cfg.Notify.Permission)

	return &cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func (c *Config) Validate() error {
	if c.Monitor.Interval <= 0 {
		return fmt.Errorf("monitor.interval must be positive")
	}

	if c.Notify.ToastDuration <= 0 {
		return fmt.Errorf("notify.toast_duration must be positive")
	}

	switch c.Notify.Platform {
	case PlatformTerminal, PlatformNone:
	case PlatformTelegram:
		if c.Notify.Telegram.BotToken == "" || c.Notify.Telegram.ChatID == "" {
			return fmt.Errorf("telegram notifications need a bot token and chat id (set TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID or add them to the config file)")
		}
	default:
		return fmt.Errorf("unknown notification platform: %s (supported: %s, %s, %s)",
			c.Notify.Platform, PlatformTerminal, PlatformTelegram, PlatformNone)
	}

	switch c.Notify.Permission {
	case PermissionAsk, PermissionGranted, PermissionDenied:
	default:
		return fmt.Errorf("unknown notification permission policy: %s (supported: %s, %s, %s)",
			c.Notify.Permission, PermissionAsk, PermissionGranted, PermissionDenied)
	}

	if c.UI.DefaultColor != "" && !task.Color(strings.ToLower(c.UI.DefaultColor)).Valid() {
		return fmt.Errorf("unknown default color: %s", c.UI.DefaultColor)
	}

	return nil
}

func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	return path
}
