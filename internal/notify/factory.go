package notify

import (
	"fmt"
	"io"

	"github.com/notexe/taskdeck/internal/config"
)

// NewPlatform creates the notification platform named in the configuration.
// ask is consulted when the permission policy is "ask"; a nil ask denies.
func NewPlatform(cfg config.NotifyConfig, out io.Writer, colored bool, ask Consent) (Platform, error) {
	consent, err := consentFor(cfg.Permission, ask)
	if err != nil {
		return nil, err
	}

	switch cfg.Platform {
	case config.PlatformTerminal:
		return NewTerminal(out, consent, colored), nil

	case config.PlatformTelegram:
		return NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.APIURL, consent), nil

	case config.PlatformNone:
		return None{}, nil

	default:
		return nil, fmt.Errorf("unknown notification platform: %s (supported: %s, %s, %s)",
			cfg.Platform, config.PlatformTerminal, config.PlatformTelegram, config.PlatformNone)
	}
}

func consentFor(policy string, ask Consent) (Consent, error) {
	switch policy {
	case config.PermissionAsk:
		if ask == nil {
			return AlwaysDeny, nil
		}
		return ask, nil
	case config.PermissionGranted:
		return AlwaysAllow, nil
	case config.PermissionDenied:
		return AlwaysDeny, nil
	default:
		return nil, fmt.Errorf("unknown notification permission policy: %s", policy)
	}
}
