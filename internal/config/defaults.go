package config

import (
	"github.com/knadh/koanf/providers/confmap"
)

func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"monitor": map[string]interface{}{
			"interval": "1s",
		},
		"notify": map[string]interface{}{
			"toast_duration": "5s",
			"platform":       PlatformTerminal,
			"permission":     PermissionAsk, // asked the first time a task with a due time is added
			"telegram": map[string]interface{}{
				"bot_token": "",
				"chat_id":   "",
				"api_url":   "https://api.telegram.org",
			},
		},
		"ui": map[string]interface{}{
			"colored_output":  true,
			"show_timestamps": false,
			"default_color":   "gray",
		},
	}
}

func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
}

func GetDefaultConfigPath() string {
	return "~/.taskdeck/config.yaml"
}
