package config

import (
	"github.com/knadh/koanf/providers/confmap"
)

func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"data_file": "~/.remind-bot/reminders.json",
		"defaults": map[string]interface{}{
			"owner":       "local",
			"target":      "",
			"target_kind": "person",
		},
		"telegram": map[string]interface{}{
			"enabled":   false,
			"bot_token": "",
			"chat_id":   "",
		},
		"ui": map[string]interface{}{
			"colored_output": true,
		},
	}
}

func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
}

func GetDefaultConfigPath() string {
	return "~/.remind-bot/config.yaml"
}
