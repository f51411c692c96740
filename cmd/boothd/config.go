package main

import (
	"strings"

	"github.com/spf13/viper"
)

type config struct {
	Port              string
	ElevenLabsAPIKey  string
	ElevenLabsBaseURL string
	DefaultAgentID    string
	ReportWebhookURL  string
	ReportSecret      string
}

func loadConfig() config {
	v := viper.New()
	v.SetEnvPrefix("booth")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("elevenlabs.base_url", "https://api.elevenlabs.io")

	return config{
		Port:              v.GetString("port"),
		ElevenLabsAPIKey:  v.GetString("elevenlabs.api_key"),
		ElevenLabsBaseURL: v.GetString("elevenlabs.base_url"),
		DefaultAgentID:    v.GetString("elevenlabs.agent_id"),
		ReportWebhookURL:  v.GetString("report.webhook_url"),
		ReportSecret:      v.GetString("report.secret"),
	}
}
