package config

import (
	"time"

	"github.com/spf13/viper"

	"storyhive/internal/api"
)

func SetDefaults() {
	viper.SetDefault("api.base_url", api.DefaultBaseURL)
	viper.SetDefault("api.timeout", 15*time.Second)
	viper.SetDefault("session.token", "")
	viper.SetDefault("session.username", "")
}
