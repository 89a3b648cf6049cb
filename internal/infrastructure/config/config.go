// Package config provides configuration management and dependency wiring for
// the campaign agent. It uses viper for loading configuration from
// command-line flags and environment variables.
//
// Configuration priority (highest to lowest):
// 1. Command-line flags
// 2. Environment variables (with ADS_ prefix)
// 3. Defaults
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"tiktok-ads-agent/internal/infrastructure/adapter/tiktok"
)

// Config holds all configuration values for the application.
type Config struct {
	// AIModel is the model identifier to use for model requests.
	AIModel string

	// MaxTokens is the maximum number of tokens per model response.
	MaxTokens int

	// AccessToken is the bearer token for the simulated ads platform.
	// Defaults to the built-in demo token.
	AccessToken string

	// UploadSuccessRate is the mock backend's upload success probability.
	UploadSuccessRate float64

	// SubmitSuccessRate is the mock backend's submission success probability.
	SubmitSuccessRate float64

	// ModelTimeout bounds each model round trip.
	ModelTimeout time.Duration

	// LogLevel controls diagnostic logging (trace/debug/info/warn/error).
	LogLevel string

	// WelcomeMessage is displayed when the session starts.
	WelcomeMessage string

	// GoodbyeMessage is displayed when the session ends.
	GoodbyeMessage string

	// Greeting is the agent's opening line, shown on start and after reset.
	Greeting string
}

// Defaults returns a Config struct with all default values set.
func Defaults() *Config {
	return &Config{
		AIModel:           "claude-sonnet-4-5",
		MaxTokens:         2000,
		AccessToken:       tiktok.DefaultAccessToken,
		UploadSuccessRate: 0.8,
		SubmitSuccessRate: 0.75,
		ModelTimeout:      60 * time.Second,
		LogLevel:          "warn",
		WelcomeMessage:    "TikTok Ads Agent (type 'quit' to exit, 'reset' to start over)",
		GoodbyeMessage:    "Thanks for using the TikTok Ads Agent!",
		Greeting:          "Hi! I'm your TikTok Ads assistant. I can help you create a new ad campaign. What would you like to call your campaign?",
	}
}

// LoadConfig loads and returns the configuration from viper.
// It sets up environment variable bindings with the ADS_ prefix.
//
// The caller is expected to have set up viper with BindPFlag() calls
// for command-line flags before calling this function.
func LoadConfig() *Config {
	cfg := Defaults()

	viper.SetEnvPrefix("ADS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if viper.IsSet("model") {
		cfg.AIModel = viper.GetString("model")
	}
	if viper.IsSet("maxTokens") {
		cfg.MaxTokens = viper.GetInt("maxTokens")
	}
	if viper.IsSet("accessToken") {
		cfg.AccessToken = viper.GetString("accessToken")
	}
	if viper.IsSet("uploadSuccessRate") {
		cfg.UploadSuccessRate = viper.GetFloat64("uploadSuccessRate")
	}
	if viper.IsSet("submitSuccessRate") {
		cfg.SubmitSuccessRate = viper.GetFloat64("submitSuccessRate")
	}
	if viper.IsSet("modelTimeout") {
		cfg.ModelTimeout = viper.GetDuration("modelTimeout")
	}
	if viper.IsSet("logLevel") {
		cfg.LogLevel = viper.GetString("logLevel")
	}

	return cfg
}
