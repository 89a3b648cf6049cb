package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tiktok-ads-agent/internal/infrastructure/adapter/tiktok"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.Equal(t, "claude-sonnet-4-5", cfg.AIModel)
	assert.Equal(t, 2000, cfg.MaxTokens)
	assert.Equal(t, tiktok.DefaultAccessToken, cfg.AccessToken)
	assert.InDelta(t, 0.8, cfg.UploadSuccessRate, 1e-9)
	assert.InDelta(t, 0.75, cfg.SubmitSuccessRate, 1e-9)
	assert.Equal(t, 60*time.Second, cfg.ModelTimeout)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.NotEmpty(t, cfg.WelcomeMessage)
	assert.NotEmpty(t, cfg.GoodbyeMessage)
	assert.NotEmpty(t, cfg.Greeting)
}

func TestLoadConfig(t *testing.T) {
	t.Run("should return defaults when nothing is set", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)

		cfg := LoadConfig()
		assert.Equal(t, Defaults().AIModel, cfg.AIModel)
		assert.Equal(t, Defaults().AccessToken, cfg.AccessToken)
	})

	t.Run("should apply explicitly set values", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)

		viper.Set("model", "claude-opus-4-1")
		viper.Set("maxTokens", 1024)
		viper.Set("accessToken", "act.other.token")
		viper.Set("uploadSuccessRate", 1.0)
		viper.Set("submitSuccessRate", 0.5)
		viper.Set("logLevel", "debug")

		cfg := LoadConfig()
		assert.Equal(t, "claude-opus-4-1", cfg.AIModel)
		assert.Equal(t, 1024, cfg.MaxTokens)
		assert.Equal(t, "act.other.token", cfg.AccessToken)
		assert.InDelta(t, 1.0, cfg.UploadSuccessRate, 1e-9)
		assert.InDelta(t, 0.5, cfg.SubmitSuccessRate, 1e-9)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("should read ADS-prefixed environment variables", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		t.Setenv("ADS_MODEL", "claude-haiku-4-5")

		cfg := LoadConfig()
		assert.Equal(t, "claude-haiku-4-5", cfg.AIModel)
	})
}

func TestNewContainer(t *testing.T) {
	t.Run("should reject nil config", func(t *testing.T) {
		_, err := NewContainer(nil)
		assert.Error(t, err)
	})

	t.Run("should wire every component", func(t *testing.T) {
		container, err := NewContainer(Defaults())
		require.NoError(t, err)

		assert.NotNil(t, container.Engine())
		assert.NotNil(t, container.AdsAPI())
		assert.NotNil(t, container.ModelProvider())
		assert.NotNil(t, container.UIAdapter())
		assert.NotNil(t, container.Registry())
		assert.NotNil(t, container.Config())
	})

	t.Run("should pass configured rates to the mock backend", func(t *testing.T) {
		cfg := Defaults()
		cfg.UploadSuccessRate = 0.0

		container, err := NewContainer(cfg)
		require.NoError(t, err)

		res := container.AdsAPI().UploadCustomMusic(t.Context(), "x")
		assert.False(t, res.Success)
	})

	t.Run("should expose the three campaign tools", func(t *testing.T) {
		container, err := NewContainer(Defaults())
		require.NoError(t, err)
		assert.Len(t, container.Registry().Tools(), 3)
	})
}
