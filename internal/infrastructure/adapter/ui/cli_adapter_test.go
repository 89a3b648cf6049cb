package ui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tiktok-ads-agent/internal/domain/port"
)

func TestCLIAdapter_GetUserInput(t *testing.T) {
	t.Run("should read a line and echo the prompt", func(t *testing.T) {
		var out bytes.Buffer
		adapter := NewCLIAdapterWithIO(strings.NewReader("create a Traffic campaign\n"), &out)

		text, ok := adapter.GetUserInput(context.Background())
		require.True(t, ok)
		assert.Equal(t, "create a Traffic campaign", text)
		assert.Contains(t, out.String(), "You")
	})

	t.Run("should read successive lines", func(t *testing.T) {
		var out bytes.Buffer
		adapter := NewCLIAdapterWithIO(strings.NewReader("first\nsecond\n"), &out)

		first, ok := adapter.GetUserInput(context.Background())
		require.True(t, ok)
		second, ok := adapter.GetUserInput(context.Background())
		require.True(t, ok)
		assert.Equal(t, "first", first)
		assert.Equal(t, "second", second)
	})

	t.Run("should report false on EOF", func(t *testing.T) {
		adapter := NewCLIAdapterWithIO(strings.NewReader(""), &bytes.Buffer{})
		_, ok := adapter.GetUserInput(context.Background())
		assert.False(t, ok)
	})

	t.Run("should report false on cancelled context", func(t *testing.T) {
		adapter := NewCLIAdapterWithIO(strings.NewReader("pending\n"), &bytes.Buffer{})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, ok := adapter.GetUserInput(ctx)
		assert.False(t, ok)
	})
}

func TestCLIAdapter_DisplayMessage(t *testing.T) {
	tests := []struct {
		name      string
		role      string
		message   string
		wantLabel string
	}{
		{
			name:      "should label assistant messages",
			role:      "assistant",
			message:   "What objective do you want?",
			wantLabel: "Agent: ",
		},
		{
			name:    "should print system messages unlabeled",
			role:    "system",
			message: "Conversation reset.",
		},
		{
			name:    "should print user messages unlabeled",
			role:    "user",
			message: "hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			adapter := NewCLIAdapterWithIO(strings.NewReader(""), &out)

			require.NoError(t, adapter.DisplayMessage(tt.message, tt.role))
			assert.Contains(t, out.String(), tt.wantLabel+tt.message)
		})
	}
}

func TestCLIAdapter_DisplayError(t *testing.T) {
	var out bytes.Buffer
	adapter := NewCLIAdapterWithIO(strings.NewReader(""), &out)

	require.NoError(t, adapter.DisplayError(errors.New("model backend unavailable")))
	assert.Contains(t, out.String(), "Error: model backend unavailable")

	out.Reset()
	require.NoError(t, adapter.DisplayError(nil))
	assert.Empty(t, out.String())
}

func TestCLIAdapter_DisplayToolResult(t *testing.T) {
	var out bytes.Buffer
	adapter := NewCLIAdapterWithIO(strings.NewReader(""), &out)

	err := adapter.DisplayToolResult("validate_music_id", `{"music_id":"music_123"}`, `{"valid":true}`)
	require.NoError(t, err)

	rendered := out.String()
	assert.Contains(t, rendered, "validate_music_id")
	assert.Contains(t, rendered, `{"music_id":"music_123"}`)
	assert.Contains(t, rendered, `{"valid":true}`)
}

func TestCLIAdapter_SetPrompt(t *testing.T) {
	adapter := NewCLIAdapter()

	require.NoError(t, adapter.SetPrompt("Advertiser"))
	assert.ErrorIs(t, adapter.SetPrompt(""), port.ErrInvalidPrompt)
}

func TestCLIAdapter_SetColorScheme(t *testing.T) {
	t.Run("should reject all-empty scheme", func(t *testing.T) {
		adapter := NewCLIAdapter()
		assert.ErrorIs(t, adapter.SetColorScheme(port.ColorScheme{}), port.ErrInvalidColor)
	})

	t.Run("should apply partial scheme keeping other colors", func(t *testing.T) {
		var out bytes.Buffer
		adapter := NewCLIAdapterWithIO(strings.NewReader(""), &out)

		require.NoError(t, adapter.SetColorScheme(port.ColorScheme{Error: "\x1b[95m"}))
		require.NoError(t, adapter.DisplayError(errors.New("boom")))
		assert.Contains(t, out.String(), "\x1b[95m")

		out.Reset()
		require.NoError(t, adapter.DisplayMessage("still yellow", "assistant"))
		assert.Contains(t, out.String(), "\x1b[93m")
	})
}
