package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Flags(t *testing.T) {
	tests := []struct {
		flag        string
		wantType    string
		wantDefault string
	}{
		{flag: "model", wantType: "string", wantDefault: "claude-sonnet-4-5"},
		{flag: "max-tokens", wantType: "int", wantDefault: "2000"},
		{flag: "access-token", wantType: "string", wantDefault: ""},
		{flag: "log-level", wantType: "string", wantDefault: "warn"},
		{flag: "upload-success-rate", wantType: "float64", wantDefault: "0.8"},
		{flag: "submit-success-rate", wantType: "float64", wantDefault: "0.75"},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			flag := rootCmd.PersistentFlags().Lookup(tt.flag)
			require.NotNil(t, flag, "flag %s should be registered", tt.flag)
			assert.Equal(t, tt.wantType, flag.Value.Type())
			assert.Equal(t, tt.wantDefault, flag.DefValue)
		})
	}
}

func TestRootCmd_HasChatSubcommand(t *testing.T) {
	for _, sub := range rootCmd.Commands() {
		if sub.Name() == "chat" {
			return
		}
	}
	t.Fatal("chat subcommand not registered")
}

func TestGetConfig(t *testing.T) {
	cfg := GetConfig()
	require.NotNil(t, cfg)
	assert.NotEmpty(t, cfg.AIModel)
}
