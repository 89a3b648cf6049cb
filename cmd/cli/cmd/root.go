// Package cmd defines the command-line interface of the campaign agent.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tiktok-ads-agent/internal/infrastructure/config"
)

// global config shared between commands.
var cfg *config.Config

// executeChat runs the interactive session loop; set by chat.go during init
// so the bare root command defaults to it.
var executeChat func(cmd *cobra.Command, args []string) error

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "tiktok-ads-agent",
	Short: "AI-powered TikTok Ads campaign assistant",
	Long: `TikTok Ads Agent is an AI-powered assistant that builds ad campaigns
through natural conversation.

It collects the campaign fields (name, objective, ad text, call to action,
music) turn by turn, validates them against a simulated TikTok Ads API, and
submits the finished campaign. Type 'reset' to start over and 'quit' to exit.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.LoadConfig()
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if executeChat != nil {
			return executeChat(cmd, args)
		}
		return fmt.Errorf("chat functionality not initialized")
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

// GetConfig returns the loaded configuration.
func GetConfig() *config.Config {
	if cfg == nil {
		cfg = config.LoadConfig()
	}
	return cfg
}

func init() {
	rootCmd.PersistentFlags().String("model", "claude-sonnet-4-5", "Model to use for requests")
	rootCmd.PersistentFlags().Int("max-tokens", 2000, "Maximum tokens per model response")
	rootCmd.PersistentFlags().String("access-token", "", "Bearer token for the simulated ads API")
	rootCmd.PersistentFlags().String("log-level", "warn", "Diagnostic log level (trace/debug/info/warn/error)")
	rootCmd.PersistentFlags().Float64("upload-success-rate", 0.8, "Mock backend upload success probability")
	rootCmd.PersistentFlags().Float64("submit-success-rate", 0.75, "Mock backend submission success probability")

	bindings := map[string]string{
		"model":             "model",
		"maxTokens":         "max-tokens",
		"accessToken":       "access-token",
		"logLevel":          "log-level",
		"uploadSuccessRate": "upload-success-rate",
		"submitSuccessRate": "submit-success-rate",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to bind %s flag: %v\n", flag, err)
		}
	}
}
