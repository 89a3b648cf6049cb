package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tiktok-ads-agent/internal/domain/entity"
	"tiktok-ads-agent/internal/domain/port"
	"tiktok-ads-agent/internal/infrastructure/config"
	appsignal "tiktok-ads-agent/internal/infrastructure/signal"
)

// chatCmd represents the chat command.
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive campaign-building session",
	Long: `Start an interactive session with the TikTok Ads assistant.
Describe the campaign you want in plain language; the assistant collects and
validates the required fields and submits the campaign when it is complete.

Commands inside the session: 'reset' starts over, 'quit'/'exit'/'q' ends the
session. Press Ctrl+C twice to force exit.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
	executeChat = runChat
}

// inputResult holds the result from the async input goroutine.
type inputResult struct {
	text string
	ok   bool
}

// runChat executes the startup sequence and the session loop.
func runChat(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	// The model backend is unusable without a credential; fail before any
	// conversation starts.
	if os.Getenv("ANTHROPIC_API_KEY") == "" {
		return errors.New("ANTHROPIC_API_KEY is not set; export it before starting a session")
	}

	container, err := config.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}

	engine := container.Engine()
	uiAdapter := container.UIAdapter()

	// Startup token check: an invalid ads credential aborts the session
	// before the greeting.
	token := container.AdsAPI().ValidateToken(cmd.Context(), cfg.AccessToken)
	if !token.Valid {
		return fmt.Errorf("access token rejected: %s (%s)", token.Message, token.ErrorCode)
	}

	_ = uiAdapter.DisplaySystemMessage(cfg.WelcomeMessage)
	_ = uiAdapter.DisplaySystemMessage(fmt.Sprintf("Advertiser: %s (scopes: %s)",
		token.AdvertiserID, strings.Join(token.Scopes, ", ")))
	_ = uiAdapter.DisplayMessage(cfg.Greeting, entity.RoleAssistant)

	handler := appsignal.NewInterruptHandler(2 * time.Second)
	handler.Start()
	defer handler.Stop()
	ctx := handler.Context()

	for {
		firstPressCh := handler.FirstPress()

		inputCh := make(chan inputResult, 1)
		go func() {
			text, ok := uiAdapter.GetUserInput(ctx)
			inputCh <- inputResult{text, ok}
		}()

	waitLoop:
		for {
			select {
			case <-ctx.Done():
				fmt.Printf("\n%s\n", cfg.GoodbyeMessage)
				return nil
			case <-firstPressCh:
				fmt.Printf("\nPress Ctrl+C again to exit\n")
				firstPressCh = nil
				continue
			case result := <-inputCh:
				if !result.ok {
					fmt.Printf("\n%s\n", cfg.GoodbyeMessage)
					return nil
				}

				text := strings.TrimSpace(result.text)
				if text == "" {
					break waitLoop
				}

				switch strings.ToLower(text) {
				case "quit", "exit", "q":
					fmt.Printf("%s\n", cfg.GoodbyeMessage)
					return nil
				case "reset":
					engine.Reset()
					_ = uiAdapter.DisplaySystemMessage("Conversation reset. Starting fresh!")
					_ = uiAdapter.DisplayMessage(cfg.Greeting, entity.RoleAssistant)
					break waitLoop
				}

				reply, err := engine.Chat(ctx, text)
				switch {
				case err == nil:
					_ = uiAdapter.DisplayMessage(reply, entity.RoleAssistant)
				case errors.Is(err, context.Canceled):
					fmt.Fprintf(cmd.ErrOrStderr(), "\nOperation cancelled. Type 'quit' to exit or continue.\n")
				case errors.Is(err, port.ErrModelUnavailable):
					_ = uiAdapter.DisplayError(err)
					_ = uiAdapter.DisplaySystemMessage("The model backend is unavailable; your last message was not recorded. Try again.")
				default:
					_ = uiAdapter.DisplayError(err)
				}
				break waitLoop
			}
		}
	}
}
