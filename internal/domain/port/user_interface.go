package port

import (
	"context"
	"errors"
)

var (
	ErrInvalidPrompt = errors.New("invalid prompt")
	ErrInvalidColor  = errors.New("invalid color scheme")
)

// ColorScheme defines the color configuration for the user interface.
type ColorScheme struct {
	User      string `json:"user"`      // Color for user messages
	Assistant string `json:"assistant"` // Color for agent messages
	System    string `json:"system"`    // Color for system messages
	Error     string `json:"error"`     // Color for error messages
	Tool      string `json:"tool"`      // Color for tool call traces
	Prompt    string `json:"prompt"`    // Color for the input prompt
}

// UserInterface is the inbound dependency for session shell interactions:
// reading user input and rendering agent output, tool traces, and errors.
type UserInterface interface {
	// GetUserInput reads one line of input from the user.
	// The boolean is false when the input stream has ended.
	GetUserInput(ctx context.Context) (string, bool)

	// DisplayMessage displays a message with the specified role.
	DisplayMessage(message string, messageRole string) error

	// DisplayError displays an error message.
	DisplayError(err error) error

	// DisplayToolResult displays the trace of one executed tool call.
	DisplayToolResult(toolName string, input string, result string) error

	// DisplaySystemMessage displays a system message.
	DisplaySystemMessage(message string) error

	// SetPrompt sets the user input prompt.
	SetPrompt(prompt string) error

	// ClearScreen clears the terminal screen.
	ClearScreen() error

	// SetColorScheme sets the color scheme for the interface.
	SetColorScheme(scheme ColorScheme) error
}
