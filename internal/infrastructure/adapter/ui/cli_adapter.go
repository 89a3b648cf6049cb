// Package ui provides the command-line implementation of the UserInterface
// port: a colored prompt/print surface for the interactive session shell.
package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"tiktok-ads-agent/internal/domain/port"
)

// CLIAdapter implements the UserInterface port on a terminal.
type CLIAdapter struct {
	input   io.Reader
	output  io.Writer
	prompt  string
	colors  port.ColorScheme
	scanner *bufio.Scanner
}

// defaultColorScheme returns the default ANSI color scheme for CLI output.
func defaultColorScheme() port.ColorScheme {
	return port.ColorScheme{
		User:      "\x1b[94m", // Blue
		Assistant: "\x1b[93m", // Yellow
		System:    "\x1b[96m", // Cyan
		Error:     "\x1b[91m", // Red
		Tool:      "\x1b[92m", // Green
		Prompt:    "\x1b[94m", // Blue
	}
}

// NewCLIAdapter creates a new CLIAdapter with default I/O (stdin/stdout).
func NewCLIAdapter() *CLIAdapter {
	return &CLIAdapter{
		input:  os.Stdin,
		output: os.Stdout,
		prompt: "You",
		colors: defaultColorScheme(),
	}
}

// NewCLIAdapterWithIO creates a new CLIAdapter with custom I/O for testing.
func NewCLIAdapterWithIO(input io.Reader, output io.Writer) *CLIAdapter {
	return &CLIAdapter{
		input:  input,
		output: output,
		prompt: "You",
		colors: defaultColorScheme(),
	}
}

// GetUserInput reads one line from the user. The boolean is false on EOF or
// when the context is already cancelled.
func (c *CLIAdapter) GetUserInput(ctx context.Context) (string, bool) {
	if c.scanner == nil {
		c.scanner = bufio.NewScanner(c.input)
	}

	select {
	case <-ctx.Done():
		return "", false
	default:
	}

	if _, err := fmt.Fprint(c.output, c.colors.Prompt+c.prompt+"\x1b[0m: "); err != nil {
		return "", false
	}

	if !c.scanner.Scan() {
		return "", false
	}

	return c.scanner.Text(), true
}

// DisplayMessage displays a message with the specified role.
func (c *CLIAdapter) DisplayMessage(message string, messageRole string) error {
	var color, label string

	switch strings.ToLower(messageRole) {
	case "assistant":
		color, label = c.colors.Assistant, "Agent: "
	case "system":
		color, label = c.colors.System, ""
	default:
		color, label = c.colors.User, ""
	}

	_, err := fmt.Fprintf(c.output, "%s%s%s\x1b[0m\n", color, label, message)
	return err
}

// DisplayError displays an error message.
func (c *CLIAdapter) DisplayError(err error) error {
	if err == nil {
		return nil
	}

	_, writeErr := fmt.Fprintf(c.output, "%sError: %s\x1b[0m\n", c.colors.Error, err.Error())
	return writeErr
}

// DisplayToolResult displays the trace of one executed tool call: the tool
// name, the arguments the model supplied, and the serialized result.
func (c *CLIAdapter) DisplayToolResult(toolName string, input string, result string) error {
	_, err := fmt.Fprintf(c.output, "%sTool [%s] %s\x1b[0m\n  %s\n",
		c.colors.Tool, toolName, input, result)
	return err
}

// DisplaySystemMessage displays a system message.
func (c *CLIAdapter) DisplaySystemMessage(message string) error {
	_, err := fmt.Fprintf(c.output, "%s%s\x1b[0m\n", c.colors.System, message)
	return err
}

// SetPrompt sets the user input prompt label.
func (c *CLIAdapter) SetPrompt(prompt string) error {
	if prompt == "" {
		return port.ErrInvalidPrompt
	}
	c.prompt = prompt
	return nil
}

// ClearScreen clears the terminal screen.
func (c *CLIAdapter) ClearScreen() error {
	_, err := fmt.Fprintf(c.output, "\x1b[2J\x1b[H")
	return err
}

// SetColorScheme sets the color scheme for the interface. Empty fields keep
// their current value (partial scheme support).
func (c *CLIAdapter) SetColorScheme(scheme port.ColorScheme) error {
	if scheme.User == "" && scheme.Assistant == "" && scheme.System == "" &&
		scheme.Error == "" && scheme.Tool == "" && scheme.Prompt == "" {
		return port.ErrInvalidColor
	}

	if scheme.User != "" {
		c.colors.User = scheme.User
	}
	if scheme.Assistant != "" {
		c.colors.Assistant = scheme.Assistant
	}
	if scheme.System != "" {
		c.colors.System = scheme.System
	}
	if scheme.Error != "" {
		c.colors.Error = scheme.Error
	}
	if scheme.Tool != "" {
		c.colors.Tool = scheme.Tool
	}
	if scheme.Prompt != "" {
		c.colors.Prompt = scheme.Prompt
	}

	return nil
}
