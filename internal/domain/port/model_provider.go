// Package port defines the boundary interfaces of the campaign agent's
// domain: the model backend that drives the conversation, the advertising
// API the tools call into, and the user interface the session shell renders
// through. Infrastructure adapters implement these interfaces; the domain
// services depend only on the abstractions.
package port

import (
	"context"
	"errors"

	"tiktok-ads-agent/internal/domain/entity"
)

// ErrModelUnavailable marks a failed round trip to the model backend
// (network fault, auth rejection, timeout). The conversation engine
// guarantees that an attempt failing with this error leaves the transcript
// untouched, so the same request can be retried safely.
var ErrModelUnavailable = errors.New("model backend unavailable")

// MessageParam is one transcript turn in the form handed to a model backend.
// Tool calls and tool results ride along so the backend can reconstruct the
// provider's wire format for multi-step tool use.
type MessageParam struct {
	Role        string              `json:"role"`
	Content     string              `json:"content"`
	ToolCalls   []entity.ToolCall   `json:"tool_calls,omitempty"`
	ToolResults []entity.ToolResult `json:"tool_results,omitempty"`
}

// ToolParam describes one callable tool in the form handed to a model backend.
type ToolParam struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"input_schema,omitempty"`
	Required    []string               `json:"required,omitempty"`
}

// ModelProvider is the outbound dependency on the LLM backend. One call sends
// the full transcript plus the tool registry and yields either a plain
// assistant reply or a reply carrying tool call requests (the returned
// message's ToolCalls field).
//
// The provider must honor ctx cancellation and wrap transport-level failures
// in ErrModelUnavailable.
type ModelProvider interface {
	// SendMessage sends the transcript and available tools to the model and
	// returns its next message.
	SendMessage(ctx context.Context, messages []MessageParam, tools []ToolParam) (*entity.Message, error)

	// HealthCheck verifies the provider is configured and ready.
	HealthCheck(ctx context.Context) error

	// SetModel sets the model identifier to use for subsequent requests.
	SetModel(model string) error

	// GetModel returns the currently configured model identifier.
	GetModel() string
}
