package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
	RoleTool      = "tool"
)

var (
	ErrEmptyRole      = errors.New("role cannot be empty")
	ErrEmptyContent   = errors.New("content cannot be empty")
	ErrInvalidRole    = errors.New("invalid role")
	ErrZeroTimestamp  = errors.New("timestamp cannot be zero")
	ErrInvalidContent = errors.New("content cannot be whitespace only")
	ErrNoToolResults  = errors.New("tool result message requires at least one result")
)

// ToolCall is a single tool invocation requested by the model.
// Input is the raw JSON argument object exactly as the model emitted it.
type ToolCall struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Input json.RawMessage `json:"input"`
}

// ToolResult is the outcome of one executed tool call, matched back to the
// requesting call by ToolID. Result carries the serialized invocation result;
// IsError marks structured failures so the model can react to them.
type ToolResult struct {
	ToolID  string `json:"tool_id"`
	Result  string `json:"result"`
	IsError bool   `json:"is_error"`
}

// Message represents a single turn in a campaign-building conversation.
// A turn is either plain text (user or assistant), an assistant turn carrying
// tool calls, or a tool turn carrying the results of those calls.
type Message struct {
	Role        string       `json:"role"`
	Content     string       `json:"content"`
	Timestamp   time.Time    `json:"timestamp"`
	ToolCalls   []ToolCall   `json:"tool_calls,omitempty"`
	ToolResults []ToolResult `json:"tool_results,omitempty"`
}

// NewMessage creates a plain text message with the given role and content.
// The timestamp is automatically set to the current time.
func NewMessage(role, content string) (*Message, error) {
	if role == "" {
		return nil, ErrEmptyRole
	}
	if content == "" {
		return nil, ErrEmptyContent
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrInvalidContent
	}
	if !validRole(role) {
		return nil, ErrInvalidRole
	}

	return &Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}, nil
}

// NewToolCallMessage creates an assistant message carrying tool call requests.
// Content may be empty: models frequently emit tool calls without prose.
func NewToolCallMessage(content string, calls []ToolCall) (*Message, error) {
	if len(calls) == 0 {
		return NewMessage(RoleAssistant, content)
	}
	return &Message{
		Role:      RoleAssistant,
		Content:   content,
		Timestamp: time.Now(),
		ToolCalls: append([]ToolCall(nil), calls...),
	}, nil
}

// NewToolResultMessage creates a tool-role message carrying execution results.
func NewToolResultMessage(results []ToolResult) (*Message, error) {
	if len(results) == 0 {
		return nil, ErrNoToolResults
	}
	return &Message{
		Role:        RoleTool,
		Timestamp:   time.Now(),
		ToolResults: append([]ToolResult(nil), results...),
	}, nil
}

// IsUser returns true if the message is from a user.
func (m *Message) IsUser() bool {
	return m.Role == RoleUser
}

// IsAssistant returns true if the message is from the assistant.
func (m *Message) IsAssistant() bool {
	return m.Role == RoleAssistant
}

// IsToolResult returns true if the message carries tool execution results.
func (m *Message) IsToolResult() bool {
	return m.Role == RoleTool
}

// HasToolCalls returns true if the message requests tool execution.
func (m *Message) HasToolCalls() bool {
	return len(m.ToolCalls) > 0
}

// Validate checks if the message is valid.
// Content may be empty only when the message carries tool calls or results.
func (m *Message) Validate() error {
	if m.Role == "" {
		return ErrEmptyRole
	}
	if !validRole(m.Role) {
		return ErrInvalidRole
	}
	if m.Content == "" && len(m.ToolCalls) == 0 && len(m.ToolResults) == 0 {
		return ErrEmptyContent
	}
	if m.Content != "" && strings.TrimSpace(m.Content) == "" {
		return ErrInvalidContent
	}
	if m.Timestamp.IsZero() {
		return ErrZeroTimestamp
	}
	return nil
}

// IsValid checks if the message is valid without returning an error.
func (m *Message) IsValid() bool {
	return m.Validate() == nil
}

// String returns a string representation of the message.
func (m *Message) String() string {
	if m.HasToolCalls() {
		return fmt.Sprintf("Message[%s]: %d tool call(s)", m.Role, len(m.ToolCalls))
	}
	return fmt.Sprintf("Message[%s]: %s", m.Role, m.Content)
}

func validRole(role string) bool {
	switch role {
	case RoleUser, RoleAssistant, RoleSystem, RoleTool:
		return true
	}
	return false
}
