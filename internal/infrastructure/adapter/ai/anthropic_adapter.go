// Package ai provides the Anthropic implementation of the ModelProvider
// port. It converts between the domain's transcript shape and the Anthropic
// SDK's wire types, including multi-step tool use, and carries the campaign
// assistant's system instructions on every request.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"

	"tiktok-ads-agent/internal/domain/entity"
	"tiktok-ads-agent/internal/domain/port"
)

var (
	// ErrEmptyMessages is returned when SendMessage is called with no messages.
	ErrEmptyMessages = errors.New("messages cannot be empty")

	// ErrModelNotSet is returned when a request is made without a model configured.
	ErrModelNotSet = errors.New("model must be set before sending messages")
)

// AnthropicAdapter implements the ModelProvider port using Anthropic's API.
// Each request carries the full transcript, the tool declarations, and the
// system prompt; a per-request timeout bounds the suspension point so a hung
// backend surfaces as ErrModelUnavailable instead of blocking the session.
type AnthropicAdapter struct {
	client       anthropic.Client
	model        string
	maxTokens    int64
	systemPrompt string
	timeout      time.Duration
}

// NewAnthropicAdapter creates an adapter for the given model. The API key is
// read from the environment by the SDK client. A non-positive timeout
// disables the per-request bound.
func NewAnthropicAdapter(model string, maxTokens int, systemPrompt string, timeout time.Duration) *AnthropicAdapter {
	return &AnthropicAdapter{
		client:       anthropic.NewClient(),
		model:        model,
		maxTokens:    int64(maxTokens),
		systemPrompt: systemPrompt,
		timeout:      timeout,
	}
}

// SendMessage sends the transcript and tool declarations to the Anthropic
// API and returns the model's next message. Tool call requests come back in
// the returned message's ToolCalls field.
func (a *AnthropicAdapter) SendMessage(
	ctx context.Context,
	messages []port.MessageParam,
	tools []port.ToolParam,
) (*entity.Message, error) {
	if len(messages) == 0 {
		return nil, ErrEmptyMessages
	}
	if a.model == "" {
		return nil, ErrModelNotSet
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	response, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: a.maxTokens,
		System:    []anthropic.TextBlockParam{{Text: a.systemPrompt}},
		Messages:  a.convertMessages(messages),
		Tools:     a.convertTools(tools),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", port.ErrModelUnavailable, err)
	}

	return a.convertResponse(response)
}

// HealthCheck verifies the adapter is ready to accept requests.
func (a *AnthropicAdapter) HealthCheck(_ context.Context) error {
	if a.model == "" {
		return ErrModelNotSet
	}
	return nil
}

// SetModel sets the model identifier to use for subsequent requests.
func (a *AnthropicAdapter) SetModel(model string) error {
	if model == "" {
		return errors.New("model cannot be empty")
	}
	a.model = model
	return nil
}

// GetModel returns the currently configured model identifier.
func (a *AnthropicAdapter) GetModel() string {
	return a.model
}

// convertMessages maps transcript turns onto SDK message params. Tool-role
// turns become user messages carrying tool_result blocks, and assistant
// turns with tool calls are rebuilt with their tool_use blocks, which the
// API requires for result matching.
func (a *AnthropicAdapter) convertMessages(messages []port.MessageParam) []anthropic.MessageParam {
	result := make([]anthropic.MessageParam, 0, len(messages))
	for _, msg := range messages {
		switch {
		case msg.Role == entity.RoleTool && len(msg.ToolResults) > 0:
			blocks := make([]anthropic.ContentBlockParamUnion, len(msg.ToolResults))
			for i, tr := range msg.ToolResults {
				blocks[i] = anthropic.NewToolResultBlock(tr.ToolID, tr.Result, tr.IsError)
			}
			result = append(result, anthropic.NewUserMessage(blocks...))
		case msg.Role == entity.RoleAssistant && len(msg.ToolCalls) > 0:
			blocks := []anthropic.ContentBlockParamUnion{}
			if msg.Content != "" {
				blocks = append(blocks, anthropic.NewTextBlock(msg.Content))
			}
			for _, tc := range msg.ToolCalls {
				var input interface{} = map[string]interface{}{}
				if len(tc.Input) > 0 {
					input = tc.Input
				}
				blocks = append(blocks, anthropic.NewToolUseBlock(tc.ID, input, tc.Name))
			}
			result = append(result, anthropic.NewAssistantMessage(blocks...))
		case msg.Role == entity.RoleAssistant:
			result = append(result, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			result = append(result, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}
	return result
}

// convertTools maps tool declarations onto SDK tool params.
func (a *AnthropicAdapter) convertTools(tools []port.ToolParam) []anthropic.ToolUnionParam {
	result := make([]anthropic.ToolUnionParam, len(tools))
	for i, tool := range tools {
		properties := make(map[string]interface{})
		for key, val := range tool.InputSchema {
			properties[key] = val
		}

		result[i] = anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        tool.Name,
				Description: anthropic.String(tool.Description),
				InputSchema: anthropic.ToolInputSchemaParam{
					Properties: properties,
					Required:   tool.Required,
				},
			},
		}
	}
	return result
}

// convertResponse extracts text and tool_use blocks from an API response
// into a domain message.
func (a *AnthropicAdapter) convertResponse(response *anthropic.Message) (*entity.Message, error) {
	var contentBuilder strings.Builder
	toolCalls := []entity.ToolCall{}

	for _, content := range response.Content {
		switch content.Type {
		case "text":
			contentBuilder.WriteString(content.Text)
		case "tool_use":
			toolCalls = append(toolCalls, entity.ToolCall{
				ID:    content.ID,
				Name:  content.Name,
				Input: content.Input,
			})
		}
	}

	text := contentBuilder.String()
	if len(toolCalls) > 0 {
		return entity.NewToolCallMessage(text, toolCalls)
	}

	if text == "" {
		text = string(response.StopReason)
	}
	msg, err := entity.NewMessage(entity.RoleAssistant, text)
	if err != nil {
		return nil, fmt.Errorf("failed to build assistant message: %w", err)
	}
	return msg, nil
}
