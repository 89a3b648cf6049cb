// Package service contains the domain services of the campaign agent: the
// conversation engine that drives the model/tool protocol and the tool
// registry that declares and dispatches the callable operations.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tiktok-ads-agent/internal/domain/entity"
	"tiktok-ads-agent/internal/domain/port"
)

var (
	ErrNilModelProvider = errors.New("model provider cannot be nil")
	ErrNilToolRegistry  = errors.New("tool registry cannot be nil")
	ErrEmptyUserMessage = errors.New("user message cannot be empty")
)

// State is the engine's position in the conversation protocol.
type State string

const (
	StateAwaitingUserInput     State = "awaiting_user_input"
	StateAwaitingModelResponse State = "awaiting_model_response"
	StateExecutingTools        State = "executing_tools"
)

// ToolTraceFunc observes each executed tool call. The session shell installs
// one to render tool traces; it must not block.
type ToolTraceFunc func(toolName, inputJSON, result string, isError bool)

// ConversationEngine drives one campaign-building session: it owns the
// transcript, sends it with the tool registry to the model, executes any
// requested tool calls sequentially, folds the results back into the
// transcript, and repeats until the model produces a plain reply.
//
// The engine is strictly sequential; a single goroutine calls Chat at a time.
type ConversationEngine struct {
	model      port.ModelProvider
	registry   *ToolRegistry
	transcript *entity.Conversation
	sessionID  string
	state      State
	onTool     ToolTraceFunc
	logger     zerolog.Logger
}

// NewConversationEngine creates an engine over the given model backend and
// tool registry, starting with an empty transcript.
func NewConversationEngine(model port.ModelProvider, registry *ToolRegistry, logger zerolog.Logger) (*ConversationEngine, error) {
	if model == nil {
		return nil, ErrNilModelProvider
	}
	if registry == nil {
		return nil, ErrNilToolRegistry
	}

	transcript, err := entity.NewConversation()
	if err != nil {
		return nil, err
	}

	return &ConversationEngine{
		model:      model,
		registry:   registry,
		transcript: transcript,
		sessionID:  uuid.NewString(),
		state:      StateAwaitingUserInput,
		logger:     logger,
	}, nil
}

// SetToolTrace installs the tool call observer. Passing nil removes it.
func (e *ConversationEngine) SetToolTrace(fn ToolTraceFunc) {
	e.onTool = fn
}

// SessionID returns the identifier of the current session.
func (e *ConversationEngine) SessionID() string {
	return e.sessionID
}

// State returns the engine's current protocol state.
func (e *ConversationEngine) State() State {
	return e.state
}

// Transcript returns a copy of the session's turns in commit order.
func (e *ConversationEngine) Transcript() []entity.Message {
	return e.transcript.GetMessages()
}

// Reset discards the transcript and assigns a fresh session id, leaving the
// engine indistinguishable from a newly started one.
func (e *ConversationEngine) Reset() {
	e.transcript.Clear()
	e.sessionID = uuid.NewString()
	e.state = StateAwaitingUserInput
	e.logger.Debug().Str("session_id", e.sessionID).Msg("conversation reset")
}

// Chat runs one full protocol cycle: it stages the user turn, round-trips
// with the model, executes any requested tool calls, and returns the model's
// final natural-language reply.
//
// If the first model call fails, the staged user turn is not committed and
// the transcript is exactly as before, so the caller can retry with the same
// input. Model failures are wrapped in port.ErrModelUnavailable. Tool-level
// failures never surface here; they are folded into the transcript as
// structured results for the model to react to.
func (e *ConversationEngine) Chat(ctx context.Context, userMessage string) (string, error) {
	userMsg, err := entity.NewMessage(entity.RoleUser, userMessage)
	if err != nil {
		return "", ErrEmptyUserMessage
	}

	e.state = StateAwaitingModelResponse
	defer func() { e.state = StateAwaitingUserInput }()

	// First round trip runs against the staged turn; nothing is committed
	// until the model has answered.
	staged := append(e.transcript.GetMessages(), *userMsg)
	reply, err := e.sendToModel(ctx, staged)
	if err != nil {
		return "", err
	}

	if err := e.transcript.AddMessage(*userMsg); err != nil {
		return "", err
	}
	if err := e.transcript.AddMessage(*reply); err != nil {
		return "", err
	}

	for reply.HasToolCalls() {
		e.state = StateExecutingTools
		if reply.Content != "" {
			e.logger.Debug().Str("session_id", e.sessionID).Msg("assistant text accompanying tool calls")
		}

		results := make([]entity.ToolResult, 0, len(reply.ToolCalls))
		for _, call := range reply.ToolCalls {
			if ctx.Err() != nil {
				return "", fmt.Errorf("%w: %v", port.ErrModelUnavailable, ctx.Err())
			}
			output, isError := e.registry.Execute(ctx, call.Name, call.Input)
			if e.onTool != nil {
				e.onTool(call.Name, string(call.Input), output, isError)
			}
			results = append(results, entity.ToolResult{
				ToolID:  call.ID,
				Result:  output,
				IsError: isError,
			})
		}

		resultMsg, err := entity.NewToolResultMessage(results)
		if err != nil {
			return "", err
		}
		if err := e.transcript.AddMessage(*resultMsg); err != nil {
			return "", err
		}

		e.state = StateAwaitingModelResponse
		reply, err = e.sendToModel(ctx, e.transcript.GetMessages())
		if err != nil {
			return "", err
		}
		if err := e.transcript.AddMessage(*reply); err != nil {
			return "", err
		}
	}

	return reply.Content, nil
}

// sendToModel performs one model round trip over the given turns.
func (e *ConversationEngine) sendToModel(ctx context.Context, messages []entity.Message) (*entity.Message, error) {
	params := make([]port.MessageParam, len(messages))
	for i, msg := range messages {
		params[i] = port.MessageParam{
			Role:        msg.Role,
			Content:     msg.Content,
			ToolCalls:   msg.ToolCalls,
			ToolResults: msg.ToolResults,
		}
	}

	reply, err := e.model.SendMessage(ctx, params, e.registry.ToolParams())
	if err != nil {
		e.logger.Error().Err(err).Str("session_id", e.sessionID).Msg("model round trip failed")
		if errors.Is(err, port.ErrModelUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", port.ErrModelUnavailable, err)
	}

	e.logger.Debug().
		Str("session_id", e.sessionID).
		Int("tool_calls", len(reply.ToolCalls)).
		Msg("model responded")
	return reply, nil
}
