// Package entity provides the core domain objects for the campaign agent.
//
// The package contains the data structures that represent a campaign-building
// conversation: the transcript of turns exchanged with the model, the
// individual messages (including tool calls and tool results), the descriptors
// of the tools the model may invoke, and the ad payload assembled from the
// user's answers. These are pure domain objects with no infrastructure
// dependencies; validation and invariants live here.
//
// Basic usage:
//
//	conv, err := entity.NewConversation()
//	if err != nil {
//		return fmt.Errorf("failed to create conversation: %w", err)
//	}
//
//	msg, err := entity.NewMessage(entity.RoleUser, "Create a campaign called Summer Sale")
//	if err != nil {
//		return fmt.Errorf("failed to create message: %w", err)
//	}
//
//	if err := conv.AddMessage(*msg); err != nil {
//		return fmt.Errorf("failed to add message: %w", err)
//	}
package entity

import (
	"time"
)

// Conversation is the transcript of one campaign-building session: an
// append-only, chronologically ordered sequence of turns. It is owned by
// exactly one session; the only mutation besides appending is Clear, which
// discards the transcript on an explicit reset.
//
// All accessors return defensive copies so callers cannot corrupt the
// transcript ordering, which the conversation loop depends on to replay
// the exact protocol sequence to the model on every round trip.
type Conversation struct {
	// Messages holds every turn in the order it was committed.
	Messages []Message `json:"messages"`

	// StartedAt marks when this conversation was first created. It survives
	// Clear so the session's age stays meaningful across resets.
	StartedAt time.Time `json:"started_at"`
}

// NewConversation creates an empty conversation with the current timestamp.
//
// The error return is always nil today; it is kept for API consistency with
// the other entity constructors.
func NewConversation() (*Conversation, error) {
	return &Conversation{
		Messages:  []Message{},
		StartedAt: time.Now(),
	}, nil
}

// AddMessage validates and appends a turn to the transcript.
//
// A zero timestamp is filled in with the current time before validation, so
// struct-literal messages behave the same as constructor-built ones. If
// validation fails the transcript is left unchanged.
func (c *Conversation) AddMessage(message Message) error {
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now()
	}
	if err := message.Validate(); err != nil {
		return err
	}
	c.Messages = append(c.Messages, message)
	return nil
}

// GetMessages returns a copy of all turns in commit order.
// Modifications to the returned slice do not affect the conversation.
func (c *Conversation) GetMessages() []Message {
	result := make([]Message, len(c.Messages))
	copy(result, c.Messages)
	return result
}

// GetLastMessage returns a copy of the most recent turn, if any.
func (c *Conversation) GetLastMessage() (*Message, bool) {
	if len(c.Messages) == 0 {
		return nil, false
	}
	last := c.Messages[len(c.Messages)-1]
	return &last, true
}

// Clear discards all turns, returning the conversation to the state of a
// freshly started session. StartedAt is preserved. This backs the session
// shell's reset command and cannot be undone.
func (c *Conversation) Clear() {
	c.Messages = []Message{}
}

// MessageCount returns the number of turns in the transcript.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty returns true if the conversation has no turns.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// HasMessages returns true if the conversation contains at least one turn.
func (c *Conversation) HasMessages() bool {
	return len(c.Messages) > 0
}

// GetDuration returns the time elapsed since the conversation started.
func (c *Conversation) GetDuration() time.Duration {
	return time.Since(c.StartedAt)
}
