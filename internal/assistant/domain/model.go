// Package domain defines the chat assistant contracts.
package domain

import (
	"context"
	"errors"
)

var (
	ErrAssistantDisabled   = errors.New("assistant is disabled")
	ErrNoProviderAvailable = errors.New("no chat provider available")
	ErrEmptyConversation   = errors.New("conversation must contain at least one message")
	ErrInvalidRole         = errors.New("invalid message role")
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Reply struct {
	Provider string `json:"provider"`
	Model    string `json:"model,omitempty"`
	Content  string `json:"content"`
}

// ChatProvider is one backend capable of completing a conversation.
// IsAvailable must be cheap; the chain calls it on every request.
type ChatProvider interface {
	Name() string
	IsAvailable(ctx context.Context) bool
	Complete(ctx context.Context, messages []Message) (*Reply, error)
}

type Service interface {
	Chat(ctx context.Context, messages []Message) (*Reply, error)
}
