// Package echo is the always-available fallback provider. It repeats the
// last user message so the chat surface keeps working without an LLM backend.
package echo

import (
	"context"

	assistantdomain "github.com/lugspot/lugspot/internal/assistant/domain"
)

type Provider struct{}

func New() *Provider { return &Provider{} }

func (p *Provider) Name() string { return "echo" }

func (p *Provider) IsAvailable(ctx context.Context) bool { return true }

func (p *Provider) Complete(ctx context.Context, messages []assistantdomain.Message) (*assistantdomain.Reply, error) {
	content := "How can I help you with your storage reservation?"
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == assistantdomain.RoleUser {
			content = "You said: " + messages[i].Content
			break
		}
	}
	return &assistantdomain.Reply{Provider: p.Name(), Content: content}, nil
}
