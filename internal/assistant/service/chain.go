package service

import (
	"context"
	"strings"
	"sync"

	assistantdomain "github.com/lugspot/lugspot/internal/assistant/domain"
	"github.com/lugspot/lugspot/internal/assistant/providers/echo"
	"github.com/lugspot/lugspot/internal/assistant/providers/ollama"
	"github.com/lugspot/lugspot/internal/assistant/providers/openai"
	"github.com/lugspot/lugspot/internal/config"
)

// Chain holds the ordered provider list. Each request walks the chain and
// the first available provider wins; a Complete failure falls through to
// the next one.
type Chain struct {
	mu        sync.RWMutex
	cfg       config.AssistantConfig
	providers []assistantdomain.ChatProvider
}

func NewChain(cfg config.AssistantConfig) *Chain {
	c := &Chain{cfg: cfg}
	c.Rebuild()
	return c
}

// Rebuild reconstructs the provider list from the stored config. Tests use
// it to swap configuration without sharing state across cases.
func (c *Chain) Rebuild() {
	providers := make([]assistantdomain.ChatProvider, 0, len(c.cfg.Providers))
	for _, name := range c.cfg.Providers {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "openai":
			providers = append(providers, openai.New(c.cfg.OpenAIAPIKey, c.cfg.OpenAIBaseURL, c.cfg.OpenAIModel, c.cfg.Timeout))
		case "ollama":
			providers = append(providers, ollama.New(c.cfg.OllamaBaseURL, c.cfg.OllamaModel, c.cfg.Timeout))
		case "echo":
			providers = append(providers, echo.New())
		}
	}

	c.mu.Lock()
	c.providers = providers
	c.mu.Unlock()
}

// SetProviders replaces the chain contents directly. Test hook.
func (c *Chain) SetProviders(providers ...assistantdomain.ChatProvider) {
	c.mu.Lock()
	c.providers = providers
	c.mu.Unlock()
}

func (c *Chain) Providers() []assistantdomain.ChatProvider {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]assistantdomain.ChatProvider, len(c.providers))
	copy(out, c.providers)
	return out
}

// Complete walks the chain in order and returns the first successful reply.
func (c *Chain) Complete(ctx context.Context, messages []assistantdomain.Message) (*assistantdomain.Reply, error) {
	var lastErr error
	for _, provider := range c.Providers() {
		if !provider.IsAvailable(ctx) {
			continue
		}
		reply, err := provider.Complete(ctx, messages)
		if err != nil {
			lastErr = err
			continue
		}
		return reply, nil
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, assistantdomain.ErrNoProviderAvailable
}
