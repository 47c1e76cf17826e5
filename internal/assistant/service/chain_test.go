package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	assistantdomain "github.com/lugspot/lugspot/internal/assistant/domain"
	"github.com/lugspot/lugspot/internal/config"
)

type fakeProvider struct {
	name      string
	available bool
	reply     string
	err       error
	calls     int
}

func (f *fakeProvider) Name() string                     { return f.name }
func (f *fakeProvider) IsAvailable(context.Context) bool { return f.available }

func (f *fakeProvider) Complete(_ context.Context, _ []assistantdomain.Message) (*assistantdomain.Reply, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &assistantdomain.Reply{Provider: f.name, Content: f.reply}, nil
}

func userMessage(content string) []assistantdomain.Message {
	return []assistantdomain.Message{{Role: assistantdomain.RoleUser, Content: content}}
}

func TestChainFirstAvailableWins(t *testing.T) {
	chain := NewChain(config.AssistantConfig{})
	first := &fakeProvider{name: "first", available: false}
	second := &fakeProvider{name: "second", available: true, reply: "hi"}
	third := &fakeProvider{name: "third", available: true, reply: "unused"}
	chain.SetProviders(first, second, third)

	reply, err := chain.Complete(context.Background(), userMessage("hello"))
	require.NoError(t, err)
	assert.Equal(t, "second", reply.Provider)
	assert.Equal(t, 0, first.calls)
	assert.Equal(t, 1, second.calls)
	assert.Equal(t, 0, third.calls)
}

func TestChainFallsThroughOnError(t *testing.T) {
	chain := NewChain(config.AssistantConfig{})
	flaky := &fakeProvider{name: "flaky", available: true, err: errors.New("upstream 500")}
	fallback := &fakeProvider{name: "fallback", available: true, reply: "ok"}
	chain.SetProviders(flaky, fallback)

	reply, err := chain.Complete(context.Background(), userMessage("hello"))
	require.NoError(t, err)
	assert.Equal(t, "fallback", reply.Provider)
	assert.Equal(t, 1, flaky.calls)
}

func TestChainNoProviderAvailable(t *testing.T) {
	chain := NewChain(config.AssistantConfig{})
	chain.SetProviders(&fakeProvider{name: "down", available: false})

	_, err := chain.Complete(context.Background(), userMessage("hello"))
	assert.ErrorIs(t, err, assistantdomain.ErrNoProviderAvailable)
}

func TestChainSurfacesLastError(t *testing.T) {
	chain := NewChain(config.AssistantConfig{})
	upstream := errors.New("upstream 500")
	chain.SetProviders(&fakeProvider{name: "only", available: true, err: upstream})

	_, err := chain.Complete(context.Background(), userMessage("hello"))
	assert.ErrorIs(t, err, upstream)
}

func TestRebuildHonorsConfiguredOrder(t *testing.T) {
	chain := NewChain(config.AssistantConfig{
		Providers:     []string{"ollama", "echo"},
		OllamaBaseURL: "http://localhost:11434",
		OllamaModel:   "llama3",
		Timeout:       5 * time.Second,
	})

	providers := chain.Providers()
	require.Len(t, providers, 2)
	assert.Equal(t, "ollama", providers[0].Name())
	assert.Equal(t, "echo", providers[1].Name())
}

func TestServiceChat(t *testing.T) {
	chain := NewChain(config.AssistantConfig{})
	chain.SetProviders(&fakeProvider{name: "fake", available: true, reply: "hello there"})

	svc := &Service{log: zap.NewNop(), enabled: true, chain: chain}

	reply, err := svc.Chat(context.Background(), userMessage("hi"))
	require.NoError(t, err)
	assert.Equal(t, "hello there", reply.Content)

	_, err = svc.Chat(context.Background(), nil)
	assert.ErrorIs(t, err, assistantdomain.ErrEmptyConversation)

	_, err = svc.Chat(context.Background(), []assistantdomain.Message{{Role: "robot", Content: "x"}})
	assert.ErrorIs(t, err, assistantdomain.ErrInvalidRole)

	// Blank messages are dropped, not sent upstream.
	_, err = svc.Chat(context.Background(), []assistantdomain.Message{{Role: assistantdomain.RoleUser, Content: "   "}})
	assert.ErrorIs(t, err, assistantdomain.ErrEmptyConversation)

	disabled := &Service{log: zap.NewNop(), enabled: false, chain: chain}
	_, err = disabled.Chat(context.Background(), userMessage("hi"))
	assert.ErrorIs(t, err, assistantdomain.ErrAssistantDisabled)
}
