package service

import (
	"context"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"

	assistantdomain "github.com/lugspot/lugspot/internal/assistant/domain"
	"github.com/lugspot/lugspot/internal/config"
)

type Service struct {
	log     *zap.Logger
	enabled bool
	chain   *Chain
}

type ServiceParam struct {
	fx.In

	Log    *zap.Logger
	Config config.Config
	Chain  *Chain
}

func NewChainFromConfig(cfg config.Config) *Chain {
	return NewChain(cfg.Assistant)
}

func New(p ServiceParam) assistantdomain.Service {
	return &Service{
		log:     p.Log.Named("assistant.service"),
		enabled: p.Config.Assistant.Enabled,
		chain:   p.Chain,
	}
}

func (s *Service) Chat(ctx context.Context, messages []assistantdomain.Message) (*assistantdomain.Reply, error) {
	if !s.enabled {
		return nil, assistantdomain.ErrAssistantDisabled
	}

	cleaned := make([]assistantdomain.Message, 0, len(messages))
	for _, m := range messages {
		if !m.Role.Valid() {
			return nil, assistantdomain.ErrInvalidRole
		}
		content := strings.TrimSpace(m.Content)
		if content == "" {
			continue
		}
		cleaned = append(cleaned, assistantdomain.Message{Role: m.Role, Content: content})
	}
	if len(cleaned) == 0 {
		return nil, assistantdomain.ErrEmptyConversation
	}

	reply, err := s.chain.Complete(ctx, cleaned)
	if err != nil {
		s.log.Error("assistant completion failed", zap.Error(err))
		return nil, err
	}

	s.log.Debug("assistant reply",
		zap.String("provider", reply.Provider),
		zap.Int("messages", len(cleaned)))
	return reply, nil
}
