package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apikeydomain "github.com/lugspot/lugspot/internal/apikey/domain"
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  apikeydomain.Repository
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  apikeydomain.Repository
}

func New(p ServiceParam) apikeydomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("apikey.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req apikeydomain.CreateRequest) (*apikeydomain.CreateResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apikeydomain.ErrInvalidName
	}

	raw, err := apikeydomain.GenerateRawKey()
	if err != nil {
		return nil, err
	}

	key := apikeydomain.APIKey{
		ID:        s.genID.Generate(),
		TenantID:  req.TenantID,
		Name:      name,
		KeyHash:   apikeydomain.HashAPIKey(raw),
		Scopes:    req.Scopes,
		IsActive:  true,
		ExpiresAt: req.ExpiresAt,
	}
	if err := s.repo.Insert(ctx, s.db, &key); err != nil {
		return nil, err
	}

	s.log.Info("api key created",
		zap.String("tenant_id", req.TenantID.String()),
		zap.String("key_id", key.ID.String()))

	return &apikeydomain.CreateResponse{Key: key, RawKey: raw}, nil
}

func (s *Service) List(ctx context.Context, tenantID snowflake.ID) ([]apikeydomain.APIKey, error) {
	return s.repo.List(ctx, s.db, tenantID)
}

func (s *Service) Revoke(ctx context.Context, tenantID, id snowflake.ID) error {
	return s.repo.Revoke(ctx, s.db, tenantID, id)
}
