package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	tenantdomain "github.com/lugspot/lugspot/internal/tenant/domain"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  tenantdomain.Repository
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  tenantdomain.Repository
}

func New(p ServiceParam) tenantdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("tenant.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req tenantdomain.CreateRequest) (*tenantdomain.Tenant, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, tenantdomain.ErrInvalidName
	}
	slug := strings.ToLower(strings.TrimSpace(req.Slug))
	if !slugPattern.MatchString(slug) {
		return nil, tenantdomain.ErrInvalidSlug
	}

	existing, err := s.repo.FindBySlug(ctx, s.db, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, tenantdomain.ErrSlugTaken
	}

	tenant := &tenantdomain.Tenant{
		ID:           s.genID.Generate(),
		Name:         name,
		Slug:         slug,
		ContactEmail: strings.TrimSpace(req.ContactEmail),
		IsActive:     true,
	}
	if err := s.repo.Insert(ctx, s.db, tenant); err != nil {
		return nil, err
	}

	s.log.Info("tenant created", zap.String("tenant_id", tenant.ID.String()), zap.String("slug", slug))
	return tenant, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*tenantdomain.Tenant, error) {
	tenant, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, tenantdomain.ErrTenantNotFound
	}
	return tenant, nil
}

func (s *Service) List(ctx context.Context) ([]tenantdomain.Tenant, error) {
	return s.repo.List(ctx, s.db)
}
