package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	locationdomain "github.com/lugspot/lugspot/internal/location/domain"
	quotadomain "github.com/lugspot/lugspot/internal/quota/domain"
	"github.com/lugspot/lugspot/pkg/db/pagination"
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  locationdomain.Repository
	quota quotadomain.Service
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  locationdomain.Repository
	Quota quotadomain.Service `optional:"true"`
}

func New(p ServiceParam) locationdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("location.service"),
		genID: p.GenID,
		repo:  p.Repo,
		quota: p.Quota,
	}
}

func (s *Service) Create(ctx context.Context, req locationdomain.CreateRequest) (*locationdomain.Location, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, locationdomain.ErrInvalidName
	}
	if req.Capacity < 0 {
		return nil, locationdomain.ErrInvalidCapacity
	}

	timezone := strings.TrimSpace(req.Timezone)
	if timezone == "" {
		timezone = "UTC"
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return nil, locationdomain.ErrInvalidTimezone
	}

	if s.quota != nil {
		if err := s.quota.CanCreateLocation(ctx, req.TenantID); err != nil {
			return nil, err
		}
	}

	location := &locationdomain.Location{
		ID:       s.genID.Generate(),
		TenantID: req.TenantID,
		Name:     name,
		Address:  strings.TrimSpace(req.Address),
		City:     strings.TrimSpace(req.City),
		Country:  strings.ToUpper(strings.TrimSpace(req.Country)),
		Timezone: timezone,
		Capacity: req.Capacity,
		IsActive: true,
	}

	if len(req.OpeningHours) > 0 {
		raw, err := json.Marshal(req.OpeningHours)
		if err != nil {
			return nil, err
		}
		location.OpeningHours = datatypes.JSON(raw)
	}

	if err := s.repo.Insert(ctx, s.db, location); err != nil {
		return nil, err
	}

	s.log.Info("location created",
		zap.String("tenant_id", req.TenantID.String()),
		zap.String("location_id", location.ID.String()))
	return location, nil
}

func (s *Service) Update(ctx context.Context, req locationdomain.UpdateRequest) (*locationdomain.Location, error) {
	location, err := s.repo.FindByID(ctx, s.db, req.TenantID, req.LocationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, locationdomain.ErrLocationNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, locationdomain.ErrInvalidName
		}
		location.Name = name
	}
	if req.Address != nil {
		location.Address = strings.TrimSpace(*req.Address)
	}
	if req.City != nil {
		location.City = strings.TrimSpace(*req.City)
	}
	if req.Country != nil {
		location.Country = strings.ToUpper(strings.TrimSpace(*req.Country))
	}
	if req.Timezone != nil {
		timezone := strings.TrimSpace(*req.Timezone)
		if _, err := time.LoadLocation(timezone); err != nil {
			return nil, locationdomain.ErrInvalidTimezone
		}
		location.Timezone = timezone
	}
	if req.Capacity != nil {
		if *req.Capacity < 0 {
			return nil, locationdomain.ErrInvalidCapacity
		}
		location.Capacity = *req.Capacity
	}
	if req.IsActive != nil {
		location.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, s.db, location); err != nil {
		return nil, err
	}
	return location, nil
}

func (s *Service) Delete(ctx context.Context, tenantID, id snowflake.ID) error {
	return s.repo.Delete(ctx, s.db, tenantID, id)
}

func (s *Service) Get(ctx context.Context, tenantID, id snowflake.ID) (*locationdomain.Location, error) {
	location, err := s.repo.FindByID(ctx, s.db, tenantID, id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, locationdomain.ErrLocationNotFound
	}
	return location, nil
}

func (s *Service) List(ctx context.Context, tenantID snowflake.ID, opts locationdomain.ListOptions, page pagination.Pagination) (*locationdomain.ListResponse, error) {
	locations, err := s.repo.List(ctx, s.db, tenantID, opts, page)
	if err != nil {
		return nil, err
	}
	return &locationdomain.ListResponse{
		Locations: locations,
		PageInfo: pagination.PageInfo{
			NextPageToken: page.NextToken(len(locations)),
			PageSize:      int32(page.Limit()),
		},
	}, nil
}
