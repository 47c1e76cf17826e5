package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	locationdomain "github.com/lugspot/lugspot/internal/location/domain"
	quotadomain "github.com/lugspot/lugspot/internal/quota/domain"
	storageunitdomain "github.com/lugspot/lugspot/internal/storageunit/domain"
	"github.com/lugspot/lugspot/pkg/db/pagination"
)

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	repo         storageunitdomain.Repository
	locationRepo locationdomain.Repository
	quota        quotadomain.Service
}

type ServiceParam struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Repo         storageunitdomain.Repository
	LocationRepo locationdomain.Repository
	Quota        quotadomain.Service `optional:"true"`
}

func New(p ServiceParam) storageunitdomain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("storageunit.service"),
		genID:        p.GenID,
		repo:         p.Repo,
		locationRepo: p.LocationRepo,
		quota:        p.Quota,
	}
}

func (s *Service) Create(ctx context.Context, req storageunitdomain.CreateRequest) (*storageunitdomain.StorageUnit, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, storageunitdomain.ErrInvalidName
	}

	sizeClass := req.SizeClass
	if sizeClass == "" {
		sizeClass = storageunitdomain.SizeMedium
	}
	if !sizeClass.Valid() {
		return nil, storageunitdomain.ErrInvalidSizeClass
	}

	capacity := req.Capacity
	if capacity == 0 {
		capacity = 1
	}
	if capacity < 1 {
		return nil, storageunitdomain.ErrInvalidCapacity
	}

	// The unit must hang off a location the tenant actually owns.
	location, err := s.locationRepo.FindByID(ctx, s.db, req.TenantID, req.LocationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, storageunitdomain.ErrLocationMismatch
	}

	if s.quota != nil {
		if err := s.quota.CanCreateStorageUnit(ctx, req.TenantID); err != nil {
			return nil, err
		}
	}

	unit := &storageunitdomain.StorageUnit{
		ID:         s.genID.Generate(),
		TenantID:   req.TenantID,
		LocationID: req.LocationID,
		Name:       name,
		SizeClass:  sizeClass,
		Capacity:   capacity,
		IsActive:   true,
	}
	if err := s.repo.Insert(ctx, s.db, unit); err != nil {
		return nil, err
	}

	s.log.Info("storage unit created",
		zap.String("tenant_id", req.TenantID.String()),
		zap.String("storage_unit_id", unit.ID.String()),
		zap.String("location_id", req.LocationID.String()))
	return unit, nil
}

func (s *Service) Update(ctx context.Context, req storageunitdomain.UpdateRequest) (*storageunitdomain.StorageUnit, error) {
	unit, err := s.repo.FindByID(ctx, s.db, req.TenantID, req.StorageUnitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, storageunitdomain.ErrStorageUnitNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, storageunitdomain.ErrInvalidName
		}
		unit.Name = name
	}
	if req.SizeClass != nil {
		if !req.SizeClass.Valid() {
			return nil, storageunitdomain.ErrInvalidSizeClass
		}
		unit.SizeClass = *req.SizeClass
	}
	if req.Capacity != nil {
		if *req.Capacity < 1 {
			return nil, storageunitdomain.ErrInvalidCapacity
		}
		unit.Capacity = *req.Capacity
	}
	if req.IsActive != nil {
		unit.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, s.db, unit); err != nil {
		return nil, err
	}
	return unit, nil
}

func (s *Service) Delete(ctx context.Context, tenantID, id snowflake.ID) error {
	return s.repo.Delete(ctx, s.db, tenantID, id)
}

func (s *Service) Get(ctx context.Context, tenantID, id snowflake.ID) (*storageunitdomain.StorageUnit, error) {
	unit, err := s.repo.FindByID(ctx, s.db, tenantID, id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, storageunitdomain.ErrStorageUnitNotFound
	}
	return unit, nil
}

func (s *Service) List(ctx context.Context, tenantID snowflake.ID, opts storageunitdomain.ListOptions, page pagination.Pagination) (*storageunitdomain.ListResponse, error) {
	units, err := s.repo.List(ctx, s.db, tenantID, opts, page)
	if err != nil {
		return nil, err
	}
	return &storageunitdomain.ListResponse{
		StorageUnits: units,
		PageInfo: pagination.PageInfo{
			NextPageToken: page.NextToken(len(units)),
			PageSize:      int32(page.Limit()),
		},
	}, nil
}
