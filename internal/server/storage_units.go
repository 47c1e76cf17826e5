package server

import (
	"github.com/gin-gonic/gin"

	storageunitdomain "github.com/lugspot/lugspot/internal/storageunit/domain"
)

type createStorageUnitRequest struct {
	LocationID string `json:"location_id" binding:"required"`
	Name       string `json:"name" binding:"required"`
	SizeClass  string `json:"size_class"`
	Capacity   int    `json:"capacity"`
}

func (s *Server) CreateStorageUnit(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req createStorageUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	locationID, err := optionalID(&req.LocationID)
	if err != nil || locationID == nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	unit, err := s.storageUnitSvc.Create(c.Request.Context(), storageunitdomain.CreateRequest{
		TenantID:   tenant,
		LocationID: *locationID,
		Name:       req.Name,
		SizeClass:  storageunitdomain.SizeClass(req.SizeClass),
		Capacity:   req.Capacity,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, unit)
}

func (s *Server) ListStorageUnits(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var opts storageunitdomain.ListOptions
	if err := c.ShouldBindQuery(&opts); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.storageUnitSvc.List(c.Request.Context(), tenant, opts, bindPagination(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondList(c, resp.StorageUnits, &resp.PageInfo)
}

func (s *Server) GetStorageUnit(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	id, err := pathID(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	unit, err := s.storageUnitSvc.Get(c.Request.Context(), tenant, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, unit)
}

type updateStorageUnitRequest struct {
	Name      *string `json:"name"`
	SizeClass *string `json:"size_class"`
	Capacity  *int    `json:"capacity"`
	IsActive  *bool   `json:"is_active"`
}

func (s *Server) UpdateStorageUnit(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	id, err := pathID(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req updateStorageUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var sizeClass *storageunitdomain.SizeClass
	if req.SizeClass != nil {
		sc := storageunitdomain.SizeClass(*req.SizeClass)
		sizeClass = &sc
	}

	unit, err := s.storageUnitSvc.Update(c.Request.Context(), storageunitdomain.UpdateRequest{
		TenantID:      tenant,
		StorageUnitID: id,
		Name:          req.Name,
		SizeClass:     sizeClass,
		Capacity:      req.Capacity,
		IsActive:      req.IsActive,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, unit)
}

func (s *Server) DeleteStorageUnit(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	id, err := pathID(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.storageUnitSvc.Delete(c.Request.Context(), tenant, id); err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, gin.H{"deleted": true})
}
