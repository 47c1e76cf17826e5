package server

import (
	"github.com/gin-gonic/gin"

	locationdomain "github.com/lugspot/lugspot/internal/location/domain"
)

type createLocationRequest struct {
	Name         string         `json:"name" binding:"required"`
	Address      string         `json:"address"`
	City         string         `json:"city"`
	Country      string         `json:"country"`
	Timezone     string         `json:"timezone"`
	Capacity     int            `json:"capacity"`
	OpeningHours map[string]any `json:"opening_hours"`
}

func (s *Server) CreateLocation(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req createLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	location, err := s.locationSvc.Create(c.Request.Context(), locationdomain.CreateRequest{
		TenantID:     tenant,
		Name:         req.Name,
		Address:      req.Address,
		City:         req.City,
		Country:      req.Country,
		Timezone:     req.Timezone,
		Capacity:     req.Capacity,
		OpeningHours: req.OpeningHours,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, location)
}

func (s *Server) ListLocations(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var opts locationdomain.ListOptions
	if err := c.ShouldBindQuery(&opts); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.locationSvc.List(c.Request.Context(), tenant, opts, bindPagination(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondList(c, resp.Locations, &resp.PageInfo)
}

func (s *Server) GetLocation(c *gin.Context) {
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

	location, err := s.locationSvc.Get(c.Request.Context(), tenant, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, location)
}

type updateLocationRequest struct {
	Name     *string `json:"name"`
	Address  *string `json:"address"`
	City     *string `json:"city"`
	Country  *string `json:"country"`
	Timezone *string `json:"timezone"`
	Capacity *int    `json:"capacity"`
	IsActive *bool   `json:"is_active"`
}

func (s *Server) UpdateLocation(c *gin.Context) {
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

	var req updateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	location, err := s.locationSvc.Update(c.Request.Context(), locationdomain.UpdateRequest{
		TenantID:   tenant,
		LocationID: id,
		Name:       req.Name,
		Address:    req.Address,
		City:       req.City,
		Country:    req.Country,
		Timezone:   req.Timezone,
		Capacity:   req.Capacity,
		IsActive:   req.IsActive,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, location)
}

func (s *Server) DeleteLocation(c *gin.Context) {
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

	if err := s.locationSvc.Delete(c.Request.Context(), tenant, id); err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, gin.H{"deleted": true})
}
