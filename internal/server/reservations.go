package server

import (
	"time"

	"github.com/gin-gonic/gin"

	reservationdomain "github.com/lugspot/lugspot/internal/reservation/domain"
)

type createReservationRequest struct {
	LocationID    string  `json:"location_id" binding:"required"`
	StorageUnitID *string `json:"storage_unit_id"`

	GuestName  string `json:"guest_name" binding:"required"`
	GuestEmail string `json:"guest_email" binding:"required"`
	GuestPhone string `json:"guest_phone"`

	StartAt      time.Time `json:"start_at" binding:"required"`
	EndAt        time.Time `json:"end_at" binding:"required"`
	BaggageCount int       `json:"baggage_count"`
}

func (s *Server) CreateReservation(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	locationID, err := optionalID(&req.LocationID)
	if err != nil || locationID == nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	storageUnitID, err := optionalID(req.StorageUnitID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	reservation, err := s.reservationSvc.Create(c.Request.Context(), reservationdomain.CreateRequest{
		TenantID:      tenant,
		LocationID:    *locationID,
		StorageUnitID: storageUnitID,
		GuestName:     req.GuestName,
		GuestEmail:    req.GuestEmail,
		GuestPhone:    req.GuestPhone,
		StartAt:       req.StartAt,
		EndAt:         req.EndAt,
		BaggageCount:  req.BaggageCount,
		Source:        "admin",
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, reservation)
}

func (s *Server) ListReservations(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var opts reservationdomain.ListOptions
	if err := c.ShouldBindQuery(&opts); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.reservationSvc.List(c.Request.Context(), tenant, opts, bindPagination(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondList(c, resp.Reservations, &resp.PageInfo)
}

func (s *Server) GetReservation(c *gin.Context) {
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

	reservation, err := s.reservationSvc.Get(c.Request.Context(), tenant, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, reservation)
}

type transitionRequest struct {
	Status string `json:"status" binding:"required"`
}

func (s *Server) TransitionReservation(c *gin.Context) {
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

	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	reservation, err := s.reservationSvc.Transition(c.Request.Context(), tenant, id, reservationdomain.Status(req.Status))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, reservation)
}
