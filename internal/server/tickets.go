package server

import (
	"github.com/gin-gonic/gin"

	ticketdomain "github.com/lugspot/lugspot/internal/ticket/domain"
)

func (s *Server) CreateTicket(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req ticketdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	ticket, err := s.ticketSvc.Create(c.Request.Context(), tenant, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, ticket)
}

func (s *Server) ListTickets(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var opts ticketdomain.ListOptions
	if err := c.ShouldBindQuery(&opts); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.ticketSvc.List(c.Request.Context(), tenant, opts, bindPagination(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondList(c, resp.Tickets, &resp.PageInfo)
}

func (s *Server) GetTicket(c *gin.Context) {
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

	ticket, err := s.ticketSvc.Get(c.Request.Context(), tenant, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, ticket)
}

func (s *Server) AppendTicketMessage(c *gin.Context) {
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

	var req ticketdomain.AppendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	message, err := s.ticketSvc.AppendMessage(c.Request.Context(), tenant, id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, message)
}

type ticketStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (s *Server) UpdateTicketStatus(c *gin.Context) {
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

	var req ticketStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	ticket, err := s.ticketSvc.UpdateStatus(c.Request.Context(), tenant, id, ticketdomain.Status(req.Status))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, ticket)
}

func (s *Server) CloseTicket(c *gin.Context) {
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

	ticket, err := s.ticketSvc.Close(c.Request.Context(), tenant, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, ticket)
}
