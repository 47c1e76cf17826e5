package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	ticketdomain "github.com/lugspot/lugspot/internal/ticket/domain"
	"github.com/lugspot/lugspot/pkg/db/pagination"
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  ticketdomain.Repository
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  ticketdomain.Repository
}

func New(p ServiceParam) ticketdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("ticket.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, tenantID snowflake.ID, req ticketdomain.CreateRequest) (*ticketdomain.Ticket, error) {
	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		return nil, ticketdomain.ErrInvalidSubject
	}

	priority := req.Priority
	if priority == "" {
		priority = ticketdomain.PriorityNormal
	}
	if !priority.Valid() {
		return nil, ticketdomain.ErrInvalidPriority
	}

	body := strings.TrimSpace(req.Body)
	author := req.Author
	if body != "" && !author.Valid() {
		return nil, ticketdomain.ErrInvalidAuthor
	}

	ticket := &ticketdomain.Ticket{
		ID:       s.genID.Generate(),
		TenantID: tenantID,
		Subject:  subject,
		Status:   ticketdomain.StatusOpen,
		Priority: priority,
	}
	if err := s.repo.Insert(ctx, s.db, ticket); err != nil {
		return nil, err
	}

	if body != "" {
		message := &ticketdomain.TicketMessage{
			ID:         s.genID.Generate(),
			TicketID:   ticket.ID,
			AuthorKind: author,
			AuthorName: strings.TrimSpace(req.Name),
			Body:       body,
		}
		if err := s.repo.InsertMessage(ctx, s.db, message); err != nil {
			return nil, err
		}
		ticket.Messages = append(ticket.Messages, *message)
	}

	s.log.Info("ticket created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("ticket_id", ticket.ID.String()),
		zap.String("priority", string(priority)))
	return ticket, nil
}

func (s *Service) Get(ctx context.Context, tenantID, id snowflake.ID) (*ticketdomain.Ticket, error) {
	ticket, err := s.repo.FindByID(ctx, s.db, tenantID, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, ticketdomain.ErrTicketNotFound
	}
	return ticket, nil
}

func (s *Service) List(ctx context.Context, tenantID snowflake.ID, opts ticketdomain.ListOptions, page pagination.Pagination) (*ticketdomain.ListResponse, error) {
	tickets, err := s.repo.List(ctx, s.db, tenantID, opts, page)
	if err != nil {
		return nil, err
	}
	return &ticketdomain.ListResponse{
		Tickets: tickets,
		PageInfo: pagination.PageInfo{
			NextPageToken: page.NextToken(len(tickets)),
			PageSize:      int32(page.Limit()),
		},
	}, nil
}

func (s *Service) AppendMessage(ctx context.Context, tenantID, id snowflake.ID, req ticketdomain.AppendMessageRequest) (*ticketdomain.TicketMessage, error) {
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, ticketdomain.ErrInvalidBody
	}
	if !req.Author.Valid() {
		return nil, ticketdomain.ErrInvalidAuthor
	}

	ticket, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if ticket.Status == ticketdomain.StatusClosed {
		return nil, ticketdomain.ErrTicketClosed
	}

	message := &ticketdomain.TicketMessage{
		ID:         s.genID.Generate(),
		TicketID:   ticket.ID,
		AuthorKind: req.Author,
		AuthorName: strings.TrimSpace(req.Name),
		Body:       body,
	}
	if err := s.repo.InsertMessage(ctx, s.db, message); err != nil {
		return nil, err
	}

	// A guest reply reopens staff attention on the ticket.
	if req.Author == ticketdomain.AuthorGuest && ticket.Status == ticketdomain.StatusPending {
		ticket.Status = ticketdomain.StatusOpen
		if err := s.repo.Update(ctx, s.db, ticket); err != nil {
			return nil, err
		}
	}
	return message, nil
}

func (s *Service) UpdateStatus(ctx context.Context, tenantID, id snowflake.ID, status ticketdomain.Status) (*ticketdomain.Ticket, error) {
	if !status.Valid() {
		return nil, ticketdomain.ErrInvalidStatus
	}

	ticket, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if ticket.Status == status {
		return ticket, nil
	}

	ticket.Status = status
	if err := s.repo.Update(ctx, s.db, ticket); err != nil {
		return nil, err
	}

	s.log.Info("ticket status changed",
		zap.String("ticket_id", ticket.ID.String()),
		zap.String("status", string(status)))
	return ticket, nil
}

func (s *Service) Close(ctx context.Context, tenantID, id snowflake.ID) (*ticketdomain.Ticket, error) {
	return s.UpdateStatus(ctx, tenantID, id, ticketdomain.StatusClosed)
}
