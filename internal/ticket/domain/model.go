// Package domain defines support ticket models and contracts.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/lugspot/lugspot/pkg/db/pagination"
)

var (
	ErrTicketNotFound  = errors.New("ticket not found")
	ErrTicketClosed    = errors.New("ticket is closed")
	ErrInvalidSubject  = errors.New("ticket subject is required")
	ErrInvalidBody     = errors.New("message body is required")
	ErrInvalidStatus   = errors.New("invalid ticket status")
	ErrInvalidPriority = errors.New("invalid ticket priority")
	ErrInvalidAuthor   = errors.New("invalid message author kind")
)

type Status string

const (
	StatusOpen    Status = "open"
	StatusPending Status = "pending"
	StatusClosed  Status = "closed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusPending, StatusClosed:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type AuthorKind string

const (
	AuthorStaff AuthorKind = "staff"
	AuthorGuest AuthorKind = "guest"
)

func (a AuthorKind) Valid() bool {
	return a == AuthorStaff || a == AuthorGuest
}

type Ticket struct {
	ID       snowflake.ID `json:"id" gorm:"primaryKey"`
	TenantID snowflake.ID `json:"tenant_id" gorm:"not null;index"`

	Subject  string   `json:"subject" gorm:"type:text;not null"`
	Status   Status   `json:"status" gorm:"type:text;not null;default:'open';index"`
	Priority Priority `json:"priority" gorm:"type:text;not null;default:'normal'"`

	Messages []TicketMessage `json:"messages,omitempty" gorm:"foreignKey:TicketID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Ticket) TableName() string { return "tickets" }

type TicketMessage struct {
	ID       snowflake.ID `json:"id" gorm:"primaryKey"`
	TicketID snowflake.ID `json:"ticket_id" gorm:"not null;index"`

	AuthorKind AuthorKind `json:"author_kind" gorm:"type:text;not null"`
	AuthorName string     `json:"author_name" gorm:"type:text"`
	Body       string     `json:"body" gorm:"type:text;not null"`

	CreatedAt time.Time `json:"created_at"`
}

func (TicketMessage) TableName() string { return "ticket_messages" }

type CreateRequest struct {
	Subject  string     `json:"subject"`
	Priority Priority   `json:"priority"`
	Body     string     `json:"body"`
	Author   AuthorKind `json:"author_kind"`
	Name     string     `json:"author_name"`
}

type AppendMessageRequest struct {
	Author AuthorKind `json:"author_kind"`
	Name   string     `json:"author_name"`
	Body   string     `json:"body"`
}

type ListOptions struct {
	Status   string `form:"status"`
	Priority string `form:"priority"`
}

type ListResponse struct {
	Tickets  []*Ticket           `json:"tickets"`
	PageInfo pagination.PageInfo `json:"page_info"`
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, ticket *Ticket) error
	Update(ctx context.Context, db *gorm.DB, ticket *Ticket) error
	FindByID(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (*Ticket, error)
	List(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, opts ListOptions, page pagination.Pagination) ([]*Ticket, error)
	InsertMessage(ctx context.Context, db *gorm.DB, message *TicketMessage) error
}

type Service interface {
	Create(ctx context.Context, tenantID snowflake.ID, req CreateRequest) (*Ticket, error)
	Get(ctx context.Context, tenantID, id snowflake.ID) (*Ticket, error)
	List(ctx context.Context, tenantID snowflake.ID, opts ListOptions, page pagination.Pagination) (*ListResponse, error)
	AppendMessage(ctx context.Context, tenantID, id snowflake.ID, req AppendMessageRequest) (*TicketMessage, error)
	UpdateStatus(ctx context.Context, tenantID, id snowflake.ID, status Status) (*Ticket, error)
	Close(ctx context.Context, tenantID, id snowflake.ID) (*Ticket, error)
}
