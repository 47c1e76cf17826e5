package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	ticketdomain "github.com/lugspot/lugspot/internal/ticket/domain"
	ticketrepo "github.com/lugspot/lugspot/internal/ticket/repository"
)

func newTicketService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&ticketdomain.Ticket{}, &ticketdomain.TicketMessage{}))

	node, err := snowflake.NewNode(4)
	require.NoError(t, err)

	return &Service{
		db:    db,
		log:   zap.NewNop(),
		genID: node,
		repo:  ticketrepo.Provide(),
	}
}

func TestCreateWithInitialMessage(t *testing.T) {
	svc := newTicketService(t)
	tenantID := snowflake.ID(100)

	ticket, err := svc.Create(context.Background(), tenantID, ticketdomain.CreateRequest{
		Subject: "  Broken locker at pier desk  ",
		Body:    "Locker 12 will not open.",
		Author:  ticketdomain.AuthorGuest,
		Name:    "Ada",
	})
	require.NoError(t, err)
	assert.Equal(t, "Broken locker at pier desk", ticket.Subject)
	assert.Equal(t, ticketdomain.StatusOpen, ticket.Status)
	assert.Equal(t, ticketdomain.PriorityNormal, ticket.Priority)
	require.Len(t, ticket.Messages, 1)
	assert.Equal(t, ticketdomain.AuthorGuest, ticket.Messages[0].AuthorKind)
}

func TestCreateValidation(t *testing.T) {
	svc := newTicketService(t)
	tenantID := snowflake.ID(100)

	_, err := svc.Create(context.Background(), tenantID, ticketdomain.CreateRequest{Subject: "   "})
	assert.ErrorIs(t, err, ticketdomain.ErrInvalidSubject)

	_, err = svc.Create(context.Background(), tenantID, ticketdomain.CreateRequest{
		Subject:  "x",
		Priority: ticketdomain.Priority("critical"),
	})
	assert.ErrorIs(t, err, ticketdomain.ErrInvalidPriority)

	_, err = svc.Create(context.Background(), tenantID, ticketdomain.CreateRequest{
		Subject: "x",
		Body:    "hello",
		Author:  ticketdomain.AuthorKind("robot"),
	})
	assert.ErrorIs(t, err, ticketdomain.ErrInvalidAuthor)
}

func TestAppendMessageAndClose(t *testing.T) {
	svc := newTicketService(t)
	tenantID := snowflake.ID(100)

	ticket, err := svc.Create(context.Background(), tenantID, ticketdomain.CreateRequest{Subject: "Billing question"})
	require.NoError(t, err)

	_, err = svc.AppendMessage(context.Background(), tenantID, ticket.ID, ticketdomain.AppendMessageRequest{
		Author: ticketdomain.AuthorStaff,
		Name:   "Sam",
		Body:   "Looking into it.",
	})
	require.NoError(t, err)

	_, err = svc.AppendMessage(context.Background(), tenantID, ticket.ID, ticketdomain.AppendMessageRequest{
		Author: ticketdomain.AuthorStaff,
		Body:   "   ",
	})
	assert.ErrorIs(t, err, ticketdomain.ErrInvalidBody)

	closed, err := svc.Close(context.Background(), tenantID, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, ticketdomain.StatusClosed, closed.Status)

	_, err = svc.AppendMessage(context.Background(), tenantID, ticket.ID, ticketdomain.AppendMessageRequest{
		Author: ticketdomain.AuthorGuest,
		Body:   "Any update?",
	})
	assert.ErrorIs(t, err, ticketdomain.ErrTicketClosed)
}

func TestGuestReplyReopensPendingTicket(t *testing.T) {
	svc := newTicketService(t)
	tenantID := snowflake.ID(100)

	ticket, err := svc.Create(context.Background(), tenantID, ticketdomain.CreateRequest{Subject: "Lost tag"})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), tenantID, ticket.ID, ticketdomain.StatusPending)
	require.NoError(t, err)

	_, err = svc.AppendMessage(context.Background(), tenantID, ticket.ID, ticketdomain.AppendMessageRequest{
		Author: ticketdomain.AuthorGuest,
		Body:   "Found the receipt.",
	})
	require.NoError(t, err)

	fetched, err := svc.Get(context.Background(), tenantID, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, ticketdomain.StatusOpen, fetched.Status)
}

func TestTenantIsolation(t *testing.T) {
	svc := newTicketService(t)

	ticket, err := svc.Create(context.Background(), snowflake.ID(100), ticketdomain.CreateRequest{Subject: "Mine"})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), snowflake.ID(200), ticket.ID)
	assert.ErrorIs(t, err, ticketdomain.ErrTicketNotFound)
}
