package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	ticketdomain "github.com/lugspot/lugspot/internal/ticket/domain"
	"github.com/lugspot/lugspot/pkg/db/option"
	"github.com/lugspot/lugspot/pkg/db/pagination"
)

type repo struct{}

func Provide() ticketdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, ticket *ticketdomain.Ticket) error {
	return db.WithContext(ctx).Create(ticket).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, ticket *ticketdomain.Ticket) error {
	return db.WithContext(ctx).Save(ticket).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (*ticketdomain.Ticket, error) {
	var ticket ticketdomain.Ticket
	err := db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, opts ticketdomain.ListOptions, page pagination.Pagination) ([]*ticketdomain.Ticket, error) {
	var items []*ticketdomain.Ticket

	query := db.WithContext(ctx).
		Model(&ticketdomain.Ticket{}).
		Where("tenant_id = ?", tenantID)

	if opts.Status != "" {
		query = query.Where("status = ?", opts.Status)
	}
	if opts.Priority != "" {
		query = query.Where("priority = ?", opts.Priority)
	}

	query = option.ApplyPagination(page).Apply(query)
	query = query.Order("created_at DESC, id DESC")

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) InsertMessage(ctx context.Context, db *gorm.DB, message *ticketdomain.TicketMessage) error {
	return db.WithContext(ctx).Create(message).Error
}
