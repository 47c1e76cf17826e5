// Package option applies common query options to gorm queries.
package option

import (
	"gorm.io/gorm"

	"github.com/lugspot/lugspot/pkg/db/pagination"
)

type Option interface {
	Apply(*gorm.DB) *gorm.DB
}

type paginationOption struct {
	page pagination.Pagination
}

func ApplyPagination(page pagination.Pagination) Option {
	return paginationOption{page: page}
}

func (o paginationOption) Apply(q *gorm.DB) *gorm.DB {
	return q.Offset(o.page.Offset()).Limit(o.page.Limit())
}
