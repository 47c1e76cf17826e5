package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	"github.com/lugspot/lugspot/internal/tenantcontext"
	"github.com/lugspot/lugspot/pkg/db/pagination"
)

func tenantID(c *gin.Context) (snowflake.ID, bool) {
	return tenantcontext.TenantIDFromContext(c.Request.Context())
}

func pathID(c *gin.Context, name string) (snowflake.ID, error) {
	raw := strings.TrimSpace(c.Param(name))
	if raw == "" {
		return 0, invalidRequestError()
	}
	id, err := snowflake.ParseString(raw)
	if err != nil {
		return 0, invalidRequestError()
	}
	return id, nil
}

func bindPagination(c *gin.Context) pagination.Pagination {
	var page pagination.Pagination
	_ = c.ShouldBindQuery(&page)
	return page
}

func optionalID(raw *string) (*snowflake.ID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	id, err := snowflake.ParseString(strings.TrimSpace(*raw))
	if err != nil {
		return nil, invalidRequestError()
	}
	return &id, nil
}
