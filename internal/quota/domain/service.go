// Package domain defines tenant quota checks.
package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrLocationQuotaExceeded    = errors.New("tenant location quota exceeded")
	ErrStorageUnitQuotaExceeded = errors.New("tenant storage unit quota exceeded")
	ErrWidgetQuotaExceeded      = errors.New("tenant monthly widget reservation quota exceeded")
	ErrQuotaDisabled            = errors.New("quota tracking is disabled")
)

type Service interface {
	CanCreateLocation(ctx context.Context, tenantID snowflake.ID) error
	CanCreateStorageUnit(ctx context.Context, tenantID snowflake.ID) error

	// CanSubmitWidgetReservation counts against a per-tenant monthly budget
	// backed by redis.
	CanSubmitWidgetReservation(ctx context.Context, tenantID snowflake.ID) error

	GetTenantUsage(ctx context.Context, tenantID snowflake.ID) (map[string]int64, error)
}
