// Package pagination implements token-based list pagination shared by repositories.
package pagination

import (
	"encoding/base64"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Pagination is bound from query parameters on list endpoints.
type Pagination struct {
	PageToken string `form:"page_token"`
	PageSize  int32  `form:"page_size"`
}

// PageInfo is returned alongside list results.
type PageInfo struct {
	NextPageToken string `json:"next_page_token,omitempty"`
	PageSize      int32  `json:"page_size"`
}

// Limit returns the effective page size, clamped to sane bounds.
func (p Pagination) Limit() int {
	size := int(p.PageSize)
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// Offset decodes the opaque page token. An invalid token is treated as the
// first page rather than an error.
func (p Pagination) Offset() int {
	token := strings.TrimSpace(p.PageToken)
	if token == "" {
		return 0
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0
	}
	offset, err := strconv.Atoi(string(raw))
	if err != nil || offset < 0 {
		return 0
	}
	return offset
}

// NextToken encodes the token for the page following the current one, or ""
// when the current page was not full.
func (p Pagination) NextToken(returned int) string {
	if returned < p.Limit() {
		return ""
	}
	next := p.Offset() + returned
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.Itoa(next)))
}
