// Package domain contains API key persistence and hashing.
package domain

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	ErrKeyNotFound = errors.New("api key not found")
	ErrInvalidName = errors.New("api key name is required")
)

const keyPrefix = "lsk_"

// APIKey authenticates a tenant's server-to-server calls. Only the SHA-256
// hash of the key is stored.
type APIKey struct {
	ID         snowflake.ID   `json:"id" gorm:"primaryKey"`
	TenantID   snowflake.ID   `json:"tenant_id" gorm:"not null;index"`
	Name       string         `json:"name" gorm:"type:text;not null"`
	KeyHash    string         `json:"-" gorm:"type:text;not null;uniqueIndex"`
	Scopes     pq.StringArray `json:"scopes" gorm:"type:text[]"`
	IsActive   bool           `json:"is_active" gorm:"not null;default:true"`
	ExpiresAt  *time.Time     `json:"expires_at,omitempty"`
	LastUsedAt *time.Time     `json:"last_used_at,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

func (APIKey) TableName() string { return "api_keys" }

// HashAPIKey returns the hex SHA-256 digest of a raw key.
func HashAPIKey(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// GenerateRawKey produces a new random key with the public prefix.
func GenerateRawKey() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return keyPrefix + hex.EncodeToString(buf), nil
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, key *APIKey) error
	List(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) ([]APIKey, error)
	Revoke(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) error
}

type CreateRequest struct {
	TenantID  snowflake.ID
	Name      string
	Scopes    []string
	ExpiresAt *time.Time
}

// CreateResponse carries the raw key exactly once, at creation time.
type CreateResponse struct {
	Key    APIKey `json:"key"`
	RawKey string `json:"raw_key"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*CreateResponse, error)
	List(ctx context.Context, tenantID snowflake.ID) ([]APIKey, error)
	Revoke(ctx context.Context, tenantID, id snowflake.ID) error
}
