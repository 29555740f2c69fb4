package link

import (
	"context"
	"strings"
	"time"

	"github.com/assetops/backend/internal/domain/link"
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Resolved is the part of a short URL the redirect path needs. It is what
// the link caches hold.
type Resolved struct {
	ID        uuid.UUID  `json:"id"`
	TenantID  uuid.UUID  `json:"tenant_id"`
	Code      string     `json:"code"`
	TargetURL string     `json:"target_url"`
	Active    bool       `json:"active"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// NewResolved snapshots a short URL for caching
func NewResolved(s *link.ShortURL) *Resolved {
	return &Resolved{
		ID:        s.ID,
		TenantID:  s.TenantID,
		Code:      s.Code,
		TargetURL: s.TargetURL,
		Active:    s.Active,
		ExpiresAt: s.ExpiresAt,
	}
}

// Check returns ErrGone for inactive or expired links
func (r *Resolved) Check(now time.Time) error {
	if !r.Active || (r.ExpiresAt != nil && !now.Before(*r.ExpiresAt)) {
		return shared.ErrGone
	}
	return nil
}

// Cache holds resolved links by code. Get returns nil, nil on a miss.
type Cache interface {
	Get(ctx context.Context, code string) (*Resolved, error)
	Set(ctx context.Context, r *Resolved) error
	Delete(ctx context.Context, code string) error
}

// QREncoder renders content as a square PNG QR code
type QREncoder interface {
	Encode(content string, size int) ([]byte, error)
}

// ObjectStorage stores rendered files and signs download links
type ObjectStorage interface {
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
}

// PublicURL is the redirect address of a code
func PublicURL(baseURL, code string) string {
	return strings.TrimRight(baseURL, "/") + "/s/" + code
}

type noopCache struct{}

func (noopCache) Get(context.Context, string) (*Resolved, error) { return nil, nil }
func (noopCache) Set(context.Context, *Resolved) error           { return nil }
func (noopCache) Delete(context.Context, string) error           { return nil }
