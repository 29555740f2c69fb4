// Package link holds short URLs that resolve to asset pages or any web target,
// typically printed as QR codes on asset labels.
package link

import (
	"context"
	"crypto/rand"
	"math/big"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/assetops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

const (
	// DefaultCodeLength is the length of generated codes
	DefaultCodeLength = 7
	// MaxCodeAttempts bounds retries when a generated code collides
	MaxCodeAttempts = 5

	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
)

var codePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{3,32}$`)

// ErrCodeExhausted is returned when no free code was found within MaxCodeAttempts
var ErrCodeExhausted = shared.NewDomainError("SHORT_CODE_EXHAUSTED", "Could not allocate a unique short code")

// ShortURL maps a short code to a target URL
type ShortURL struct {
	shared.TenantAggregateRoot
	Code      string
	TargetURL string
	Title     string
	AssetID   *uuid.UUID
	ExpiresAt *time.Time
	Active    bool
	Clicks    int64
}

// NewShortURL creates an active short URL with the given code
func NewShortURL(tenantID uuid.UUID, code, targetURL, title string) (*ShortURL, error) {
	if err := ValidateCode(code); err != nil {
		return nil, err
	}
	s := &ShortURL{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Active:              true,
	}
	if err := s.apply(targetURL, title); err != nil {
		return nil, err
	}
	return s, nil
}

// Update sets the editable fields; the code is immutable
func (s *ShortURL) Update(targetURL, title string, assetID *uuid.UUID, expiresAt *time.Time, active bool) error {
	if err := s.apply(targetURL, title); err != nil {
		return err
	}
	s.AssetID = assetID
	s.ExpiresAt = expiresAt
	s.Active = active
	s.Touch()
	return nil
}

func (s *ShortURL) apply(targetURL, title string) error {
	targetURL = strings.TrimSpace(targetURL)
	u, err := url.Parse(targetURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return shared.NewDomainError("INVALID_TARGET_URL", "Target URL must be an absolute http or https URL")
	}
	if len(targetURL) > 2048 {
		return shared.NewDomainError("INVALID_TARGET_URL", "Target URL cannot exceed 2048 characters")
	}
	title = strings.TrimSpace(title)
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 200 characters")
	}
	s.TargetURL = targetURL
	s.Title = title
	return nil
}

// IsExpired reports whether the link has passed its expiry
func (s *ShortURL) IsExpired(now time.Time) bool {
	return s.ExpiresAt != nil && !now.Before(*s.ExpiresAt)
}

// CheckResolvable returns ErrGone for inactive or expired links
func (s *ShortURL) CheckResolvable(now time.Time) error {
	if !s.Active || s.IsExpired(now) {
		return shared.ErrGone
	}
	return nil
}

// ValidateCode checks a caller-supplied code
func ValidateCode(code string) error {
	if !codePattern.MatchString(code) {
		return shared.NewDomainError("INVALID_SHORT_CODE", "Code must be 3-32 characters of letters, digits, '_' or '-'")
	}
	return nil
}

// GenerateCode returns a random base62 code of length n
func GenerateCode(n int) (string, error) {
	if n <= 0 {
		n = DefaultCodeLength
	}
	radix := big.NewInt(int64(len(alphabet)))
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, radix)
		if err != nil {
			return "", err
		}
		b.WriteByte(alphabet[idx.Int64()])
	}
	return b.String(), nil
}

// Repository persists short URLs. Codes are unique across tenants.
type Repository interface {
	shared.CrudRepository[ShortURL]
	FindByCode(ctx context.Context, code string) (*ShortURL, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	IncrementClicks(ctx context.Context, id uuid.UUID, delta int64) error
}
