package link

import (
	"time"

	"github.com/assetops/backend/internal/domain/link"
	"github.com/google/uuid"
)

// ShortURLDTO represents a short URL
type ShortURLDTO struct {
	ID        uuid.UUID  `json:"id"`
	Code      string     `json:"code"`
	TargetURL string     `json:"target_url"`
	Title     string     `json:"title,omitempty"`
	AssetID   *uuid.UUID `json:"asset_id,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Active    bool       `json:"active"`
	Clicks    int64      `json:"clicks"`
	PublicURL string     `json:"public_url"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Version   int        `json:"version"`
}

// CreateShortURLInput is the body of POST /short-urls. An empty code is
// generated.
type CreateShortURLInput struct {
	Code      string     `json:"code" binding:"omitempty,min=3,max=32"`
	TargetURL string     `json:"target_url" binding:"required,url,max=2048"`
	Title     string     `json:"title" binding:"max=200"`
	AssetID   *uuid.UUID `json:"asset_id"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// UpdateShortURLInput is the body of PUT /short-urls/:id
type UpdateShortURLInput struct {
	TargetURL string     `json:"target_url" binding:"required,url,max=2048"`
	Title     string     `json:"title" binding:"max=200"`
	AssetID   *uuid.UUID `json:"asset_id"`
	ExpiresAt *time.Time `json:"expires_at"`
	Active    *bool      `json:"active"`
}

// QRInput is the body of POST /qr-codes. Exactly one of Text and ShortURLID
// is set.
type QRInput struct {
	Text       string     `json:"text" binding:"max=2048"`
	ShortURLID *uuid.UUID `json:"short_url_id"`
	Size       int        `json:"size" binding:"omitempty,min=64,max=1024"`
}

// QRResult carries an encoded QR code. When the image was stored, URL is a
// presigned download link and PNG is empty.
type QRResult struct {
	Content     string     `json:"content"`
	Size        int        `json:"size"`
	ContentType string     `json:"content_type"`
	Key         string     `json:"key,omitempty"`
	URL         string     `json:"url,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	PNG         []byte     `json:"-"`
}

// Stored reports whether the image was uploaded to object storage
func (r *QRResult) Stored() bool {
	return r.URL != ""
}

func toShortURLDTO(s *link.ShortURL, baseURL string) ShortURLDTO {
	return ShortURLDTO{
		ID:        s.ID,
		Code:      s.Code,
		TargetURL: s.TargetURL,
		Title:     s.Title,
		AssetID:   s.AssetID,
		ExpiresAt: s.ExpiresAt,
		Active:    s.Active,
		Clicks:    s.Clicks,
		PublicURL: PublicURL(baseURL, s.Code),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		Version:   s.Version,
	}
}
