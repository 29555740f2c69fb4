package link

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/assetops/backend/internal/application/crud"
	"github.com/assetops/backend/internal/application/session"
	"github.com/assetops/backend/internal/domain/link"
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/assetops/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// QR code size bounds in pixels
const (
	DefaultQRSize = 256
	MinQRSize     = 64
	MaxQRSize     = 1024

	pngContentType = "image/png"
)

// QRService encodes short URLs and free text as QR codes
type QRService struct {
	repo          link.Repository
	encoder       QREncoder
	storage       ObjectStorage
	baseURL       string
	presignExpiry time.Duration
}

// NewQRService creates a new QR service. A nil storage returns images inline.
func NewQRService(repo link.Repository, encoder QREncoder, storage ObjectStorage, baseURL string, presignExpiry time.Duration) *QRService {
	return &QRService{
		repo:          repo,
		encoder:       encoder,
		storage:       storage,
		baseURL:       baseURL,
		presignExpiry: presignExpiry,
	}
}

// ForShortURL encodes the public URL of a short URL. With storage enabled the
// PNG is uploaded and a presigned link returned.
func (s *QRService) ForShortURL(ctx context.Context, id uuid.UUID, size int) (*QRResult, error) {
	size, err := normalizeSize(size)
	if err != nil {
		return nil, err
	}
	sl, err := crud.Find(ctx, s.repo, id, "Short URL")
	if err != nil {
		return nil, err
	}
	result, err := s.encode(PublicURL(s.baseURL, sl.Code), size)
	if err != nil {
		return nil, err
	}
	if s.storage == nil {
		return result, nil
	}
	key := fmt.Sprintf("qr/%s/%s-%d.png", sl.TenantID, sl.ID, size)
	if err := s.store(ctx, key, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Generate encodes free text, or the public URL of a short URL when one is
// referenced. Free text is always returned inline.
func (s *QRService) Generate(ctx context.Context, input QRInput) (*QRResult, error) {
	if _, err := session.Require(ctx); err != nil {
		return nil, err
	}
	text := strings.TrimSpace(input.Text)
	switch {
	case input.ShortURLID != nil && text != "":
		return nil, shared.NewDomainError("INVALID_INPUT", "Provide either text or short_url_id, not both")
	case input.ShortURLID != nil:
		return s.ForShortURL(ctx, *input.ShortURLID, input.Size)
	case text == "":
		return nil, shared.NewDomainError("INVALID_INPUT", "Text or short_url_id is required")
	}
	size, err := normalizeSize(input.Size)
	if err != nil {
		return nil, err
	}
	return s.encode(text, size)
}

func (s *QRService) encode(content string, size int) (*QRResult, error) {
	png, err := s.encoder.Encode(content, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	return &QRResult{
		Content:     content,
		Size:        size,
		ContentType: pngContentType,
		PNG:         png,
	}, nil
}

func (s *QRService) store(ctx context.Context, key string, result *QRResult) error {
	if err := s.storage.Upload(ctx, key, result.PNG, pngContentType); err != nil {
		return fmt.Errorf("upload qr code: %w", err)
	}
	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, key, s.presignExpiry)
	if err != nil {
		return fmt.Errorf("sign qr code url: %w", err)
	}
	logger.L(ctx).Debug("QR code stored", zap.String("key", key))
	result.Key = key
	result.URL = url
	result.ExpiresAt = &expiresAt
	result.PNG = nil
	return nil
}

func normalizeSize(size int) (int, error) {
	if size == 0 {
		return DefaultQRSize, nil
	}
	if size < MinQRSize || size > MaxQRSize {
		return 0, shared.NewDomainError("INVALID_QR_SIZE", fmt.Sprintf("Size must be between %d and %d", MinQRSize, MaxQRSize))
	}
	return size, nil
}
