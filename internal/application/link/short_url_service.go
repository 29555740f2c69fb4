// Package link manages short URLs, their public redirect and QR codes.
package link

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/assetops/backend/internal/application/crud"
	"github.com/assetops/backend/internal/application/session"
	"github.com/assetops/backend/internal/domain/asset"
	"github.com/assetops/backend/internal/domain/link"
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/assetops/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const clickTimeout = 5 * time.Second

// Config holds the short link settings
type Config struct {
	BaseURL    string
	CodeLength int
}

// ShortURLService manages short URLs and resolves codes for the redirect route
type ShortURLService struct {
	repo      link.Repository
	assetRepo asset.AssetRepository
	cache     Cache
	config    Config
	now       func() time.Time
	clicks    sync.WaitGroup
}

// NewShortURLService creates a new short URL service. A nil cache resolves
// every code from the repository.
func NewShortURLService(repo link.Repository, assetRepo asset.AssetRepository, cache Cache, cfg Config) *ShortURLService {
	if cache == nil {
		cache = noopCache{}
	}
	if cfg.CodeLength <= 0 {
		cfg.CodeLength = link.DefaultCodeLength
	}
	return &ShortURLService{
		repo:      repo,
		assetRepo: assetRepo,
		cache:     cache,
		config:    cfg,
		now:       time.Now,
	}
}

// Create creates a short URL with the given or a generated code
func (s *ShortURLService) Create(ctx context.Context, input CreateShortURLInput) (*ShortURLDTO, error) {
	sess, err := session.Require(ctx)
	if err != nil {
		return nil, err
	}
	code, err := s.claimCode(ctx, strings.TrimSpace(input.Code))
	if err != nil {
		return nil, err
	}
	sl, err := link.NewShortURL(sess.TenantID, code, input.TargetURL, input.Title)
	if err != nil {
		return nil, err
	}
	if err := crud.Ensure(ctx, s.assetRepo, sess.TenantID, input.AssetID, "asset_id"); err != nil {
		return nil, err
	}
	if input.ExpiresAt != nil && !input.ExpiresAt.After(s.now()) {
		return nil, shared.NewDomainError("INVALID_EXPIRY", "Expiry must be in the future")
	}
	sl.AssetID = input.AssetID
	sl.ExpiresAt = input.ExpiresAt
	sl.SetCreatedBy(sess.UserID)

	if err := s.repo.Save(ctx, sl); err != nil {
		return nil, err
	}
	logger.L(ctx).Info("Short URL created", zap.String("id", sl.ID.String()), zap.String("code", sl.Code))
	dto := toShortURLDTO(sl, s.config.BaseURL)
	return &dto, nil
}

// claimCode validates a requested code, or generates a free one
func (s *ShortURLService) claimCode(ctx context.Context, requested string) (string, error) {
	if requested != "" {
		if err := link.ValidateCode(requested); err != nil {
			return "", err
		}
		exists, err := s.repo.ExistsByCode(ctx, requested)
		if err != nil {
			return "", err
		}
		if exists {
			return "", shared.NewDomainError("ALREADY_EXISTS", "Short code already in use")
		}
		return requested, nil
	}
	for range link.MaxCodeAttempts {
		code, err := link.GenerateCode(s.config.CodeLength)
		if err != nil {
			return "", err
		}
		exists, err := s.repo.ExistsByCode(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
		logger.L(ctx).Debug("Generated short code collided", zap.String("code", code))
	}
	return "", link.ErrCodeExhausted
}

// Get returns a short URL
func (s *ShortURLService) Get(ctx context.Context, id uuid.UUID) (*ShortURLDTO, error) {
	sl, err := crud.Find(ctx, s.repo, id, "Short URL")
	if err != nil {
		return nil, err
	}
	dto := toShortURLDTO(sl, s.config.BaseURL)
	return &dto, nil
}

// List returns a page of short URLs
func (s *ShortURLService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ShortURLDTO], error) {
	return crud.List(ctx, s.repo, filter, func(sl *link.ShortURL) ShortURLDTO {
		return toShortURLDTO(sl, s.config.BaseURL)
	})
}

// Update changes the target and state of a short URL. The code is kept.
func (s *ShortURLService) Update(ctx context.Context, id uuid.UUID, input UpdateShortURLInput) (*ShortURLDTO, error) {
	sl, err := crud.Find(ctx, s.repo, id, "Short URL")
	if err != nil {
		return nil, err
	}
	if err := crud.Ensure(ctx, s.assetRepo, sl.TenantID, input.AssetID, "asset_id"); err != nil {
		return nil, err
	}
	active := sl.Active
	if input.Active != nil {
		active = *input.Active
	}
	if err := sl.Update(input.TargetURL, input.Title, input.AssetID, input.ExpiresAt, active); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, sl); err != nil {
		return nil, err
	}
	s.invalidate(ctx, sl.Code)
	dto := toShortURLDTO(sl, s.config.BaseURL)
	return &dto, nil
}

// Delete removes a short URL
func (s *ShortURLService) Delete(ctx context.Context, id uuid.UUID) error {
	sl, err := crud.Find(ctx, s.repo, id, "Short URL")
	if err != nil {
		return err
	}
	if err := crud.Delete(ctx, s.repo, id, "Short URL"); err != nil {
		return err
	}
	s.invalidate(ctx, sl.Code)
	return nil
}

func (s *ShortURLService) invalidate(ctx context.Context, code string) {
	if err := s.cache.Delete(ctx, code); err != nil {
		logger.L(ctx).Warn("Failed to invalidate short URL cache", zap.String("code", code), zap.Error(err))
	}
}

// Resolve returns the target of a code for the public redirect. Inactive and
// expired links are GONE. The click is counted in the background.
func (s *ShortURLService) Resolve(ctx context.Context, code string) (string, error) {
	if link.ValidateCode(code) != nil {
		return "", shared.NewNotFoundError("Short URL")
	}
	r, err := s.cache.Get(ctx, code)
	if err != nil {
		logger.L(ctx).Warn("Short URL cache read failed", zap.String("code", code), zap.Error(err))
	}
	if r == nil {
		sl, err := s.repo.FindByCode(ctx, code)
		if err != nil {
			return "", shared.MapNotFound(err, "Short URL")
		}
		r = NewResolved(sl)
		if err := s.cache.Set(ctx, r); err != nil {
			logger.L(ctx).Warn("Short URL cache write failed", zap.String("code", code), zap.Error(err))
		}
	}
	if err := r.Check(s.now()); err != nil {
		return "", err
	}
	s.countClick(ctx, r.ID)
	return r.TargetURL, nil
}

func (s *ShortURLService) countClick(ctx context.Context, id uuid.UUID) {
	log := logger.L(ctx)
	ctx = context.WithoutCancel(ctx)
	s.clicks.Go(func() {
		ctx, cancel := context.WithTimeout(ctx, clickTimeout)
		defer cancel()
		if err := s.repo.IncrementClicks(ctx, id, 1); err != nil {
			log.Warn("Failed to count short URL click", zap.String("id", id.String()), zap.Error(err))
		}
	})
}

// Wait blocks until pending click updates are written
func (s *ShortURLService) Wait() {
	s.clicks.Wait()
}
