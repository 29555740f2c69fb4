package models

import (
	"time"

	"github.com/assetops/backend/internal/domain/link"
	"github.com/google/uuid"
)

// ShortURLModel is the persistence model for short links. Codes are unique
// across tenants since they resolve on a public route.
type ShortURLModel struct {
	TenantAggregateModel
	Code      string     `gorm:"type:varchar(32);not null;uniqueIndex"`
	TargetURL string     `gorm:"type:text;not null"`
	Title     string     `gorm:"type:varchar(200)"`
	AssetID   *uuid.UUID `gorm:"type:uuid;index"`
	ExpiresAt *time.Time
	Active    bool  `gorm:"not null;default:true"`
	Clicks    int64 `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ShortURLModel) TableName() string {
	return "short_urls"
}

// ToDomain converts the model to a domain ShortURL
func (m *ShortURLModel) ToDomain() *link.ShortURL {
	return &link.ShortURL{
		TenantAggregateRoot: m.tenantRoot(),
		Code:                m.Code,
		TargetURL:           m.TargetURL,
		Title:               m.Title,
		AssetID:             m.AssetID,
		ExpiresAt:           m.ExpiresAt,
		Active:              m.Active,
		Clicks:              m.Clicks,
	}
}

// FromDomain populates the model from a domain ShortURL
func (m *ShortURLModel) FromDomain(s *link.ShortURL) {
	m.FromDomainTenantAggregateRoot(s.TenantAggregateRoot)
	m.Code = s.Code
	m.TargetURL = s.TargetURL
	m.Title = s.Title
	m.AssetID = s.AssetID
	m.ExpiresAt = s.ExpiresAt
	m.Active = s.Active
	m.Clicks = s.Clicks
}
