package partner

import (
	"time"

	"github.com/assetops/backend/internal/domain/partner"
	"github.com/google/uuid"
)

// PartnerDTO represents a partner
type PartnerDTO struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	TaxID     string    `json:"tax_id,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// PartnerInput creates or updates a partner. Code is ignored on update.
type PartnerInput struct {
	Code    string `json:"code" binding:"max=50"`
	Name    string `json:"name" binding:"required,max=200"`
	Type    string `json:"type" binding:"omitempty,oneof=supplier lessor lessee customer other"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone" binding:"max=50"`
	Address string `json:"address"`
	TaxID   string `json:"tax_id" binding:"max=50"`
	Active  *bool  `json:"active"`
}

func toPartnerDTO(p *partner.Partner) PartnerDTO {
	return PartnerDTO{
		ID:        p.ID,
		Code:      p.Code,
		Name:      p.Name,
		Type:      string(p.Type),
		Email:     p.Email,
		Phone:     p.Phone,
		Address:   p.Address,
		TaxID:     p.TaxID,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Version:   p.Version,
	}
}
