package finance

import (
	"time"

	"github.com/assetops/backend/internal/domain/finance"
	"github.com/assetops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetDTO represents a budget with its derived figures
type BudgetDTO struct {
	ID           uuid.UUID       `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	FiscalYear   int             `json:"fiscal_year"`
	CostCentreID *uuid.UUID      `json:"cost_centre_id,omitempty"`
	CategoryID   *uuid.UUID      `json:"category_id,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Spent        decimal.Decimal `json:"spent"`
	Remaining    decimal.Decimal `json:"remaining"`
	Utilisation  decimal.Decimal `json:"utilisation"`
	Status       string          `json:"status"`
	ApprovedBy   *uuid.UUID      `json:"approved_by,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Version      int             `json:"version"`
}

// BudgetInput creates or updates a budget. Code is ignored on update.
type BudgetInput struct {
	Code         string          `json:"code" binding:"max=50"`
	Name         string          `json:"name" binding:"required,max=200"`
	FiscalYear   int             `json:"fiscal_year" binding:"required,min=1900,max=9999"`
	CostCentreID *uuid.UUID      `json:"cost_centre_id"`
	CategoryID   *uuid.UUID      `json:"category_id"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency" binding:"omitempty,len=3"`
}

// ForexRateDTO represents an exchange rate
type ForexRateDTO struct {
	ID            uuid.UUID        `json:"id"`
	Base          string           `json:"base_currency"`
	Quote         string           `json:"quote_currency"`
	Rate          decimal.Decimal  `json:"rate"`
	EffectiveDate valueobject.Date `json:"effective_date"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	Version       int              `json:"version"`
}

// CreateForexRateInput is the body of POST /forex-rates
type CreateForexRateInput struct {
	Base          string           `json:"base_currency" binding:"required,len=3"`
	Quote         string           `json:"quote_currency" binding:"required,len=3,nefield=Base"`
	Rate          decimal.Decimal  `json:"rate"`
	EffectiveDate valueobject.Date `json:"effective_date"`
}

// UpdateForexRateInput is the body of PUT /forex-rates/:id
type UpdateForexRateInput struct {
	Rate          decimal.Decimal  `json:"rate"`
	EffectiveDate valueobject.Date `json:"effective_date"`
}

// ConvertInput is the query of GET /forex-rates/convert. Amount is parsed by
// the handler.
type ConvertInput struct {
	From   string          `form:"from" binding:"required,len=3"`
	To     string          `form:"to" binding:"required,len=3"`
	Amount decimal.Decimal `form:"-"`
	Date   string          `form:"date"`
}

// ConversionDTO is the result of a conversion
type ConversionDTO struct {
	From          string            `json:"from"`
	To            string            `json:"to"`
	Amount        decimal.Decimal   `json:"amount"`
	Result        decimal.Decimal   `json:"result"`
	Rate          decimal.Decimal   `json:"rate"`
	Inverse       bool              `json:"inverse"`
	EffectiveDate *valueobject.Date `json:"effective_date,omitempty"`
}

// DepreciationRecordDTO represents one posted month
type DepreciationRecordDTO struct {
	ID               uuid.UUID       `json:"id"`
	AssetID          uuid.UUID       `json:"asset_id"`
	Period           string          `json:"period"`
	Method           string          `json:"method"`
	Amount           decimal.Decimal `json:"amount"`
	AccumulatedAfter decimal.Decimal `json:"accumulated_after"`
	BookValueAfter   decimal.Decimal `json:"book_value_after"`
	PostedAt         time.Time       `json:"posted_at"`
	CreatedAt        time.Time       `json:"created_at"`
}

// RunInput is the body of POST /depreciation/run
type RunInput struct {
	Period string `json:"period" binding:"required"`
}

// ScheduleRowDTO is one projected month
type ScheduleRowDTO struct {
	Period           string          `json:"period"`
	Amount           decimal.Decimal `json:"amount"`
	AccumulatedAfter decimal.Decimal `json:"accumulated_after"`
	BookValueAfter   decimal.Decimal `json:"book_value_after"`
}

// ScheduleDTO is the projected depreciation of one asset
type ScheduleDTO struct {
	AssetID          uuid.UUID        `json:"asset_id"`
	Tag              string           `json:"tag"`
	Method           string           `json:"method"`
	Cost             decimal.Decimal  `json:"cost"`
	Residual         decimal.Decimal  `json:"residual_value"`
	UsefulLifeMonths int              `json:"useful_life_months"`
	Total            decimal.Decimal  `json:"total"`
	Rows             []ScheduleRowDTO `json:"rows"`
}

func toBudgetDTO(b *finance.Budget) BudgetDTO {
	return BudgetDTO{
		ID:           b.ID,
		Code:         b.Code,
		Name:         b.Name,
		FiscalYear:   b.FiscalYear,
		CostCentreID: b.CostCentreID,
		CategoryID:   b.CategoryID,
		Amount:       b.Amount,
		Currency:     b.Currency.String(),
		Spent:        b.Spent,
		Remaining:    b.Remaining(),
		Utilisation:  b.Utilisation(),
		Status:       string(b.Status),
		ApprovedBy:   b.ApprovedBy,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
		Version:      b.Version,
	}
}

func toForexRateDTO(f *finance.ForexRate) ForexRateDTO {
	return ForexRateDTO{
		ID:            f.ID,
		Base:          f.Base.String(),
		Quote:         f.Quote.String(),
		Rate:          f.Rate,
		EffectiveDate: valueobject.NewDate(f.EffectiveDate),
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
		Version:       f.Version,
	}
}

// ToDepreciationRecordDTO converts a record for other packages rendering ledger rows
func ToDepreciationRecordDTO(r *finance.DepreciationRecord) DepreciationRecordDTO {
	return DepreciationRecordDTO{
		ID:               r.ID,
		AssetID:          r.AssetID,
		Period:           r.Period,
		Method:           string(r.Method),
		Amount:           r.Amount,
		AccumulatedAfter: r.AccumulatedAfter,
		BookValueAfter:   r.BookValueAfter,
		PostedAt:         r.PostedAt,
		CreatedAt:        r.CreatedAt,
	}
}

// ToBudgetDTO converts a budget for other packages rendering budget rows
func ToBudgetDTO(b *finance.Budget) BudgetDTO {
	return toBudgetDTO(b)
}
