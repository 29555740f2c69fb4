package finance

import (
	"time"

	"github.com/assetops/backend/internal/domain/shared"
	"github.com/assetops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ConversionPlaces is the precision of converted amounts
const ConversionPlaces = 4

// ForexRate quotes how many units of Quote one unit of Base buys on a date
type ForexRate struct {
	shared.TenantAggregateRoot
	Base          valueobject.Currency
	Quote         valueobject.Currency
	Rate          decimal.Decimal
	EffectiveDate time.Time
}

// NewForexRate creates a rate effective from the given date
func NewForexRate(tenantID uuid.UUID, base, quote valueobject.Currency, rate decimal.Decimal, effective time.Time) (*ForexRate, error) {
	if base == "" || quote == "" {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Base and quote currencies are required")
	}
	if base == quote {
		return nil, shared.NewDomainError("INVALID_CURRENCY_PAIR", "Base and quote currencies must differ")
	}
	f := &ForexRate{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Base:                base,
		Quote:               quote,
	}
	if err := f.apply(rate, effective); err != nil {
		return nil, err
	}
	return f, nil
}

// Update changes the rate and effective date
func (f *ForexRate) Update(rate decimal.Decimal, effective time.Time) error {
	if err := f.apply(rate, effective); err != nil {
		return err
	}
	f.Touch()
	return nil
}

func (f *ForexRate) apply(rate decimal.Decimal, effective time.Time) error {
	if err := valueobject.RequirePositive("rate", rate); err != nil {
		return err
	}
	if effective.IsZero() {
		return shared.NewDomainError("INVALID_EFFECTIVE_DATE", "Effective date is required")
	}
	f.Rate = rate
	f.EffectiveDate = DateOnly(effective)
	return nil
}

// Converts reports whether this rate can convert between from and to in either direction
func (f *ForexRate) Converts(from, to valueobject.Currency) bool {
	return (f.Base == from && f.Quote == to) || (f.Base == to && f.Quote == from)
}

// Convert converts amount from one currency to the other using this rate,
// multiplying for the direct pair and dividing for the inverse.
func (f *ForexRate) Convert(amount decimal.Decimal, from, to valueobject.Currency) (decimal.Decimal, error) {
	switch {
	case f.Base == from && f.Quote == to:
		return amount.Mul(f.Rate).Round(ConversionPlaces), nil
	case f.Base == to && f.Quote == from:
		return amount.DivRound(f.Rate, ConversionPlaces), nil
	}
	return decimal.Zero, shared.NewDomainError("INVALID_CURRENCY_PAIR", "Rate does not quote "+from.String()+"/"+to.String())
}

// Conversion is the outcome of converting an amount on a date
type Conversion struct {
	From          valueobject.Currency
	To            valueobject.Currency
	Amount        decimal.Decimal
	Result        decimal.Decimal
	Rate          decimal.Decimal // effective from->to multiplier, 1 for identity
	EffectiveDate *time.Time
	Inverse       bool
}

// Convert converts using the most recent of the candidate rates. Identity
// conversions need no rate. candidates may hold the direct and the inverse
// quote, either may be nil.
func Convert(amount decimal.Decimal, from, to valueobject.Currency, candidates ...*ForexRate) (*Conversion, error) {
	if from == to {
		return &Conversion{From: from, To: to, Amount: amount, Result: amount.Round(ConversionPlaces), Rate: decimal.NewFromInt(1)}, nil
	}

	var best *ForexRate
	for _, c := range candidates {
		if c == nil || !c.Converts(from, to) {
			continue
		}
		if best == nil || c.EffectiveDate.After(best.EffectiveDate) ||
			(c.EffectiveDate.Equal(best.EffectiveDate) && c.Base == from) {
			best = c
		}
	}
	if best == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "No exchange rate from "+from.String()+" to "+to.String())
	}

	result, err := best.Convert(amount, from, to)
	if err != nil {
		return nil, err
	}
	effective := best.EffectiveDate
	conv := &Conversion{From: from, To: to, Amount: amount, Result: result, EffectiveDate: &effective}
	if best.Base == from {
		conv.Rate = best.Rate
	} else {
		conv.Inverse = true
		conv.Rate = decimal.NewFromInt(1).DivRound(best.Rate, 8)
	}
	return conv, nil
}

// DateOnly truncates t to midnight UTC of its calendar date
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
