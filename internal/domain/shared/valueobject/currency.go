package valueobject

import (
	"strings"

	"github.com/assetops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Currency represents a currency code (ISO 4217)
type Currency string

// DefaultCurrency is used when a tenant has not configured one
const DefaultCurrency Currency = "USD"

// ParseCurrency normalises and validates a three-letter currency code.
// An empty code resolves to fallback.
func ParseCurrency(code string, fallback Currency) (Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return fallback, nil
	}
	if len(code) != 3 {
		return "", shared.NewDomainError("INVALID_CURRENCY", "Currency must be a 3-letter ISO 4217 code")
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", shared.NewDomainError("INVALID_CURRENCY", "Currency must be a 3-letter ISO 4217 code")
		}
	}
	return Currency(code), nil
}

// String returns the code
func (c Currency) String() string {
	return string(c)
}

// RoundAmount rounds a monetary amount half away from zero to 2 places
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// RequireNonNegative returns an INVALID_<field> error when d < 0
func RequireNonNegative(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return shared.NewDomainError("INVALID_"+strings.ToUpper(field), field+" cannot be negative")
	}
	return nil
}

// RequirePositive returns an INVALID_<field> error when d <= 0
func RequirePositive(field string, d decimal.Decimal) error {
	if !d.IsPositive() {
		return shared.NewDomainError("INVALID_"+strings.ToUpper(field), field+" must be positive")
	}
	return nil
}
