package finance

import (
	"fmt"
	"time"

	"github.com/assetops/backend/internal/domain/shared"
)

// Period is a calendar month used for depreciation postings
type Period struct {
	Year  int
	Month time.Month
}

// ParsePeriod parses a YYYY-MM period
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, shared.NewDomainError("INVALID_PERIOD", "Period must be in YYYY-MM format")
	}
	return Period{Year: t.Year(), Month: t.Month()}, nil
}

// PeriodOf returns the period containing t
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// String formats the period as YYYY-MM
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Start is the first instant of the period in UTC
func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End is the last day of the period at midnight UTC
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, -1)
}

// Next returns the following period
func (p Period) Next() Period {
	return PeriodOf(p.Start().AddDate(0, 1, 0))
}

// MonthsSince counts whole months from earlier to p; negative when p is earlier
func (p Period) MonthsSince(earlier Period) int {
	return (p.Year-earlier.Year)*12 + int(p.Month) - int(earlier.Month)
}
