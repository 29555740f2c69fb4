package finance

import (
	"time"

	"github.com/assetops/backend/internal/domain/asset"
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/assetops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrNoDepreciationDue is returned when an asset has nothing to post for a period
var ErrNoDepreciationDue = shared.NewDomainError("NO_DEPRECIATION_DUE", "No depreciation is due for the period")

// DepreciationRecord is one monthly depreciation posting for an asset
type DepreciationRecord struct {
	shared.TenantAggregateRoot
	AssetID          uuid.UUID
	Period           string
	Method           asset.DepreciationMethod
	Amount           decimal.Decimal
	AccumulatedAfter decimal.Decimal
	BookValueAfter   decimal.Decimal
	PostedAt         time.Time
}

// Basis is the state a monthly charge is computed from
type Basis struct {
	Method      asset.DepreciationMethod
	Cost        decimal.Decimal
	Residual    decimal.Decimal
	Accumulated decimal.Decimal
	LifeMonths  int
}

// BasisOf reads the depreciation basis of an asset
func BasisOf(a *asset.Asset) Basis {
	return Basis{
		Method:      a.Method,
		Cost:        a.AcquisitionCost,
		Residual:    a.ResidualValue,
		Accumulated: a.AccumulatedDepreciation,
		LifeMonths:  a.UsefulLifeMonths,
	}
}

// Book is cost less accumulated depreciation
func (b Basis) Book() decimal.Decimal {
	return b.Cost.Sub(b.Accumulated)
}

// Remaining is what is left to depreciate before the residual value
func (b Basis) Remaining() decimal.Decimal {
	r := b.Book().Sub(b.Residual)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// MonthlyCharge computes the charge for one month. In the final month of the
// useful life the remaining depreciable amount is charged in full. The charge
// never takes the book value below the residual value.
func MonthlyCharge(b Basis, finalMonth bool) decimal.Decimal {
	remaining := b.Remaining()
	if b.Method == asset.MethodNone || b.LifeMonths <= 0 || remaining.IsZero() {
		return decimal.Zero
	}
	if finalMonth {
		return remaining
	}

	life := decimal.NewFromInt(int64(b.LifeMonths))
	var charge decimal.Decimal
	switch b.Method {
	case asset.MethodStraightLine:
		charge = b.Cost.Sub(b.Residual).Div(life)
	case asset.MethodDecliningBalance:
		charge = b.Book().Mul(decimal.NewFromInt(2)).Div(life)
	default:
		return decimal.Zero
	}
	charge = valueobject.RoundAmount(charge)
	if charge.GreaterThan(remaining) {
		return remaining
	}
	return charge
}

// Post computes the charge for period and applies it to the asset, returning
// the ledger record. ErrNoDepreciationDue is returned for assets acquired after
// the period, with method none, or already depreciated to residual.
func Post(a *asset.Asset, period Period, postedAt time.Time) (*DepreciationRecord, error) {
	if a.IsDisposed() {
		return nil, shared.NewDomainError("ASSET_DISPOSED", "Disposed assets cannot be depreciated")
	}
	if a.AcquisitionDate.After(period.End().Add(24*time.Hour - time.Nanosecond)) {
		return nil, ErrNoDepreciationDue
	}
	elapsed := period.MonthsSince(PeriodOf(a.AcquisitionDate))
	charge := MonthlyCharge(BasisOf(a), elapsed >= a.UsefulLifeMonths-1)
	if charge.IsZero() {
		return nil, ErrNoDepreciationDue
	}
	if err := a.PostDepreciation(charge); err != nil {
		return nil, err
	}
	return &DepreciationRecord{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(a.TenantID),
		AssetID:             a.ID,
		Period:              period.String(),
		Method:              a.Method,
		Amount:              charge,
		AccumulatedAfter:    a.AccumulatedDepreciation,
		BookValueAfter:      a.BookValue(),
		PostedAt:            postedAt,
	}, nil
}

// ScheduleRow is one projected month of depreciation
type ScheduleRow struct {
	Period           string
	Amount           decimal.Decimal
	AccumulatedAfter decimal.Decimal
	BookValueAfter   decimal.Decimal
}

// Schedule projects the monthly charges over the asset's whole useful life,
// starting in the acquisition month from zero accumulated depreciation.
func Schedule(a *asset.Asset) []ScheduleRow {
	rows := make([]ScheduleRow, 0, a.UsefulLifeMonths)
	if a.Method == asset.MethodNone || a.UsefulLifeMonths <= 0 {
		return rows
	}
	b := BasisOf(a)
	b.Accumulated = decimal.Zero
	period := PeriodOf(a.AcquisitionDate)
	for i := 0; i < a.UsefulLifeMonths; i++ {
		charge := MonthlyCharge(b, i == a.UsefulLifeMonths-1)
		if charge.IsZero() {
			break
		}
		b.Accumulated = b.Accumulated.Add(charge)
		rows = append(rows, ScheduleRow{
			Period:           period.String(),
			Amount:           charge,
			AccumulatedAfter: b.Accumulated,
			BookValueAfter:   b.Book(),
		})
		period = period.Next()
	}
	return rows
}

// RunResult summarises a depreciation run
type RunResult struct {
	Period  string `json:"period"`
	Created int    `json:"created"`
	Skipped int    `json:"skipped"`
}
