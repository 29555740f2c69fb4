package lease

import (
	"strings"
	"time"

	"github.com/assetops/backend/internal/domain/shared"
	"github.com/assetops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Direction says which side of the lease the tenant is on
type Direction string

const (
	DirectionLessee Direction = "lessee"
	DirectionLessor Direction = "lessor"
)

// Frequency is the payment interval
type Frequency string

const (
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

// Months returns the interval length in months
func (f Frequency) Months() int {
	switch f {
	case FrequencyQuarterly:
		return 3
	case FrequencyYearly:
		return 12
	default:
		return 1
	}
}

// PeriodsPerYear returns how many payments fall in a year
func (f Frequency) PeriodsPerYear() int {
	return 12 / f.Months()
}

// ParseFrequency validates a frequency; empty means monthly
func ParseFrequency(s string) (Frequency, error) {
	switch f := Frequency(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FrequencyMonthly, nil
	case FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return f, nil
	}
	return "", shared.NewDomainError("INVALID_FREQUENCY", "Frequency must be monthly, quarterly or yearly")
}

// ParseDirection validates a direction; empty means lessee
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return DirectionLessee, nil
	case DirectionLessee, DirectionLessor:
		return d, nil
	}
	return "", shared.NewDomainError("INVALID_DIRECTION", "Direction must be lessee or lessor")
}

// Status is the lifecycle state of a lease
type Status string

const (
	StatusActive     Status = "active"
	StatusTerminated Status = "terminated"
	StatusExpired    Status = "expired"
)

// Terms are the financial terms of a lease
type Terms struct {
	StartDate    time.Time
	EndDate      time.Time
	Payment      decimal.Decimal
	Frequency    Frequency
	Currency     valueobject.Currency
	DiscountRate decimal.Decimal // annual, as a fraction
}

func (t Terms) validate() error {
	if err := validateTerm(t.StartDate, t.EndDate); err != nil {
		return err
	}
	if err := valueobject.RequirePositive("payment_amount", t.Payment); err != nil {
		return err
	}
	if err := valueobject.RequireNonNegative("discount_rate", t.DiscountRate); err != nil {
		return err
	}
	return nil
}

// Lease is an asset leased to or from a partner
type Lease struct {
	shared.TenantAggregateRoot
	ContractID *uuid.UUID
	AssetID    uuid.UUID
	PartnerID  uuid.UUID
	Direction  Direction
	Terms
	Status       Status
	TerminatedAt *time.Time
}

// NewLease creates an active lease
func NewLease(tenantID, assetID, partnerID uuid.UUID, direction Direction, terms Terms) (*Lease, error) {
	if assetID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ASSET", "Asset is required")
	}
	if partnerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTNER", "Partner is required")
	}
	if err := terms.validate(); err != nil {
		return nil, err
	}
	return &Lease{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		AssetID:             assetID,
		PartnerID:           partnerID,
		Direction:           direction,
		Terms:               terms,
		Status:              StatusActive,
	}, nil
}

// Update replaces the terms of an active lease
func (l *Lease) Update(contractID *uuid.UUID, direction Direction, terms Terms) error {
	if l.Status != StatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active leases can be edited")
	}
	if err := terms.validate(); err != nil {
		return err
	}
	l.ContractID = contractID
	l.Direction = direction
	l.Terms = terms
	l.Touch()
	return nil
}

// Terminate ends an active lease on date, which becomes the new end date
func (l *Lease) Terminate(date time.Time, actor uuid.UUID) error {
	if l.Status != StatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active leases can be terminated")
	}
	if date.IsZero() {
		y, m, d := time.Now().UTC().Date()
		date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	if date.Before(l.StartDate) || date.After(l.EndDate) {
		return shared.NewDomainError("INVALID_TERMINATION_DATE", "Termination date must fall within the lease term")
	}
	l.Status = StatusTerminated
	l.EndDate = date
	l.TerminatedAt = &date
	l.Touch()
	l.AddDomainEvent(NewLeaseTerminatedEvent(l, actor))
	return nil
}

// ScheduleRow is one payment of a lease
type ScheduleRow struct {
	Number         int             `json:"number"`
	Date           time.Time       `json:"date"`
	Amount         decimal.Decimal `json:"amount"`
	DiscountFactor decimal.Decimal `json:"discount_factor"`
	PresentValue   decimal.Decimal `json:"present_value"`
	RunningTotal   decimal.Decimal `json:"running_total"`
}

// Schedule lists the payments over the term. The first payment falls on the
// start date, later ones step by the frequency while on or before the end
// date. Payment n (0-based) is discounted by (1 + rate/periodsPerYear)^-n.
func (l *Lease) Schedule() []ScheduleRow {
	rows := make([]ScheduleRow, 0)
	periodic := l.DiscountRate.Div(decimal.NewFromInt(int64(l.Frequency.PeriodsPerYear())))
	base := decimal.NewFromInt(1).Add(periodic)
	one := decimal.NewFromInt(1)
	factor := one
	total := decimal.Zero

	for n := 0; ; n++ {
		date := addMonths(l.StartDate, n*l.Frequency.Months())
		if date.After(l.EndDate) {
			break
		}
		total = total.Add(l.Payment)
		rows = append(rows, ScheduleRow{
			Number:         n + 1,
			Date:           date,
			Amount:         l.Payment,
			DiscountFactor: factor.Round(6),
			PresentValue:   valueobject.RoundAmount(l.Payment.Mul(factor)),
			RunningTotal:   total,
		})
		factor = one.DivRound(base.Pow(decimal.NewFromInt(int64(n+1))), 12)
	}
	return rows
}

// addMonths steps whole months, clamping the day to the target month's end
// so a Jan 31 start pays on Feb 28.
func addMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	day := min(t.Day(), first.AddDate(0, 1, -1).Day())
	return time.Date(first.Year(), first.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// PresentValue is the sum of the scheduled payments' present values
func (l *Lease) PresentValue() decimal.Decimal {
	pv := decimal.Zero
	for _, r := range l.Schedule() {
		pv = pv.Add(r.PresentValue)
	}
	return pv
}

// TotalPayments is the undiscounted sum of the scheduled payments
func (l *Lease) TotalPayments() decimal.Decimal {
	return l.Payment.Mul(decimal.NewFromInt(int64(len(l.Schedule()))))
}
