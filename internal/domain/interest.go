package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Interest calculation constants.
const (
	// MinimumInterestDays is the shortest period any calculation accrues.
	MinimumInterestDays = 15

	// CompoundThresholdDays switches the calculation from simple to compound interest.
	CompoundThresholdDays = 365

	daysPerYear   = 365
	ratePlaces    = 4
	currencyPlace = 2
)

var (
	hundred    = decimal.NewFromInt(100)
	maxRatePct = decimal.NewFromInt(100)
)

// Preset annual rates offered to staff, in percent.
var (
	AnnualRateStandard = decimal.NewFromInt(12)
	AnnualRatePremium  = decimal.RequireFromString("13.8")
)

const secondsPerDay = 24 * 60 * 60

// InterestMethod tells which formula produced an amount.
type InterestMethod string

const (
	InterestMethodSimple   InterestMethod = "simple"
	InterestMethodCompound InterestMethod = "compound"
)

// InterestCalculation is the full outcome of one engine run.
type InterestCalculation struct {
	Principal     decimal.Decimal
	DailyRate     decimal.Decimal
	FromDate      time.Time
	ToDate        time.Time
	Days          int // elapsed calendar days
	EffectiveDays int // days after the minimum floor
	Method        InterestMethod
	Amount        decimal.Decimal
}

// Total is the principal plus the computed interest.
func (c *InterestCalculation) Total() decimal.Decimal {
	return c.Principal.Add(c.Amount)
}

// DailyRateFromAnnual converts an annual percentage rate to a daily percentage rate,
// rounded half-up to 4 places.
func DailyRateFromAnnual(annualRate decimal.Decimal) decimal.Decimal {
	return annualRate.Div(decimal.NewFromInt(daysPerYear)).Round(ratePlaces)
}

// ComputeInterest returns the interest accrued on principal between from and to at
// dailyRatePercent per day, rounded half-up to 2 places.
func ComputeInterest(principal decimal.Decimal, from, to time.Time, dailyRatePercent decimal.Decimal) (decimal.Decimal, error) {
	calc, err := CalculateInterest(principal, from, to, dailyRatePercent)
	if err != nil {
		return decimal.Zero, err
	}
	return calc.Amount, nil
}

// CalculateInterest runs the interest engine and reports how the amount was derived.
func CalculateInterest(principal decimal.Decimal, from, to time.Time, dailyRatePercent decimal.Decimal) (*InterestCalculation, error) {
	if principal.IsNegative() {
		return nil, fmt.Errorf("%w: principal must not be negative", ErrValidation)
	}

	if err := ValidateDailyRate(dailyRatePercent); err != nil {
		return nil, err
	}

	from = DateOf(from)
	to = DateOf(to)

	days := DaysBetween(from, to)
	if days < 0 {
		return nil, fmt.Errorf("%w: %s is before %s", ErrInvalidDateRange,
			to.Format(time.DateOnly), from.Format(time.DateOnly))
	}

	effective := days
	if effective < MinimumInterestDays {
		effective = MinimumInterestDays
	}

	r := dailyRatePercent.Div(hundred)
	n := decimal.NewFromInt(int64(effective))

	var (
		interest decimal.Decimal
		method   InterestMethod
	)
	if effective >= CompoundThresholdDays {
		interest = principal.Mul(decimal.NewFromInt(1).Add(r).Pow(n).Sub(decimal.NewFromInt(1)))
		method = InterestMethodCompound
	} else {
		interest = principal.Mul(r).Mul(n)
		method = InterestMethodSimple
	}

	return &InterestCalculation{
		Principal:     principal,
		DailyRate:     dailyRatePercent,
		FromDate:      from,
		ToDate:        to,
		Days:          days,
		EffectiveDays: effective,
		Method:        method,
		Amount:        interest.Round(currencyPlace),
	}, nil
}

// DaysBetween counts whole calendar days from from to to. Negative when to is earlier.
// Counted on Unix seconds since time.Duration overflows past ~292 years.
func DaysBetween(from, to time.Time) int {
	return int((DateOf(to).Unix() - DateOf(from).Unix()) / secondsPerDay)
}
