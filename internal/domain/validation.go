package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxSerialNumberLength = 50
	MaxCustomerNameLength = 100
	MaxGivenByLength      = 100
	MaxMoneyAmount        = "99999999.99" // 10 digits, 2 fractional
	moneyPlaces           = 2
)

// EntryFields carries the user-editable fields of an entry.
type EntryFields struct {
	Date         time.Time
	SerialNumber string
	CustomerName string
	GivenBy      string
	Amount       decimal.Decimal
	Weight       decimal.Decimal
}

// Validate checks every editable field.
func (f EntryFields) Validate() error {
	if f.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}

	if err := validateText("serial number", f.SerialNumber, MaxSerialNumberLength); err != nil {
		return err
	}

	if err := validateText("customer name", f.CustomerName, MaxCustomerNameLength); err != nil {
		return err
	}

	if err := validateText("given by", f.GivenBy, MaxGivenByLength); err != nil {
		return err
	}

	if err := ValidateMoney("amount", f.Amount); err != nil {
		return err
	}

	return ValidateMoney("weight", f.Weight)
}

// ValidateMoney validates a non-negative amount with at most 2 fractional digits.
func ValidateMoney(field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: %s must not be negative", ErrValidation, field)
	}

	if !amount.Equal(amount.Round(moneyPlaces)) {
		return fmt.Errorf("%w: %s allows at most %d decimal places", ErrValidation, field, moneyPlaces)
	}

	maxAmount := decimal.RequireFromString(MaxMoneyAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: %s exceeds %s", ErrValidation, field, MaxMoneyAmount)
	}

	return nil
}

// ValidateDailyRate validates a daily percentage rate in [0, 100].
func ValidateDailyRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(maxRatePct) {
		return fmt.Errorf("%w: daily rate %s must be between 0 and 100", ErrValidation, rate)
	}

	if !rate.Equal(rate.Round(ratePlaces)) {
		return fmt.Errorf("%w: daily rate allows at most %d decimal places", ErrValidation, ratePlaces)
	}

	return nil
}

func validateText(field, value string, maxLen int) error {
	value = strings.TrimSpace(value)

	if value == "" {
		return fmt.Errorf("%w: %s cannot be empty", ErrValidation, field)
	}

	if utf8.RuneCountInString(value) > maxLen {
		return fmt.Errorf("%w: %s exceeds %d characters", ErrValidation, field, maxLen)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
