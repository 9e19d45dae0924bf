package dto

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/iho/gopawn/internal/domain"
	"github.com/iho/gopawn/internal/usecase"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

var validate = validator.New()

// Validate checks the validate tags of a request struct.
func Validate(req any) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}
	return nil
}

// ParseDate parses a calendar date in DateLayout.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", domain.ErrValidation, s)
	}
	return t, nil
}

func parseDatePtr(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateEntryRequest represents a request to record a new entry.
type CreateEntryRequest struct {
	Date         string          `json:"date"          validate:"required,datetime=2006-01-02"`
	SerialNumber string          `json:"serial_number" validate:"required,max=50"`
	CustomerName string          `json:"customer_name" validate:"required,max=100"`
	GivenBy      string          `json:"given_by"      validate:"required,max=100"`
	Amount       decimal.Decimal `json:"amount"`
	Weight       decimal.Decimal `json:"weight"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateEntryRequest) ToUseCaseInput() (usecase.CreateEntryInput, error) {
	date, err := ParseDate(r.Date)
	if err != nil {
		return usecase.CreateEntryInput{}, err
	}

	return usecase.CreateEntryInput{
		Date:         date,
		SerialNumber: r.SerialNumber,
		CustomerName: r.CustomerName,
		GivenBy:      r.GivenBy,
		Amount:       r.Amount,
		Weight:       r.Weight,
	}, nil
}

// EditEntryRequest carries the fields to change. Omitted fields are left as they are.
type EditEntryRequest struct {
	Date         *string          `json:"date,omitempty"          validate:"omitempty,datetime=2006-01-02"`
	SerialNumber *string          `json:"serial_number,omitempty" validate:"omitempty,max=50"`
	CustomerName *string          `json:"customer_name,omitempty" validate:"omitempty,max=100"`
	GivenBy      *string          `json:"given_by,omitempty"      validate:"omitempty,max=100"`
	Amount       *decimal.Decimal `json:"amount,omitempty"`
	Weight       *decimal.Decimal `json:"weight,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *EditEntryRequest) ToUseCaseInput(entryID string) (usecase.EditEntryInput, error) {
	date, err := parseDatePtr(r.Date)
	if err != nil {
		return usecase.EditEntryInput{}, err
	}

	return usecase.EditEntryInput{
		EntryID:      entryID,
		Date:         date,
		SerialNumber: r.SerialNumber,
		CustomerName: r.CustomerName,
		GivenBy:      r.GivenBy,
		Amount:       r.Amount,
		Weight:       r.Weight,
	}, nil
}

// ApplyInterestRequest asks for interest to be calculated and stored on an entry.
// Exactly one of DailyRate and AnnualRate must be set.
type ApplyInterestRequest struct {
	DailyRate  *decimal.Decimal `json:"daily_rate,omitempty"`
	AnnualRate *decimal.Decimal `json:"annual_rate,omitempty"`
	ToDate     *string          `json:"to_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// ToUseCaseInput converts to use case input.
func (r *ApplyInterestRequest) ToUseCaseInput(entryID string) (usecase.ApplyInterestInput, error) {
	toDate, err := parseDatePtr(r.ToDate)
	if err != nil {
		return usecase.ApplyInterestInput{}, err
	}

	return usecase.ApplyInterestInput{
		EntryID:    entryID,
		DailyRate:  r.DailyRate,
		AnnualRate: r.AnnualRate,
		ToDate:     toDate,
	}, nil
}

// QuoteInterestRequest previews interest without touching any entry.
type QuoteInterestRequest struct {
	Principal  decimal.Decimal  `json:"principal"`
	FromDate   string           `json:"from_date"         validate:"required,datetime=2006-01-02"`
	ToDate     *string          `json:"to_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DailyRate  *decimal.Decimal `json:"daily_rate,omitempty"`
	AnnualRate *decimal.Decimal `json:"annual_rate,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *QuoteInterestRequest) ToUseCaseInput() (usecase.QuoteInterestInput, error) {
	from, err := ParseDate(r.FromDate)
	if err != nil {
		return usecase.QuoteInterestInput{}, err
	}
	toDate, err := parseDatePtr(r.ToDate)
	if err != nil {
		return usecase.QuoteInterestInput{}, err
	}

	return usecase.QuoteInterestInput{
		Principal:  r.Principal,
		FromDate:   from,
		ToDate:     toDate,
		DailyRate:  r.DailyRate,
		AnnualRate: r.AnnualRate,
	}, nil
}

// PaginationRequest represents pagination parameters.
type PaginationRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
