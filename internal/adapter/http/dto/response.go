package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gopawn/internal/domain"
	"github.com/iho/gopawn/internal/usecase"
)

// EntryResponse represents an entry in API responses.
type EntryResponse struct {
	ID             string           `json:"id"`
	UserID         string           `json:"user_id"`
	OwnerName      string           `json:"owner_name"`
	Date           string           `json:"date"`
	FromDate       string           `json:"from_date"`
	ToDate         *string          `json:"to_date"`
	SerialNumber   string           `json:"serial_number"`
	CustomerName   string           `json:"customer_name"`
	GivenBy        string           `json:"given_by"`
	Amount         decimal.Decimal  `json:"amount"`
	Weight         decimal.Decimal  `json:"weight"`
	Status         string           `json:"status"`
	InterestRate   *decimal.Decimal `json:"interest_rate"`
	InterestAmount *decimal.Decimal `json:"interest_amount"`
	TotalAmount    decimal.Decimal  `json:"total_amount"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	ReleasedAt     *time.Time       `json:"released_at,omitempty"`
}

// EntryFromDomain converts domain entry to response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	resp := &EntryResponse{
		ID:             e.ID,
		UserID:         e.UserID,
		OwnerName:      e.OwnerName,
		Date:           e.Date.Format(DateLayout),
		FromDate:       e.FromDate.Format(DateLayout),
		SerialNumber:   e.SerialNumber,
		CustomerName:   e.CustomerName,
		GivenBy:        e.GivenBy,
		Amount:         e.Amount,
		Weight:         e.Weight,
		Status:         string(e.Status),
		InterestRate:   e.InterestRate,
		InterestAmount: e.InterestAmount,
		TotalAmount:    e.TotalAmount(),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
		ReleasedAt:     e.ReleasedAt,
	}
	if e.ToDate != nil {
		s := e.ToDate.Format(DateLayout)
		resp.ToDate = &s
	}
	return resp
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// ListEntriesResponse is a page of entries.
type ListEntriesResponse struct {
	Entries []*EntryResponse `json:"entries"`
	Count   int              `json:"count"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

// NewListEntriesResponse wraps a page of entries.
func NewListEntriesResponse(entries []*domain.Entry, limit, offset int) *ListEntriesResponse {
	return &ListEntriesResponse{
		Entries: EntriesFromDomain(entries),
		Count:   len(entries),
		Limit:   limit,
		Offset:  offset,
	}
}

// InterestResponse is the outcome of applying interest to an entry.
type InterestResponse struct {
	Entry          *EntryResponse  `json:"entry"`
	DailyRate      decimal.Decimal `json:"daily_rate"`
	ToDate         string          `json:"to_date"`
	Days           int             `json:"days"`
	EffectiveDays  int             `json:"effective_days"`
	Method         string          `json:"method"`
	InterestAmount decimal.Decimal `json:"interest_amount"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
}

// InterestFromResult converts an interest result to response.
func InterestFromResult(r *usecase.InterestResult) *InterestResponse {
	return &InterestResponse{
		Entry:          EntryFromDomain(r.Entry),
		DailyRate:      r.DailyRate,
		ToDate:         r.ToDate.Format(DateLayout),
		Days:           r.Days,
		EffectiveDays:  r.EffectiveDays,
		Method:         string(r.Method),
		InterestAmount: r.InterestAmount,
		TotalAmount:    r.TotalAmount,
	}
}

// QuoteResponse is an interest preview.
type QuoteResponse struct {
	Principal      decimal.Decimal `json:"principal"`
	DailyRate      decimal.Decimal `json:"daily_rate"`
	FromDate       string          `json:"from_date"`
	ToDate         string          `json:"to_date"`
	Days           int             `json:"days"`
	EffectiveDays  int             `json:"effective_days"`
	Method         string          `json:"method"`
	InterestAmount decimal.Decimal `json:"interest_amount"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
}

// QuoteFromCalculation converts an engine result to response.
func QuoteFromCalculation(c *domain.InterestCalculation) *QuoteResponse {
	return &QuoteResponse{
		Principal:      c.Principal,
		DailyRate:      c.DailyRate,
		FromDate:       c.FromDate.Format(DateLayout),
		ToDate:         c.ToDate.Format(DateLayout),
		Days:           c.Days,
		EffectiveDays:  c.EffectiveDays,
		Method:         string(c.Method),
		InterestAmount: c.Amount,
		TotalAmount:    c.Total(),
	}
}

// DailyRateResponse pairs an annual rate with its daily equivalent.
type DailyRateResponse struct {
	AnnualRate decimal.Decimal `json:"annual_rate"`
	DailyRate  decimal.Decimal `json:"daily_rate"`
}

// NewDailyRateResponse converts annual to its daily rate.
func NewDailyRateResponse(annual decimal.Decimal) *DailyRateResponse {
	return &DailyRateResponse{
		AnnualRate: annual,
		DailyRate:  domain.DailyRateFromAnnual(annual),
	}
}

// AuditLogResponse represents an audit row in API responses.
type AuditLogResponse struct {
	ID        string    `json:"id"`
	EntryID   string    `json:"entry_id"`
	UserID    string    `json:"user_id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

// AuditLogsFromDomain converts audit rows to responses.
func AuditLogsFromDomain(logs []*domain.AuditLog) []*AuditLogResponse {
	result := make([]*AuditLogResponse, len(logs))
	for i, l := range logs {
		result[i] = &AuditLogResponse{
			ID:        l.ID,
			EntryID:   l.EntryID,
			UserID:    l.UserID,
			Action:    string(l.Action),
			Details:   l.Details,
			CreatedAt: l.CreatedAt,
		}
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
