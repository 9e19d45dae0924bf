package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus is the lifecycle state of a pawned item.
type EntryStatus string

const (
	EntryStatusActive   EntryStatus = "active"
	EntryStatusReleased EntryStatus = "released"
	EntryStatusRemoved  EntryStatus = "removed"
)

var validEntryStatuses = map[EntryStatus]bool{
	EntryStatusActive:   true,
	EntryStatusReleased: true,
	EntryStatusRemoved:  true,
}

// IsValid checks if the status is a known status.
func (s EntryStatus) IsValid() bool {
	return validEntryStatuses[s]
}

// IsTerminal reports whether no further transitions are defined from s.
func (s EntryStatus) IsTerminal() bool {
	return s == EntryStatusReleased || s == EntryStatusRemoved
}

// Entry represents a pawned item with its principal and interest state.
type Entry struct {
	ID             string
	UserID         string
	OwnerName      string // username of the owner when the entry was created
	Date           time.Time
	FromDate       time.Time
	ToDate         *time.Time
	SerialNumber   string
	CustomerName   string
	GivenBy        string
	Amount         decimal.Decimal
	Weight         decimal.Decimal // grams
	Status         EntryStatus
	InterestRate   *decimal.Decimal // daily, percent
	InterestAmount *decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ReleasedAt     *time.Time
}

// Normalize re-derives FromDate from Date. It must run before every save.
func (e *Entry) Normalize() {
	e.Date = DateOf(e.Date)
	e.FromDate = e.Date
}

// TotalAmount is the principal plus the last computed interest.
func (e *Entry) TotalAmount() decimal.Decimal {
	if e.InterestAmount == nil {
		return e.Amount
	}
	return e.Amount.Add(*e.InterestAmount)
}

// IsOwnedBy checks if the entry was created by userID.
func (e *Entry) IsOwnedBy(userID string) bool {
	return e.UserID == userID
}

// Release moves an active entry to released and stamps ReleasedAt.
func (e *Entry) Release(at time.Time) error {
	if e.Status != EntryStatusActive {
		return ErrInvalidState
	}

	e.Status = EntryStatusReleased
	e.ReleasedAt = &at
	e.UpdatedAt = at

	return nil
}

// ApplyCalculation stores the result of an interest calculation on the entry.
func (e *Entry) ApplyCalculation(calc *InterestCalculation, at time.Time) {
	rate := calc.DailyRate
	amount := calc.Amount
	toDate := calc.ToDate

	e.InterestRate = &rate
	e.InterestAmount = &amount
	e.ToDate = &toDate
	e.UpdatedAt = at
}

// EntryFilter narrows entry listings.
type EntryFilter struct {
	UserID       string
	Status       EntryStatus
	DateFrom     *time.Time
	DateTo       *time.Time
	CustomerName string
	Search       string // serial number, customer name or owner username
	Limit        int
	Offset       int
}

// EntryStats summarises a set of entries.
type EntryStats struct {
	TotalEntries    int64
	ActiveEntries   int64
	ReleasedEntries int64
	TotalPrincipal  decimal.Decimal
	TotalInterest   decimal.Decimal
}

// DateOf truncates t to midnight UTC of its calendar day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
