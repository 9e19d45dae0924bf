package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gopawn/internal/domain"
	"github.com/iho/gopawn/internal/usecase"
)

func TestEntryFromDomain(t *testing.T) {
	rate := decimal.RequireFromString("0.0329")
	interest := decimal.RequireFromString("493.50")
	toDate := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	entry := &domain.Entry{
		ID:             "entry-1",
		UserID:         "user-1",
		OwnerName:      "meena",
		Date:           time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		FromDate:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ToDate:         &toDate,
		SerialNumber:   "SN-1",
		CustomerName:   "Ravi",
		GivenBy:        "Meena",
		Amount:         decimal.RequireFromString("100000"),
		Weight:         decimal.RequireFromString("10.25"),
		Status:         domain.EntryStatusActive,
		InterestRate:   &rate,
		InterestAmount: &interest,
		CreatedAt:      created,
		UpdatedAt:      created,
	}

	resp := EntryFromDomain(entry)

	if resp.ID != "entry-1" || resp.UserID != "user-1" || resp.OwnerName != "meena" {
		t.Fatalf("unexpected identity fields: %+v", resp)
	}
	if resp.Date != "2024-01-01" || resp.FromDate != "2024-01-01" {
		t.Fatalf("unexpected dates: %s / %s", resp.Date, resp.FromDate)
	}
	if resp.ToDate == nil || *resp.ToDate != "2024-01-10" {
		t.Fatalf("unexpected to date: %v", resp.ToDate)
	}
	if resp.Status != "active" {
		t.Fatalf("unexpected status: %s", resp.Status)
	}
	if !resp.TotalAmount.Equal(decimal.RequireFromString("100493.50")) {
		t.Fatalf("expected derived total, got %s", resp.TotalAmount)
	}
}

func TestEntryFromDomain_NoInterest(t *testing.T) {
	entry := &domain.Entry{
		ID:     "entry-2",
		Date:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Amount: decimal.RequireFromString("50"),
		Status: domain.EntryStatusReleased,
	}

	resp := EntryFromDomain(entry)
	if resp.ToDate != nil || resp.InterestAmount != nil {
		t.Fatalf("expected nil interest fields, got %+v", resp)
	}
	if !resp.TotalAmount.Equal(entry.Amount) {
		t.Fatalf("expected total to equal principal, got %s", resp.TotalAmount)
	}

	body, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded["interest_amount"] != nil {
		t.Fatalf("expected null interest_amount, got %v", decoded["interest_amount"])
	}
	if _, ok := decoded["released_at"]; ok {
		t.Fatalf("expected released_at to be omitted")
	}
}

func TestInterestFromResult(t *testing.T) {
	entry := &domain.Entry{ID: "entry-1", Amount: decimal.RequireFromString("100000")}
	result := &usecase.InterestResult{
		Entry:          entry,
		DailyRate:      decimal.RequireFromString("0.0329"),
		ToDate:         time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Days:           9,
		EffectiveDays:  15,
		Method:         domain.InterestMethodSimple,
		InterestAmount: decimal.RequireFromString("493.50"),
		TotalAmount:    decimal.RequireFromString("100493.50"),
	}

	resp := InterestFromResult(result)
	if resp.Entry.ID != "entry-1" || resp.ToDate != "2024-01-10" || resp.Method != "simple" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Days != 9 || resp.EffectiveDays != 15 {
		t.Fatalf("unexpected days: %d / %d", resp.Days, resp.EffectiveDays)
	}
}

func TestNewDailyRateResponse(t *testing.T) {
	tests := []struct {
		annual string
		daily  string
	}{
		{"12", "0.0329"},
		{"13.8", "0.0378"},
	}

	for _, tt := range tests {
		resp := NewDailyRateResponse(decimal.RequireFromString(tt.annual))
		if !resp.DailyRate.Equal(decimal.RequireFromString(tt.daily)) {
			t.Fatalf("annual %s: expected %s, got %s", tt.annual, tt.daily, resp.DailyRate)
		}
	}
}

func TestAuditLogsFromDomain(t *testing.T) {
	logs := []*domain.AuditLog{
		{ID: "a1", EntryID: "e1", UserID: "u1", Action: domain.AuditActionCreate, Details: "Entry created"},
		{ID: "a2", EntryID: "e1", UserID: "u1", Action: domain.AuditActionRelease, Details: "Entry released"},
	}

	resp := AuditLogsFromDomain(logs)
	if len(resp) != 2 || resp[1].Action != "release" || resp[0].Details != "Entry created" {
		t.Fatalf("unexpected audit responses: %+v", resp)
	}
}
