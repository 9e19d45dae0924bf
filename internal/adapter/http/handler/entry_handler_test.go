package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/gopawn/internal/adapter/http/dto"
	"github.com/iho/gopawn/internal/domain"
	"github.com/iho/gopawn/internal/usecase"
)

var testActor = &domain.Actor{ID: "user-1", Username: "meena", IsApproved: true}

type entryServiceStub struct {
	createFn   func(ctx context.Context, actor *domain.Actor, input usecase.CreateEntryInput) (*domain.Entry, error)
	editFn     func(ctx context.Context, actor *domain.Actor, input usecase.EditEntryInput) (*domain.Entry, error)
	interestFn func(ctx context.Context, actor *domain.Actor, input usecase.ApplyInterestInput) (*usecase.InterestResult, error)
	releaseFn  func(ctx context.Context, actor *domain.Actor, entryID string) (*domain.Entry, error)
	getFn      func(ctx context.Context, actor *domain.Actor, id string) (*domain.Entry, error)
	listFn     func(ctx context.Context, actor *domain.Actor, input usecase.ListActiveEntriesInput) ([]*domain.Entry, error)
	historyFn  func(ctx context.Context, actor *domain.Actor, entryID string) ([]*domain.AuditLog, error)
}

func (s *entryServiceStub) CreateEntry(ctx context.Context, actor *domain.Actor, input usecase.CreateEntryInput) (*domain.Entry, error) {
	return s.createFn(ctx, actor, input)
}

func (s *entryServiceStub) EditEntry(ctx context.Context, actor *domain.Actor, input usecase.EditEntryInput) (*domain.Entry, error) {
	return s.editFn(ctx, actor, input)
}

func (s *entryServiceStub) ApplyInterest(ctx context.Context, actor *domain.Actor, input usecase.ApplyInterestInput) (*usecase.InterestResult, error) {
	return s.interestFn(ctx, actor, input)
}

func (s *entryServiceStub) ReleaseEntry(ctx context.Context, actor *domain.Actor, entryID string) (*domain.Entry, error) {
	return s.releaseFn(ctx, actor, entryID)
}

func (s *entryServiceStub) GetEntry(ctx context.Context, actor *domain.Actor, id string) (*domain.Entry, error) {
	return s.getFn(ctx, actor, id)
}

func (s *entryServiceStub) ListActiveEntries(ctx context.Context, actor *domain.Actor, input usecase.ListActiveEntriesInput) ([]*domain.Entry, error) {
	return s.listFn(ctx, actor, input)
}

func (s *entryServiceStub) GetEntryHistory(ctx context.Context, actor *domain.Actor, entryID string) ([]*domain.AuditLog, error) {
	return s.historyFn(ctx, actor, entryID)
}

func newEntryRouter(h *EntryHandler, actor *domain.Actor) http.Handler {
	r := chi.NewRouter()
	if actor != nil {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(domain.ContextWithActor(req.Context(), actor)))
			})
		})
	}
	r.Post("/entries", h.Create)
	r.Get("/entries", h.List)
	r.Get("/entries/{id}", h.Get)
	r.Put("/entries/{id}", h.Edit)
	r.Post("/entries/{id}/interest", h.ApplyInterest)
	r.Post("/entries/{id}/release", h.Release)
	r.Get("/entries/{id}/audit", h.History)
	return r
}

func sampleEntry(id string) *domain.Entry {
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &domain.Entry{
		ID:           id,
		UserID:       testActor.ID,
		OwnerName:    testActor.Username,
		Date:         date,
		FromDate:     date,
		SerialNumber: "SN-1",
		CustomerName: "Ravi",
		GivenBy:      "Meena",
		Amount:       decimal.RequireFromString("100000"),
		Weight:       decimal.RequireFromString("10"),
		Status:       domain.EntryStatusActive,
	}
}

func TestEntryHandler_Create_Success(t *testing.T) {
	var captured usecase.CreateEntryInput
	var capturedActor *domain.Actor
	h := NewEntryHandler(&entryServiceStub{
		createFn: func(ctx context.Context, actor *domain.Actor, input usecase.CreateEntryInput) (*domain.Entry, error) {
			captured = input
			capturedActor = actor
			return sampleEntry("entry-1"), nil
		},
	})

	body := `{"date":"2024-01-01","serial_number":"SN-1","customer_name":"Ravi","given_by":"Meena","amount":"100000","weight":"10"}`
	req := httptest.NewRequest(http.MethodPost, "/entries", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	newEntryRouter(h, testActor).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if capturedActor != testActor {
		t.Fatalf("expected actor from context to be passed through")
	}
	if captured.SerialNumber != "SN-1" || !captured.Amount.Equal(decimal.NewFromInt(100000)) {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.EntryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "entry-1" || resp.Date != "2024-01-01" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestEntryHandler_Create_InvalidBody(t *testing.T) {
	h := NewEntryHandler(&entryServiceStub{
		createFn: func(ctx context.Context, actor *domain.Actor, input usecase.CreateEntryInput) (*domain.Entry, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	})

	for _, body := range []string{`{`, `{"date":"yesterday","serial_number":"SN","customer_name":"a","given_by":"b"}`} {
		req := httptest.NewRequest(http.MethodPost, "/entries", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()

		newEntryRouter(h, testActor).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestEntryHandler_RequiresActor(t *testing.T) {
	h := NewEntryHandler(&entryServiceStub{})

	req := httptest.NewRequest(http.MethodGet, "/entries", nil)
	rec := httptest.NewRecorder()

	newEntryRouter(h, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestEntryHandler_Get_MapsErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{domain.ErrEntryNotFound, http.StatusNotFound},
		{domain.ErrPermissionDenied, http.StatusForbidden},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		var gotID string
		h := NewEntryHandler(&entryServiceStub{
			getFn: func(ctx context.Context, actor *domain.Actor, id string) (*domain.Entry, error) {
				gotID = id
				return nil, tt.err
			},
		})

		req := httptest.NewRequest(http.MethodGet, "/entries/entry-7", nil)
		rec := httptest.NewRecorder()
		newEntryRouter(h, testActor).ServeHTTP(rec, req)

		if rec.Code != tt.status {
			t.Fatalf("%v: expected %d, got %d", tt.err, tt.status, rec.Code)
		}
		if gotID != "entry-7" {
			t.Fatalf("expected URL id to be passed, got %q", gotID)
		}
	}
}

func TestEntryHandler_List(t *testing.T) {
	var captured usecase.ListActiveEntriesInput
	h := NewEntryHandler(&entryServiceStub{
		listFn: func(ctx context.Context, actor *domain.Actor, input usecase.ListActiveEntriesInput) ([]*domain.Entry, error) {
			captured = input
			return []*domain.Entry{sampleEntry("a"), sampleEntry("b")}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/entries?limit=5&offset=10", nil)
	rec := httptest.NewRecorder()
	newEntryRouter(h, testActor).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured.Limit != 5 || captured.Offset != 10 {
		t.Fatalf("unexpected pagination: %+v", captured)
	}

	var resp dto.ListEntriesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 2 || resp.Limit != 5 || resp.Offset != 10 {
		t.Fatalf("unexpected list response: %+v", resp)
	}
}

func TestEntryHandler_Edit(t *testing.T) {
	var captured usecase.EditEntryInput
	h := NewEntryHandler(&entryServiceStub{
		editFn: func(ctx context.Context, actor *domain.Actor, input usecase.EditEntryInput) (*domain.Entry, error) {
			captured = input
			e := sampleEntry(input.EntryID)
			e.CustomerName = *input.CustomerName
			return e, nil
		},
	})

	req := httptest.NewRequest(http.MethodPut, "/entries/entry-3", bytes.NewBufferString(`{"customer_name":"Arjun"}`))
	rec := httptest.NewRecorder()
	newEntryRouter(h, testActor).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.EntryID != "entry-3" || captured.Amount != nil || captured.CustomerName == nil {
		t.Fatalf("unexpected edit input: %+v", captured)
	}
}

func TestEntryHandler_ApplyInterest(t *testing.T) {
	var captured usecase.ApplyInterestInput
	h := NewEntryHandler(&entryServiceStub{
		interestFn: func(ctx context.Context, actor *domain.Actor, input usecase.ApplyInterestInput) (*usecase.InterestResult, error) {
			captured = input
			return &usecase.InterestResult{
				Entry:          sampleEntry(input.EntryID),
				DailyRate:      *input.DailyRate,
				ToDate:         *input.ToDate,
				Days:           9,
				EffectiveDays:  15,
				Method:         domain.InterestMethodSimple,
				InterestAmount: decimal.RequireFromString("493.50"),
				TotalAmount:    decimal.RequireFromString("100493.50"),
			}, nil
		},
	})

	body := `{"daily_rate":"0.0329","to_date":"2024-01-10"}`
	req := httptest.NewRequest(http.MethodPost, "/entries/entry-1/interest", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	newEntryRouter(h, testActor).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.AnnualRate != nil || captured.DailyRate == nil || captured.ToDate == nil {
		t.Fatalf("unexpected interest input: %+v", captured)
	}

	var resp dto.InterestResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.InterestAmount.Equal(decimal.RequireFromString("493.50")) || resp.EffectiveDays != 15 {
		t.Fatalf("unexpected interest response: %+v", resp)
	}
}

func TestEntryHandler_ApplyInterest_InvalidDateRange(t *testing.T) {
	h := NewEntryHandler(&entryServiceStub{
		interestFn: func(ctx context.Context, actor *domain.Actor, input usecase.ApplyInterestInput) (*usecase.InterestResult, error) {
			return nil, fmt.Errorf("%w: 2023-12-01 is before 2024-01-01", domain.ErrInvalidDateRange)
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/entries/entry-1/interest", bytes.NewBufferString(`{"annual_rate":"12","to_date":"2023-12-01"}`))
	rec := httptest.NewRecorder()
	newEntryRouter(h, testActor).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestEntryHandler_Release_Conflict(t *testing.T) {
	h := NewEntryHandler(&entryServiceStub{
		releaseFn: func(ctx context.Context, actor *domain.Actor, entryID string) (*domain.Entry, error) {
			return nil, fmt.Errorf("%w: entry is released", domain.ErrInvalidState)
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/entries/entry-1/release", nil)
	rec := httptest.NewRecorder()
	newEntryRouter(h, testActor).ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestEntryHandler_History(t *testing.T) {
	h := NewEntryHandler(&entryServiceStub{
		historyFn: func(ctx context.Context, actor *domain.Actor, entryID string) ([]*domain.AuditLog, error) {
			return []*domain.AuditLog{
				{ID: "a1", EntryID: entryID, Action: domain.AuditActionCreate, Details: "Entry created"},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/entries/entry-1/audit", nil)
	rec := httptest.NewRecorder()
	newEntryRouter(h, testActor).ServeHTTP(rec, req)

	var resp []dto.AuditLogResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 1 || resp[0].EntryID != "entry-1" {
		t.Fatalf("unexpected history: %+v", resp)
	}
}
