package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/gopawn/internal/adapter/http/dto"
	"github.com/iho/gopawn/internal/domain"
	"github.com/iho/gopawn/internal/usecase"
)

var staffActor = &domain.Actor{ID: "staff-1", Username: "admin", IsStaff: true, IsApproved: true}

type reportServiceStub struct {
	listFn      func(ctx context.Context, actor *domain.Actor, filter domain.EntryFilter) ([]*domain.Entry, error)
	releasedFn  func(ctx context.Context, actor *domain.Actor, search string, limit, offset int) ([]*domain.Entry, error)
	dashboardFn func(ctx context.Context, actor *domain.Actor, filter domain.EntryFilter) (*usecase.Dashboard, error)
	auditFn     func(ctx context.Context, actor *domain.Actor, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

func (s *reportServiceStub) ListEntries(ctx context.Context, actor *domain.Actor, filter domain.EntryFilter) ([]*domain.Entry, error) {
	return s.listFn(ctx, actor, filter)
}

func (s *reportServiceStub) ListReleasedEntries(ctx context.Context, actor *domain.Actor, search string, limit, offset int) ([]*domain.Entry, error) {
	return s.releasedFn(ctx, actor, search, limit, offset)
}

func (s *reportServiceStub) DashboardStats(ctx context.Context, actor *domain.Actor, filter domain.EntryFilter) (*usecase.Dashboard, error) {
	return s.dashboardFn(ctx, actor, filter)
}

func (s *reportServiceStub) RecentAuditLogs(ctx context.Context, actor *domain.Actor, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	return s.auditFn(ctx, actor, filter)
}

func newReportRouter(h *ReportHandler, actor *domain.Actor) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(domain.ContextWithActor(req.Context(), actor)))
		})
	})
	r.Get("/admin/entries", h.Entries)
	r.Get("/admin/entries/released", h.Released)
	r.Get("/admin/dashboard", h.Dashboard)
	r.Get("/admin/audit", h.Audit)
	return r
}

func TestReportHandler_Entries_ParsesFilter(t *testing.T) {
	var captured domain.EntryFilter
	h := NewReportHandler(&reportServiceStub{
		listFn: func(ctx context.Context, actor *domain.Actor, filter domain.EntryFilter) ([]*domain.Entry, error) {
			captured = filter
			return []*domain.Entry{sampleEntry("e1")}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet,
		"/admin/entries?status=active&date_from=2024-01-01&date_to=2024-02-01&customer_name=ravi&search=SN&limit=10", nil)
	rec := httptest.NewRecorder()
	newReportRouter(h, staffActor).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.Status != domain.EntryStatusActive || captured.CustomerName != "ravi" || captured.Search != "SN" {
		t.Fatalf("unexpected filter: %+v", captured)
	}
	if captured.DateFrom == nil || captured.DateTo == nil || captured.DateTo.Month() != 2 {
		t.Fatalf("expected date bounds to be parsed, got %+v", captured)
	}
	if captured.Limit != 10 || captured.Offset != 0 {
		t.Fatalf("unexpected pagination: %+v", captured)
	}
}

func TestReportHandler_Entries_BadDate(t *testing.T) {
	h := NewReportHandler(&reportServiceStub{})

	req := httptest.NewRequest(http.MethodGet, "/admin/entries?date_from=01-01-2024", nil)
	rec := httptest.NewRecorder()
	newReportRouter(h, staffActor).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestReportHandler_Forbidden(t *testing.T) {
	h := NewReportHandler(&reportServiceStub{
		dashboardFn: func(ctx context.Context, actor *domain.Actor, filter domain.EntryFilter) (*usecase.Dashboard, error) {
			return nil, domain.ErrPermissionDenied
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	rec := httptest.NewRecorder()
	newReportRouter(h, testActor).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestReportHandler_Dashboard(t *testing.T) {
	h := NewReportHandler(&reportServiceStub{
		dashboardFn: func(ctx context.Context, actor *domain.Actor, filter domain.EntryFilter) (*usecase.Dashboard, error) {
			return &usecase.Dashboard{
				TotalEntries:   3,
				ActiveEntries:  2,
				TotalPrincipal: decimal.RequireFromString("1500.50"),
				TotalInterest:  decimal.Zero,
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	rec := httptest.NewRecorder()
	newReportRouter(h, staffActor).ServeHTTP(rec, req)

	var resp usecase.Dashboard
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.TotalEntries != 3 || !resp.TotalPrincipal.Equal(decimal.RequireFromString("1500.50")) {
		t.Fatalf("unexpected dashboard: %+v", resp)
	}
}

func TestReportHandler_Dashboard_ParsesFilter(t *testing.T) {
	var captured domain.EntryFilter
	h := NewReportHandler(&reportServiceStub{
		dashboardFn: func(ctx context.Context, actor *domain.Actor, filter domain.EntryFilter) (*usecase.Dashboard, error) {
			captured = filter
			return &usecase.Dashboard{}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard?status=released&date_to=2024-03-31&customer_name=arj", nil)
	rec := httptest.NewRecorder()
	newReportRouter(h, staffActor).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.Status != domain.EntryStatusReleased || captured.CustomerName != "arj" {
		t.Fatalf("unexpected filter: %+v", captured)
	}
	if captured.DateFrom != nil || captured.DateTo == nil || captured.DateTo.Day() != 31 {
		t.Fatalf("expected only date_to to be parsed, got %+v", captured)
	}
}

func TestReportHandler_Dashboard_InvalidDate(t *testing.T) {
	h := NewReportHandler(&reportServiceStub{
		dashboardFn: func(ctx context.Context, actor *domain.Actor, filter domain.EntryFilter) (*usecase.Dashboard, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard?date_from=yesterday", nil)
	rec := httptest.NewRecorder()
	newReportRouter(h, staffActor).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestReportHandler_Released(t *testing.T) {
	var gotSearch string
	h := NewReportHandler(&reportServiceStub{
		releasedFn: func(ctx context.Context, actor *domain.Actor, search string, limit, offset int) ([]*domain.Entry, error) {
			gotSearch = search
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/entries/released?search=gold", nil)
	rec := httptest.NewRecorder()
	newReportRouter(h, staffActor).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || gotSearch != "gold" {
		t.Fatalf("unexpected result: %d search=%q", rec.Code, gotSearch)
	}

	var resp dto.ListEntriesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 0 || resp.Entries == nil {
		t.Fatalf("expected empty, non-null entries list: %s", rec.Body.String())
	}
}

func TestReportHandler_Audit(t *testing.T) {
	var captured domain.AuditFilter
	h := NewReportHandler(&reportServiceStub{
		auditFn: func(ctx context.Context, actor *domain.Actor, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
			captured = filter
			return []*domain.AuditLog{{ID: "a1", Action: domain.AuditActionRelease}}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/audit?action=release&entry_id=e1", nil)
	rec := httptest.NewRecorder()
	newReportRouter(h, staffActor).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured.Action != domain.AuditActionRelease || captured.EntryID != "e1" || captured.Limit != 0 {
		t.Fatalf("unexpected audit filter: %+v", captured)
	}
}
