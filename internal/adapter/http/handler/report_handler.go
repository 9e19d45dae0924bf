package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/iho/gopawn/internal/adapter/http/dto"
	"github.com/iho/gopawn/internal/domain"
	"github.com/iho/gopawn/internal/usecase"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	ListEntries(ctx context.Context, actor *domain.Actor, filter domain.EntryFilter) ([]*domain.Entry, error)
	ListReleasedEntries(ctx context.Context, actor *domain.Actor, search string, limit, offset int) ([]*domain.Entry, error)
	DashboardStats(ctx context.Context, actor *domain.Actor, filter domain.EntryFilter) (*usecase.Dashboard, error)
	RecentAuditLogs(ctx context.Context, actor *domain.Actor, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

// ReportHandler handles the staff reporting endpoints.
type ReportHandler struct {
	reportUC ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// Entries lists entries of all users.
// Query: status, date_from, date_to, customer_name, search, limit, offset.
func (h *ReportHandler) Entries(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	filter, ok := parseEntryFilter(w, r)
	if !ok {
		return
	}

	entries, err := h.reportUC.ListEntries(r.Context(), actor, filter)
	if err != nil {
		writeDomainError(w, r, "failed to list entries", err)
		return
	}

	limit, offset := domain.ValidatePagination(filter.Limit, filter.Offset)
	writeJSON(w, http.StatusOK, dto.NewListEntriesResponse(entries, limit, offset))
}

// Released searches released entries by ?search=.
func (h *ReportHandler) Released(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	entries, err := h.reportUC.ListReleasedEntries(r.Context(), actor, r.URL.Query().Get("search"), limit, offset)
	if err != nil {
		writeDomainError(w, r, "failed to list released entries", err)
		return
	}

	limit, offset = domain.ValidatePagination(limit, offset)
	writeJSON(w, http.StatusOK, dto.NewListEntriesResponse(entries, limit, offset))
}

// Dashboard returns aggregate statistics.
// Query: status, date_from, date_to, customer_name.
func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	filter, ok := parseEntryFilter(w, r)
	if !ok {
		return
	}

	stats, err := h.reportUC.DashboardStats(r.Context(), actor, filter)
	if err != nil {
		writeDomainError(w, r, "failed to load dashboard", err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// Audit returns recent audit rows across all entries.
// Query: entry_id, user_id, action, limit, offset.
func (h *ReportHandler) Audit(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	logs, err := h.reportUC.RecentAuditLogs(r.Context(), actor, domain.AuditFilter{
		EntryID: q.Get("entry_id"),
		UserID:  q.Get("user_id"),
		Action:  domain.AuditAction(q.Get("action")),
		Limit:   parseIntQuery(r, "limit", 0),
		Offset:  parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, r, "failed to list audit logs", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AuditLogsFromDomain(logs))
}

// parseEntryFilter reads the shared listing filters. It writes a 400 and
// reports false on malformed dates.
func parseEntryFilter(w http.ResponseWriter, r *http.Request) (domain.EntryFilter, bool) {
	q := r.URL.Query()
	filter := domain.EntryFilter{
		Status:       domain.EntryStatus(q.Get("status")),
		CustomerName: q.Get("customer_name"),
		Search:       q.Get("search"),
		Limit:        parseIntQuery(r, "limit", 20),
		Offset:       parseIntQuery(r, "offset", 0),
	}

	var err error
	if filter.DateFrom, err = parseDateQuery(r, "date_from"); err != nil {
		writeDomainError(w, r, "invalid date_from", err)
		return filter, false
	}
	if filter.DateTo, err = parseDateQuery(r, "date_to"); err != nil {
		writeDomainError(w, r, "invalid date_to", err)
		return filter, false
	}

	return filter, true
}

func parseDateQuery(r *http.Request, key string) (*time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	t, err := dto.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
