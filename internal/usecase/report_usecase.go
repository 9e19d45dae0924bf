package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gopawn/internal/domain"
	"github.com/iho/gopawn/internal/infrastructure/metrics"
)

const dashboardCacheKey = "dashboard:stats"

// ReportUseCase serves staff-only views across all entries.
type ReportUseCase struct {
	entryRepo EntryRepository
	auditRepo AuditRepository
	cache     Cache
	cacheTTL  time.Duration
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// NewReportUseCase creates a new ReportUseCase. cache and metrics are optional.
func NewReportUseCase(
	entryRepo EntryRepository,
	auditRepo AuditRepository,
	cache Cache,
	cacheTTL time.Duration,
	metrics *metrics.Metrics,
	logger zerolog.Logger,
) *ReportUseCase {
	if cacheTTL <= 0 {
		cacheTTL = DefaultDashboardCacheTTL
	}

	return &ReportUseCase{
		entryRepo: entryRepo,
		auditRepo: auditRepo,
		cache:     cache,
		cacheTTL:  cacheTTL,
		metrics:   metrics,
		logger:    logger,
	}
}

// ListEntries lists entries of every user matching filter.
func (uc *ReportUseCase) ListEntries(ctx context.Context, actor *domain.Actor, filter domain.EntryFilter) ([]*domain.Entry, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}

	if err := validateEntryFilter(filter); err != nil {
		return nil, err
	}

	filter.Limit, filter.Offset = domain.ValidatePagination(filter.Limit, filter.Offset)

	return uc.entryRepo.List(ctx, filter)
}

// ListReleasedEntries searches released entries by serial number, customer name or owner.
func (uc *ReportUseCase) ListReleasedEntries(ctx context.Context, actor *domain.Actor, search string, limit, offset int) ([]*domain.Entry, error) {
	filter := domain.EntryFilter{
		Status: domain.EntryStatusReleased,
		Search: search,
		Limit:  limit,
		Offset: offset,
	}

	return uc.ListEntries(ctx, actor, filter)
}

// Dashboard is the staff overview.
type Dashboard struct {
	TotalEntries    int64           `json:"total_entries"`
	ActiveEntries   int64           `json:"active_entries"`
	ReleasedEntries int64           `json:"released_entries"`
	TotalPrincipal  decimal.Decimal `json:"total_principal"`
	TotalInterest   decimal.Decimal `json:"total_interest"`
	GeneratedAt     time.Time       `json:"generated_at"`
}

// DashboardStats returns aggregate counts and sums over entries matching the
// status, date range and customer name of filter. Search and paging are ignored.
// Only the unfiltered view is cached.
func (uc *ReportUseCase) DashboardStats(ctx context.Context, actor *domain.Actor, filter domain.EntryFilter) (*Dashboard, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	if err := validateEntryFilter(filter); err != nil {
		return nil, err
	}

	filter = domain.EntryFilter{
		Status:       filter.Status,
		DateFrom:     filter.DateFrom,
		DateTo:       filter.DateTo,
		CustomerName: filter.CustomerName,
	}
	cacheable := uc.cache != nil && filter == (domain.EntryFilter{})

	if cacheable {
		if cached, ok := uc.cachedDashboard(ctx); ok {
			return cached, nil
		}
	}

	stats, err := uc.entryRepo.Stats(ctx, filter)
	if err != nil {
		return nil, err
	}

	dashboard := &Dashboard{
		TotalEntries:    stats.TotalEntries,
		ActiveEntries:   stats.ActiveEntries,
		ReleasedEntries: stats.ReleasedEntries,
		TotalPrincipal:  stats.TotalPrincipal,
		TotalInterest:   stats.TotalInterest,
		GeneratedAt:     time.Now().UTC(),
	}

	if cacheable {
		if data, err := json.Marshal(dashboard); err == nil {
			if err := uc.cache.Set(ctx, dashboardCacheKey, data, uc.cacheTTL); err != nil {
				uc.logger.Warn().Err(err).Msg("failed to cache dashboard stats")
			}
		}
	}

	return dashboard, nil
}

func (uc *ReportUseCase) cachedDashboard(ctx context.Context) (*Dashboard, bool) {
	data, err := uc.cache.Get(ctx, dashboardCacheKey)
	if err != nil || data == nil {
		if err != nil {
			uc.logger.Warn().Err(err).Msg("dashboard cache read failed")
		}
		uc.countCache(false)
		return nil, false
	}

	var dashboard Dashboard
	if err := json.Unmarshal(data, &dashboard); err != nil {
		uc.logger.Warn().Err(err).Msg("discarding malformed dashboard cache entry")
		uc.countCache(false)
		return nil, false
	}

	uc.countCache(true)
	return &dashboard, true
}

func (uc *ReportUseCase) countCache(hit bool) {
	if uc.metrics == nil {
		return
	}
	if hit {
		uc.metrics.CacheHits.WithLabelValues("dashboard").Inc()
	} else {
		uc.metrics.CacheMisses.WithLabelValues("dashboard").Inc()
	}
}

// RecentAuditLogs returns the newest audit rows across all entries.
func (uc *ReportUseCase) RecentAuditLogs(ctx context.Context, actor *domain.Actor, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}

	if filter.Action != "" && !filter.Action.IsValid() {
		return nil, fmt.Errorf("%w: unknown action %q", domain.ErrValidation, filter.Action)
	}

	if filter.Limit <= 0 {
		filter.Limit = RecentAuditLogLimit
	}
	filter.Limit, filter.Offset = domain.ValidatePagination(filter.Limit, filter.Offset)

	return uc.auditRepo.List(ctx, filter)
}

// requireStaff admits any staff actor. Approval gates entry mutations only.
func requireStaff(actor *domain.Actor) error {
	if actor == nil || !actor.IsStaff {
		return domain.ErrPermissionDenied
	}
	return nil
}

func validateEntryFilter(filter domain.EntryFilter) error {
	if filter.Status != "" && !filter.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, filter.Status)
	}
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateTo.Before(*filter.DateFrom) {
		return domain.ErrInvalidDateRange
	}
	return nil
}
