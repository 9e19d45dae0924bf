package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gopawn/internal/domain"
	"github.com/iho/gopawn/internal/infrastructure/postgres/generated"
	"github.com/iho/gopawn/internal/usecase"
)

// AuditRepository implements audit log persistence
type AuditRepository struct {
	queries *generated.Queries
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return newAuditRepositoryWithDB(pool)
}

func newAuditRepositoryWithDB(db generated.DBTX) *AuditRepository {
	return &AuditRepository{queries: generated.New(db)}
}

// CreateTx inserts an audit log inside tx.
func (r *AuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	pgxTx, err := pgxTxFrom(tx)
	if err != nil {
		return err
	}

	return r.queries.WithTx(pgxTx).CreateAuditLog(ctx, generated.CreateAuditLogParams{
		ID:        log.ID,
		EntryID:   log.EntryID,
		UserID:    log.UserID,
		Action:    string(log.Action),
		Details:   log.Details,
		CreatedAt: timeToPgTimestamptz(log.CreatedAt),
	})
}

// ListByEntry returns the audit trail of one entry, oldest first.
func (r *AuditRepository) ListByEntry(ctx context.Context, entryID string) ([]*domain.AuditLog, error) {
	rows, err := r.queries.ListAuditLogsByEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	return rowsToAuditLogs(rows), nil
}

// List retrieves audit logs with filtering, newest first.
func (r *AuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	rows, err := r.queries.ListAuditLogs(ctx, generated.ListAuditLogsParams{
		EntryID:   textOrNull(filter.EntryID),
		UserID:    textOrNull(filter.UserID),
		Action:    textOrNull(string(filter.Action)),
		StartDate: timePtrToPgTimestamptz(filter.StartDate),
		EndDate:   timePtrToPgTimestamptz(filter.EndDate),
		Limit:     int32(filter.Limit),
		Offset:    int32(filter.Offset),
	})
	if err != nil {
		return nil, err
	}

	return rowsToAuditLogs(rows), nil
}

func rowsToAuditLogs(rows []generated.AuditLog) []*domain.AuditLog {
	logs := make([]*domain.AuditLog, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, &domain.AuditLog{
			ID:        row.ID,
			EntryID:   row.EntryID,
			UserID:    row.UserID,
			Action:    domain.AuditAction(row.Action),
			Details:   row.Details,
			CreatedAt: row.CreatedAt.Time,
		})
	}
	return logs
}
