package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gopawn/internal/domain"
	"github.com/iho/gopawn/internal/infrastructure/postgres/generated"
	"github.com/iho/gopawn/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	queries *generated.Queries
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return newEntryRepositoryWithDB(pool)
}

func newEntryRepositoryWithDB(db generated.DBTX) *EntryRepository {
	return &EntryRepository{queries: generated.New(db)}
}

// Create inserts a new entry.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	pgxTx, err := pgxTxFrom(tx)
	if err != nil {
		return err
	}

	return r.queries.WithTx(pgxTx).CreateEntry(ctx, generated.CreateEntryParams{
		ID:             entry.ID,
		UserID:         entry.UserID,
		OwnerName:      entry.OwnerName,
		Date:           dateToPgDate(entry.Date),
		FromDate:       dateToPgDate(entry.FromDate),
		ToDate:         datePtrToPgDate(entry.ToDate),
		SerialNumber:   entry.SerialNumber,
		CustomerName:   entry.CustomerName,
		GivenBy:        entry.GivenBy,
		Amount:         decimalToNumeric(entry.Amount),
		Weight:         decimalToNumeric(entry.Weight),
		Status:         string(entry.Status),
		InterestRate:   decimalPtrToNumeric(entry.InterestRate),
		InterestAmount: decimalPtrToNumeric(entry.InterestAmount),
		CreatedAt:      timeToPgTimestamptz(entry.CreatedAt),
		UpdatedAt:      timeToPgTimestamptz(entry.UpdatedAt),
		ReleasedAt:     timePtrToPgTimestamptz(entry.ReleasedAt),
	})
}

// Update overwrites the mutable columns of an entry.
func (r *EntryRepository) Update(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	pgxTx, err := pgxTxFrom(tx)
	if err != nil {
		return err
	}

	rows, err := r.queries.WithTx(pgxTx).UpdateEntry(ctx, generated.UpdateEntryParams{
		ID:             entry.ID,
		Date:           dateToPgDate(entry.Date),
		FromDate:       dateToPgDate(entry.FromDate),
		ToDate:         datePtrToPgDate(entry.ToDate),
		SerialNumber:   entry.SerialNumber,
		CustomerName:   entry.CustomerName,
		GivenBy:        entry.GivenBy,
		Amount:         decimalToNumeric(entry.Amount),
		Weight:         decimalToNumeric(entry.Weight),
		Status:         string(entry.Status),
		InterestRate:   decimalPtrToNumeric(entry.InterestRate),
		InterestAmount: decimalPtrToNumeric(entry.InterestAmount),
		UpdatedAt:      timeToPgTimestamptz(entry.UpdatedAt),
		ReleasedAt:     timePtrToPgTimestamptz(entry.ReleasedAt),
	})
	if err != nil {
		return err
	}

	if rows == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// GetByID retrieves an entry by ID.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	row, err := r.queries.GetEntryByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	return rowToEntry(row), nil
}

// GetByIDForUpdate retrieves an entry by ID with a FOR UPDATE lock.
func (r *EntryRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Entry, error) {
	pgxTx, err := pgxTxFrom(tx)
	if err != nil {
		return nil, err
	}

	row, err := r.queries.WithTx(pgxTx).GetEntryByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	return rowToEntry(row), nil
}

// List retrieves entries matching filter, newest date first.
func (r *EntryRepository) List(ctx context.Context, filter domain.EntryFilter) ([]*domain.Entry, error) {
	rows, err := r.queries.ListEntries(ctx, generated.ListEntriesParams{
		UserID:       textOrNull(filter.UserID),
		Status:       textOrNull(string(filter.Status)),
		DateFrom:     datePtrToPgDate(filter.DateFrom),
		DateTo:       datePtrToPgDate(filter.DateTo),
		CustomerName: textOrNull(filter.CustomerName),
		Search:       textOrNull(filter.Search),
		Limit:        int32(filter.Limit),
		Offset:       int32(filter.Offset),
	})
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, rowToEntry(row))
	}

	return entries, nil
}

// Stats aggregates entries matching filter. Paging and search are ignored.
func (r *EntryRepository) Stats(ctx context.Context, filter domain.EntryFilter) (*domain.EntryStats, error) {
	row, err := r.queries.EntryStats(ctx, generated.EntryStatsParams{
		UserID:       textOrNull(filter.UserID),
		Status:       textOrNull(string(filter.Status)),
		DateFrom:     datePtrToPgDate(filter.DateFrom),
		DateTo:       datePtrToPgDate(filter.DateTo),
		CustomerName: textOrNull(filter.CustomerName),
	})
	if err != nil {
		return nil, err
	}

	return &domain.EntryStats{
		TotalEntries:    row.TotalEntries,
		ActiveEntries:   row.ActiveEntries,
		ReleasedEntries: row.ReleasedEntries,
		TotalPrincipal:  numericToDecimal(row.TotalPrincipal),
		TotalInterest:   numericToDecimal(row.TotalInterest),
	}, nil
}

func rowToEntry(row generated.Entry) *domain.Entry {
	return &domain.Entry{
		ID:             row.ID,
		UserID:         row.UserID,
		OwnerName:      row.OwnerName,
		Date:           row.Date.Time,
		FromDate:       row.FromDate.Time,
		ToDate:         pgDateToTimePtr(row.ToDate),
		SerialNumber:   row.SerialNumber,
		CustomerName:   row.CustomerName,
		GivenBy:        row.GivenBy,
		Amount:         numericToDecimal(row.Amount),
		Weight:         numericToDecimal(row.Weight),
		Status:         domain.EntryStatus(row.Status),
		InterestRate:   numericToDecimalPtr(row.InterestRate),
		InterestAmount: numericToDecimalPtr(row.InterestAmount),
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
		ReleasedAt:     pgTimestamptzToTimePtr(row.ReleasedAt),
	}
}
