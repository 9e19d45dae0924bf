package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/gopawn/internal/domain"
	"github.com/iho/gopawn/internal/usecase"
)

var entryColumns = []string{
	"id", "user_id", "owner_name", "date", "from_date", "to_date", "serial_number", "customer_name", "given_by",
	"amount", "weight", "status", "interest_rate", "interest_amount", "created_at", "updated_at", "released_at",
}

func numeric(t *testing.T, s string) pgtype.Numeric {
	t.Helper()
	var n pgtype.Numeric
	require.NoError(t, n.Scan(s))
	return n
}

func beginTx(t *testing.T, pool pgxmock.PgxPoolIface) usecase.Transaction {
	t.Helper()
	pool.ExpectBeginTx(testTxOptions)
	tx, err := newTxManagerWithPool(pool, testTxOptions).Begin(context.Background())
	require.NoError(t, err)
	return tx
}

func sampleEntry() *domain.Entry {
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &domain.Entry{
		ID:           "01HENTRY",
		UserID:       "user-1",
		OwnerName:    "ravi",
		Date:         date,
		FromDate:     date,
		SerialNumber: "SN-1",
		CustomerName: "Lakshmi",
		GivenBy:      "Counter",
		Amount:       decimal.RequireFromString("100000"),
		Weight:       decimal.RequireFromString("12.5"),
		Status:       domain.EntryStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestEntryRepositoryCreate(t *testing.T) {
	pool := newMockPool(t)
	repo := newEntryRepositoryWithDB(pool)
	tx := beginTx(t, pool)

	entry := sampleEntry()
	args := make([]any, 17)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	args[0] = entry.ID

	pool.ExpectExec("INSERT INTO entries").
		WithArgs(args...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Create(context.Background(), tx, entry))
	assertExpectations(t, pool)
}

func TestEntryRepositoryUpdateMissingRow(t *testing.T) {
	pool := newMockPool(t)
	repo := newEntryRepositoryWithDB(pool)
	tx := beginTx(t, pool)

	entry := sampleEntry()
	args := make([]any, 14)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	args[0] = entry.ID

	pool.ExpectExec("UPDATE entries SET").
		WithArgs(args...).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), tx, entry)
	require.ErrorIs(t, err, domain.ErrEntryNotFound)
	assertExpectations(t, pool)
}

func TestEntryRepositoryRejectsForeignTransaction(t *testing.T) {
	repo := newEntryRepositoryWithDB(newMockPool(t))

	err := repo.Create(context.Background(), foreignTx{}, sampleEntry())
	require.Error(t, err)
}

func TestEntryRepositoryGetByIDForUpdate(t *testing.T) {
	pool := newMockPool(t)
	repo := newEntryRepositoryWithDB(pool)
	tx := beginTx(t, pool)

	created := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	released := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)
	day := pgtype.Date{Time: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Valid: true}
	toDay := pgtype.Date{Time: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), Valid: true}

	rows := pgxmock.NewRows(entryColumns).AddRow(
		"01HENTRY", "user-1", "ravi", day, day, toDay, "SN-1", "Lakshmi", "Counter",
		numeric(t, "100000.00"), numeric(t, "12.50"), "released", numeric(t, "0.0329"), numeric(t, "493.50"),
		pgtype.Timestamptz{Time: created, Valid: true},
		pgtype.Timestamptz{Time: released, Valid: true},
		pgtype.Timestamptz{Time: released, Valid: true},
	)
	pool.ExpectQuery("FOR UPDATE").WithArgs("01HENTRY").WillReturnRows(rows)

	entry, err := repo.GetByIDForUpdate(context.Background(), tx, "01HENTRY")
	require.NoError(t, err)

	assert.Equal(t, domain.EntryStatusReleased, entry.Status)
	assert.True(t, entry.Amount.Equal(decimal.RequireFromString("100000")))
	require.NotNil(t, entry.InterestRate)
	assert.Equal(t, "0.0329", entry.InterestRate.String())
	require.NotNil(t, entry.InterestAmount)
	assert.True(t, entry.InterestAmount.Equal(decimal.RequireFromString("493.5")))
	require.NotNil(t, entry.ToDate)
	assert.Equal(t, toDay.Time, *entry.ToDate)
	require.NotNil(t, entry.ReleasedAt)
	assert.Equal(t, released, *entry.ReleasedAt)
	assertExpectations(t, pool)
}

func TestEntryRepositoryGetByIDNotFound(t *testing.T) {
	pool := newMockPool(t)
	repo := newEntryRepositoryWithDB(pool)

	pool.ExpectQuery("SELECT (.+) FROM entries WHERE id").WithArgs("missing").WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrEntryNotFound)
}

func TestEntryRepositoryGetByIDPropagatesErrors(t *testing.T) {
	pool := newMockPool(t)
	repo := newEntryRepositoryWithDB(pool)
	boom := errors.New("connection reset")

	pool.ExpectQuery("SELECT (.+) FROM entries WHERE id").WithArgs("x").WillReturnError(boom)

	_, err := repo.GetByID(context.Background(), "x")
	require.ErrorIs(t, err, boom)
}

func TestEntryRepositoryListPassesNullFilters(t *testing.T) {
	pool := newMockPool(t)
	repo := newEntryRepositoryWithDB(pool)

	pool.ExpectQuery("FROM entries").
		WithArgs(
			pgtype.Text{String: "user-1", Valid: true},
			pgtype.Text{String: "active", Valid: true},
			pgtype.Date{},
			pgtype.Date{},
			pgtype.Text{},
			pgtype.Text{},
			int32(50),
			int32(0),
		).
		WillReturnRows(pgxmock.NewRows(entryColumns))

	entries, err := repo.List(context.Background(), domain.EntryFilter{
		UserID: "user-1",
		Status: domain.EntryStatusActive,
		Limit:  50,
	})
	require.NoError(t, err)
	assert.Empty(t, entries)
	assertExpectations(t, pool)
}

func TestEntryRepositoryStats(t *testing.T) {
	pool := newMockPool(t)
	repo := newEntryRepositoryWithDB(pool)

	rows := pgxmock.NewRows([]string{"total_entries", "active_entries", "released_entries", "total_principal", "total_interest"}).
		AddRow(int64(3), int64(2), int64(1), numeric(t, "102500.50"), numeric(t, "493.50"))
	pool.ExpectQuery("COUNT").
		WithArgs(pgtype.Text{}, pgtype.Text{}, pgtype.Date{}, pgtype.Date{}, pgtype.Text{}).
		WillReturnRows(rows)

	stats, err := repo.Stats(context.Background(), domain.EntryFilter{})
	require.NoError(t, err)
	assertExpectations(t, pool)

	assert.Equal(t, int64(3), stats.TotalEntries)
	assert.Equal(t, int64(2), stats.ActiveEntries)
	assert.Equal(t, int64(1), stats.ReleasedEntries)
	assert.True(t, stats.TotalPrincipal.Equal(decimal.RequireFromString("102500.50")))
	assert.True(t, stats.TotalInterest.Equal(decimal.RequireFromString("493.50")))
}

func TestEntryRepositoryStatsPassesFilters(t *testing.T) {
	pool := newMockPool(t)
	repo := newEntryRepositoryWithDB(pool)

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{"total_entries", "active_entries", "released_entries", "total_principal", "total_interest"}).
		AddRow(int64(1), int64(0), int64(1), numeric(t, "2500.50"), numeric(t, "0"))
	pool.ExpectQuery("customer_name ILIKE").
		WithArgs(
			pgtype.Text{},
			pgtype.Text{String: "released", Valid: true},
			pgtype.Date{Time: from, Valid: true},
			pgtype.Date{},
			pgtype.Text{String: "arj", Valid: true},
		).
		WillReturnRows(rows)

	stats, err := repo.Stats(context.Background(), domain.EntryFilter{
		Status:       domain.EntryStatusReleased,
		DateFrom:     &from,
		CustomerName: "arj",
		Search:       "ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.ReleasedEntries)
	assertExpectations(t, pool)
}

func TestNumericConversionRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "0.0329", "100000", "99999999.99", "17009.3"} {
		d := decimal.RequireFromString(s)
		assert.True(t, numericToDecimal(decimalToNumeric(d)).Equal(d), s)
	}

	assert.Nil(t, numericToDecimalPtr(pgtype.Numeric{}))
	assert.False(t, decimalPtrToNumeric(nil).Valid)
}

type foreignTx struct{}

func (foreignTx) Commit(context.Context) error   { return nil }
func (foreignTx) Rollback(context.Context) error { return nil }
