package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gopawn/internal/domain"
	"github.com/iho/gopawn/internal/infrastructure/metrics"
)

// EntryUseCase owns the entry lifecycle. Every mutation is persisted together with
// exactly one audit log row.
type EntryUseCase struct {
	txManager TransactionManager
	entryRepo EntryRepository
	auditRepo AuditRepository
	idGen     IDGenerator
	retrier   Retrier
	clock     Clock
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// NewEntryUseCase creates a new EntryUseCase. retrier and metrics are optional.
func NewEntryUseCase(
	txManager TransactionManager,
	entryRepo EntryRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
	retrier Retrier,
	clock Clock,
	metrics *metrics.Metrics,
	logger zerolog.Logger,
) *EntryUseCase {
	if clock == nil {
		clock = SystemClock{}
	}

	return &EntryUseCase{
		txManager: txManager,
		entryRepo: entryRepo,
		auditRepo: auditRepo,
		idGen:     idGen,
		retrier:   retrier,
		clock:     clock,
		metrics:   metrics,
		logger:    logger,
	}
}

// EntryMutation pairs an entry change with the audit row recorded for it.
type EntryMutation struct {
	Entry    *domain.Entry
	AuditLog *domain.AuditLog
}

// CreateEntryInput represents input for creating an entry.
type CreateEntryInput struct {
	Date         time.Time
	SerialNumber string
	CustomerName string
	GivenBy      string
	Amount       decimal.Decimal
	Weight       decimal.Decimal
}

func (in CreateEntryInput) fields() domain.EntryFields {
	return domain.EntryFields{
		Date:         in.Date,
		SerialNumber: in.SerialNumber,
		CustomerName: in.CustomerName,
		GivenBy:      in.GivenBy,
		Amount:       in.Amount,
		Weight:       in.Weight,
	}
}

// CreateEntry persists a new active entry owned by actor.
func (uc *EntryUseCase) CreateEntry(ctx context.Context, actor *domain.Actor, input CreateEntryInput) (*domain.Entry, error) {
	const op = "create"

	if !actor.CanOperate() {
		return nil, uc.fail(op, domain.ErrPermissionDenied)
	}

	if err := input.fields().Validate(); err != nil {
		return nil, uc.fail(op, err)
	}

	start := uc.clock.Now()
	entryID := uc.idGen.Generate()

	m, err := uc.mutate(ctx, func(ctx context.Context, tx Transaction) (*domain.Entry, bool, string, error) {
		now := uc.clock.Now()
		entry := &domain.Entry{
			ID:           entryID,
			UserID:       actor.ID,
			OwnerName:    actor.Username,
			Date:         input.Date,
			SerialNumber: strings.TrimSpace(input.SerialNumber),
			CustomerName: strings.TrimSpace(input.CustomerName),
			GivenBy:      strings.TrimSpace(input.GivenBy),
			Amount:       input.Amount,
			Weight:       input.Weight,
			Status:       domain.EntryStatusActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return entry, true, "Entry created", nil
	}, actor, domain.AuditActionCreate)
	if err != nil {
		return nil, uc.fail(op, err)
	}

	uc.observe(op, start)
	if uc.metrics != nil {
		uc.metrics.EntriesCreated.Inc()
	}

	uc.logger.Info().
		Str("entry_id", m.Entry.ID).
		Str("user_id", actor.ID).
		Str("amount", m.Entry.Amount.StringFixed(2)).
		Msg("entry created")

	return m.Entry, nil
}

// EditEntryInput carries optional field changes. Nil fields are left untouched.
type EditEntryInput struct {
	EntryID      string
	Date         *time.Time
	SerialNumber *string
	CustomerName *string
	GivenBy      *string
	Amount       *decimal.Decimal
	Weight       *decimal.Decimal
}

// EditEntry applies field changes to an active entry owned by actor.
func (uc *EntryUseCase) EditEntry(ctx context.Context, actor *domain.Actor, input EditEntryInput) (*domain.Entry, error) {
	const op = "edit"

	if !actor.CanOperate() {
		return nil, uc.fail(op, domain.ErrPermissionDenied)
	}

	start := uc.clock.Now()

	m, err := uc.mutate(ctx, func(ctx context.Context, tx Transaction) (*domain.Entry, bool, string, error) {
		entry, err := uc.entryRepo.GetByIDForUpdate(ctx, tx, input.EntryID)
		if err != nil {
			return nil, false, "", err
		}

		if !entry.IsOwnedBy(actor.ID) || entry.Status != domain.EntryStatusActive {
			return nil, false, "", domain.ErrEntryNotFound
		}

		fields := domain.EntryFields{
			Date:         entry.Date,
			SerialNumber: entry.SerialNumber,
			CustomerName: entry.CustomerName,
			GivenBy:      entry.GivenBy,
			Amount:       entry.Amount,
			Weight:       entry.Weight,
		}
		input.applyTo(&fields)

		if err := fields.Validate(); err != nil {
			return nil, false, "", err
		}

		entry.Date = fields.Date
		entry.SerialNumber = strings.TrimSpace(fields.SerialNumber)
		entry.CustomerName = strings.TrimSpace(fields.CustomerName)
		entry.GivenBy = strings.TrimSpace(fields.GivenBy)
		entry.Amount = fields.Amount
		entry.Weight = fields.Weight
		entry.UpdatedAt = uc.clock.Now()

		return entry, false, "Entry edited", nil
	}, actor, domain.AuditActionEdit)
	if err != nil {
		return nil, uc.fail(op, err)
	}

	uc.observe(op, start)
	if uc.metrics != nil {
		uc.metrics.EntriesEdited.Inc()
	}

	uc.logger.Info().
		Str("entry_id", m.Entry.ID).
		Str("user_id", actor.ID).
		Msg("entry edited")

	return m.Entry, nil
}

func (in EditEntryInput) applyTo(f *domain.EntryFields) {
	if in.Date != nil {
		f.Date = *in.Date
	}
	if in.SerialNumber != nil {
		f.SerialNumber = *in.SerialNumber
	}
	if in.CustomerName != nil {
		f.CustomerName = *in.CustomerName
	}
	if in.GivenBy != nil {
		f.GivenBy = *in.GivenBy
	}
	if in.Amount != nil {
		f.Amount = *in.Amount
	}
	if in.Weight != nil {
		f.Weight = *in.Weight
	}
}

// ApplyInterestInput represents a request to calculate interest on an entry.
// Exactly one of DailyRate and AnnualRate must be set. ToDate defaults to today.
type ApplyInterestInput struct {
	EntryID    string
	DailyRate  *decimal.Decimal
	AnnualRate *decimal.Decimal
	ToDate     *time.Time
}

// InterestResult is the outcome of ApplyInterest.
type InterestResult struct {
	Entry          *domain.Entry
	DailyRate      decimal.Decimal
	ToDate         time.Time
	Days           int
	EffectiveDays  int
	Method         domain.InterestMethod
	InterestAmount decimal.Decimal
	TotalAmount    decimal.Decimal
}

// ApplyInterest computes interest for an entry and stores the result on it.
// Staff may calculate interest on any entry; other actors only on their own.
func (uc *EntryUseCase) ApplyInterest(ctx context.Context, actor *domain.Actor, input ApplyInterestInput) (*InterestResult, error) {
	const op = "calculate_interest"

	if !actor.CanOperate() {
		return nil, uc.fail(op, domain.ErrPermissionDenied)
	}

	rate, err := resolveDailyRate(input.DailyRate, input.AnnualRate)
	if err != nil {
		return nil, uc.fail(op, err)
	}

	start := uc.clock.Now()

	var calc *domain.InterestCalculation
	m, err := uc.mutate(ctx, func(ctx context.Context, tx Transaction) (*domain.Entry, bool, string, error) {
		entry, err := uc.entryRepo.GetByIDForUpdate(ctx, tx, input.EntryID)
		if err != nil {
			return nil, false, "", err
		}

		if !actor.CanAccess(entry) {
			return nil, false, "", domain.ErrPermissionDenied
		}

		now := uc.clock.Now()
		toDate := now
		if input.ToDate != nil {
			toDate = *input.ToDate
		}

		calc, err = domain.CalculateInterest(entry.Amount, entry.FromDate, toDate, rate)
		if err != nil {
			return nil, false, "", err
		}

		entry.ApplyCalculation(calc, now)

		details := fmt.Sprintf("Interest calculated with rate %s%% for %d days", rate.String(), calc.Days)
		return entry, false, details, nil
	}, actor, domain.AuditActionCalculateInterest)
	if err != nil {
		return nil, uc.fail(op, err)
	}

	uc.observe(op, start)
	if uc.metrics != nil {
		uc.metrics.InterestCalculations.WithLabelValues(string(calc.Method)).Inc()
		uc.metrics.InterestAmount.Observe(calc.Amount.InexactFloat64())
	}

	uc.logger.Info().
		Str("entry_id", m.Entry.ID).
		Str("user_id", actor.ID).
		Str("daily_rate", rate.String()).
		Int("days", calc.Days).
		Str("method", string(calc.Method)).
		Str("interest", calc.Amount.StringFixed(2)).
		Msg("interest calculated")

	return &InterestResult{
		Entry:          m.Entry,
		DailyRate:      rate,
		ToDate:         calc.ToDate,
		Days:           calc.Days,
		EffectiveDays:  calc.EffectiveDays,
		Method:         calc.Method,
		InterestAmount: calc.Amount,
		TotalAmount:    m.Entry.TotalAmount(),
	}, nil
}

// ReleaseEntry marks an entry owned by actor as released.
func (uc *EntryUseCase) ReleaseEntry(ctx context.Context, actor *domain.Actor, entryID string) (*domain.Entry, error) {
	const op = "release"

	if !actor.CanOperate() {
		return nil, uc.fail(op, domain.ErrPermissionDenied)
	}

	start := uc.clock.Now()

	m, err := uc.mutate(ctx, func(ctx context.Context, tx Transaction) (*domain.Entry, bool, string, error) {
		entry, err := uc.entryRepo.GetByIDForUpdate(ctx, tx, entryID)
		if err != nil {
			return nil, false, "", err
		}

		if !entry.IsOwnedBy(actor.ID) {
			return nil, false, "", domain.ErrEntryNotFound
		}

		if err := entry.Release(uc.clock.Now()); err != nil {
			return nil, false, "", fmt.Errorf("%w: entry is %s", err, entry.Status)
		}

		return entry, false, "Entry released", nil
	}, actor, domain.AuditActionRelease)
	if err != nil {
		return nil, uc.fail(op, err)
	}

	uc.observe(op, start)
	if uc.metrics != nil {
		uc.metrics.EntriesReleased.Inc()
	}

	uc.logger.Info().
		Str("entry_id", m.Entry.ID).
		Str("user_id", actor.ID).
		Msg("entry released")

	return m.Entry, nil
}

// GetEntry retrieves an entry visible to actor.
func (uc *EntryUseCase) GetEntry(ctx context.Context, actor *domain.Actor, id string) (*domain.Entry, error) {
	entry, err := uc.entryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.CanAccess(entry) {
		return nil, domain.ErrPermissionDenied
	}

	return entry, nil
}

// ListActiveEntriesInput represents input for listing the actor's active entries.
type ListActiveEntriesInput struct {
	Limit  int
	Offset int
}

// ListActiveEntries lists active entries owned by actor.
func (uc *EntryUseCase) ListActiveEntries(ctx context.Context, actor *domain.Actor, input ListActiveEntriesInput) ([]*domain.Entry, error) {
	if !actor.CanOperate() {
		return nil, domain.ErrPermissionDenied
	}

	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.entryRepo.List(ctx, domain.EntryFilter{
		UserID: actor.ID,
		Status: domain.EntryStatusActive,
		Limit:  limit,
		Offset: offset,
	})
}

// GetEntryHistory returns the chronological audit trail of an entry.
func (uc *EntryUseCase) GetEntryHistory(ctx context.Context, actor *domain.Actor, entryID string) ([]*domain.AuditLog, error) {
	if _, err := uc.GetEntry(ctx, actor, entryID); err != nil {
		return nil, err
	}

	return uc.auditRepo.ListByEntry(ctx, entryID)
}

// QuoteInterestInput represents a calculation that is not stored anywhere.
type QuoteInterestInput struct {
	Principal  decimal.Decimal
	FromDate   time.Time
	ToDate     *time.Time
	DailyRate  *decimal.Decimal
	AnnualRate *decimal.Decimal
}

// QuoteInterest previews an interest calculation without touching any entry.
func (uc *EntryUseCase) QuoteInterest(input QuoteInterestInput) (*domain.InterestCalculation, error) {
	rate, err := resolveDailyRate(input.DailyRate, input.AnnualRate)
	if err != nil {
		return nil, err
	}

	toDate := uc.clock.Now()
	if input.ToDate != nil {
		toDate = *input.ToDate
	}

	return domain.CalculateInterest(input.Principal, input.FromDate, toDate, rate)
}

// mutateFunc loads or builds the entry to persist. It reports whether the entry is
// new and the audit details to record.
type mutateFunc func(ctx context.Context, tx Transaction) (entry *domain.Entry, isNew bool, details string, err error)

// mutate runs fn, saves the entry and appends one audit row in a single transaction.
// Either both writes commit or neither does.
func (uc *EntryUseCase) mutate(ctx context.Context, fn mutateFunc, actor *domain.Actor, action domain.AuditAction) (*EntryMutation, error) {
	var result *EntryMutation

	operation := func() error {
		txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(txCtx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(txCtx) }()

		entry, isNew, details, err := fn(txCtx, tx)
		if err != nil {
			return err
		}

		entry.Normalize()

		if isNew {
			err = uc.entryRepo.Create(txCtx, tx, entry)
		} else {
			err = uc.entryRepo.Update(txCtx, tx, entry)
		}
		if err != nil {
			return err
		}

		auditLog := &domain.AuditLog{
			ID:        uc.idGen.Generate(),
			EntryID:   entry.ID,
			UserID:    actor.ID,
			Action:    action,
			Details:   details,
			CreatedAt: uc.clock.Now(),
		}
		if err := uc.auditRepo.CreateTx(txCtx, tx, auditLog); err != nil {
			return err
		}

		if err := tx.Commit(txCtx); err != nil {
			return err
		}

		result = &EntryMutation{Entry: entry, AuditLog: auditLog}
		return nil
	}

	var err error
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, operation)
	} else {
		err = operation()
	}
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AuditLogsCreated.WithLabelValues(string(action)).Inc()
	}

	return result, nil
}

func (uc *EntryUseCase) observe(op string, start time.Time) {
	if uc.metrics != nil {
		uc.metrics.OperationDuration.WithLabelValues(op).Observe(uc.clock.Now().Sub(start).Seconds())
	}
}

func (uc *EntryUseCase) fail(op string, err error) error {
	if uc.metrics != nil {
		uc.metrics.OperationErrors.WithLabelValues(op, ErrorKind(err)).Inc()
	}

	uc.logger.Debug().Err(err).Str("operation", op).Msg("entry operation failed")

	return err
}

func resolveDailyRate(daily, annual *decimal.Decimal) (decimal.Decimal, error) {
	switch {
	case daily != nil && annual != nil:
		return decimal.Zero, fmt.Errorf("%w: provide either a daily or an annual rate, not both", domain.ErrValidation)
	case daily != nil:
		return *daily, domain.ValidateDailyRate(*daily)
	case annual != nil:
		if annual.IsNegative() {
			return decimal.Zero, fmt.Errorf("%w: annual rate must not be negative", domain.ErrValidation)
		}
		rate := domain.DailyRateFromAnnual(*annual)
		return rate, domain.ValidateDailyRate(rate)
	default:
		return decimal.Zero, fmt.Errorf("%w: a daily or annual rate is required", domain.ErrValidation)
	}
}

// ErrorKind classifies err for metrics and logs.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrEntryNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrPermissionDenied):
		return "permission_denied"
	case errors.Is(err, domain.ErrInvalidDateRange):
		return "invalid_date_range"
	case errors.Is(err, domain.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "internal"
	}
}
