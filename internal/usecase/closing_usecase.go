package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/iho/gocaja/internal/domain"
)

// MovementMerger is the slice of MovementUseCase the closing engine needs.
type MovementMerger interface {
	MergeDay(ctx context.Context, date time.Time) (*MovementReport, error)
}

// ClosingUseCase produces and seals daily closing snapshots (arqueos). Per
// calendar day the snapshot moves Open -> Closed exactly once; a sealed
// snapshot is immutable and later corrections are dated adjustment
// movements in a later open period.
type ClosingUseCase struct {
	txManager   TransactionManager
	closingRepo ClosingRepository
	merger      MovementMerger
	now         func() time.Time
}

// NewClosingUseCase creates a new ClosingUseCase.
func NewClosingUseCase(
	txManager TransactionManager,
	closingRepo ClosingRepository,
	merger MovementMerger,
) *ClosingUseCase {
	return &ClosingUseCase{
		txManager:   txManager,
		closingRepo: closingRepo,
		merger:      merger,
		now:         time.Now,
	}
}

// WithNow overrides the clock for deterministic tests.
func (uc *ClosingUseCase) WithNow(now func() time.Time) {
	if now != nil {
		uc.now = now
	}
}

// OpenOrGet returns the day's snapshot. A sealed snapshot is returned as
// stored; an open one is refreshed with live totals. When no snapshot
// exists yet an open one is created.
func (uc *ClosingUseCase) OpenOrGet(ctx context.Context, date time.Time) (*domain.Closing, error) {
	day := domain.BusinessDay(date)
	now := uc.now().UTC()

	existing, err := uc.closingRepo.GetByDate(ctx, day)
	if err != nil && !errors.Is(err, domain.ErrClosingNotFound) {
		return nil, err
	}

	if existing != nil && existing.IsClosed() {
		return existing, nil
	}

	report, err := uc.merger.MergeDay(ctx, day)
	if err != nil {
		return nil, err
	}

	balance, err := uc.runningBalance(ctx, day, report)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		existing.Totals = report.Totals
		existing.ClosingBalance = balance
		existing.UpdatedAt = now

		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return nil, err
		}
		defer tx.Rollback(ctx)

		if err := uc.closingRepo.Upsert(ctx, tx, existing); err != nil {
			if errors.Is(err, domain.ErrAlreadyClosed) {
				// Sealed concurrently since the read above; the seal wins.
				return uc.closingRepo.GetByDate(ctx, day)
			}
			return nil, err
		}
		if err := tx.Commit(ctx); err != nil {
			return nil, err
		}
		return existing, nil
	}

	closing := &domain.Closing{
		Date:           day,
		Totals:         report.Totals,
		ClosingBalance: balance,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.closingRepo.Create(ctx, closing); err != nil {
		if errors.Is(err, domain.ErrConcurrencyConflict) {
			// Another request created the snapshot first; use theirs.
			return uc.closingRepo.GetByDate(ctx, day)
		}
		return nil, err
	}

	return closing, nil
}

// Close seals the day's snapshot. The day's totals are recomputed at
// closing time and verified against the running-balance continuity
// invariant; drift aborts the attempt with no write.
func (uc *ClosingUseCase) Close(ctx context.Context, date time.Time, closedBy string) (*domain.Closing, error) {
	day := domain.BusinessDay(date)
	now := uc.now().UTC()

	// Totals at read time, before the sealing transaction.
	readReport, err := uc.merger.MergeDay(ctx, day)
	if err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	existing, err := uc.closingRepo.GetByDateForUpdate(ctx, tx, day)
	if err != nil && !errors.Is(err, domain.ErrClosingNotFound) {
		return nil, err
	}

	if existing != nil && existing.IsClosed() {
		return nil, domain.ErrAlreadyClosed
	}

	// Re-read with the closing row locked; drift between the two reads
	// means a concurrent allocation or receipt landed mid-close.
	liveReport, err := uc.merger.MergeDay(ctx, day)
	if err != nil {
		return nil, err
	}

	computed, err := uc.runningBalance(ctx, day, liveReport)
	if err != nil {
		return nil, err
	}

	if existing != nil && !existing.ClosingBalance.Equal(computed) {
		// The open snapshot no longer matches the ledger: a movement for
		// this day changed after the snapshot was taken. Never auto-heal;
		// the discrepancy needs manual review.
		return nil, &domain.ReconciliationError{
			Date:     day,
			Expected: existing.ClosingBalance,
			Computed: computed,
		}
	}

	if readReport.Totals != liveReport.Totals {
		return nil, domain.ErrConcurrencyConflict
	}

	closing := existing
	if closing == nil {
		closing = &domain.Closing{
			Date:      day,
			CreatedAt: now,
		}
	}
	closing.Totals = liveReport.Totals
	closing.ClosingBalance = computed

	if err := closing.Seal(closedBy, now); err != nil {
		return nil, err
	}

	if err := uc.closingRepo.Upsert(ctx, tx, closing); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return closing, nil
}

// runningBalance computes prior day's closing balance plus the day's net.
// The first operating day starts from zero.
func (uc *ClosingUseCase) runningBalance(ctx context.Context, day time.Time, report *MovementReport) (domain.Money, error) {
	prev, err := uc.closingRepo.GetPrevious(ctx, day)
	if err != nil {
		if errors.Is(err, domain.ErrClosingNotFound) {
			return report.Net, nil
		}
		return domain.Money{}, err
	}
	return prev.ClosingBalance.Add(report.Net)
}
