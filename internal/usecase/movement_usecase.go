package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iho/gocaja/internal/domain"
)

// MovementUseCase merges allocations and income receipts into the unified
// chronological movement feed. Merging is read-only and side-effect-free;
// calling it repeatedly on unchanged data yields identical output,
// including for days already closed.
type MovementUseCase struct {
	allocationRepo AllocationRepository
	incomeRepo     IncomeRepository

	cache    Cache
	cacheTTL time.Duration
}

// NewMovementUseCase creates a new MovementUseCase.
func NewMovementUseCase(allocationRepo AllocationRepository, incomeRepo IncomeRepository) *MovementUseCase {
	return &MovementUseCase{
		allocationRepo: allocationRepo,
		incomeRepo:     incomeRepo,
	}
}

// WithCache enables read-through caching of merged reports. Reports for any
// day can still change when dated movements arrive late, so the TTL should
// stay short.
func (uc *MovementUseCase) WithCache(cache Cache, ttl time.Duration) {
	uc.cache = cache
	uc.cacheTTL = ttl
}

// MovementFilter selects the movement window.
type MovementFilter struct {
	DateFrom      time.Time
	DateTo        time.Time
	BankAccountID *string
}

// MovementReport is the merged, sorted feed plus its partitioned totals.
type MovementReport struct {
	Movements []domain.Movement
	Totals    domain.MovementTotals
	// Net is total income minus total expense across both partitions.
	Net domain.Money
}

// Merge builds the unified movement feed for the filter window, serving from
// the report cache when one is configured.
func (uc *MovementUseCase) Merge(ctx context.Context, filter MovementFilter) (*MovementReport, error) {
	from := domain.BusinessDay(filter.DateFrom)
	to := domain.BusinessDay(filter.DateTo)

	if err := domain.ValidateDateRange(from, to); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if report, ok := uc.cachedReport(ctx, from, to, filter.BankAccountID); ok {
			return report, nil
		}
	}

	report, err := uc.merge(ctx, from, to, filter.BankAccountID)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.storeReport(ctx, from, to, filter.BankAccountID, report)
	}

	return report, nil
}

// merge reads the ledger directly, never the cache.
func (uc *MovementUseCase) merge(ctx context.Context, from, to time.Time, bankAccountID *string) (*MovementReport, error) {
	allocations, err := uc.allocationRepo.ListByDateRange(ctx, from, to, bankAccountID)
	if err != nil {
		return nil, err
	}

	incomes, err := uc.incomeRepo.ListByDateRange(ctx, from, to, bankAccountID)
	if err != nil {
		return nil, err
	}

	movements := make([]domain.Movement, 0, len(allocations)+len(incomes))
	for _, a := range allocations {
		movements = append(movements, domain.Movement{
			Kind:          domain.MovementExpense,
			RecordID:      a.ID,
			ExpenseID:     a.ExpenseID,
			Amount:        a.Amount,
			Date:          a.Date,
			Method:        a.Method,
			BankAccountID: a.BankAccountID,
		})
	}
	for _, i := range incomes {
		movements = append(movements, domain.Movement{
			Kind:          domain.MovementIncome,
			RecordID:      i.ID,
			Concept:       i.Concept,
			Amount:        i.Amount,
			Date:          i.Date,
			Method:        i.Method,
			BankAccountID: i.BankAccountID,
		})
	}

	domain.SortMovements(movements)

	var totals domain.MovementTotals
	for _, m := range movements {
		if err := totals.Accumulate(m); err != nil {
			return nil, err
		}
	}

	net, err := totals.Net()
	if err != nil {
		return nil, err
	}

	return &MovementReport{
		Movements: movements,
		Totals:    totals,
		Net:       net,
	}, nil
}

// MergeDay merges a single business day straight from the ledger, bypassing
// the cache. Snapshot and sealing decisions must see live totals; a cached
// report could be missing movements that landed within the TTL. The fresh
// report replaces the day's cached entry so subsequent reads catch up too.
func (uc *MovementUseCase) MergeDay(ctx context.Context, date time.Time) (*MovementReport, error) {
	day := domain.BusinessDay(date)

	report, err := uc.merge(ctx, day, day, nil)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.storeReport(ctx, day, day, nil, report)
	}

	return report, nil
}

type cachedMovement struct {
	Kind          domain.MovementKind  `json:"kind"`
	RecordID      string               `json:"record_id"`
	ExpenseID     string               `json:"expense_id,omitempty"`
	Concept       string               `json:"concept,omitempty"`
	AmountUnits   int64                `json:"amount_units"`
	Date          time.Time            `json:"date"`
	Method        domain.PaymentMethod `json:"method"`
	BankAccountID *string              `json:"bank_account_id,omitempty"`
}

type cachedReport struct {
	Movements        []cachedMovement `json:"movements"`
	IncomeCashUnits  int64            `json:"income_cash_units"`
	IncomeBankUnits  int64            `json:"income_bank_units"`
	ExpenseCashUnits int64            `json:"expense_cash_units"`
	ExpenseBankUnits int64            `json:"expense_bank_units"`
	NetUnits         int64            `json:"net_units"`
}

func reportCacheKey(from, to time.Time, bankAccountID *string) string {
	bank := "all"
	if bankAccountID != nil {
		bank = *bankAccountID
	}
	return fmt.Sprintf("movements:%s:%s:%s", from.Format("2006-01-02"), to.Format("2006-01-02"), bank)
}

func (uc *MovementUseCase) cachedReport(ctx context.Context, from, to time.Time, bankAccountID *string) (*MovementReport, bool) {
	raw, err := uc.cache.Get(ctx, reportCacheKey(from, to, bankAccountID))
	if err != nil || raw == nil {
		return nil, false
	}

	var cr cachedReport
	if err := json.Unmarshal(raw, &cr); err != nil {
		return nil, false
	}

	report := &MovementReport{
		Movements: make([]domain.Movement, 0, len(cr.Movements)),
		Totals: domain.MovementTotals{
			IncomeCash:  domain.NewMoneyFromUnits(cr.IncomeCashUnits),
			IncomeBank:  domain.NewMoneyFromUnits(cr.IncomeBankUnits),
			ExpenseCash: domain.NewMoneyFromUnits(cr.ExpenseCashUnits),
			ExpenseBank: domain.NewMoneyFromUnits(cr.ExpenseBankUnits),
		},
		Net: domain.NewMoneyFromUnits(cr.NetUnits),
	}
	for _, m := range cr.Movements {
		report.Movements = append(report.Movements, domain.Movement{
			Kind:          m.Kind,
			RecordID:      m.RecordID,
			ExpenseID:     m.ExpenseID,
			Concept:       m.Concept,
			Amount:        domain.NewMoneyFromUnits(m.AmountUnits),
			Date:          m.Date,
			Method:        m.Method,
			BankAccountID: m.BankAccountID,
		})
	}

	return report, true
}

func (uc *MovementUseCase) storeReport(ctx context.Context, from, to time.Time, bankAccountID *string, report *MovementReport) {
	cr := cachedReport{
		Movements:        make([]cachedMovement, 0, len(report.Movements)),
		IncomeCashUnits:  report.Totals.IncomeCash.Units(),
		IncomeBankUnits:  report.Totals.IncomeBank.Units(),
		ExpenseCashUnits: report.Totals.ExpenseCash.Units(),
		ExpenseBankUnits: report.Totals.ExpenseBank.Units(),
		NetUnits:         report.Net.Units(),
	}
	for _, m := range report.Movements {
		cr.Movements = append(cr.Movements, cachedMovement{
			Kind:          m.Kind,
			RecordID:      m.RecordID,
			ExpenseID:     m.ExpenseID,
			Concept:       m.Concept,
			AmountUnits:   m.Amount.Units(),
			Date:          m.Date,
			Method:        m.Method,
			BankAccountID: m.BankAccountID,
		})
	}

	raw, err := json.Marshal(cr)
	if err != nil {
		return
	}

	// Best effort: a cache failure must not fail the read.
	_ = uc.cache.Set(ctx, reportCacheKey(from, to, bankAccountID), raw, uc.cacheTTL)
}
