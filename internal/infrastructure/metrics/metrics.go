package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Expense metrics
	ExpensesCreated  prometheus.Counter
	AllocationErrors *prometheus.CounterVec

	// Allocation metrics
	AllocationsCreated *prometheus.CounterVec
	AllocationAmount   prometheus.Histogram

	// Income metrics
	IncomesRecorded *prometheus.CounterVec
	IncomeAmount    prometheus.Histogram

	// Closing metrics
	ClosingsSealed       prometheus.Counter
	ClosingConflicts     *prometheus.CounterVec
	ReconciliationErrors prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Expense metrics
		ExpensesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gocaja_expenses_created_total",
			Help: "Total number of expenses registered",
		}),
		AllocationErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gocaja_allocation_errors_total",
				Help: "Total number of rejected payment allocations by reason",
			},
			[]string{"reason"},
		),

		// Allocation metrics
		AllocationsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gocaja_allocations_created_total",
				Help: "Total number of payment allocations by method",
			},
			[]string{"method"},
		),
		AllocationAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gocaja_allocation_amount",
			Help:    "Allocation amounts in currency units",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),

		// Income metrics
		IncomesRecorded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gocaja_incomes_recorded_total",
				Help: "Total number of income receipts by method",
			},
			[]string{"method"},
		),
		IncomeAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gocaja_income_amount",
			Help:    "Income amounts in currency units",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),

		// Closing metrics
		ClosingsSealed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gocaja_closings_sealed_total",
			Help: "Total number of daily closings sealed",
		}),
		ClosingConflicts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gocaja_closing_conflicts_total",
				Help: "Total closing attempts aborted by conflict type",
			},
			[]string{"type"},
		),
		ReconciliationErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gocaja_reconciliation_errors_total",
			Help: "Total closings aborted because the snapshot diverged from the ledger",
		}),
	}
}
