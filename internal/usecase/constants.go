package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database
	// transaction. Allocation and closing transactions touch a single
	// aggregate or day and must stay short.
	DefaultTransactionTimeout = 10 * time.Second

	// MovementReportCacheTTL bounds how stale a cached movement report may
	// be. Past days can still receive dated movements, so the TTL is short.
	MovementReportCacheTTL = 30 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour
)
