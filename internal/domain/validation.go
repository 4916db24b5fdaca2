package domain

import (
	"fmt"
	"time"
)

// Validation constants
const (
	MaxDescriptionLength = 255
	MaxConceptLength     = 255
)

// BusinessDay truncates t to its calendar day in UTC. Closings and the
// movement feed are keyed by business day, not by instant.
func BusinessDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ValidateAmount validates a movement amount.
func ValidateAmount(amount Money) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

// ValidateDateRange validates a [from, to] filter window.
func ValidateDateRange(from, to time.Time) error {
	if from.IsZero() || to.IsZero() {
		return fmt.Errorf("%w: both bounds are required", ErrInvalidDateRange)
	}
	if from.After(to) {
		return fmt.Errorf("%w: from %s is after to %s",
			ErrInvalidDateRange, from.Format("2006-01-02"), to.Format("2006-01-02"))
	}
	return nil
}

// ValidateDescription bounds free-text descriptions and concepts.
func ValidateDescription(s string) error {
	if len(s) > MaxDescriptionLength {
		return fmt.Errorf("description exceeds %d characters", MaxDescriptionLength)
	}
	return nil
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
