package domain

import (
	"time"
)

// Closing is the daily cash-closing snapshot (arqueo) for one business day.
// It is created open as a running snapshot and sealed exactly once; a
// sealed record is immutable. A closed day is corrected by a dated
// adjustment movement in a later open period, never by editing the record.
type Closing struct {
	Date           time.Time
	Totals         MovementTotals
	ClosingBalance Money
	ClosedBy       *string
	ClosedAt       *time.Time
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsClosed reports whether the snapshot has been sealed.
func (c *Closing) IsClosed() bool {
	return c.ClosedBy != nil && c.ClosedAt != nil
}

// Seal marks the snapshot closed. Sealing twice is an error.
func (c *Closing) Seal(closedBy string, at time.Time) error {
	if c.IsClosed() {
		return ErrAlreadyClosed
	}
	c.ClosedBy = &closedBy
	c.ClosedAt = &at
	c.UpdatedAt = at
	return nil
}
