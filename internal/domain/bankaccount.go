package domain

import "time"

// BankAccount identifies a bank account movements can be tagged with. The
// core only needs existence lookups; account management lives outside it.
type BankAccount struct {
	ID        string
	Name      string
	Number    string
	Bank      string
	CreatedAt time.Time
}
