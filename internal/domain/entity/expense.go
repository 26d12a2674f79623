package entity

import (
	"fmt"
	"time"

	"github.com/dreistrom/dreistrom-api/internal/domain/money"
)

// AllocationRule splits an expense across the two self-employed streams and
// the personal share. Percentages are whole numbers summing to 100; only the
// business shares are deductible for input VAT.
type AllocationRule struct {
	ID           string
	UserID       string
	Name         string
	FreiberufPct int
	GewerbePct   int
	PersonalPct  int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks the percentage sum invariant.
func (r *AllocationRule) Validate() error {
	sum := r.FreiberufPct + r.GewerbePct + r.PersonalPct
	if sum != 100 {
		return fmt.Errorf("allocation percentages must sum to 100, got %d", sum)
	}
	if r.FreiberufPct < 0 || r.GewerbePct < 0 || r.PersonalPct < 0 {
		return fmt.Errorf("allocation percentages must not be negative")
	}
	return nil
}

// ExpenseEntry is a recorded business expense (gross amount incl. VAT).
// The allocation rule decides which share counts as deductible input VAT.
type ExpenseEntry struct {
	ID               string
	UserID           string
	Amount           money.Money // gross, VAT included
	Currency         string      // always "EUR"
	Category         string
	EntryDate        time.Time
	AllocationRuleID string // empty = fully personal, not deductible
	ReceiptDocID     string // reference into the external document vault
	Description      string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
