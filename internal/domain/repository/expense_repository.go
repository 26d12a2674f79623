package repository

import (
	"context"
	"time"

	"github.com/dreistrom/dreistrom-api/internal/domain/entity"
)

// StreamExpenseSums holds gross expense cents allocated to each
// self-employed stream over a period. Per-expense allocation shares are
// rounded HALF_UP to the cent before summing, mirroring the money rules.
type StreamExpenseSums struct {
	FreiberufGrossCents int64
	GewerbeGrossCents   int64
}

// ExpenseRepository is the persistence port for expenses and their
// allocation rules.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.ExpenseEntry) error
	GetByID(ctx context.Context, id string) (*entity.ExpenseEntry, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.ExpenseEntry, error)
	Update(ctx context.Context, expense *entity.ExpenseEntry) error
	Delete(ctx context.Context, id string) error

	// SumAllocatedByDateRange aggregates allocated gross expense amounts per
	// stream for entries with entry_date in [from, to]. Expenses without an
	// allocation rule count as personal and contribute nothing.
	SumAllocatedByDateRange(ctx context.Context, userID string, from, to time.Time) (StreamExpenseSums, error)
}

// AllocationRuleRepository is the persistence port for allocation rules.
type AllocationRuleRepository interface {
	Create(ctx context.Context, rule *entity.AllocationRule) error
	GetByID(ctx context.Context, id string) (*entity.AllocationRule, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.AllocationRule, error)
	Update(ctx context.Context, rule *entity.AllocationRule) error
	Delete(ctx context.Context, id string) error
}
