package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dreistrom/dreistrom-api/internal/domain/entity"
	"github.com/dreistrom/dreistrom-api/internal/domain/money"
	"github.com/dreistrom/dreistrom-api/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)
var _ repository.AllocationRuleRepository = (*AllocationRuleRepo)(nil)

// ExpenseRepo implements ExpenseRepository on PostgreSQL. Amounts live as
// BIGINT gross cents.
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository builds the adapter. Pass pool or tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

const expenseColumns = `
	id, user_id, amount_cents, currency, category, entry_date,
	allocation_rule_id, receipt_doc_id, description, created_at, updated_at`

func (r *ExpenseRepo) Create(ctx context.Context, e *entity.ExpenseEntry) error {
	const q = `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, q,
		e.ID, e.UserID, e.Amount.Cents(), e.Currency, e.Category, e.EntryDate,
		e.AllocationRuleID, e.ReceiptDocID, e.Description, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepo) GetByID(ctx context.Context, id string) (*entity.ExpenseEntry, error) {
	const q = `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`
	e, err := scanExpense(r.q.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get expense by id: %w", err)
	}
	return e, nil
}

func (r *ExpenseRepo) ListByUser(ctx context.Context, userID string) ([]*entity.ExpenseEntry, error) {
	const q = `SELECT ` + expenseColumns + ` FROM expenses
		WHERE user_id = $1 ORDER BY entry_date DESC`
	rows, err := r.q.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	var list []*entity.ExpenseEntry
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *ExpenseRepo) Update(ctx context.Context, e *entity.ExpenseEntry) error {
	const q = `
		UPDATE expenses
		SET amount_cents = $2, category = $3, entry_date = $4,
		    allocation_rule_id = NULLIF($5, ''), receipt_doc_id = $6,
		    description = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, q,
		e.ID, e.Amount.Cents(), e.Category, e.EntryDate,
		e.AllocationRuleID, e.ReceiptDocID, e.Description, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM expenses WHERE id = $1`
	if _, err := r.q.Exec(ctx, q, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

// SumAllocatedByDateRange aggregates the business share of gross expenses
// per stream. Each expense's share is rounded to the cent before summing,
// so the aggregate matches a per-receipt calculation exactly. Expenses
// without an allocation rule are personal and contribute nothing.
func (r *ExpenseRepo) SumAllocatedByDateRange(ctx context.Context, userID string, from, to time.Time) (repository.StreamExpenseSums, error) {
	const q = `
		SELECT
			COALESCE(SUM(ROUND(e.amount_cents * ar.freiberuf_pct / 100.0)), 0)::bigint,
			COALESCE(SUM(ROUND(e.amount_cents * ar.gewerbe_pct / 100.0)), 0)::bigint
		FROM expenses e
		JOIN allocation_rules ar ON ar.id = e.allocation_rule_id
		WHERE e.user_id = $1
		  AND e.entry_date BETWEEN $2 AND $3`
	var sums repository.StreamExpenseSums
	err := r.q.QueryRow(ctx, q, userID, from, to).Scan(
		&sums.FreiberufGrossCents, &sums.GewerbeGrossCents,
	)
	if err != nil {
		return repository.StreamExpenseSums{}, fmt.Errorf("sum allocated expenses: %w", err)
	}
	return sums, nil
}

func scanExpense(row pgxScanner) (*entity.ExpenseEntry, error) {
	var e entity.ExpenseEntry
	var amountCents int64
	var ruleID *string
	err := row.Scan(
		&e.ID, &e.UserID, &amountCents, &e.Currency, &e.Category, &e.EntryDate,
		&ruleID, &e.ReceiptDocID, &e.Description, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Amount = money.FromCents(amountCents)
	if ruleID != nil {
		e.AllocationRuleID = *ruleID
	}
	return &e, nil
}

// AllocationRuleRepo implements AllocationRuleRepository on PostgreSQL.
type AllocationRuleRepo struct {
	q Querier
}

// NewAllocationRuleRepository builds the adapter. Pass pool or tx (Querier).
func NewAllocationRuleRepository(q Querier) *AllocationRuleRepo {
	return &AllocationRuleRepo{q: q}
}

const ruleColumns = `
	id, user_id, name, freiberuf_pct, gewerbe_pct, personal_pct,
	created_at, updated_at`

func (r *AllocationRuleRepo) Create(ctx context.Context, rule *entity.AllocationRule) error {
	const q = `
		INSERT INTO allocation_rules (` + ruleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, q,
		rule.ID, rule.UserID, rule.Name, rule.FreiberufPct, rule.GewerbePct,
		rule.PersonalPct, rule.CreatedAt, rule.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert allocation_rule: %w", err)
	}
	return nil
}

func (r *AllocationRuleRepo) GetByID(ctx context.Context, id string) (*entity.AllocationRule, error) {
	const q = `SELECT ` + ruleColumns + ` FROM allocation_rules WHERE id = $1`
	rule, err := scanRule(r.q.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get allocation_rule by id: %w", err)
	}
	return rule, nil
}

func (r *AllocationRuleRepo) ListByUser(ctx context.Context, userID string) ([]*entity.AllocationRule, error) {
	const q = `SELECT ` + ruleColumns + ` FROM allocation_rules
		WHERE user_id = $1 ORDER BY name`
	rows, err := r.q.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list allocation_rules: %w", err)
	}
	defer rows.Close()
	var list []*entity.AllocationRule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan allocation_rule: %w", err)
		}
		list = append(list, rule)
	}
	return list, rows.Err()
}

func (r *AllocationRuleRepo) Update(ctx context.Context, rule *entity.AllocationRule) error {
	const q = `
		UPDATE allocation_rules
		SET name = $2, freiberuf_pct = $3, gewerbe_pct = $4, personal_pct = $5,
		    updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, q,
		rule.ID, rule.Name, rule.FreiberufPct, rule.GewerbePct,
		rule.PersonalPct, rule.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update allocation_rule: %w", err)
	}
	return nil
}

func (r *AllocationRuleRepo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM allocation_rules WHERE id = $1`
	if _, err := r.q.Exec(ctx, q, id); err != nil {
		return fmt.Errorf("delete allocation_rule: %w", err)
	}
	return nil
}

func scanRule(row pgxScanner) (*entity.AllocationRule, error) {
	var rule entity.AllocationRule
	err := row.Scan(
		&rule.ID, &rule.UserID, &rule.Name, &rule.FreiberufPct,
		&rule.GewerbePct, &rule.PersonalPct, &rule.CreatedAt, &rule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rule, nil
}
