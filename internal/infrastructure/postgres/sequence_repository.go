package postgres

import (
	"context"
	"fmt"

	"github.com/dreistrom/dreistrom-api/internal/domain"
	domainbilling "github.com/dreistrom/dreistrom-api/internal/domain/billing"
	"github.com/dreistrom/dreistrom-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo allocates invoice ordinals from the invoice_sequences table.
// Always constructed with a transaction Querier: the row lock taken here is
// what serializes concurrent issuance for the same (stream, year), and it
// must live exactly as long as the invoice insert.
type SequenceRepo struct {
	q                 Querier
	lockTimeoutMillis int
}

// NewSequenceRepository builds the allocator. Pass the transaction, never
// the pool.
func NewSequenceRepository(q Querier, lockTimeoutMillis int) *SequenceRepo {
	return &SequenceRepo{q: q, lockTimeoutMillis: lockTimeoutMillis}
}

// Next reserves the next ordinal for a key. The counter row is created on
// first use, then locked with SELECT ... FOR UPDATE under a bounded
// lock_timeout; contenders on the same key queue on that lock while other
// keys proceed untouched. Hitting the timeout yields an AllocationError.
func (r *SequenceRepo) Next(ctx context.Context, key domainbilling.SequenceKey) (int, error) {
	// SET LOCAL scopes the timeout to the surrounding transaction. It runs
	// before the upsert: a first-ever allocation racing another transaction's
	// uncommitted counter-row insert waits on that insert, and the wait must
	// be bounded too. The statement takes no bind parameters, so the value is
	// formatted in.
	setQ := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeoutMillis)
	if _, err := r.q.Exec(ctx, setQ); err != nil {
		return 0, fmt.Errorf("set lock_timeout: %w", err)
	}

	const insertQ = `
		INSERT INTO invoice_sequences (stream_type, fiscal_year, last_value)
		VALUES ($1, $2, 0)
		ON CONFLICT (stream_type, fiscal_year) DO NOTHING`
	if _, err := r.q.Exec(ctx, insertQ, key.Stream, key.FiscalYear); err != nil {
		if isLockNotAvailable(err) {
			return 0, &domain.AllocationError{Stream: key.Stream, Year: key.FiscalYear}
		}
		return 0, fmt.Errorf("ensure invoice_sequence row: %w", err)
	}

	const lockQ = `
		SELECT last_value FROM invoice_sequences
		WHERE stream_type = $1 AND fiscal_year = $2
		FOR UPDATE`
	var last int
	if err := r.q.QueryRow(ctx, lockQ, key.Stream, key.FiscalYear).Scan(&last); err != nil {
		if isLockNotAvailable(err) {
			return 0, &domain.AllocationError{Stream: key.Stream, Year: key.FiscalYear}
		}
		return 0, fmt.Errorf("lock invoice_sequence: %w", err)
	}

	next := last + 1
	const updateQ = `
		UPDATE invoice_sequences SET last_value = $3, updated_at = now()
		WHERE stream_type = $1 AND fiscal_year = $2`
	if _, err := r.q.Exec(ctx, updateQ, key.Stream, key.FiscalYear, next); err != nil {
		return 0, fmt.Errorf("advance invoice_sequence: %w", err)
	}
	return next, nil
}
