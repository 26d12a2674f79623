package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dreistrom/dreistrom-api/internal/application/billing"
	"github.com/dreistrom/dreistrom-api/internal/domain/repository"
)

var _ billing.TxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside one PostgreSQL transaction.
type TxRunner struct {
	pool              *pgxpool.Pool
	lockTimeoutMillis int
}

// NewTxRunner builds the runner. lockTimeoutMillis bounds the wait on the
// invoice sequence row lock inside invoicing transactions.
func NewTxRunner(pool *pgxpool.Pool, lockTimeoutMillis int) *TxRunner {
	return &TxRunner{pool: pool, lockTimeoutMillis: lockTimeoutMillis}
}

// RunInvoicing begins a transaction, runs fn with tx-bound sequence and
// invoice repositories, and commits or rolls back. The sequence increment
// and the invoice insert share the transaction: an error anywhere rolls
// both back, so an aborted issuance never burns a number.
func (r *TxRunner) RunInvoicing(ctx context.Context, fn func(
	seqRepo repository.SequenceRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	seqRepo := NewSequenceRepository(tx, r.lockTimeoutMillis)
	invoiceRepo := NewInvoiceRepository(tx)

	if err := fn(seqRepo, invoiceRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
