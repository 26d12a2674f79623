package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dreistrom/dreistrom-api/internal/domain"
	"github.com/dreistrom/dreistrom-api/internal/domain/entity"
	"github.com/dreistrom/dreistrom-api/internal/domain/money"
	"github.com/dreistrom/dreistrom-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implements InvoiceRepository on PostgreSQL (usable with pool
// or tx). Monetary totals are stored as BIGINT cents; line items as JSONB.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository builds the adapter. Pass pool or tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `
	id, user_id, stream_type, number, client_id, invoice_date, due_date,
	line_items, net_total_cents, vat_total_cents, gross_total_cents,
	currency, vat_treatment, status, notes, zm_reportable,
	created_at, updated_at`

func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	items, err := json.Marshal(inv.LineItems)
	if err != nil {
		return fmt.Errorf("marshal line items: %w", err)
	}
	const q = `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err = r.q.Exec(ctx, q,
		inv.ID, inv.UserID, inv.StreamType, inv.Number, inv.ClientID,
		inv.InvoiceDate, inv.DueDate, items,
		inv.NetTotal.Cents(), inv.VatTotal.Cents(), inv.GrossTotal.Cents(),
		inv.Currency, inv.VatTreatment, inv.Status, inv.Notes, inv.ZmReportable,
		inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	const q = `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice by id: %w", err)
	}
	return inv, nil
}

func (r *InvoiceRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Invoice, error) {
	const q = `SELECT ` + invoiceColumns + ` FROM invoices
		WHERE user_id = $1 ORDER BY invoice_date DESC, number DESC`
	return r.queryInvoices(ctx, q, userID)
}

func (r *InvoiceRepo) ListByUserAndStream(ctx context.Context, userID, streamType string) ([]*entity.Invoice, error) {
	const q = `SELECT ` + invoiceColumns + ` FROM invoices
		WHERE user_id = $1 AND stream_type = $2 ORDER BY invoice_date DESC, number DESC`
	return r.queryInvoices(ctx, q, userID, streamType)
}

func (r *InvoiceRepo) ListByUserAndStatus(ctx context.Context, userID, status string) ([]*entity.Invoice, error) {
	const q = `SELECT ` + invoiceColumns + ` FROM invoices
		WHERE user_id = $1 AND status = $2 ORDER BY invoice_date DESC, number DESC`
	return r.queryInvoices(ctx, q, userID, status)
}

func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	items, err := json.Marshal(inv.LineItems)
	if err != nil {
		return fmt.Errorf("marshal line items: %w", err)
	}
	const q = `
		UPDATE invoices
		SET due_date = $2, line_items = $3,
		    net_total_cents = $4, vat_total_cents = $5, gross_total_cents = $6,
		    vat_treatment = $7, status = $8, notes = $9, zm_reportable = $10,
		    updated_at = $11
		WHERE id = $1`
	_, err = r.q.Exec(ctx, q,
		inv.ID, inv.DueDate, items,
		inv.NetTotal.Cents(), inv.VatTotal.Cents(), inv.GrossTotal.Cents(),
		inv.VatTreatment, inv.Status, inv.Notes, inv.ZmReportable,
		inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) UpdateStatus(ctx context.Context, inv *entity.Invoice) error {
	const q = `UPDATE invoices SET status = $2, updated_at = $3 WHERE id = $1`
	_, err := r.q.Exec(ctx, q, inv.ID, inv.Status, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM invoices WHERE id = $1`
	_, err := r.q.Exec(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

// Only invoices that went through issuance count toward VAT figures:
// cancelled invoices are excluded and so are drafts, which carry no number.
const issuedStatuses = `('ISSUED', 'PAID', 'OVERDUE')`

// SumVatByDateRange aggregates output VAT and net per stream.
func (r *InvoiceRepo) SumVatByDateRange(ctx context.Context, userID string, from, to time.Time) (repository.StreamVatSums, error) {
	const q = `
		SELECT
			COALESCE(SUM(vat_total_cents) FILTER (WHERE stream_type = 'FREIBERUF'), 0),
			COALESCE(SUM(vat_total_cents) FILTER (WHERE stream_type = 'GEWERBE'), 0),
			COALESCE(SUM(net_total_cents) FILTER (WHERE stream_type = 'FREIBERUF'), 0),
			COALESCE(SUM(net_total_cents) FILTER (WHERE stream_type = 'GEWERBE'), 0)
		FROM invoices
		WHERE user_id = $1
		  AND status IN ` + issuedStatuses + `
		  AND invoice_date BETWEEN $2 AND $3`
	var sums repository.StreamVatSums
	err := r.q.QueryRow(ctx, q, userID, from, to).Scan(
		&sums.FreiberufVatCents, &sums.GewerbeVatCents,
		&sums.FreiberufNetCents, &sums.GewerbeNetCents,
	)
	if err != nil {
		return repository.StreamVatSums{}, fmt.Errorf("sum vat by range: %w", err)
	}
	return sums, nil
}

func (r *InvoiceRepo) SumNetSelfEmployedByDateRange(ctx context.Context, userID string, from, to time.Time) (int64, error) {
	const q = `
		SELECT COALESCE(SUM(net_total_cents), 0)
		FROM invoices
		WHERE user_id = $1
		  AND status IN ` + issuedStatuses + `
		  AND stream_type IN ('FREIBERUF', 'GEWERBE')
		  AND invoice_date BETWEEN $2 AND $3`
	var net int64
	if err := r.q.QueryRow(ctx, q, userID, from, to).Scan(&net); err != nil {
		return 0, fmt.Errorf("sum net self-employed: %w", err)
	}
	return net, nil
}

func (r *InvoiceRepo) ListZmReportable(ctx context.Context, userID string, from, to time.Time) ([]*entity.Invoice, error) {
	const q = `SELECT ` + invoiceColumns + ` FROM invoices
		WHERE user_id = $1
		  AND zm_reportable = true
		  AND status IN ` + issuedStatuses + `
		  AND invoice_date BETWEEN $2 AND $3
		ORDER BY invoice_date, number`
	return r.queryInvoices(ctx, q, userID, from, to)
}

func (r *InvoiceRepo) queryInvoices(ctx context.Context, q string, args ...any) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

func scanInvoice(row pgxScanner) (*entity.Invoice, error) {
	var inv entity.Invoice
	var items []byte
	var netCents, vatCents, grossCents int64
	err := row.Scan(
		&inv.ID, &inv.UserID, &inv.StreamType, &inv.Number, &inv.ClientID,
		&inv.InvoiceDate, &inv.DueDate, &items,
		&netCents, &vatCents, &grossCents,
		&inv.Currency, &inv.VatTreatment, &inv.Status, &inv.Notes, &inv.ZmReportable,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &inv.LineItems); err != nil {
		return nil, fmt.Errorf("unmarshal line items: %w", err)
	}
	inv.NetTotal = money.FromCents(netCents)
	inv.VatTotal = money.FromCents(vatCents)
	inv.GrossTotal = money.FromCents(grossCents)
	return &inv, nil
}
