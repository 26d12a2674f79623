package repository

import (
	"context"
	"time"

	"github.com/dreistrom/dreistrom-api/internal/domain/entity"
)

// StreamVatSums is the raw per-stream output-VAT aggregate for a period.
// Cancelled invoices are excluded at the query level; drafts never reach the
// store with totals, so every counted row is ISSUED or later.
type StreamVatSums struct {
	FreiberufVatCents int64
	GewerbeVatCents   int64
	FreiberufNetCents int64
	GewerbeNetCents   int64
}

// InvoiceRepository is the persistence port for invoices.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Invoice, error)
	ListByUserAndStream(ctx context.Context, userID, streamType string) ([]*entity.Invoice, error)
	ListByUserAndStatus(ctx context.Context, userID, status string) ([]*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	UpdateStatus(ctx context.Context, invoice *entity.Invoice) error
	Delete(ctx context.Context, id string) error

	// SumVatByDateRange aggregates output VAT and net revenue per stream over
	// issued, non-cancelled invoices with invoice_date in [from, to].
	SumVatByDateRange(ctx context.Context, userID string, from, to time.Time) (StreamVatSums, error)

	// SumNetSelfEmployedByDateRange sums net revenue cents across both
	// self-employed streams, feeding the §19 UStG threshold check.
	SumNetSelfEmployedByDateRange(ctx context.Context, userID string, from, to time.Time) (int64, error)

	// ListZmReportable returns issued, non-cancelled ZM-flagged invoices in range.
	ListZmReportable(ctx context.Context, userID string, from, to time.Time) ([]*entity.Invoice, error)
}
