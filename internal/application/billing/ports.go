package billing

import (
	"context"

	domainbilling "github.com/dreistrom/dreistrom-api/internal/domain/billing"
	"github.com/dreistrom/dreistrom-api/internal/domain/entity"
	"github.com/dreistrom/dreistrom-api/internal/domain/repository"
)

// TxRunner executes a callback inside one transaction with tx-bound repos.
// The sequence increment and the invoice insert share this transaction: if
// the callback or the commit fails, both roll back and no invoice number is
// consumed. Context cancellation before commit is equivalent to an abort.
type TxRunner interface {
	RunInvoicing(ctx context.Context, fn func(
		seqRepo repository.SequenceRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// AuditPublisher receives issuance events. Persistence of the audit trail
// is a collaborator concern; the core only hands over the payload.
type AuditPublisher interface {
	InvoiceIssued(ctx context.Context, event domainbilling.InvoiceIssued)
}

// InvoicePDFGenerator renders the printable invoice document.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice, client *entity.Client, issuer *entity.User) ([]byte, error)
}
