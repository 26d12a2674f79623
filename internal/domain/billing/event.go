package billing

import (
	"time"

	"github.com/dreistrom/dreistrom-api/internal/domain/money"
)

// InvoiceIssued is the event payload emitted after a successful issuance.
// Persistence of the audit trail is a collaborator's concern; the core only
// produces the payload.
type InvoiceIssued struct {
	InvoiceID  string
	UserID     string
	StreamType string
	Number     string
	ClientID   string
	GrossTotal money.Money
	IssuedAt   time.Time
}
