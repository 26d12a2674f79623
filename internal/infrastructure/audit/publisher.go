// Package audit records issuance events. The current sink is the structured
// log; the billing use case only depends on the publisher port, so a message
// broker can replace this without touching the core.
package audit

import (
	"context"

	appbilling "github.com/dreistrom/dreistrom-api/internal/application/billing"
	domainbilling "github.com/dreistrom/dreistrom-api/internal/domain/billing"
	"github.com/dreistrom/dreistrom-api/pkg/logger"
)

var _ appbilling.AuditPublisher = (*LogPublisher)(nil)

// LogPublisher writes issuance events to the structured log.
type LogPublisher struct {
	log *logger.Logger
}

// NewLogPublisher builds the publisher.
func NewLogPublisher(log *logger.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

// InvoiceIssued records one issuance event.
func (p *LogPublisher) InvoiceIssued(_ context.Context, ev domainbilling.InvoiceIssued) {
	p.log.Info().
		Str("event", "invoice_issued").
		Str("invoice_id", ev.InvoiceID).
		Str("user_id", ev.UserID).
		Str("stream", ev.StreamType).
		Str("number", ev.Number).
		Str("client_id", ev.ClientID).
		Str("gross_total", ev.GrossTotal.String()).
		Time("issued_at", ev.IssuedAt).
		Msg("audit")
}
