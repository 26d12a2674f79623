package billing

import (
	"fmt"

	"github.com/dreistrom/dreistrom-api/internal/domain/entity"
)

// SequenceKey scopes the gap-free invoice numbering: one counter per income
// stream and fiscal year, as required for a fortlaufende Rechnungsnummer.
type SequenceKey struct {
	Stream     string
	FiscalYear int
}

// streamPrefixes maps each invoice-eligible stream to its number prefix.
// Data-driven on purpose so the rule set stays inspectable.
var streamPrefixes = map[string]string{
	entity.StreamFreiberuf: "FR",
	entity.StreamGewerbe:   "GW",
}

// ValidStream reports whether the stream may carry invoices.
func ValidStream(stream string) bool {
	_, ok := streamPrefixes[stream]
	return ok
}

// FormatNumber renders an allocated ordinal as the externally visible invoice
// number, e.g. "FR-2026-001". The ordinal is zero-padded to three digits and
// grows past 999 without truncation.
func FormatNumber(key SequenceKey, ordinal int) string {
	return fmt.Sprintf("%s-%d-%03d", streamPrefixes[key.Stream], key.FiscalYear, ordinal)
}
