package billing

import (
	"strings"

	"github.com/dreistrom/dreistrom-api/internal/domain"
	"github.com/dreistrom/dreistrom-api/internal/domain/entity"
	"github.com/dreistrom/dreistrom-api/internal/domain/money"
)

// Totals is the calculator output. Gross = Net + Vat by construction.
type Totals struct {
	Net   money.Money
	Vat   money.Money
	Gross money.Money
}

// ComputeTotals derives net, VAT and gross totals from the line items.
//
// Rounding is applied per line and the totals are sums of the rounded
// per-line values, not a single rounding at the end. This ordering matches
// the Finanzamt's own tooling and must not change: net = HALF_UP(qty x
// unitPrice), vat = HALF_UP(net x rate), gross = net + vat.
//
// Validation runs before any arithmetic; a violation yields a LineItemError
// naming the offending item and no partial result.
func ComputeTotals(items []entity.LineItem) (Totals, error) {
	if err := ValidateLineItems(items); err != nil {
		return Totals{}, err
	}

	var net, vat money.Money
	for _, item := range items {
		lineNet := item.UnitPrice.MulRatio(item.Quantity)
		lineVat := lineNet.MulRatio(item.VatRate)
		net = net.Add(lineNet)
		vat = vat.Add(lineVat)
	}
	return Totals{Net: net, Vat: vat, Gross: net.Add(vat)}, nil
}

// ValidateLineItems checks the §14 Abs. 4 Nr. 5 UStG line requirements:
// non-empty list, description present, quantity > 0, unit price >= 0,
// VAT rate >= 0.
func ValidateLineItems(items []entity.LineItem) error {
	if len(items) == 0 {
		return &domain.LineItemError{Index: 0, Field: "line items", Reason: "at least one required"}
	}
	for i, item := range items {
		if strings.TrimSpace(item.Description) == "" {
			return &domain.LineItemError{Index: i, Field: "description", Reason: "is required"}
		}
		if !item.Quantity.IsPositive() {
			return &domain.LineItemError{Index: i, Field: "quantity", Reason: "must be positive"}
		}
		if item.UnitPrice.IsNegative() {
			return &domain.LineItemError{Index: i, Field: "unit price", Reason: "must not be negative"}
		}
		if item.VatRate.IsNegative() {
			return &domain.LineItemError{Index: i, Field: "vat rate", Reason: "must not be negative"}
		}
	}
	return nil
}
