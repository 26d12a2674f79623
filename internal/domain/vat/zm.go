package vat

import (
	"sort"
	"time"

	"github.com/dreistrom/dreistrom-api/internal/domain/money"
)

// ReportableInvoice is the slice of an issued invoice the ZM aggregation
// needs: destination country, counterpart USt-IdNr and net revenue.
type ReportableInvoice struct {
	Country    string
	UstIdNr    string
	ClientName string
	NetTotal   money.Money
}

// ZmLine is one aggregate row of the Zusammenfassende Meldung: all reportable
// revenue to one (country, USt-IdNr) counterpart in the period.
type ZmLine struct {
	Country      string      `json:"country"`
	UstIdNr      string      `json:"ust_id_nr"`
	ClientName   string      `json:"client_name"`
	NetTotal     money.Money `json:"net_total"`
	InvoiceCount int         `json:"invoice_count"`
}

// ZmReport is the §18a UStG summary for a reporting period. TotalNet and
// TotalInvoices always equal the sums over the ungrouped input.
type ZmReport struct {
	PeriodFrom    time.Time   `json:"period_from"`
	PeriodTo      time.Time   `json:"period_to"`
	Lines         []ZmLine    `json:"lines"`
	TotalNet      money.Money `json:"total_net"`
	TotalInvoices int         `json:"total_invoices"`
}

// BuildZmReport groups reportable invoices by (country, USt-IdNr). Lines are
// ordered by country code, then USt-IdNr, ascending, so repeated runs over
// the same data diff cleanly.
func BuildZmReport(from, to time.Time, invoices []ReportableInvoice) ZmReport {
	type key struct{ country, ustIdNr string }

	groups := make(map[key]*ZmLine)
	for _, inv := range invoices {
		k := key{country: inv.Country, ustIdNr: inv.UstIdNr}
		line, ok := groups[k]
		if !ok {
			line = &ZmLine{
				Country:    inv.Country,
				UstIdNr:    inv.UstIdNr,
				ClientName: inv.ClientName,
			}
			groups[k] = line
		}
		line.NetTotal = line.NetTotal.Add(inv.NetTotal)
		line.InvoiceCount++
	}

	lines := make([]ZmLine, 0, len(groups))
	for _, line := range groups {
		lines = append(lines, *line)
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Country != lines[j].Country {
			return lines[i].Country < lines[j].Country
		}
		return lines[i].UstIdNr < lines[j].UstIdNr
	})

	var totalNet money.Money
	for _, line := range lines {
		totalNet = totalNet.Add(line.NetTotal)
	}

	return ZmReport{
		PeriodFrom:    from,
		PeriodTo:      to,
		Lines:         lines,
		TotalNet:      totalNet,
		TotalInvoices: len(invoices),
	}
}
