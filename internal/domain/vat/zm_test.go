package vat_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreistrom/dreistrom-api/internal/domain/money"
	"github.com/dreistrom/dreistrom-api/internal/domain/vat"
)

var (
	zmFrom = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	zmTo   = time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
)

func TestBuildZmReport_GroupsAndSorts(t *testing.T) {
	invoices := []vat.ReportableInvoice{
		{Country: "FR", UstIdNr: "FR999", ClientName: "Paris SARL", NetTotal: eur(1000)},
		{Country: "AT", UstIdNr: "ATU111", ClientName: "Wien GmbH", NetTotal: eur(500)},
		{Country: "FR", UstIdNr: "FR999", ClientName: "Paris SARL", NetTotal: eur(2000)},
		{Country: "AT", UstIdNr: "ATU222", ClientName: "Graz KG", NetTotal: eur(300)},
		{Country: "FR", UstIdNr: "FR111", ClientName: "Lyon SAS", NetTotal: eur(700)},
	}

	report := vat.BuildZmReport(zmFrom, zmTo, invoices)

	require.Len(t, report.Lines, 4)
	// country asc, then USt-IdNr asc
	assert.Equal(t, "ATU111", report.Lines[0].UstIdNr)
	assert.Equal(t, "ATU222", report.Lines[1].UstIdNr)
	assert.Equal(t, "FR111", report.Lines[2].UstIdNr)
	assert.Equal(t, "FR999", report.Lines[3].UstIdNr)

	assert.Equal(t, eur(3000), report.Lines[3].NetTotal)
	assert.Equal(t, 2, report.Lines[3].InvoiceCount)
	assert.Equal(t, eur(4500), report.TotalNet)
	assert.Equal(t, 5, report.TotalInvoices)
}

// Report totals must equal the sums over the raw input for any partition by
// (country, USt-IdNr); checked against a randomized input set.
func TestBuildZmReport_Conservation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	countries := []string{"AT", "FR", "NL", "PL"}

	var invoices []vat.ReportableInvoice
	var wantNet money.Money
	for i := 0; i < 200; i++ {
		amount := money.FromCents(int64(rng.Intn(500000)))
		invoices = append(invoices, vat.ReportableInvoice{
			Country:  countries[rng.Intn(len(countries))],
			UstIdNr:  []string{"X1", "X2", "X3"}[rng.Intn(3)],
			NetTotal: amount,
		})
		wantNet = wantNet.Add(amount)
	}

	report := vat.BuildZmReport(zmFrom, zmTo, invoices)

	var gotNet money.Money
	var gotCount int
	for _, line := range report.Lines {
		gotNet = gotNet.Add(line.NetTotal)
		gotCount += line.InvoiceCount
	}
	assert.Equal(t, wantNet, gotNet)
	assert.Equal(t, wantNet, report.TotalNet)
	assert.Equal(t, len(invoices), gotCount)
	assert.Equal(t, len(invoices), report.TotalInvoices)
}

func TestBuildZmReport_Deterministic(t *testing.T) {
	invoices := []vat.ReportableInvoice{
		{Country: "NL", UstIdNr: "NL1", NetTotal: eur(10)},
		{Country: "AT", UstIdNr: "AT1", NetTotal: eur(20)},
		{Country: "NL", UstIdNr: "NL1", NetTotal: eur(30)},
	}
	first := vat.BuildZmReport(zmFrom, zmTo, invoices)
	second := vat.BuildZmReport(zmFrom, zmTo, invoices)
	assert.Equal(t, first, second)
}

func TestBuildZmReport_Empty(t *testing.T) {
	report := vat.BuildZmReport(zmFrom, zmTo, nil)
	assert.Empty(t, report.Lines)
	assert.Equal(t, money.Zero, report.TotalNet)
	assert.Zero(t, report.TotalInvoices)
}
