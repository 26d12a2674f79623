// Package pdf renders the printable Rechnung with the §14 Abs. 4 UStG
// mandatory fields.
//
// A4 page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Aussteller + Steuernummer  │  Rechnungsnr + Datum  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RECHNUNGSEMPFÄNGER: Name + Land + USt-IdNr                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELLE: Menge | Beschreibung | Einzelpreis | USt | Netto  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SUMMEN: Nettobetrag / Umsatzsteuer / Rechnungsbetrag       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: USt-Hinweis (§13b / §19 / §3a) + Zahlungsziel      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appbilling "github.com/dreistrom/dreistrom-api/internal/application/billing"
	"github.com/dreistrom/dreistrom-api/internal/domain/entity"
	"github.com/dreistrom/dreistrom-api/internal/domain/money"
)

var (
	colorPrimary = &props.Color{Red: 20, Green: 45, Blue: 90}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ appbilling.InvoicePDFGenerator = (*MarotoInvoicePDF)(nil)

// MarotoInvoicePDF implements billing.InvoicePDFGenerator using Maroto v2.
type MarotoInvoicePDF struct{}

// NewMarotoInvoicePDF builds the generator.
func NewMarotoInvoicePDF() *MarotoInvoicePDF { return &MarotoInvoicePDF{} }

// GenerateInvoicePDF renders the invoice and returns its bytes.
func (g *MarotoInvoicePDF) GenerateInvoicePDF(
	_ context.Context,
	invoice *entity.Invoice,
	client *entity.Client,
	issuer *entity.User,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Rechnung "+invoice.Number, true).
		WithAuthor(issuer.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(invoice, issuer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(recipientRow(client))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range lineItemRows(invoice.LineItems) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(invoice))

	m.AddRows(line.NewRow(3))
	for _, r := range footerRows(invoice) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: issuer name and tax identifiers left, invoice number and date right.
func headerRow(invoice *entity.Invoice, issuer *entity.User) core.Row {
	taxLine := "Steuernummer: " + nonEmpty(issuer.TaxNumber, "—")
	if issuer.UstIdNr != "" {
		taxLine += "   |   USt-IdNr: " + issuer.UstIdNr
	}
	return row.New(20).Add(
		col.New(7).Add(
			text.New(issuer.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(taxLine, props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("RECHNUNG", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(invoice.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Rechnungsdatum: "+invoice.InvoiceDate.Format("02.01.2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// recipientRow: invoice recipient block (§14 Abs. 4 Nr. 1 UStG).
func recipientRow(client *entity.Client) core.Row {
	detail := "Land: " + client.Country
	if client.UstIdNr != "" {
		detail += "   |   USt-IdNr: " + client.UstIdNr
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("RECHNUNGSEMPFÄNGER", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(client.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(detail, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Menge", 1, align.Center),
		h("Leistungsbeschreibung", 5, align.Left),
		h("Einzelpreis", 2, align.Right),
		h("USt", 1, align.Center),
		h("Netto", 3, align.Right),
	)
}

// lineItemRows: one row per invoice line, net per line computed exactly as
// the invoice totals were.
func lineItemRows(items []entity.LineItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, item := range items {
		lineNet := item.UnitPrice.MulRatio(item.Quantity)
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				item.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				item.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				formatEuro(item.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				formatRate(item.VatRate),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				formatEuro(lineNet),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func totalsRow(invoice *entity.Invoice) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(26).Add(
		col.New(3),
		col.New(4).Add(
			label("Nettobetrag:"),
			label("Umsatzsteuer:"),
			grandLabel("Rechnungsbetrag:"),
		),
		col.New(4).Add(
			value(formatEuro(invoice.NetTotal)),
			value(formatEuro(invoice.VatTotal)),
			grandValue(formatEuro(invoice.GrossTotal)),
		),
		col.New(1),
	)
}

// footerRows: VAT treatment notice and payment terms.
func footerRows(invoice *entity.Invoice) []core.Row {
	var rows []core.Row
	if invoice.Notes != "" {
		for _, noteLine := range strings.Split(invoice.Notes, "\n") {
			rows = append(rows, row.New(5).Add(col.New(12).Add(
				text.New(noteLine, props.Text{Size: 8, Color: colorGray, Top: 1}),
			)))
		}
	}
	if invoice.DueDate != nil {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Zahlbar bis "+invoice.DueDate.Format("02.01.2006")+" ohne Abzug.", props.Text{
				Style: fontstyle.Bold, Size: 8, Top: 2,
			}),
		)))
	}
	return rows
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatEuro renders an amount in German notation: 1.130,50 €.
func formatEuro(m money.Money) string {
	s := m.String() // e.g. "-1130.50"
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	parts := strings.SplitN(s, ".", 2)
	whole, frac := parts[0], parts[1]

	n := len(whole)
	buf := make([]byte, 0, n+n/3)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, whole[i])
	}
	out := string(buf) + "," + frac + " €"
	if neg {
		out = "-" + out
	}
	return out
}

// formatRate renders a fractional VAT rate as a percentage, e.g. 0.19 -> "19 %".
func formatRate(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String() + " %"
}
