package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dreistrom/dreistrom-api/internal/domain/money"
)

// Invoice-eligible income streams. Employment income is never invoiced.
const (
	StreamFreiberuf = "FREIBERUF"
	StreamGewerbe   = "GEWERBE"
)

// Invoice status values. DRAFT exists only before number allocation; an
// invoice visible through the API is ISSUED or later.
const (
	StatusDraft     = "DRAFT"
	StatusIssued    = "ISSUED"
	StatusPaid      = "PAID"
	StatusOverdue   = "OVERDUE"
	StatusCancelled = "CANCELLED"
)

// VAT treatment per German tax law.
const (
	// VatRegular Regelbesteuerung, standard VAT.
	VatRegular = "REGULAR"
	// VatReverseCharge §13b UStG, VAT liability shifts to the recipient.
	VatReverseCharge = "REVERSE_CHARGE"
	// VatSmallBusiness Kleinunternehmerregelung §19 UStG, no VAT charged.
	VatSmallBusiness = "SMALL_BUSINESS"
	// VatIntraEU steuerfreie innergemeinschaftliche Lieferung/Leistung.
	VatIntraEU = "INTRA_EU"
	// VatThirdCountry Drittland, not taxable per §3a UStG.
	VatThirdCountry = "THIRD_COUNTRY"
)

// LineItem is a single invoice line. Quantity and VatRate are exact decimals
// (VatRate is a fraction, e.g. 0.19); UnitPrice is an exact cent amount.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   money.Money     `json:"unit_price"`
	VatRate     decimal.Decimal `json:"vat_rate"`
}

// Invoice is a legally issued invoice. Number is immutable once assigned and
// is never reused, even after cancellation. Stored totals always equal the
// calculator's output for the current line items.
type Invoice struct {
	ID           string
	UserID       string
	StreamType   string // StreamFreiberuf or StreamGewerbe
	Number       string // e.g. "FR-2026-001"; assigned on issuance
	ClientID     string
	InvoiceDate  time.Time
	DueDate      *time.Time
	LineItems    []LineItem
	NetTotal     money.Money
	VatTotal     money.Money
	GrossTotal   money.Money
	Currency     string // always "EUR"
	VatTreatment string
	Status       string
	Notes        string
	ZmReportable bool // EU B2B reverse charge, feeds the ZM report
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Touch updates the audit-trail timestamp; every status transition and every
// field edit goes through here.
func (i *Invoice) Touch(now time.Time) {
	i.UpdatedAt = now
}
