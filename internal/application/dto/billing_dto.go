package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dreistrom/dreistrom-api/internal/domain/money"
)

// CreateClientRequest body for POST /api/clients.
type CreateClientRequest struct {
	Name       string `json:"name"`
	Country    string `json:"country"`     // ISO 3166-1 alpha-2; defaults to DE
	ClientType string `json:"client_type"` // B2B or B2C; defaults to B2B
	UstIdNr    string `json:"ust_id_nr,omitempty"`
	StreamType string `json:"stream_type"` // FREIBERUF or GEWERBE
}

// ClientResponse client output.
type ClientResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Country    string    `json:"country"`
	ClientType string    `json:"client_type"`
	UstIdNr    string    `json:"ust_id_nr,omitempty"`
	StreamType string    `json:"stream_type"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
}

// LineItemRequest one invoice line. UnitPrice is a decimal euro string; the
// use case converts it through the money rules before any math.
type LineItemRequest struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   string          `json:"unit_price"`
	VatRate     decimal.Decimal `json:"vat_rate"` // fraction, e.g. 0.19
}

// CreateInvoiceRequest body for POST /api/invoices. VatTreatment may be
// empty: it is then auto-detected from the client's country/type/USt-IdNr.
type CreateInvoiceRequest struct {
	StreamType   string            `json:"stream_type"`
	ClientID     string            `json:"client_id"`
	InvoiceDate  string            `json:"invoice_date"` // YYYY-MM-DD
	DueDate      string            `json:"due_date,omitempty"`
	Items        []LineItemRequest `json:"items"`
	VatTreatment string            `json:"vat_treatment,omitempty"`
	Notes        string            `json:"notes,omitempty"`
}

// UpdateInvoiceRequest body for PUT /api/invoices/:id (line-item edits re-run
// the calculator; only ISSUED invoices not yet paid/cancelled accept edits of
// notes and due date, totals are immutable once issued).
type UpdateInvoiceRequest struct {
	DueDate string `json:"due_date,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// UpdateInvoiceStatusRequest body for PATCH /api/invoices/:id/status.
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status"`
}

// LineItemResponse one invoice line in responses.
type LineItemResponse struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   money.Money     `json:"unit_price"`
	VatRate     decimal.Decimal `json:"vat_rate"`
}

// InvoiceResponse full invoice output.
type InvoiceResponse struct {
	ID           string             `json:"id"`
	StreamType   string             `json:"stream_type"`
	Number       string             `json:"number"`
	ClientID     string             `json:"client_id"`
	ClientName   string             `json:"client_name,omitempty"`
	InvoiceDate  string             `json:"invoice_date"`
	DueDate      string             `json:"due_date,omitempty"`
	Items        []LineItemResponse `json:"items"`
	NetTotal     money.Money        `json:"net_total"`
	VatTotal     money.Money        `json:"vat_total"`
	GrossTotal   money.Money        `json:"gross_total"`
	Currency     string             `json:"currency"`
	VatTreatment string             `json:"vat_treatment"`
	Status       string             `json:"status"`
	Notes        string             `json:"notes,omitempty"`
	ZmReportable bool               `json:"zm_reportable"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}
