package dto

import (
	"github.com/shopspring/decimal"

	"github.com/dreistrom/dreistrom-api/internal/domain/money"
)

// VatSummaryResponse output for GET /api/vat/summary. When Kleinunternehmer
// is true every amount is zero by definition (§19 UStG), regardless of what
// the raw invoice data sums to.
type VatSummaryResponse struct {
	From               string      `json:"from"`
	To                 string      `json:"to"`
	OutputVat          money.Money `json:"output_vat"`
	FreiberufOutputVat money.Money `json:"freiberuf_output_vat"`
	GewerbeOutputVat   money.Money `json:"gewerbe_output_vat"`
	InputVat           money.Money `json:"input_vat"`
	FreiberufInputVat  money.Money `json:"freiberuf_input_vat"`
	GewerbeInputVat    money.Money `json:"gewerbe_input_vat"`
	NetPayable         money.Money `json:"net_payable"`
	Kleinunternehmer   bool        `json:"kleinunternehmer"`
}

// GenerateVatReturnRequest body for POST /api/vat/returns.
type GenerateVatReturnRequest struct {
	Year         int    `json:"year"`
	PeriodType   string `json:"period_type"` // MONTHLY, QUARTERLY or ANNUAL
	PeriodNumber int    `json:"period_number"`
}

// SubmitVatReturnRequest body for POST /api/vat/returns/:id/submit.
type SubmitVatReturnRequest struct {
	SubmissionDate string `json:"submission_date"` // YYYY-MM-DD; defaults to today
}

// VatReturnResponse USt-VA period output.
type VatReturnResponse struct {
	ID             string      `json:"id"`
	Year           int         `json:"year"`
	PeriodType     string      `json:"period_type"`
	PeriodNumber   int         `json:"period_number"`
	OutputVat      money.Money `json:"output_vat"`
	InputVat       money.Money `json:"input_vat"`
	NetPayable     money.Money `json:"net_payable"`
	Status         string      `json:"status"`
	SubmissionDate string      `json:"submission_date,omitempty"`
}

// ThresholdStatusResponse output for GET /api/vat/kleinunternehmer-status.
type ThresholdStatusResponse struct {
	Year               int             `json:"year"`
	CurrentRevenue     money.Money     `json:"current_revenue"`
	CurrentYearLimit   money.Money     `json:"current_year_limit"`
	CurrentRatio       decimal.Decimal `json:"current_ratio"`
	ProjectedRevenue   money.Money     `json:"projected_revenue"`
	ProjectedYearLimit money.Money     `json:"projected_year_limit"`
	ProjectedRatio     decimal.Decimal `json:"projected_ratio"`
	CurrentExceeded    bool            `json:"current_exceeded"`
	ProjectedExceeded  bool            `json:"projected_exceeded"`
}
