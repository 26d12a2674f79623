package entity

import (
	"time"

	"github.com/dreistrom/dreistrom-api/internal/domain/money"
)

// USt-VA period cadences. Monthly applies in the first business years,
// quarterly afterwards; annual covers the Jahreserklärung.
const (
	PeriodMonthly   = "MONTHLY"
	PeriodQuarterly = "QUARTERLY"
	PeriodAnnual    = "ANNUAL"
)

// VatReturn status values.
const (
	VatReturnDraft     = "DRAFT"
	VatReturnSubmitted = "SUBMITTED"
)

// VatReturn is one Umsatzsteuer-Voranmeldung period. NetPayable is always
// recomputed as OutputVat - InputVat, never edited independently.
type VatReturn struct {
	ID             string
	UserID         string
	Year           int
	PeriodType     string // PeriodMonthly, PeriodQuarterly or PeriodAnnual
	PeriodNumber   int    // 1..12, 1..4 or 1
	OutputVat      money.Money
	InputVat       money.Money
	NetPayable     money.Money
	Status         string
	SubmissionDate *time.Time
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SetAmounts updates the figures, keeping the NetPayable invariant.
func (v *VatReturn) SetAmounts(outputVat, inputVat money.Money, now time.Time) {
	v.OutputVat = outputVat
	v.InputVat = inputVat
	v.NetPayable = outputVat.Sub(inputVat)
	v.UpdatedAt = now
}

// Submit marks the return as filed.
func (v *VatReturn) Submit(date time.Time, now time.Time) {
	v.Status = VatReturnSubmitted
	v.SubmissionDate = &date
	v.UpdatedAt = now
}
