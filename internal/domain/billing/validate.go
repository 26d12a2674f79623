package billing

import (
	"strings"
	"time"

	"github.com/dreistrom/dreistrom-api/internal/domain"
	"github.com/dreistrom/dreistrom-api/internal/domain/entity"
	"github.com/dreistrom/dreistrom-api/internal/domain/money"
)

// ValidateInvoice enforces the §14 Abs. 4 UStG mandatory invoice fields on
// top of the line-item checks:
//
//   - recipient with a name (Nr. 1)
//   - invoice date (Nr. 4)
//   - line items as Leistungsbeschreibung (Nr. 5)
//   - SMALL_BUSINESS, REVERSE_CHARGE and THIRD_COUNTRY carry zero VAT
//   - SMALL_BUSINESS notes must cite §19 UStG
//   - INTRA_EU requires the client's USt-IdNr
//
// Runs before any allocator call so a rejected invoice consumes no number.
func ValidateInvoice(client *entity.Client, invoiceDate time.Time,
	items []entity.LineItem, totals Totals, vatTreatment, notes string) error {

	if client == nil || strings.TrimSpace(client.Name) == "" {
		return domain.ErrInvalidInput
	}
	if invoiceDate.IsZero() {
		return domain.ErrInvalidInput
	}
	if err := ValidateLineItems(items); err != nil {
		return err
	}

	zeroVat := totals.Vat.Cmp(money.Zero) == 0

	switch vatTreatment {
	case entity.VatSmallBusiness:
		if !zeroVat {
			return domain.ErrInvalidInput
		}
		if !strings.Contains(notes, "§19") {
			return domain.ErrInvalidInput
		}
	case entity.VatReverseCharge, entity.VatThirdCountry:
		if !zeroVat {
			return domain.ErrInvalidInput
		}
	case entity.VatIntraEU:
		if strings.TrimSpace(client.UstIdNr) == "" {
			return domain.ErrInvalidInput
		}
	case entity.VatRegular:
		// no extra constraint
	default:
		return domain.ErrInvalidInput
	}

	return nil
}

// AppendVatNotice appends the treatment's legal notice to the notes unless it
// is already present.
func AppendVatNotice(notes, vatTreatment string) string {
	notice := VatNotice(vatTreatment)
	if notice == "" || strings.Contains(notes, notice) {
		return notes
	}
	if strings.TrimSpace(notes) == "" {
		return notice
	}
	return notes + "\n" + notice
}
