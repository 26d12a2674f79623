package vat

import (
	"context"

	"github.com/dreistrom/dreistrom-api/internal/domain/repository"
	domainvat "github.com/dreistrom/dreistrom-api/internal/domain/vat"
)

// ZmUseCase builds the Zusammenfassende Meldung (§18a UStG) for a reporting
// window from ZM-flagged invoices.
type ZmUseCase struct {
	invoiceRepo repository.InvoiceRepository
	clientRepo  repository.ClientRepository
}

func NewZmUseCase(invoiceRepo repository.InvoiceRepository, clientRepo repository.ClientRepository) *ZmUseCase {
	return &ZmUseCase{invoiceRepo: invoiceRepo, clientRepo: clientRepo}
}

// BuildReport aggregates reportable invoices in [from, to] by counterpart.
// Cancelled invoices are already excluded at the query; an invoice whose
// client has disappeared is skipped rather than failing the whole report.
func (uc *ZmUseCase) BuildReport(ctx context.Context, userID, fromStr, toStr string) (*domainvat.ZmReport, error) {
	from, to, err := parseRange(fromStr, toStr)
	if err != nil {
		return nil, err
	}

	invoices, err := uc.invoiceRepo.ListZmReportable(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	reportable := make([]domainvat.ReportableInvoice, 0, len(invoices))
	for _, inv := range invoices {
		client, err := uc.clientRepo.GetByID(ctx, inv.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			continue
		}
		reportable = append(reportable, domainvat.ReportableInvoice{
			Country:    client.Country,
			UstIdNr:    client.UstIdNr,
			ClientName: client.Name,
			NetTotal:   inv.NetTotal,
		})
	}

	report := domainvat.BuildZmReport(from, to, reportable)
	return &report, nil
}
