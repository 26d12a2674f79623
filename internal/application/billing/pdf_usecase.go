package billing

import (
	"context"

	"github.com/dreistrom/dreistrom-api/internal/domain"
	"github.com/dreistrom/dreistrom-api/internal/domain/repository"
)

// InvoicePDFUseCase renders an owned invoice as a printable document.
type InvoicePDFUseCase struct {
	invoiceRepo repository.InvoiceRepository
	clientRepo  repository.ClientRepository
	userRepo    repository.UserRepository
	generator   InvoicePDFGenerator
}

func NewInvoicePDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
	userRepo repository.UserRepository,
	generator InvoicePDFGenerator,
) *InvoicePDFUseCase {
	return &InvoicePDFUseCase{
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		userRepo:    userRepo,
		generator:   generator,
	}
}

// GeneratePDF loads invoice, client and issuer and hands them to the
// generator. The filename suggestion is the invoice number.
func (uc *InvoicePDFUseCase) GeneratePDF(ctx context.Context, userID, invoiceID string) ([]byte, string, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, "", err
	}
	if inv == nil {
		return nil, "", &domain.NotFoundError{Entity: "invoice", ID: invoiceID}
	}
	if inv.UserID != userID {
		return nil, "", domain.ErrForbidden
	}
	client, err := uc.clientRepo.GetByID(ctx, inv.ClientID)
	if err != nil {
		return nil, "", err
	}
	issuer, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.generator.GenerateInvoicePDF(ctx, inv, client, issuer)
	if err != nil {
		return nil, "", err
	}
	return pdf, inv.Number + ".pdf", nil
}
