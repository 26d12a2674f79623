package billing

import (
	"context"
	"time"

	"github.com/dreistrom/dreistrom-api/internal/application/dto"
	"github.com/dreistrom/dreistrom-api/internal/domain"
	domainbilling "github.com/dreistrom/dreistrom-api/internal/domain/billing"
	"github.com/dreistrom/dreistrom-api/internal/domain/entity"
	"github.com/dreistrom/dreistrom-api/internal/domain/repository"
)

// InvoiceUseCase covers reads and post-issuance operations: listing, status
// transitions and the limited edits an issued invoice still allows.
type InvoiceUseCase struct {
	invoiceRepo repository.InvoiceRepository
	clientRepo  repository.ClientRepository
}

// NewInvoiceUseCase wires the use case.
func NewInvoiceUseCase(invoiceRepo repository.InvoiceRepository, clientRepo repository.ClientRepository) *InvoiceUseCase {
	return &InvoiceUseCase{invoiceRepo: invoiceRepo, clientRepo: clientRepo}
}

// GetInvoice returns one owned invoice with its lines.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, userID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, uc.clientName(ctx, inv.ClientID)), nil
}

// ListInvoices returns the user's invoices, optionally filtered by stream or
// status (both empty = all).
func (uc *InvoiceUseCase) ListInvoices(ctx context.Context, userID, streamType, status string) ([]*dto.InvoiceResponse, error) {
	var invoices []*entity.Invoice
	var err error
	switch {
	case streamType != "":
		if !domainbilling.ValidStream(streamType) {
			return nil, domain.ErrInvalidInput
		}
		invoices, err = uc.invoiceRepo.ListByUserAndStream(ctx, userID, streamType)
	case status != "":
		invoices, err = uc.invoiceRepo.ListByUserAndStatus(ctx, userID, status)
	default:
		invoices, err = uc.invoiceRepo.ListByUser(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, toInvoiceResponse(inv, ""))
	}
	return out, nil
}

// UpdateStatus applies a lifecycle transition (ISSUED -> PAID/OVERDUE/
// CANCELLED, OVERDUE -> PAID/CANCELLED). Illegal moves return a
// TransitionError; cancellation keeps the number reserved forever.
func (uc *InvoiceUseCase) UpdateStatus(ctx context.Context, userID, id, newStatus string) (*dto.InvoiceResponse, error) {
	inv, err := uc.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := domainbilling.Transition(inv, newStatus, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := uc.invoiceRepo.UpdateStatus(ctx, inv); err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, ""), nil
}

// UpdateInvoice edits the mutable remainder of an issued invoice: due date
// and notes. Number, line items and totals are immutable once issued; PAID
// and CANCELLED invoices accept no edits at all.
func (uc *InvoiceUseCase) UpdateInvoice(ctx context.Context, userID, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	inv, err := uc.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if inv.Status != entity.StatusIssued && inv.Status != entity.StatusOverdue {
		return nil, domain.ErrStateConflict
	}
	if in.DueDate != "" {
		d, err := time.Parse(dateLayout, in.DueDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		inv.DueDate = &d
	}
	if in.Notes != "" {
		inv.Notes = in.Notes
	}
	inv.Touch(time.Now().UTC())
	if err := uc.invoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, ""), nil
}

// DeleteInvoice removes an invoice that never got a number assigned. Issued
// invoices are part of the gap-free record and can only be cancelled.
func (uc *InvoiceUseCase) DeleteInvoice(ctx context.Context, userID, id string) error {
	inv, err := uc.getOwned(ctx, userID, id)
	if err != nil {
		return err
	}
	if inv.Status != entity.StatusDraft {
		return domain.ErrStateConflict
	}
	return uc.invoiceRepo.Delete(ctx, id)
}

func (uc *InvoiceUseCase) getOwned(ctx context.Context, userID, id string) (*entity.Invoice, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, &domain.NotFoundError{Entity: "invoice", ID: id}
	}
	if inv.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return inv, nil
}

func (uc *InvoiceUseCase) clientName(ctx context.Context, clientID string) string {
	client, err := uc.clientRepo.GetByID(ctx, clientID)
	if err != nil || client == nil {
		return ""
	}
	return client.Name
}
