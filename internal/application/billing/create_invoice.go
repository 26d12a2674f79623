package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dreistrom/dreistrom-api/internal/application/dto"
	"github.com/dreistrom/dreistrom-api/internal/domain"
	domainbilling "github.com/dreistrom/dreistrom-api/internal/domain/billing"
	"github.com/dreistrom/dreistrom-api/internal/domain/entity"
	"github.com/dreistrom/dreistrom-api/internal/domain/money"
	"github.com/dreistrom/dreistrom-api/internal/domain/repository"
	"github.com/dreistrom/dreistrom-api/pkg/logger"
)

const dateLayout = "2006-01-02"

// CreateInvoiceUseCase issues invoices: totals first, then number allocation
// and persistence in one transaction, then the DRAFT -> ISSUED transition.
type CreateInvoiceUseCase struct {
	txRunner   TxRunner
	userRepo   repository.UserRepository
	clientRepo repository.ClientRepository
	audit      AuditPublisher
	log        *logger.Logger
}

// NewCreateInvoiceUseCase wires the use case.
func NewCreateInvoiceUseCase(
	txRunner TxRunner,
	userRepo repository.UserRepository,
	clientRepo repository.ClientRepository,
	audit AuditPublisher,
	log *logger.Logger,
) *CreateInvoiceUseCase {
	return &CreateInvoiceUseCase{
		txRunner:   txRunner,
		userRepo:   userRepo,
		clientRepo: clientRepo,
		audit:      audit,
		log:        log,
	}
}

// CreateInvoice validates the payload, computes totals, allocates the next
// sequential number for (stream, fiscal year) and persists the invoice.
// Allocation and insert are one atomic unit, so a failure anywhere rolls
// the counter back and leaves no gap.
//
// All validation runs before the transaction starts: a rejected payload
// never touches the sequence. An AllocationError (lock wait exceeded) is
// returned to the caller as-is; retrying is the caller's decision because a
// retry re-validates the payload.
func (uc *CreateInvoiceUseCase) CreateInvoice(ctx context.Context, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if !domainbilling.ValidStream(in.StreamType) {
		return nil, domain.ErrInvalidInput
	}
	if in.ClientID == "" {
		return nil, domain.ErrInvalidInput
	}

	invoiceDate, err := time.Parse(dateLayout, in.InvoiceDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	var dueDate *time.Time
	if in.DueDate != "" {
		d, err := time.Parse(dateLayout, in.DueDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		dueDate = &d
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &domain.NotFoundError{Entity: "user", ID: userID}
	}

	client, err := uc.clientRepo.GetByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, &domain.NotFoundError{Entity: "client", ID: in.ClientID}
	}
	if client.UserID != userID {
		return nil, domain.ErrForbidden
	}

	items, err := parseLineItems(in.Items)
	if err != nil {
		return nil, err
	}

	// Resolve the VAT treatment: explicit wins, then the §19 election, then
	// auto-detection from the client's country/type/USt-IdNr.
	treatment := in.VatTreatment
	if treatment == "" {
		if user.Kleinunternehmer {
			treatment = entity.VatSmallBusiness
		} else {
			treatment = domainbilling.DetermineVatTreatment(client)
		}
	}
	notes := domainbilling.AppendVatNotice(in.Notes, treatment)

	totals, err := domainbilling.ComputeTotals(items)
	if err != nil {
		return nil, err
	}
	if err := domainbilling.ValidateInvoice(client, invoiceDate, items, totals, treatment, notes); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	key := domainbilling.SequenceKey{Stream: in.StreamType, FiscalYear: invoiceDate.Year()}

	inv := &entity.Invoice{
		ID:           uuid.New().String(),
		UserID:       userID,
		StreamType:   in.StreamType,
		ClientID:     client.ID,
		InvoiceDate:  invoiceDate,
		DueDate:      dueDate,
		LineItems:    items,
		NetTotal:     totals.Net,
		VatTotal:     totals.Vat,
		GrossTotal:   totals.Gross,
		Currency:     "EUR",
		VatTreatment: treatment,
		Status:       entity.StatusDraft,
		Notes:        notes,
		ZmReportable: domainbilling.IsZmReportable(client, treatment),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.txRunner.RunInvoicing(ctx, func(
		seqRepo repository.SequenceRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		ordinal, err := seqRepo.Next(ctx, key)
		if err != nil {
			return err
		}
		inv.Number = domainbilling.FormatNumber(key, ordinal)
		if err := domainbilling.Transition(inv, entity.StatusIssued, now); err != nil {
			return err
		}
		return invoiceRepo.Create(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("invoice_id", inv.ID).
		Str("number", inv.Number).
		Str("stream", inv.StreamType).
		Str("gross_total", inv.GrossTotal.String()).
		Msg("invoice issued")

	uc.audit.InvoiceIssued(ctx, domainbilling.InvoiceIssued{
		InvoiceID:  inv.ID,
		UserID:     userID,
		StreamType: inv.StreamType,
		Number:     inv.Number,
		ClientID:   inv.ClientID,
		GrossTotal: inv.GrossTotal,
		IssuedAt:   now,
	})

	return toInvoiceResponse(inv, client.Name), nil
}

// parseLineItems converts request lines into domain line items. Unit prices
// go through the money parser so malformed amounts surface as AmountError
// before any arithmetic happens.
func parseLineItems(items []dto.LineItemRequest) ([]entity.LineItem, error) {
	parsed := make([]entity.LineItem, 0, len(items))
	for _, item := range items {
		price, err := money.FromDecimalString(item.UnitPrice)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, entity.LineItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   price,
			VatRate:     item.VatRate,
		})
	}
	return parsed, nil
}

func toInvoiceResponse(inv *entity.Invoice, clientName string) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:           inv.ID,
		StreamType:   inv.StreamType,
		Number:       inv.Number,
		ClientID:     inv.ClientID,
		ClientName:   clientName,
		InvoiceDate:  inv.InvoiceDate.Format(dateLayout),
		Items:        make([]dto.LineItemResponse, 0, len(inv.LineItems)),
		NetTotal:     inv.NetTotal,
		VatTotal:     inv.VatTotal,
		GrossTotal:   inv.GrossTotal,
		Currency:     inv.Currency,
		VatTreatment: inv.VatTreatment,
		Status:       inv.Status,
		Notes:        inv.Notes,
		ZmReportable: inv.ZmReportable,
		CreatedAt:    inv.CreatedAt,
		UpdatedAt:    inv.UpdatedAt,
	}
	if inv.DueDate != nil {
		resp.DueDate = inv.DueDate.Format(dateLayout)
	}
	for _, item := range inv.LineItems {
		resp.Items = append(resp.Items, dto.LineItemResponse{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			VatRate:     item.VatRate,
		})
	}
	return resp
}
