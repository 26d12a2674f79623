package vat

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dreistrom/dreistrom-api/internal/application/dto"
	"github.com/dreistrom/dreistrom-api/internal/domain"
	"github.com/dreistrom/dreistrom-api/internal/domain/money"
	"github.com/dreistrom/dreistrom-api/internal/domain/repository"
	domainvat "github.com/dreistrom/dreistrom-api/internal/domain/vat"
)

const dateLayout = "2006-01-02"

// SummaryUseCase computes the per-period VAT picture: output VAT from issued
// invoices, input VAT (Vorsteuer) extracted from allocated expense gross
// amounts, and the resulting net payable. Summarize never writes anything;
// repeated calls over unchanged data return identical results.
type SummaryUseCase struct {
	userRepo     repository.UserRepository
	invoiceRepo  repository.InvoiceRepository
	expenseRepo  repository.ExpenseRepository
	standardRate decimal.Decimal
}

// NewSummaryUseCase wires the use case. ratePercent is the statutory
// standard rate used to extract Vorsteuer from gross expenses.
func NewSummaryUseCase(
	userRepo repository.UserRepository,
	invoiceRepo repository.InvoiceRepository,
	expenseRepo repository.ExpenseRepository,
	ratePercent int64,
) *SummaryUseCase {
	return &SummaryUseCase{
		userRepo:     userRepo,
		invoiceRepo:  invoiceRepo,
		expenseRepo:  expenseRepo,
		standardRate: decimal.NewFromInt(ratePercent),
	}
}

// Summarize aggregates the window [from, to]. A Kleinunternehmer gets the
// all-zero summary regardless of recorded data: under §19 UStG no VAT is
// charged and no Vorsteuer is deductible.
func (uc *SummaryUseCase) Summarize(ctx context.Context, userID, fromStr, toStr string) (*dto.VatSummaryResponse, error) {
	from, to, err := parseRange(fromStr, toStr)
	if err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &domain.NotFoundError{Entity: "user", ID: userID}
	}

	resp := &dto.VatSummaryResponse{
		From:             fromStr,
		To:               toStr,
		Kleinunternehmer: user.Kleinunternehmer,
	}
	if user.Kleinunternehmer {
		return resp, nil
	}

	vatSums, err := uc.invoiceRepo.SumVatByDateRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	expenseSums, err := uc.expenseRepo.SumAllocatedByDateRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	resp.FreiberufOutputVat = money.FromCents(vatSums.FreiberufVatCents)
	resp.GewerbeOutputVat = money.FromCents(vatSums.GewerbeVatCents)
	resp.OutputVat = resp.FreiberufOutputVat.Add(resp.GewerbeOutputVat)

	resp.FreiberufInputVat = domainvat.ExtractVat(money.FromCents(expenseSums.FreiberufGrossCents), uc.standardRate)
	resp.GewerbeInputVat = domainvat.ExtractVat(money.FromCents(expenseSums.GewerbeGrossCents), uc.standardRate)
	resp.InputVat = resp.FreiberufInputVat.Add(resp.GewerbeInputVat)

	resp.NetPayable = resp.OutputVat.Sub(resp.InputVat)
	return resp, nil
}

// summarizePeriod is the internal entry point shared with the return
// generator: same aggregation, period expressed as (year, type, number).
func (uc *SummaryUseCase) summarizePeriod(ctx context.Context, userID string, year int, periodType string, periodNumber int) (*dto.VatSummaryResponse, error) {
	from := domainvat.PeriodStart(year, periodType, periodNumber)
	to := domainvat.PeriodEnd(year, periodType, periodNumber)
	return uc.Summarize(ctx, userID, from.Format(dateLayout), to.Format(dateLayout))
}

func parseRange(fromStr, toStr string) (time.Time, time.Time, error) {
	from, err := time.Parse(dateLayout, fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	to, err := time.Parse(dateLayout, toStr)
	if err != nil {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	return from, to, nil
}
