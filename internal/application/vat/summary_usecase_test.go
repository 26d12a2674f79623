package vat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreistrom/dreistrom-api/internal/domain"
	"github.com/dreistrom/dreistrom-api/internal/domain/entity"
	"github.com/dreistrom/dreistrom-api/internal/domain/repository"
)

func newSummaryFixture(kleinunternehmer bool) (*SummaryUseCase, *fakeInvoiceRepo, *fakeExpenseRepo) {
	users := &fakeUserRepo{users: map[string]*entity.User{
		"u1": {ID: "u1", Email: "mia@example.de", Kleinunternehmer: kleinunternehmer},
	}}
	invoices := &fakeInvoiceRepo{}
	expenses := &fakeExpenseRepo{}
	return NewSummaryUseCase(users, invoices, expenses, 19), invoices, expenses
}

func TestSummarize_CombinesOutputAndInputVat(t *testing.T) {
	uc, invoices, expenses := newSummaryFixture(false)
	invoices.setVatSums(repository.StreamVatSums{
		FreiberufVatCents: 19000, // 190.00 output VAT
		GewerbeVatCents:   9500,  // 95.00
	})
	// Gross expenses at 19%: 238.00 contains 38.00 VAT, 119.00 contains 19.00.
	expenses.sums = repository.StreamExpenseSums{
		FreiberufGrossCents: 23800,
		GewerbeGrossCents:   11900,
	}

	resp, err := uc.Summarize(context.Background(), "u1", "2026-01-01", "2026-03-31")
	require.NoError(t, err)

	assert.Equal(t, "190.00", resp.FreiberufOutputVat.String())
	assert.Equal(t, "95.00", resp.GewerbeOutputVat.String())
	assert.Equal(t, "285.00", resp.OutputVat.String())
	assert.Equal(t, "38.00", resp.FreiberufInputVat.String())
	assert.Equal(t, "19.00", resp.GewerbeInputVat.String())
	assert.Equal(t, "57.00", resp.InputVat.String())
	assert.Equal(t, "228.00", resp.NetPayable.String())
	assert.False(t, resp.Kleinunternehmer)
}

func TestSummarize_KleinunternehmerIsAllZero(t *testing.T) {
	uc, invoices, expenses := newSummaryFixture(true)
	invoices.setVatSums(repository.StreamVatSums{FreiberufVatCents: 99999})
	expenses.sums = repository.StreamExpenseSums{FreiberufGrossCents: 99999}

	resp, err := uc.Summarize(context.Background(), "u1", "2026-01-01", "2026-12-31")
	require.NoError(t, err)

	assert.True(t, resp.Kleinunternehmer)
	assert.True(t, resp.OutputVat.IsZero())
	assert.True(t, resp.InputVat.IsZero())
	assert.True(t, resp.NetPayable.IsZero())
}

func TestSummarize_RepeatedCallsAreIdentical(t *testing.T) {
	uc, invoices, _ := newSummaryFixture(false)
	invoices.setVatSums(repository.StreamVatSums{FreiberufVatCents: 12345, GewerbeVatCents: 678})

	first, err := uc.Summarize(context.Background(), "u1", "2026-04-01", "2026-06-30")
	require.NoError(t, err)
	second, err := uc.Summarize(context.Background(), "u1", "2026-04-01", "2026-06-30")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSummarize_RejectsBadRanges(t *testing.T) {
	uc, _, _ := newSummaryFixture(false)
	ctx := context.Background()

	_, err := uc.Summarize(ctx, "u1", "2026-13-01", "2026-12-31")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Summarize(ctx, "u1", "2026-06-30", "2026-06-01")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Summarize(ctx, "missing", "2026-01-01", "2026-12-31")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
