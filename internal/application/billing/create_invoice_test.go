package billing

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreistrom/dreistrom-api/internal/application/dto"
	"github.com/dreistrom/dreistrom-api/internal/domain"
	domainbilling "github.com/dreistrom/dreistrom-api/internal/domain/billing"
	"github.com/dreistrom/dreistrom-api/internal/domain/entity"
	"github.com/dreistrom/dreistrom-api/pkg/logger"
)

type fixture struct {
	uc      *CreateInvoiceUseCase
	arena   *seqArena
	store   *fakeInvoiceStore
	users   *fakeUserRepo
	clients *fakeClientRepo
	audit   *fakeAudit
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		arena:   newSeqArena(),
		store:   newFakeInvoiceStore(),
		users:   newFakeUserRepo(),
		clients: newFakeClientRepo(),
		audit:   &fakeAudit{},
	}
	f.uc = NewCreateInvoiceUseCase(
		&fakeTxRunner{arena: f.arena, store: f.store},
		f.users,
		f.clients,
		f.audit,
		logger.New(logger.Config{Env: "production", Level: "error"}),
	)

	require.NoError(t, f.users.Create(context.Background(), &entity.User{
		ID:    "u1",
		Email: "mia@example.de",
		Name:  "Mia Schneider",
	}))
	require.NoError(t, f.clients.Create(context.Background(), &entity.Client{
		ID:         "c-de",
		UserID:     "u1",
		Name:       "Muster GmbH",
		Country:    "DE",
		ClientType: entity.ClientB2B,
		StreamType: entity.StreamFreiberuf,
		Active:     true,
	}))
	return f
}

func validRequest() dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		StreamType:  entity.StreamFreiberuf,
		ClientID:    "c-de",
		InvoiceDate: "2026-03-15",
		Items: []dto.LineItemRequest{{
			Description: "Beratung März",
			Quantity:    decimal.NewFromInt(10),
			UnitPrice:   "95.00",
			VatRate:     decimal.RequireFromString("0.19"),
		}},
	}
}

func TestCreateInvoice_IssuesSequentialNumbers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.uc.CreateInvoice(ctx, "u1", validRequest())
	require.NoError(t, err)
	second, err := f.uc.CreateInvoice(ctx, "u1", validRequest())
	require.NoError(t, err)

	assert.Equal(t, "FR-2026-001", first.Number)
	assert.Equal(t, "FR-2026-002", second.Number)
	assert.Equal(t, entity.StatusIssued, first.Status)
	assert.Equal(t, "950.00", first.NetTotal.String())
	assert.Equal(t, "180.50", first.VatTotal.String())
	assert.Equal(t, "1130.50", first.GrossTotal.String())
	assert.Equal(t, "EUR", first.Currency)
	assert.Equal(t, entity.VatRegular, first.VatTreatment)
	assert.Equal(t, 2, f.audit.count())

	stored, err := f.store.GetByID(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, entity.StatusIssued, stored.Status)
}

func TestCreateInvoice_ConcurrentAllocationsAreContiguous(t *testing.T) {
	f := newFixture(t)
	key := domainbilling.SequenceKey{Stream: entity.StreamFreiberuf, FiscalYear: 2026}
	f.arena.seed(key, 7)

	const n = 50
	type result struct {
		number string
		err    error
	}
	results := make(chan result, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := f.uc.CreateInvoice(context.Background(), "u1", validRequest())
			if err != nil {
				results <- result{err: err}
				return
			}
			results <- result{number: resp.Number}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[int]bool, n)
	for res := range results {
		require.NoError(t, res.err)
		num := res.number
		parts := strings.Split(num, "-")
		require.Len(t, parts, 3)
		ordinal, err := strconv.Atoi(parts[2])
		require.NoError(t, err)
		assert.False(t, seen[ordinal], "duplicate ordinal %d", ordinal)
		seen[ordinal] = true
	}
	for ordinal := 8; ordinal <= 7+n; ordinal++ {
		assert.True(t, seen[ordinal], "missing ordinal %d", ordinal)
	}
	assert.Equal(t, 7+n, f.arena.committed(key))
}

func TestCreateInvoice_BlockedKeyDoesNotStallOtherKeys(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.clients.Create(ctx, &entity.Client{
		ID:         "c-gw",
		UserID:     "u1",
		Name:       "Laden Kunde",
		Country:    "DE",
		ClientType: entity.ClientB2C,
		StreamType: entity.StreamGewerbe,
		Active:     true,
	}))

	// Hold the FREIBERUF/2026 counter lock as if another transaction were
	// mid-allocation and had not yet committed.
	frKey := domainbilling.SequenceKey{Stream: entity.StreamFreiberuf, FiscalYear: 2026}
	frCounter := f.arena.counter(frKey)
	frCounter.mu.Lock()

	gwReq := validRequest()
	gwReq.StreamType = entity.StreamGewerbe
	gwReq.ClientID = "c-gw"

	done := make(chan error, 1)
	go func() {
		_, err := f.uc.CreateInvoice(context.Background(), "u1", gwReq)
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		frCounter.mu.Unlock()
		t.Fatal("allocation on an uncontended key blocked behind another key's lock")
	}

	// The held key proceeds normally once its lock is released.
	frCounter.mu.Unlock()
	fr, err := f.uc.CreateInvoice(ctx, "u1", validRequest())
	require.NoError(t, err)
	assert.Equal(t, "FR-2026-001", fr.Number)
}

func TestCreateInvoice_IndependentCountersPerStreamAndYear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.clients.Create(ctx, &entity.Client{
		ID:         "c-gw",
		UserID:     "u1",
		Name:       "Laden Kunde",
		Country:    "DE",
		ClientType: entity.ClientB2C,
		StreamType: entity.StreamGewerbe,
		Active:     true,
	}))

	fr, err := f.uc.CreateInvoice(ctx, "u1", validRequest())
	require.NoError(t, err)

	gwReq := validRequest()
	gwReq.StreamType = entity.StreamGewerbe
	gwReq.ClientID = "c-gw"
	gw, err := f.uc.CreateInvoice(ctx, "u1", gwReq)
	require.NoError(t, err)

	prevYear := validRequest()
	prevYear.InvoiceDate = "2025-11-30"
	old, err := f.uc.CreateInvoice(ctx, "u1", prevYear)
	require.NoError(t, err)

	assert.Equal(t, "FR-2026-001", fr.Number)
	assert.Equal(t, "GW-2026-001", gw.Number)
	assert.Equal(t, "FR-2025-001", old.Number)
}

func TestCreateInvoice_FailedInsertBurnsNoNumber(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.store.failCreate = true
	_, err := f.uc.CreateInvoice(ctx, "u1", validRequest())
	require.Error(t, err)

	key := domainbilling.SequenceKey{Stream: entity.StreamFreiberuf, FiscalYear: 2026}
	assert.Equal(t, 0, f.arena.committed(key))
	assert.Equal(t, 0, f.audit.count())

	f.store.failCreate = false
	resp, err := f.uc.CreateInvoice(ctx, "u1", validRequest())
	require.NoError(t, err)
	assert.Equal(t, "FR-2026-001", resp.Number)
}

func TestCreateInvoice_RejectedPayloadNeverTouchesAllocator(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*dto.CreateInvoiceRequest)
		wantErr error
	}{
		{
			name:    "zero quantity",
			mutate:  func(r *dto.CreateInvoiceRequest) { r.Items[0].Quantity = decimal.Zero },
			wantErr: domain.ErrInvalidLineItem,
		},
		{
			name:    "empty description",
			mutate:  func(r *dto.CreateInvoiceRequest) { r.Items[0].Description = "  " },
			wantErr: domain.ErrInvalidLineItem,
		},
		{
			name:    "malformed amount",
			mutate:  func(r *dto.CreateInvoiceRequest) { r.Items[0].UnitPrice = "12,50" },
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "no line items",
			mutate:  func(r *dto.CreateInvoiceRequest) { r.Items = nil },
			wantErr: domain.ErrInvalidLineItem,
		},
		{
			name:    "unknown stream",
			mutate:  func(r *dto.CreateInvoiceRequest) { r.StreamType = "ANGESTELLT" },
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "bad date",
			mutate:  func(r *dto.CreateInvoiceRequest) { r.InvoiceDate = "15.03.2026" },
			wantErr: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			_, err := f.uc.CreateInvoice(ctx, "u1", req)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Equal(t, int64(0), f.arena.calls.Load(), "allocator must not run for rejected payloads")
}

func TestCreateInvoice_SmallBusinessElection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.users.Create(ctx, &entity.User{
		ID:               "u2",
		Email:            "klein@example.de",
		Name:             "Jonas Klein",
		Kleinunternehmer: true,
	}))
	require.NoError(t, f.clients.Create(ctx, &entity.Client{
		ID:         "c-u2",
		UserID:     "u2",
		Name:       "Privat Kunde",
		Country:    "DE",
		ClientType: entity.ClientB2C,
		StreamType: entity.StreamFreiberuf,
		Active:     true,
	}))

	req := validRequest()
	req.ClientID = "c-u2"
	req.Items[0].VatRate = decimal.Zero

	resp, err := f.uc.CreateInvoice(ctx, "u2", req)
	require.NoError(t, err)
	assert.Equal(t, entity.VatSmallBusiness, resp.VatTreatment)
	assert.True(t, resp.VatTotal.IsZero())
	assert.Contains(t, resp.Notes, "§19 UStG")
}

func TestCreateInvoice_ReverseChargeAutoDetection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.clients.Create(ctx, &entity.Client{
		ID:         "c-at",
		UserID:     "u1",
		Name:       "Wien Consulting GmbH",
		Country:    "AT",
		ClientType: entity.ClientB2B,
		UstIdNr:    "ATU12345678",
		StreamType: entity.StreamFreiberuf,
		Active:     true,
	}))

	req := validRequest()
	req.ClientID = "c-at"
	req.Items[0].VatRate = decimal.Zero

	resp, err := f.uc.CreateInvoice(ctx, "u1", req)
	require.NoError(t, err)
	assert.Equal(t, entity.VatReverseCharge, resp.VatTreatment)
	assert.True(t, resp.VatTotal.IsZero())
	assert.True(t, resp.ZmReportable)
	assert.Contains(t, resp.Notes, "§13b UStG")
}

func TestCreateInvoice_OwnershipAndExistence(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.users.Create(ctx, &entity.User{ID: "u2", Email: "o@example.de", Name: "Other"}))

	req := validRequest()
	req.ClientID = "missing"
	_, err := f.uc.CreateInvoice(ctx, "u1", req)
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.CreateInvoice(ctx, "u2", validRequest())
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreateInvoice_DueDateRoundTrip(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.DueDate = "2026-04-14"

	resp, err := f.uc.CreateInvoice(context.Background(), "u1", req)
	require.NoError(t, err)
	assert.Equal(t, "2026-04-14", resp.DueDate)

	stored, err := f.store.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.DueDate)
	assert.Equal(t, time.Date(2026, 4, 14, 0, 0, 0, 0, time.UTC), stored.DueDate.UTC())
}
