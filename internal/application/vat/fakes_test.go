package vat

import (
	"context"
	"sync"
	"time"

	"github.com/dreistrom/dreistrom-api/internal/domain/entity"
	"github.com/dreistrom/dreistrom-api/internal/domain/repository"
)

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}
func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.users[id], nil
}
func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

// fakeInvoiceRepo serves the aggregate queries from configured values; the
// CRUD surface is unused by the VAT use cases.
type fakeInvoiceRepo struct {
	mu       sync.Mutex
	vatSums  repository.StreamVatSums
	netCents int64
	zm       []*entity.Invoice
}

func (r *fakeInvoiceRepo) setVatSums(s repository.StreamVatSums) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vatSums = s
}

func (r *fakeInvoiceRepo) Create(_ context.Context, _ *entity.Invoice) error  { return nil }
func (r *fakeInvoiceRepo) GetByID(_ context.Context, _ string) (*entity.Invoice, error) {
	return nil, nil
}
func (r *fakeInvoiceRepo) ListByUser(_ context.Context, _ string) ([]*entity.Invoice, error) {
	return nil, nil
}
func (r *fakeInvoiceRepo) ListByUserAndStream(_ context.Context, _, _ string) ([]*entity.Invoice, error) {
	return nil, nil
}
func (r *fakeInvoiceRepo) ListByUserAndStatus(_ context.Context, _, _ string) ([]*entity.Invoice, error) {
	return nil, nil
}
func (r *fakeInvoiceRepo) Update(_ context.Context, _ *entity.Invoice) error       { return nil }
func (r *fakeInvoiceRepo) UpdateStatus(_ context.Context, _ *entity.Invoice) error { return nil }
func (r *fakeInvoiceRepo) Delete(_ context.Context, _ string) error                { return nil }

func (r *fakeInvoiceRepo) SumVatByDateRange(_ context.Context, _ string, _, _ time.Time) (repository.StreamVatSums, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.vatSums, nil
}

func (r *fakeInvoiceRepo) SumNetSelfEmployedByDateRange(_ context.Context, _ string, _, _ time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.netCents, nil
}

func (r *fakeInvoiceRepo) ListZmReportable(_ context.Context, _ string, _, _ time.Time) ([]*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zm, nil
}

type fakeExpenseRepo struct {
	sums repository.StreamExpenseSums
}

func (r *fakeExpenseRepo) Create(_ context.Context, _ *entity.ExpenseEntry) error { return nil }
func (r *fakeExpenseRepo) GetByID(_ context.Context, _ string) (*entity.ExpenseEntry, error) {
	return nil, nil
}
func (r *fakeExpenseRepo) ListByUser(_ context.Context, _ string) ([]*entity.ExpenseEntry, error) {
	return nil, nil
}
func (r *fakeExpenseRepo) Update(_ context.Context, _ *entity.ExpenseEntry) error { return nil }
func (r *fakeExpenseRepo) Delete(_ context.Context, _ string) error               { return nil }

func (r *fakeExpenseRepo) SumAllocatedByDateRange(_ context.Context, _ string, _, _ time.Time) (repository.StreamExpenseSums, error) {
	return r.sums, nil
}

type fakeClientRepo struct {
	clients map[string]*entity.Client
}

func (r *fakeClientRepo) Create(_ context.Context, c *entity.Client) error {
	r.clients[c.ID] = c
	return nil
}
func (r *fakeClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	return r.clients[id], nil
}
func (r *fakeClientRepo) ListByUser(_ context.Context, _ string) ([]*entity.Client, error) {
	return nil, nil
}
func (r *fakeClientRepo) Update(_ context.Context, c *entity.Client) error {
	r.clients[c.ID] = c
	return nil
}
func (r *fakeClientRepo) Delete(_ context.Context, id string) error {
	delete(r.clients, id)
	return nil
}

type fakeReturnRepo struct {
	mu      sync.Mutex
	returns map[string]*entity.VatReturn
}

func newFakeReturnRepo() *fakeReturnRepo {
	return &fakeReturnRepo{returns: make(map[string]*entity.VatReturn)}
}

func (r *fakeReturnRepo) Create(_ context.Context, vr *entity.VatReturn) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *vr
	r.returns[vr.ID] = &cp
	return nil
}

func (r *fakeReturnRepo) GetByID(_ context.Context, id string) (*entity.VatReturn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	vr, ok := r.returns[id]
	if !ok {
		return nil, nil
	}
	cp := *vr
	return &cp, nil
}

func (r *fakeReturnRepo) GetByPeriod(_ context.Context, userID string, year int, periodType string, periodNumber int) (*entity.VatReturn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, vr := range r.returns {
		if vr.UserID == userID && vr.Year == year && vr.PeriodType == periodType && vr.PeriodNumber == periodNumber {
			cp := *vr
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeReturnRepo) ListByUserAndYear(_ context.Context, userID string, year int) ([]*entity.VatReturn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.VatReturn
	for _, vr := range r.returns {
		if vr.UserID == userID && vr.Year == year {
			cp := *vr
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeReturnRepo) Update(_ context.Context, vr *entity.VatReturn) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *vr
	r.returns[vr.ID] = &cp
	return nil
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)
var _ repository.InvoiceRepository = (*fakeInvoiceRepo)(nil)
var _ repository.ExpenseRepository = (*fakeExpenseRepo)(nil)
var _ repository.ClientRepository = (*fakeClientRepo)(nil)
var _ repository.VatReturnRepository = (*fakeReturnRepo)(nil)
