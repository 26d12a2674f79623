package billing

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	domainbilling "github.com/dreistrom/dreistrom-api/internal/domain/billing"
	"github.com/dreistrom/dreistrom-api/internal/domain/entity"
	"github.com/dreistrom/dreistrom-api/internal/domain/repository"
)

// --- users ---

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
	return nil
}

// --- clients ---

type fakeClientRepo struct {
	mu      sync.Mutex
	clients map[string]*entity.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[string]*entity.Client)}
}

func (r *fakeClientRepo) Create(_ context.Context, c *entity.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[c.ID] = c
	return nil
}

func (r *fakeClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clients[id], nil
}

func (r *fakeClientRepo) ListByUser(_ context.Context, userID string) ([]*entity.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Client
	for _, c := range r.clients {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeClientRepo) Update(_ context.Context, c *entity.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[c.ID] = c
	return nil
}

func (r *fakeClientRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, id)
	return nil
}

// --- sequence arena ---

// seqArena mimics the row-locked counter table: one lock per key, held from
// Next until the surrounding transaction commits or rolls back.
type seqArena struct {
	mu       sync.Mutex
	counters map[domainbilling.SequenceKey]*seqCounter
	calls    atomic.Int64
}

type seqCounter struct {
	mu   sync.Mutex
	last int
}

func newSeqArena() *seqArena {
	return &seqArena{counters: make(map[domainbilling.SequenceKey]*seqCounter)}
}

func (a *seqArena) counter(key domainbilling.SequenceKey) *seqCounter {
	a.mu.Lock()
	defer a.mu.Unlock()
	c, ok := a.counters[key]
	if !ok {
		c = &seqCounter{}
		a.counters[key] = c
	}
	return c
}

// seed sets the committed last value for a key, as if earlier fiscal-year
// activity had already consumed ordinals.
func (a *seqArena) seed(key domainbilling.SequenceKey, last int) {
	a.counter(key).last = last
}

func (a *seqArena) committed(key domainbilling.SequenceKey) int {
	c := a.counter(key)
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

type txSeqRepo struct {
	arena   *seqArena
	held    []*seqCounter
	pending map[*seqCounter]int
}

func (t *txSeqRepo) Next(_ context.Context, key domainbilling.SequenceKey) (int, error) {
	t.arena.calls.Add(1)
	c := t.arena.counter(key)
	c.mu.Lock()
	t.held = append(t.held, c)
	if t.pending == nil {
		t.pending = make(map[*seqCounter]int)
	}
	next := c.last + 1
	t.pending[c] = next
	return next, nil
}

func (t *txSeqRepo) commit() {
	for _, c := range t.held {
		c.last = t.pending[c]
		c.mu.Unlock()
	}
	t.held = nil
}

func (t *txSeqRepo) rollback() {
	for _, c := range t.held {
		c.mu.Unlock()
	}
	t.held = nil
}

// --- invoices ---

type fakeInvoiceStore struct {
	mu         sync.Mutex
	invoices   map[string]*entity.Invoice
	failCreate bool
}

func newFakeInvoiceStore() *fakeInvoiceStore {
	return &fakeInvoiceStore{invoices: make(map[string]*entity.Invoice)}
}

func (s *fakeInvoiceStore) Create(_ context.Context, inv *entity.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failCreate {
		return errors.New("insert failed")
	}
	cp := *inv
	s.invoices[inv.ID] = &cp
	return nil
}

func (s *fakeInvoiceStore) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (s *fakeInvoiceStore) ListByUser(_ context.Context, userID string) ([]*entity.Invoice, error) {
	return s.list(func(inv *entity.Invoice) bool { return inv.UserID == userID })
}

func (s *fakeInvoiceStore) ListByUserAndStream(_ context.Context, userID, streamType string) ([]*entity.Invoice, error) {
	return s.list(func(inv *entity.Invoice) bool {
		return inv.UserID == userID && inv.StreamType == streamType
	})
}

func (s *fakeInvoiceStore) ListByUserAndStatus(_ context.Context, userID, status string) ([]*entity.Invoice, error) {
	return s.list(func(inv *entity.Invoice) bool {
		return inv.UserID == userID && inv.Status == status
	})
}

func (s *fakeInvoiceStore) list(keep func(*entity.Invoice) bool) ([]*entity.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Invoice
	for _, inv := range s.invoices {
		if keep(inv) {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeInvoiceStore) Update(_ context.Context, inv *entity.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *inv
	s.invoices[inv.ID] = &cp
	return nil
}

func (s *fakeInvoiceStore) UpdateStatus(ctx context.Context, inv *entity.Invoice) error {
	return s.Update(ctx, inv)
}

func (s *fakeInvoiceStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.invoices, id)
	return nil
}

func (s *fakeInvoiceStore) SumVatByDateRange(_ context.Context, userID string, from, to time.Time) (repository.StreamVatSums, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sums repository.StreamVatSums
	for _, inv := range s.invoices {
		if inv.UserID != userID || !isIssuedStatus(inv.Status) {
			continue
		}
		if inv.InvoiceDate.Before(from) || inv.InvoiceDate.After(to) {
			continue
		}
		switch inv.StreamType {
		case entity.StreamFreiberuf:
			sums.FreiberufVatCents += inv.VatTotal.Cents()
			sums.FreiberufNetCents += inv.NetTotal.Cents()
		case entity.StreamGewerbe:
			sums.GewerbeVatCents += inv.VatTotal.Cents()
			sums.GewerbeNetCents += inv.NetTotal.Cents()
		}
	}
	return sums, nil
}

func (s *fakeInvoiceStore) SumNetSelfEmployedByDateRange(ctx context.Context, userID string, from, to time.Time) (int64, error) {
	sums, err := s.SumVatByDateRange(ctx, userID, from, to)
	if err != nil {
		return 0, err
	}
	return sums.FreiberufNetCents + sums.GewerbeNetCents, nil
}

func (s *fakeInvoiceStore) ListZmReportable(_ context.Context, userID string, from, to time.Time) ([]*entity.Invoice, error) {
	return s.list(func(inv *entity.Invoice) bool {
		return inv.UserID == userID && inv.ZmReportable &&
			isIssuedStatus(inv.Status) &&
			!inv.InvoiceDate.Before(from) && !inv.InvoiceDate.After(to)
	})
}

// isIssuedStatus mirrors the aggregation contract: only invoices that went
// through issuance count, never drafts or cancellations.
func isIssuedStatus(status string) bool {
	switch status {
	case entity.StatusIssued, entity.StatusPaid, entity.StatusOverdue:
		return true
	}
	return false
}

// txInvoiceRepo defers inserts until commit so a failed transaction leaves
// the store untouched.
type txInvoiceRepo struct {
	store   *fakeInvoiceStore
	pending []*entity.Invoice
}

func (t *txInvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	t.store.mu.Lock()
	fail := t.store.failCreate
	t.store.mu.Unlock()
	if fail {
		return errors.New("insert failed")
	}
	cp := *inv
	t.pending = append(t.pending, &cp)
	return nil
}

func (t *txInvoiceRepo) commit(ctx context.Context) {
	for _, inv := range t.pending {
		_ = t.store.Update(ctx, inv)
	}
	t.pending = nil
}

func (t *txInvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	return t.store.GetByID(ctx, id)
}
func (t *txInvoiceRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Invoice, error) {
	return t.store.ListByUser(ctx, userID)
}
func (t *txInvoiceRepo) ListByUserAndStream(ctx context.Context, userID, streamType string) ([]*entity.Invoice, error) {
	return t.store.ListByUserAndStream(ctx, userID, streamType)
}
func (t *txInvoiceRepo) ListByUserAndStatus(ctx context.Context, userID, status string) ([]*entity.Invoice, error) {
	return t.store.ListByUserAndStatus(ctx, userID, status)
}
func (t *txInvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	return t.store.Update(ctx, inv)
}
func (t *txInvoiceRepo) UpdateStatus(ctx context.Context, inv *entity.Invoice) error {
	return t.store.UpdateStatus(ctx, inv)
}
func (t *txInvoiceRepo) Delete(ctx context.Context, id string) error {
	return t.store.Delete(ctx, id)
}
func (t *txInvoiceRepo) SumVatByDateRange(ctx context.Context, userID string, from, to time.Time) (repository.StreamVatSums, error) {
	return t.store.SumVatByDateRange(ctx, userID, from, to)
}
func (t *txInvoiceRepo) SumNetSelfEmployedByDateRange(ctx context.Context, userID string, from, to time.Time) (int64, error) {
	return t.store.SumNetSelfEmployedByDateRange(ctx, userID, from, to)
}
func (t *txInvoiceRepo) ListZmReportable(ctx context.Context, userID string, from, to time.Time) ([]*entity.Invoice, error) {
	return t.store.ListZmReportable(ctx, userID, from, to)
}

// --- transaction runner ---

type fakeTxRunner struct {
	arena *seqArena
	store *fakeInvoiceStore
}

func (r *fakeTxRunner) RunInvoicing(ctx context.Context, fn func(repository.SequenceRepository, repository.InvoiceRepository) error) error {
	seq := &txSeqRepo{arena: r.arena}
	inv := &txInvoiceRepo{store: r.store}
	if err := fn(seq, inv); err != nil {
		seq.rollback()
		return err
	}
	seq.commit()
	inv.commit(ctx)
	return nil
}

// --- audit ---

type fakeAudit struct {
	mu     sync.Mutex
	events []domainbilling.InvoiceIssued
}

func (a *fakeAudit) InvoiceIssued(_ context.Context, ev domainbilling.InvoiceIssued) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

func (a *fakeAudit) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.events)
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)
var _ repository.ClientRepository = (*fakeClientRepo)(nil)
var _ repository.InvoiceRepository = (*fakeInvoiceStore)(nil)
var _ repository.InvoiceRepository = (*txInvoiceRepo)(nil)
var _ repository.SequenceRepository = (*txSeqRepo)(nil)
var _ TxRunner = (*fakeTxRunner)(nil)
var _ AuditPublisher = (*fakeAudit)(nil)
