package services_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/antusaha970/member-management-backend-sub000/internal/apperrors"
	"github.com/antusaha970/member-management-backend-sub000/internal/core/domain"
	portsrepo "github.com/antusaha970/member-management-backend-sub000/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ledgerState is everything a LedgerTx can touch.
type ledgerState struct {
	invoices       map[string]domain.Invoice
	accounts       map[string]domain.MemberAccount // keyed by member ID
	transactions   []domain.Transaction
	payments       []domain.Payment
	saleTypes      map[string]domain.SaleType
	sales          []domain.Sale
	receivingTypes map[domain.IncomeReceivingKind]domain.IncomeReceivingType
	incomes        []domain.Income
	dues           []domain.Due
	memberDues     []domain.MemberDue
	outbox         []domain.OutboxEvent
}

func (s ledgerState) clone() ledgerState {
	c := ledgerState{
		invoices:       make(map[string]domain.Invoice, len(s.invoices)),
		accounts:       make(map[string]domain.MemberAccount, len(s.accounts)),
		saleTypes:      make(map[string]domain.SaleType, len(s.saleTypes)),
		receivingTypes: make(map[domain.IncomeReceivingKind]domain.IncomeReceivingType, len(s.receivingTypes)),
		transactions:   append([]domain.Transaction(nil), s.transactions...),
		payments:       append([]domain.Payment(nil), s.payments...),
		sales:          append([]domain.Sale(nil), s.sales...),
		incomes:        append([]domain.Income(nil), s.incomes...),
		dues:           append([]domain.Due(nil), s.dues...),
		memberDues:     append([]domain.MemberDue(nil), s.memberDues...),
		outbox:         append([]domain.OutboxEvent(nil), s.outbox...),
	}
	for k, v := range s.invoices {
		c.invoices[k] = v
	}
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	for k, v := range s.saleTypes {
		c.saleTypes[k] = v
	}
	for k, v := range s.receivingTypes {
		c.receivingTypes[k] = v
	}
	return c
}

// fakeLedger is an in-memory UnitOfWork. RunInTx serialises callers (as
// row locks would), snapshots state on begin and restores it on error.
type fakeLedger struct {
	mu      sync.Mutex
	state   ledgerState
	failOn  map[string]error
	commits int
}

var _ portsrepo.UnitOfWork = (*fakeLedger)(nil)

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		state: ledgerState{
			invoices:       map[string]domain.Invoice{},
			accounts:       map[string]domain.MemberAccount{},
			saleTypes:      map[string]domain.SaleType{},
			receivingTypes: map[domain.IncomeReceivingKind]domain.IncomeReceivingType{},
		},
		failOn: map[string]error{},
	}
}

func (l *fakeLedger) RunInTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	snapshot := l.state.clone()
	if err := fn(ctx, &fakeTx{l: l}); err != nil {
		l.state = snapshot
		return err
	}
	l.commits++
	return nil
}

// failNext makes the named LedgerTx method return err.
func (l *fakeLedger) failNext(method string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failOn[method] = err
}

func (l *fakeLedger) seedInvoice(inv domain.Invoice) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.invoices[inv.InvoiceID] = inv
}

func (l *fakeLedger) seedAccount(acc domain.MemberAccount) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.accounts[acc.MemberID] = acc
}

func (l *fakeLedger) seedIncome(inc domain.Income) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.incomes = append(l.state.incomes, inc)
}

func (l *fakeLedger) snapshot() ledgerState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.clone()
}

func (s ledgerState) activeDues(invoiceID string) []domain.Due {
	var out []domain.Due
	for _, d := range s.dues {
		if d.InvoiceID == invoiceID && d.IsActive {
			out = append(out, d)
		}
	}
	return out
}

func (s ledgerState) activeMemberDues(invoiceID string) []domain.MemberDue {
	var out []domain.MemberDue
	for _, d := range s.memberDues {
		if d.InvoiceID == invoiceID && d.IsActive {
			out = append(out, d)
		}
	}
	return out
}

func (s ledgerState) activeTransactions(invoiceID string) []domain.Transaction {
	var out []domain.Transaction
	for _, t := range s.transactions {
		if t.InvoiceID == invoiceID && t.IsActive {
			out = append(out, t)
		}
	}
	return out
}

func (s ledgerState) topics() []domain.OutboxTopic {
	out := make([]domain.OutboxTopic, len(s.outbox))
	for i, ev := range s.outbox {
		out[i] = ev.Topic
	}
	return out
}

// fakeTx implements LedgerTx over the locked state of its fakeLedger.
type fakeTx struct {
	l *fakeLedger
}

var _ portsrepo.LedgerTx = (*fakeTx)(nil)

func (t *fakeTx) fail(method string) error {
	if err, ok := t.l.failOn[method]; ok {
		delete(t.l.failOn, method)
		return err
	}
	return nil
}

func (t *fakeTx) LockInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	if err := t.fail("LockInvoice"); err != nil {
		return nil, err
	}
	inv, ok := t.l.state.invoices[invoiceID]
	if !ok {
		return nil, fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, invoiceID)
	}
	return &inv, nil
}

func (t *fakeTx) InsertInvoice(ctx context.Context, invoice domain.Invoice) error {
	if err := t.fail("InsertInvoice"); err != nil {
		return err
	}
	if _, ok := t.l.state.invoices[invoice.InvoiceID]; ok {
		return apperrors.ErrDuplicate
	}
	t.l.state.invoices[invoice.InvoiceID] = invoice
	return nil
}

func (t *fakeTx) SaveInvoiceSettlement(ctx context.Context, invoice domain.Invoice) error {
	if err := t.fail("SaveInvoiceSettlement"); err != nil {
		return err
	}
	stored, ok := t.l.state.invoices[invoice.InvoiceID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if stored.Version != invoice.Version {
		return apperrors.ErrConflict
	}
	invoice.Version++
	invoice.CurrentDueID = stored.CurrentDueID
	t.l.state.invoices[invoice.InvoiceID] = invoice
	return nil
}

func (t *fakeTx) LockMemberAccount(ctx context.Context, memberID string) (*domain.MemberAccount, error) {
	if err := t.fail("LockMemberAccount"); err != nil {
		return nil, err
	}
	acc, ok := t.l.state.accounts[memberID]
	if !ok {
		return nil, fmt.Errorf("%w: account of member %s", apperrors.ErrNotFound, memberID)
	}
	return &acc, nil
}

func (t *fakeTx) InsertMemberAccount(ctx context.Context, account domain.MemberAccount) error {
	if err := t.fail("InsertMemberAccount"); err != nil {
		return err
	}
	if _, ok := t.l.state.accounts[account.MemberID]; ok {
		return apperrors.ErrDuplicate
	}
	t.l.state.accounts[account.MemberID] = account
	return nil
}

func (t *fakeTx) SaveAccountBalance(ctx context.Context, account domain.MemberAccount) error {
	if err := t.fail("SaveAccountBalance"); err != nil {
		return err
	}
	stored, ok := t.l.state.accounts[account.MemberID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if stored.Version != account.Version {
		return apperrors.ErrConflict
	}
	if account.Balance.IsNegative() {
		return apperrors.NewAppError(500, "balance check constraint violated", nil)
	}
	account.Version++
	t.l.state.accounts[account.MemberID] = account
	return nil
}

func (t *fakeTx) InsertTransaction(ctx context.Context, txn domain.Transaction) error {
	if err := t.fail("InsertTransaction"); err != nil {
		return err
	}
	t.l.state.transactions = append(t.l.state.transactions, txn)
	return nil
}

func (t *fakeTx) InsertPayment(ctx context.Context, payment domain.Payment) error {
	if err := t.fail("InsertPayment"); err != nil {
		return err
	}
	t.l.state.payments = append(t.l.state.payments, payment)
	return nil
}

func (t *fakeTx) UpsertSaleType(ctx context.Context, name string) (*domain.SaleType, error) {
	if err := t.fail("UpsertSaleType"); err != nil {
		return nil, err
	}
	st, ok := t.l.state.saleTypes[name]
	if !ok {
		st = domain.SaleType{ID: uuid.NewString(), Name: name}
		t.l.state.saleTypes[name] = st
	}
	return &st, nil
}

func (t *fakeTx) InsertSale(ctx context.Context, sale domain.Sale) error {
	if err := t.fail("InsertSale"); err != nil {
		return err
	}
	t.l.state.sales = append(t.l.state.sales, sale)
	return nil
}

func (t *fakeTx) UpsertIncomeReceivingType(ctx context.Context, kind domain.IncomeReceivingKind) (*domain.IncomeReceivingType, error) {
	if err := t.fail("UpsertIncomeReceivingType"); err != nil {
		return nil, err
	}
	rt, ok := t.l.state.receivingTypes[kind]
	if !ok {
		rt = domain.IncomeReceivingType{ID: uuid.NewString(), Name: kind}
		t.l.state.receivingTypes[kind] = rt
	}
	return &rt, nil
}

func (t *fakeTx) InsertIncome(ctx context.Context, income domain.Income) error {
	if err := t.fail("InsertIncome"); err != nil {
		return err
	}
	t.l.state.incomes = append(t.l.state.incomes, income)
	return nil
}

func (t *fakeTx) InsertDue(ctx context.Context, due domain.Due) error {
	if err := t.fail("InsertDue"); err != nil {
		return err
	}
	// partial unique index dues(invoice_id) WHERE is_active
	if len(t.l.state.activeDues(due.InvoiceID)) > 0 {
		return apperrors.ErrDuplicate
	}
	t.l.state.dues = append(t.l.state.dues, due)
	return nil
}

func (t *fakeTx) InsertMemberDue(ctx context.Context, memberDue domain.MemberDue) error {
	if err := t.fail("InsertMemberDue"); err != nil {
		return err
	}
	t.l.state.memberDues = append(t.l.state.memberDues, memberDue)
	return nil
}

func (t *fakeTx) SetCurrentDue(ctx context.Context, invoiceID string, dueID *string) error {
	if err := t.fail("SetCurrentDue"); err != nil {
		return err
	}
	inv, ok := t.l.state.invoices[invoiceID]
	if !ok {
		return apperrors.ErrNotFound
	}
	inv.CurrentDueID = dueID
	t.l.state.invoices[invoiceID] = inv
	return nil
}

func (t *fakeTx) DeactivateInvoiceLedger(ctx context.Context, invoiceID string, userID string, now time.Time) error {
	if err := t.fail("DeactivateInvoiceLedger"); err != nil {
		return err
	}
	s := &t.l.state
	for i := range s.transactions {
		if s.transactions[i].InvoiceID == invoiceID {
			s.transactions[i].IsActive = false
		}
	}
	for i := range s.payments {
		if s.payments[i].InvoiceID == invoiceID {
			s.payments[i].IsActive = false
		}
	}
	for i := range s.sales {
		if s.sales[i].InvoiceID == invoiceID {
			s.sales[i].IsActive = false
		}
	}
	for i := range s.incomes {
		if s.incomes[i].InvoiceID == invoiceID {
			s.incomes[i].IsActive = false
		}
	}
	for i := range s.dues {
		if s.dues[i].InvoiceID == invoiceID {
			s.dues[i].IsActive = false
		}
	}
	for i := range s.memberDues {
		if s.memberDues[i].InvoiceID == invoiceID {
			s.memberDues[i].IsActive = false
		}
	}
	return nil
}

func (t *fakeTx) FindLatestIncomeRefs(ctx context.Context, invoiceID string) (string, string, error) {
	if err := t.fail("FindLatestIncomeRefs"); err != nil {
		return "", "", err
	}
	for i := len(t.l.state.incomes) - 1; i >= 0; i-- {
		inc := t.l.state.incomes[i]
		if inc.InvoiceID == invoiceID {
			return inc.ParticularID, inc.ReceivedFromID, nil
		}
	}
	return "", "", apperrors.ErrNotFound
}

func (t *fakeTx) EnqueueOutbox(ctx context.Context, events ...domain.OutboxEvent) error {
	if err := t.fail("EnqueueOutbox"); err != nil {
		return err
	}
	t.l.state.outbox = append(t.l.state.outbox, events...)
	return nil
}

// fixedNumbers hands out predictable document numbers.
type fixedNumbers struct {
	mu sync.Mutex
	n  int
}

func (f *fixedNumbers) next(prefix string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
	return fmt.Sprintf("%s%04d", prefix, f.n)
}

func (f *fixedNumbers) NewSaleNumber() string    { return f.next("SL-") }
func (f *fixedNumbers) NewInvoiceNumber() string { return f.next("INV-") }

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}
