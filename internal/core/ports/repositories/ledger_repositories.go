package repositories

import (
	"context"
	"time"

	"github.com/antusaha970/member-management-backend-sub000/internal/core/domain"
)

// InvoiceTxSupport covers invoice reads and writes that must run under a row lock.
type InvoiceTxSupport interface {
	// LockInvoice selects an invoice FOR UPDATE.
	LockInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// InsertInvoice persists a newly issued invoice.
	InsertInvoice(ctx context.Context, invoice domain.Invoice) error

	// SaveInvoiceSettlement writes paid/balance/status fields. It fails with
	// apperrors.ErrConflict when invoice.Version no longer matches the stored row.
	SaveInvoiceSettlement(ctx context.Context, invoice domain.Invoice) error
}

// MemberAccountTxSupport covers stored-credit reads and writes under a row lock.
type MemberAccountTxSupport interface {
	// LockMemberAccount selects the member's account FOR UPDATE.
	LockMemberAccount(ctx context.Context, memberID string) (*domain.MemberAccount, error)

	// InsertMemberAccount opens an account.
	InsertMemberAccount(ctx context.Context, account domain.MemberAccount) error

	// SaveAccountBalance writes a new balance with the same version check as invoices.
	SaveAccountBalance(ctx context.Context, account domain.MemberAccount) error
}

// LedgerWriter creates the per-payment ledger rows.
type LedgerWriter interface {
	InsertTransaction(ctx context.Context, txn domain.Transaction) error
	InsertPayment(ctx context.Context, payment domain.Payment) error

	// UpsertSaleType returns the sale type with the given name, creating it on first use.
	UpsertSaleType(ctx context.Context, name string) (*domain.SaleType, error)
	InsertSale(ctx context.Context, sale domain.Sale) error

	// UpsertIncomeReceivingType returns the receiving type row for kind, creating it on first use.
	UpsertIncomeReceivingType(ctx context.Context, kind domain.IncomeReceivingKind) (*domain.IncomeReceivingType, error)
	InsertIncome(ctx context.Context, income domain.Income) error

	InsertDue(ctx context.Context, due domain.Due) error
	InsertMemberDue(ctx context.Context, memberDue domain.MemberDue) error

	// SetCurrentDue points the invoice at its active due, or clears it when dueID is nil.
	SetCurrentDue(ctx context.Context, invoiceID string, dueID *string) error

	// DeactivateInvoiceLedger marks every active Transaction, Payment, Sale,
	// Income, Due and MemberDue of the invoice inactive.
	DeactivateInvoiceLedger(ctx context.Context, invoiceID string, userID string, now time.Time) error

	// FindLatestIncomeRefs returns the particular and received-from IDs of the
	// most recent income recorded for the invoice, or apperrors.ErrNotFound.
	FindLatestIncomeRefs(ctx context.Context, invoiceID string) (particularID string, receivedFromID string, err error)
}

// OutboxWriter enqueues events in the caller's transaction.
type OutboxWriter interface {
	EnqueueOutbox(ctx context.Context, events ...domain.OutboxEvent) error
}

// LedgerTx is the transactional view handed to UnitOfWork callbacks.
type LedgerTx interface {
	InvoiceTxSupport
	MemberAccountTxSupport
	LedgerWriter
	OutboxWriter
}
