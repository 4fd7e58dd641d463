package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/antusaha970/member-management-backend-sub000/internal/apperrors"
	"github.com/antusaha970/member-management-backend-sub000/internal/core/domain"
	portsrepo "github.com/antusaha970/member-management-backend-sub000/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

// pgxLedgerTx implements LedgerTx on top of an open pgx transaction.
type pgxLedgerTx struct {
	tx pgx.Tx
}

var _ portsrepo.LedgerTx = (*pgxLedgerTx)(nil)

// LockInvoice selects the invoice FOR UPDATE. Concurrent settlements of the
// same invoice queue here until the holder commits.
func (l *pgxLedgerTx) LockInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + `
		FROM invoices i
		JOIN invoice_types t ON t.id = i.invoice_type_id
		WHERE i.invoice_id = $1
		FOR UPDATE OF i;`
	m, err := scanInvoice(l.tx.QueryRow(ctx, query, invoiceID))
	if err != nil {
		return nil, storageErr(err, "lock invoice "+invoiceID)
	}
	inv := toDomainInvoice(m)
	return &inv, nil
}

func (l *pgxLedgerTx) InsertInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := toModelInvoice(invoice)
	query := `
		INSERT INTO invoices (
			invoice_id, invoice_number, member_id, invoice_type_id, currency_code,
			total_amount, paid_amount, balance_due, discount, promo_code,
			status, is_full_paid, is_active, current_due_id,
			created_at, created_by, last_updated_at, last_updated_by, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := l.tx.Exec(ctx, query,
		m.InvoiceID,
		m.InvoiceNumber,
		m.MemberID,
		m.InvoiceTypeID,
		m.CurrencyCode,
		m.TotalAmount,
		m.PaidAmount,
		m.BalanceDue,
		m.Discount,
		m.PromoCode,
		m.Status,
		m.IsFullPaid,
		m.IsActive,
		m.CurrentDueID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Version,
	)
	return storageErr(err, "insert invoice "+invoice.InvoiceNumber)
}

func (l *pgxLedgerTx) SaveInvoiceSettlement(ctx context.Context, invoice domain.Invoice) error {
	query := `
		UPDATE invoices
		SET paid_amount = $1, balance_due = $2, status = $3, is_full_paid = $4,
		    last_updated_at = $5, last_updated_by = $6, version = version + 1
		WHERE invoice_id = $7 AND version = $8;
	`
	cmdTag, err := l.tx.Exec(ctx, query,
		invoice.PaidAmount,
		invoice.BalanceDue,
		string(invoice.Status),
		invoice.IsFullPaid,
		invoice.LastUpdatedAt,
		invoice.LastUpdatedBy,
		invoice.InvoiceID,
		invoice.Version,
	)
	if err != nil {
		return storageErr(err, "save settlement of invoice "+invoice.InvoiceID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: invoice %s", apperrors.ErrConflict, invoice.InvoiceID)
	}
	return nil
}

func (l *pgxLedgerTx) LockMemberAccount(ctx context.Context, memberID string) (*domain.MemberAccount, error) {
	query := `
		SELECT account_id, member_id, balance, created_at, created_by, last_updated_at, last_updated_by, version
		FROM member_accounts
		WHERE member_id = $1
		FOR UPDATE;
	`
	m, err := scanMemberAccount(l.tx.QueryRow(ctx, query, memberID))
	if err != nil {
		return nil, storageErr(err, "lock account of member "+memberID)
	}
	acc := toDomainMemberAccount(m)
	return &acc, nil
}

func (l *pgxLedgerTx) InsertMemberAccount(ctx context.Context, account domain.MemberAccount) error {
	query := `
		INSERT INTO member_accounts (account_id, member_id, balance, created_at, created_by, last_updated_at, last_updated_by, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := l.tx.Exec(ctx, query,
		account.AccountID,
		account.MemberID,
		account.Balance,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
		account.Version,
	)
	return storageErr(err, "open account for member "+account.MemberID)
}

func (l *pgxLedgerTx) SaveAccountBalance(ctx context.Context, account domain.MemberAccount) error {
	query := `
		UPDATE member_accounts
		SET balance = $1, last_updated_at = $2, last_updated_by = $3, version = version + 1
		WHERE account_id = $4 AND version = $5;
	`
	cmdTag, err := l.tx.Exec(ctx, query,
		account.Balance,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
		account.AccountID,
		account.Version,
	)
	if err != nil {
		return storageErr(err, "save balance of account "+account.AccountID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrConflict, account.AccountID)
	}
	return nil
}

func (l *pgxLedgerTx) InsertTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
		INSERT INTO transactions (
			transaction_id, invoice_id, member_id, payment_method_id, amount, status, transaction_date, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := l.tx.Exec(ctx, query,
		txn.TransactionID,
		txn.InvoiceID,
		txn.MemberID,
		txn.PaymentMethodID,
		txn.Amount,
		string(txn.Status),
		txn.TransactionDate,
		txn.IsActive,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	return storageErr(err, "insert transaction "+txn.TransactionID)
}

func (l *pgxLedgerTx) InsertPayment(ctx context.Context, payment domain.Payment) error {
	query := `
		INSERT INTO payments (
			payment_id, invoice_id, transaction_id, member_id, payment_method_id, payment_amount,
			payment_status, payment_date, processed_by, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := l.tx.Exec(ctx, query,
		payment.PaymentID,
		payment.InvoiceID,
		payment.TransactionID,
		payment.MemberID,
		payment.PaymentMethodID,
		payment.PaymentAmount,
		string(payment.PaymentStatus),
		payment.PaymentDate,
		payment.ProcessedBy,
		payment.IsActive,
		payment.CreatedAt,
		payment.CreatedBy,
		payment.LastUpdatedAt,
		payment.LastUpdatedBy,
	)
	return storageErr(err, "insert payment "+payment.PaymentID)
}

func (l *pgxLedgerTx) UpsertSaleType(ctx context.Context, name string) (*domain.SaleType, error) {
	// DO UPDATE so RETURNING yields the existing row too
	query := `
		INSERT INTO sale_types (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name;
	`
	var st domain.SaleType
	if err := l.tx.QueryRow(ctx, query, name).Scan(&st.ID, &st.Name); err != nil {
		return nil, storageErr(err, "upsert sale type "+name)
	}
	return &st, nil
}

func (l *pgxLedgerTx) InsertSale(ctx context.Context, sale domain.Sale) error {
	query := `
		INSERT INTO sales (
			sale_id, sale_number, invoice_id, member_id, sale_type_id, payment_method_id,
			sub_total, total_amount, payment_status, due_date, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := l.tx.Exec(ctx, query,
		sale.SaleID,
		sale.SaleNumber,
		sale.InvoiceID,
		sale.MemberID,
		sale.SaleTypeID,
		sale.PaymentMethodID,
		sale.SubTotal,
		sale.TotalAmount,
		string(sale.PaymentStatus),
		sale.DueDate,
		sale.IsActive,
		sale.CreatedAt,
		sale.CreatedBy,
		sale.LastUpdatedAt,
		sale.LastUpdatedBy,
	)
	return storageErr(err, "insert sale "+sale.SaleNumber)
}

func (l *pgxLedgerTx) UpsertIncomeReceivingType(ctx context.Context, kind domain.IncomeReceivingKind) (*domain.IncomeReceivingType, error) {
	query := `
		INSERT INTO income_receiving_types (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name;
	`
	var rt domain.IncomeReceivingType
	var name string
	if err := l.tx.QueryRow(ctx, query, string(kind)).Scan(&rt.ID, &name); err != nil {
		return nil, storageErr(err, "upsert income receiving type "+string(kind))
	}
	rt.Name = domain.IncomeReceivingKind(name)
	return &rt, nil
}

func (l *pgxLedgerTx) InsertIncome(ctx context.Context, income domain.Income) error {
	query := `
		INSERT INTO incomes (
			income_id, sale_id, invoice_id, member_id, particular_id, received_from_id, receiving_type_id,
			payment_method_id, receivable_amount, final_receivable, actual_received, remaining_due,
			discounted_amount, discount_name, income_date, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err := l.tx.Exec(ctx, query,
		income.IncomeID,
		income.SaleID,
		income.InvoiceID,
		income.MemberID,
		income.ParticularID,
		income.ReceivedFromID,
		income.ReceivingTypeID,
		income.PaymentMethodID,
		income.ReceivableAmount,
		income.FinalReceivable,
		income.ActualReceived,
		income.RemainingDue,
		income.DiscountedAmount,
		income.DiscountName,
		income.IncomeDate,
		income.IsActive,
		income.CreatedAt,
		income.CreatedBy,
		income.LastUpdatedAt,
		income.LastUpdatedBy,
	)
	return storageErr(err, "insert income "+income.IncomeID)
}

// InsertDue fails with apperrors.ErrDuplicate when the invoice already has
// an active due (uq_dues_active_invoice).
func (l *pgxLedgerTx) InsertDue(ctx context.Context, due domain.Due) error {
	query := `
		INSERT INTO dues (
			due_id, invoice_id, member_id, payment_id, transaction_id,
			original_amount, due_amount, paid_amount, due_date, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := l.tx.Exec(ctx, query,
		due.DueID,
		due.InvoiceID,
		due.MemberID,
		due.PaymentID,
		due.TransactionID,
		due.OriginalAmount,
		due.DueAmount,
		due.PaidAmount,
		due.DueDate,
		due.IsActive,
		due.CreatedAt,
		due.CreatedBy,
		due.LastUpdatedAt,
		due.LastUpdatedBy,
	)
	return storageErr(err, "insert due for invoice "+due.InvoiceID)
}

func (l *pgxLedgerTx) InsertMemberDue(ctx context.Context, memberDue domain.MemberDue) error {
	query := `
		INSERT INTO member_dues (
			member_due_id, due_id, member_id, invoice_id, amount_due, amount_paid, payment_date, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := l.tx.Exec(ctx, query,
		memberDue.MemberDueID,
		memberDue.DueID,
		memberDue.MemberID,
		memberDue.InvoiceID,
		memberDue.AmountDue,
		memberDue.AmountPaid,
		memberDue.PaymentDate,
		memberDue.IsActive,
		memberDue.CreatedAt,
		memberDue.CreatedBy,
		memberDue.LastUpdatedAt,
		memberDue.LastUpdatedBy,
	)
	return storageErr(err, "insert member due for invoice "+memberDue.InvoiceID)
}

func (l *pgxLedgerTx) SetCurrentDue(ctx context.Context, invoiceID string, dueID *string) error {
	cmdTag, err := l.tx.Exec(ctx, `UPDATE invoices SET current_due_id = $1 WHERE invoice_id = $2;`, dueID, invoiceID)
	if err != nil {
		return storageErr(err, "set current due of invoice "+invoiceID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, invoiceID)
	}
	return nil
}

// ledgerTables are the per-invoice history tables superseded by a correction.
var ledgerTables = []string{"transactions", "payments", "sales", "incomes", "dues", "member_dues"}

func (l *pgxLedgerTx) DeactivateInvoiceLedger(ctx context.Context, invoiceID string, userID string, now time.Time) error {
	batch := &pgx.Batch{}
	for _, table := range ledgerTables {
		batch.Queue(`UPDATE `+table+`
			SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
			WHERE invoice_id = $3 AND is_active;`, now, userID, invoiceID)
	}

	// Close the batch results to surface the first failing statement
	br := l.tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return storageErr(err, "deactivate ledger of invoice "+invoiceID)
	}
	return nil
}

func (l *pgxLedgerTx) FindLatestIncomeRefs(ctx context.Context, invoiceID string) (string, string, error) {
	query := `
		SELECT particular_id, received_from_id
		FROM incomes
		WHERE invoice_id = $1
		ORDER BY created_at DESC, income_id DESC
		LIMIT 1;
	`
	var particularID, receivedFromID string
	if err := l.tx.QueryRow(ctx, query, invoiceID).Scan(&particularID, &receivedFromID); err != nil {
		return "", "", storageErr(err, "find latest income of invoice "+invoiceID)
	}
	return particularID, receivedFromID, nil
}

func (l *pgxLedgerTx) EnqueueOutbox(ctx context.Context, events ...domain.OutboxEvent) error {
	if len(events) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO outbox_events (event_id, topic, aggregate_id, payload, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	for _, ev := range events {
		batch.Queue(query, ev.EventID, string(ev.Topic), ev.AggregateID, []byte(ev.Payload), ev.CreatedAt)
	}
	br := l.tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return storageErr(err, "enqueue outbox events")
	}
	return nil
}
