package pgsql

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/antusaha970/member-management-backend-sub000/internal/apperrors"
	"github.com/antusaha970/member-management-backend-sub000/internal/core/domain"
	portsrepo "github.com/antusaha970/member-management-backend-sub000/internal/core/ports/repositories"
	"github.com/antusaha970/member-management-backend-sub000/internal/models"
	"github.com/antusaha970/member-management-backend-sub000/internal/utils/mapping"
	"github.com/antusaha970/member-management-backend-sub000/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// invoiceColumns expects invoices aliased as i and invoice_types as t.
const invoiceColumns = `i.invoice_id, i.invoice_number, i.member_id, i.invoice_type_id, t.name, i.currency_code,
	i.total_amount, i.paid_amount, i.balance_due, i.discount, i.promo_code, i.status, i.is_full_paid, i.is_active,
	i.current_due_id, i.created_at, i.created_by, i.last_updated_at, i.last_updated_by, i.version`

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice reads and ledger history.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.InvoiceNumber,
		&m.MemberID,
		&m.InvoiceTypeID,
		&m.InvoiceTypeName,
		&m.CurrencyCode,
		&m.TotalAmount,
		&m.PaidAmount,
		&m.BalanceDue,
		&m.Discount,
		&m.PromoCode,
		&m.Status,
		&m.IsFullPaid,
		&m.IsActive,
		&m.CurrentDueID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	return m, err
}

// Helper to convert models.Invoice to domain.Invoice
func toDomainInvoice(m models.Invoice) domain.Invoice {
	inv := domain.Invoice{
		InvoiceID:       m.InvoiceID,
		InvoiceNumber:   m.InvoiceNumber,
		MemberID:        m.MemberID,
		InvoiceTypeID:   m.InvoiceTypeID,
		InvoiceTypeName: m.InvoiceTypeName,
		CurrencyCode:    m.CurrencyCode,
		TotalAmount:     m.TotalAmount,
		PaidAmount:      m.PaidAmount,
		BalanceDue:      m.BalanceDue,
		Discount:        m.Discount,
		PromoCode:       m.PromoCode,
		Status:          domain.InvoiceStatus(m.Status),
		IsFullPaid:      m.IsFullPaid,
		IsActive:        m.IsActive,
		AuditFields:     mapping.ToDomainAuditFields(m.AuditFields, m.Version),
	}
	if m.CurrentDueID.Valid {
		dueID := m.CurrentDueID.String
		inv.CurrentDueID = &dueID
	}
	return inv
}

// Helper to convert domain.Invoice to models.Invoice
func toModelInvoice(d domain.Invoice) models.Invoice {
	m := models.Invoice{
		InvoiceID:       d.InvoiceID,
		InvoiceNumber:   d.InvoiceNumber,
		MemberID:        d.MemberID,
		InvoiceTypeID:   d.InvoiceTypeID,
		InvoiceTypeName: d.InvoiceTypeName,
		CurrencyCode:    d.CurrencyCode,
		TotalAmount:     d.TotalAmount,
		PaidAmount:      d.PaidAmount,
		BalanceDue:      d.BalanceDue,
		Discount:        d.Discount,
		PromoCode:       d.PromoCode,
		Status:          string(d.Status),
		IsFullPaid:      d.IsFullPaid,
		IsActive:        d.IsActive,
		AuditFields:     mapping.ToModelAuditFields(d.AuditFields),
		Version:         d.Version,
	}
	if d.CurrentDueID != nil {
		m.CurrentDueID = sql.NullString{String: *d.CurrentDueID, Valid: true}
	}
	return m
}

// FindInvoiceByID retrieves an invoice by its ID.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + `
		FROM invoices i
		JOIN invoice_types t ON t.id = i.invoice_type_id
		WHERE i.invoice_id = $1;`
	m, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		return nil, storageErr(err, "find invoice "+invoiceID)
	}
	inv := toDomainInvoice(m)
	return &inv, nil
}

// ListInvoicesByMember retrieves a page of a member's invoices, newest first.
// The token is the (created_at, invoice_id) key of the last row of the previous page.
func (r *PgxInvoiceRepository) ListInvoicesByMember(ctx context.Context, memberID string, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + invoiceColumns + `
		FROM invoices i
		JOIN invoice_types t ON t.id = i.invoice_type_id
		WHERE i.member_id = $1`
	orderByClause := ` ORDER BY i.created_at DESC, i.invoice_id DESC`
	args := []any{memberID}

	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeKeysetToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (i.created_at, i.invoice_id) < ($2, $3)`
		args = append(args, lastCreatedAt, lastID)
	}
	query += orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, storageErr(err, "query invoices of member "+memberID)
	}
	modelInvoices, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Invoice, error) {
		return scanInvoice(row)
	})
	if err != nil {
		return nil, nil, storageErr(err, "scan invoices of member "+memberID)
	}

	var nextTokenVal *string
	results := modelInvoices
	if len(modelInvoices) > limit {
		last := modelInvoices[limit-1]
		newToken := pagination.EncodeKeysetToken(last.CreatedAt, last.InvoiceID)
		nextTokenVal = &newToken
		results = modelInvoices[:limit]
	}

	invoices := make([]domain.Invoice, len(results))
	for i, m := range results {
		invoices[i] = toDomainInvoice(m)
	}
	return invoices, nextTokenVal, nil
}

func (r *PgxInvoiceRepository) FindInvoiceTypeByName(ctx context.Context, name string) (*domain.InvoiceType, error) {
	var it domain.InvoiceType
	err := r.Pool.QueryRow(ctx, `SELECT id, name FROM invoice_types WHERE name = $1;`, name).Scan(&it.ID, &it.Name)
	if err != nil {
		return nil, storageErr(err, "find invoice type "+name)
	}
	return &it, nil
}

// FindInvoiceLedger reads the invoice and all of its history rows from one
// repeatable-read snapshot.
func (r *PgxInvoiceRepository) FindInvoiceLedger(ctx context.Context, invoiceID string) (*domain.InvoiceLedger, error) {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer r.Rollback(ctx, tx)

	query := `SELECT ` + invoiceColumns + `
		FROM invoices i
		JOIN invoice_types t ON t.id = i.invoice_type_id
		WHERE i.invoice_id = $1;`
	m, err := scanInvoice(tx.QueryRow(ctx, query, invoiceID))
	if err != nil {
		return nil, storageErr(err, "find invoice "+invoiceID)
	}
	ledger := &domain.InvoiceLedger{Invoice: toDomainInvoice(m)}

	if ledger.Transactions, err = queryLedgerRows(ctx, tx, invoiceID, `
		SELECT transaction_id, invoice_id, member_id, payment_method_id, amount, status, transaction_date, is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM transactions WHERE invoice_id = $1 ORDER BY created_at, transaction_id;`, scanTransaction); err != nil {
		return nil, err
	}
	if ledger.Payments, err = queryLedgerRows(ctx, tx, invoiceID, `
		SELECT payment_id, invoice_id, transaction_id, member_id, payment_method_id, payment_amount, payment_status,
		       payment_date, processed_by, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM payments WHERE invoice_id = $1 ORDER BY created_at, payment_id;`, scanPayment); err != nil {
		return nil, err
	}
	if ledger.Sales, err = queryLedgerRows(ctx, tx, invoiceID, `
		SELECT sale_id, sale_number, invoice_id, member_id, sale_type_id, payment_method_id, sub_total, total_amount,
		       payment_status, due_date, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM sales WHERE invoice_id = $1 ORDER BY created_at, sale_id;`, scanSale); err != nil {
		return nil, err
	}
	if ledger.Incomes, err = queryLedgerRows(ctx, tx, invoiceID, `
		SELECT income_id, sale_id, invoice_id, member_id, particular_id, received_from_id, receiving_type_id,
		       payment_method_id, receivable_amount, final_receivable, actual_received, remaining_due,
		       discounted_amount, discount_name, income_date, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM incomes WHERE invoice_id = $1 ORDER BY created_at, income_id;`, scanIncome); err != nil {
		return nil, err
	}
	if ledger.Dues, err = queryLedgerRows(ctx, tx, invoiceID, `
		SELECT due_id, invoice_id, member_id, payment_id, transaction_id, original_amount, due_amount, paid_amount,
		       due_date, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM dues WHERE invoice_id = $1 ORDER BY created_at, due_id;`, scanDue); err != nil {
		return nil, err
	}
	if ledger.MemberDues, err = queryLedgerRows(ctx, tx, invoiceID, `
		SELECT member_due_id, due_id, member_id, invoice_id, amount_due, amount_paid, payment_date, is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM member_dues WHERE invoice_id = $1 ORDER BY created_at, member_due_id;`, scanMemberDue); err != nil {
		return nil, err
	}

	return ledger, nil
}

// CountActiveDues returns how many active dues the invoice has.
func (r *PgxInvoiceRepository) CountActiveDues(ctx context.Context, invoiceID string) (int, error) {
	var n int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM dues WHERE invoice_id = $1 AND is_active;`, invoiceID).Scan(&n)
	if err != nil {
		return 0, storageErr(err, "count dues of invoice "+invoiceID)
	}
	return n, nil
}

func queryLedgerRows[T any](ctx context.Context, tx pgx.Tx, invoiceID, query string, scan func(pgx.Row) (T, error)) ([]T, error) {
	rows, err := tx.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, storageErr(err, "query ledger of invoice "+invoiceID)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (T, error) {
		return scan(row)
	})
	if err != nil {
		return nil, storageErr(err, "scan ledger of invoice "+invoiceID)
	}
	return out, nil
}

func scanTransaction(row pgx.Row) (domain.Transaction, error) {
	var t domain.Transaction
	var status string
	err := row.Scan(&t.TransactionID, &t.InvoiceID, &t.MemberID, &t.PaymentMethodID, &t.Amount, &status,
		&t.TransactionDate, &t.IsActive, &t.CreatedAt, &t.CreatedBy, &t.LastUpdatedAt, &t.LastUpdatedBy)
	t.Status = domain.InvoiceStatus(status)
	return t, err
}

func scanPayment(row pgx.Row) (domain.Payment, error) {
	var p domain.Payment
	var status string
	err := row.Scan(&p.PaymentID, &p.InvoiceID, &p.TransactionID, &p.MemberID, &p.PaymentMethodID, &p.PaymentAmount,
		&status, &p.PaymentDate, &p.ProcessedBy, &p.IsActive, &p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy)
	p.PaymentStatus = domain.InvoiceStatus(status)
	return p, err
}

func scanSale(row pgx.Row) (domain.Sale, error) {
	var s domain.Sale
	var status string
	err := row.Scan(&s.SaleID, &s.SaleNumber, &s.InvoiceID, &s.MemberID, &s.SaleTypeID, &s.PaymentMethodID, &s.SubTotal,
		&s.TotalAmount, &status, &s.DueDate, &s.IsActive, &s.CreatedAt, &s.CreatedBy, &s.LastUpdatedAt, &s.LastUpdatedBy)
	s.PaymentStatus = domain.InvoiceStatus(status)
	return s, err
}

func scanIncome(row pgx.Row) (domain.Income, error) {
	var in domain.Income
	err := row.Scan(&in.IncomeID, &in.SaleID, &in.InvoiceID, &in.MemberID, &in.ParticularID, &in.ReceivedFromID,
		&in.ReceivingTypeID, &in.PaymentMethodID, &in.ReceivableAmount, &in.FinalReceivable, &in.ActualReceived,
		&in.RemainingDue, &in.DiscountedAmount, &in.DiscountName, &in.IncomeDate, &in.IsActive,
		&in.CreatedAt, &in.CreatedBy, &in.LastUpdatedAt, &in.LastUpdatedBy)
	return in, err
}

func scanDue(row pgx.Row) (domain.Due, error) {
	var d domain.Due
	err := row.Scan(&d.DueID, &d.InvoiceID, &d.MemberID, &d.PaymentID, &d.TransactionID, &d.OriginalAmount,
		&d.DueAmount, &d.PaidAmount, &d.DueDate, &d.IsActive, &d.CreatedAt, &d.CreatedBy, &d.LastUpdatedAt, &d.LastUpdatedBy)
	return d, err
}

func scanMemberDue(row pgx.Row) (domain.MemberDue, error) {
	var md domain.MemberDue
	err := row.Scan(&md.MemberDueID, &md.DueID, &md.MemberID, &md.InvoiceID, &md.AmountDue, &md.AmountPaid,
		&md.PaymentDate, &md.IsActive, &md.CreatedAt, &md.CreatedBy, &md.LastUpdatedAt, &md.LastUpdatedBy)
	return md, err
}
