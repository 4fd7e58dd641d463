package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Invoice is the invoices row joined with its type name.
type Invoice struct {
	InvoiceID       string          `db:"invoice_id"`
	InvoiceNumber   string          `db:"invoice_number"`
	MemberID        string          `db:"member_id"`
	InvoiceTypeID   string          `db:"invoice_type_id"`
	InvoiceTypeName string          `db:"invoice_type_name"` // joined from invoice_types
	CurrencyCode    string          `db:"currency_code"`
	TotalAmount     decimal.Decimal `db:"total_amount"`
	PaidAmount      decimal.Decimal `db:"paid_amount"`
	BalanceDue      decimal.Decimal `db:"balance_due"`
	Discount        decimal.Decimal `db:"discount"`
	PromoCode       string          `db:"promo_code"`
	Status          string          `db:"status"`
	IsFullPaid      bool            `db:"is_full_paid"`
	IsActive        bool            `db:"is_active"`
	CurrentDueID    sql.NullString  `db:"current_due_id"` // Nullable
	AuditFields
	Version int64 `db:"version"`
}
