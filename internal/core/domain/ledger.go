package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction records one money movement against an invoice. Rows are never
// mutated apart from being superseded (IsActive=false) by a later correction.
type Transaction struct {
	TransactionID   string          `json:"transaction_id"`
	InvoiceID       string          `json:"invoice_id"`
	MemberID        string          `json:"member_id"`
	PaymentMethodID string          `json:"payment_method_id"`
	Amount          decimal.Decimal `json:"amount"`
	Status          InvoiceStatus   `json:"status"`
	TransactionDate time.Time       `json:"transaction_date"`
	IsActive        bool            `json:"is_active"`
	AuditFields
}

// Payment records the payment event spawned by a Transaction.
type Payment struct {
	PaymentID       string          `json:"payment_id"`
	InvoiceID       string          `json:"invoice_id"`
	TransactionID   string          `json:"transaction_id"`
	MemberID        string          `json:"member_id"`
	PaymentMethodID string          `json:"payment_method_id"`
	PaymentAmount   decimal.Decimal `json:"payment_amount"`
	PaymentStatus   InvoiceStatus   `json:"payment_status"`
	PaymentDate     time.Time       `json:"payment_date"`
	ProcessedBy     string          `json:"processed_by"`
	IsActive        bool            `json:"is_active"`
	AuditFields
}

// InvoiceLedger is the full per-invoice history, active and superseded rows alike.
type InvoiceLedger struct {
	Invoice      Invoice       `json:"invoice"`
	Transactions []Transaction `json:"transactions"`
	Payments     []Payment     `json:"payments"`
	Sales        []Sale        `json:"sales"`
	Incomes      []Income      `json:"incomes"`
	Dues         []Due         `json:"dues"`
	MemberDues   []MemberDue   `json:"member_dues"`
}
