package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Due is the outstanding remainder of an invoice. At most one Due per invoice is active.
type Due struct {
	DueID          string          `json:"due_id"`
	InvoiceID      string          `json:"invoice_id"`
	MemberID       string          `json:"member_id"`
	PaymentID      string          `json:"payment_id"`
	TransactionID  string          `json:"transaction_id"`
	OriginalAmount decimal.Decimal `json:"original_amount"`
	DueAmount      decimal.Decimal `json:"due_amount"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
	DueDate        time.Time       `json:"due_date"`
	IsActive       bool            `json:"is_active"`
	AuditFields
}

// MemberDue mirrors a Due from the member's point of view.
type MemberDue struct {
	MemberDueID string          `json:"member_due_id"`
	DueID       string          `json:"due_id"`
	MemberID    string          `json:"member_id"`
	InvoiceID   string          `json:"invoice_id"`
	AmountDue   decimal.Decimal `json:"amount_due"`
	AmountPaid  decimal.Decimal `json:"amount_paid"`
	PaymentDate time.Time       `json:"payment_date"`
	IsActive    bool            `json:"is_active"`
	AuditFields
}
