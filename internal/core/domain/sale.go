package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// IncomeReceivingKind names how completely an income was received.
type IncomeReceivingKind string

const (
	IncomeFull    IncomeReceivingKind = "full"
	IncomePartial IncomeReceivingKind = "partial"
)

// ReceivingKindFor returns full for fully paid invoices and partial otherwise.
func ReceivingKindFor(isFullPaid bool) IncomeReceivingKind {
	if isFullPaid {
		return IncomeFull
	}
	return IncomePartial
}

// SaleType is keyed by the invoice type name.
type SaleType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Sale is a reporting row snapshotting an invoice at payment time.
type Sale struct {
	SaleID          string          `json:"sale_id"`
	SaleNumber      string          `json:"sale_number"`
	InvoiceID       string          `json:"invoice_id"`
	MemberID        string          `json:"member_id"`
	SaleTypeID      string          `json:"sale_type_id"`
	PaymentMethodID string          `json:"payment_method_id"`
	SubTotal        decimal.Decimal `json:"sub_total"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PaymentStatus   InvoiceStatus   `json:"payment_status"`
	DueDate         time.Time       `json:"due_date"`
	IsActive        bool            `json:"is_active"`
	AuditFields
}

// IncomeReceivingType is the lookup row for IncomeReceivingKind.
type IncomeReceivingType struct {
	ID   string              `json:"id"`
	Name IncomeReceivingKind `json:"name"`
}

// Income is a revenue reporting row derived from a Sale.
type Income struct {
	IncomeID         string          `json:"income_id"`
	SaleID           string          `json:"sale_id"`
	InvoiceID        string          `json:"invoice_id"`
	MemberID         string          `json:"member_id"`
	ParticularID     string          `json:"particular_id"`
	ReceivedFromID   string          `json:"received_from_id"`
	ReceivingTypeID  string          `json:"receiving_type_id"`
	PaymentMethodID  string          `json:"payment_method_id"`
	ReceivableAmount decimal.Decimal `json:"receivable_amount"`
	FinalReceivable  decimal.Decimal `json:"final_receivable"`
	ActualReceived   decimal.Decimal `json:"actual_received"`
	RemainingDue     decimal.Decimal `json:"remaining_due"`
	DiscountedAmount decimal.Decimal `json:"discounted_amount"`
	DiscountName     string          `json:"discount_name"`
	IncomeDate       time.Time       `json:"income_date"`
	IsActive         bool            `json:"is_active"`
	AuditFields
}
