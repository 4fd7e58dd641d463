package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the settlement state of an invoice.
type InvoiceStatus string

const (
	InvoiceUnpaid      InvoiceStatus = "unpaid"
	InvoicePartialPaid InvoiceStatus = "partial_paid"
	InvoicePaid        InvoiceStatus = "paid"
	InvoiceDue         InvoiceStatus = "due"
)

// Invoice categories seeded by the migrations.
const (
	InvoiceTypeProduct    = "Product"
	InvoiceTypeEvent      = "Event"
	InvoiceTypeFacility   = "Facility"
	InvoiceTypeRestaurant = "Restaurant"
)

// InvoiceType categorises what an invoice was raised for.
type InvoiceType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Invoice is a monetary obligation issued to a member.
type Invoice struct {
	InvoiceID       string          `json:"invoice_id"`
	InvoiceNumber   string          `json:"invoice_number"`
	MemberID        string          `json:"member_id"`
	InvoiceTypeID   string          `json:"invoice_type_id"`
	InvoiceTypeName string          `json:"invoice_type_name"`
	CurrencyCode    string          `json:"currency_code"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	BalanceDue      decimal.Decimal `json:"balance_due"`
	Discount        decimal.Decimal `json:"discount"`
	PromoCode       string          `json:"promo_code"`
	Status          InvoiceStatus   `json:"status"`
	IsFullPaid      bool            `json:"is_full_paid"`
	IsActive        bool            `json:"is_active"`
	CurrentDueID    *string         `json:"current_due_id,omitempty"`
	AuditFields
}

// CanApplyPayment reports whether a first-time payment may be applied.
// Re-processing goes through the update path instead.
func (i Invoice) CanApplyPayment() error {
	if !i.IsActive {
		return fmt.Errorf("invoice %s is inactive", i.InvoiceNumber)
	}
	if i.IsFullPaid {
		return fmt.Errorf("invoice %s is already fully paid", i.InvoiceNumber)
	}
	if i.Status != InvoiceUnpaid {
		return fmt.Errorf("invoice %s has status %s, payment can only be applied to unpaid invoices", i.InvoiceNumber, i.Status)
	}
	return nil
}

// ApplySettlement copies derived settlement figures onto the invoice.
func (i *Invoice) ApplySettlement(s Settlement) {
	i.PaidAmount = s.PaidAmount
	i.BalanceDue = s.BalanceDue
	i.Status = s.Status
	i.IsFullPaid = s.IsFullPaid
}
