package dto

import (
	"time"

	"github.com/antusaha970/member-management-backend-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest defines the data needed to issue an invoice.
type CreateInvoiceRequest struct {
	MemberID     string           `json:"member_id" binding:"required,uuid"`
	InvoiceType  string           `json:"invoice_type" binding:"required,oneof=Product Event Facility Restaurant"`
	CurrencyCode string           `json:"currency_code" binding:"required,len=3"`
	TotalAmount  *decimal.Decimal `json:"total_amount" binding:"required"`
	Discount     *decimal.Decimal `json:"discount"`
	PromoCode    string           `json:"promo_code" binding:"max=64"`
}

// InvoiceResponse is the invoice snapshot returned by the API.
type InvoiceResponse struct {
	InvoiceID     string               `json:"invoice_id"`
	InvoiceNumber string               `json:"invoice_number"`
	MemberID      string               `json:"member_id"`
	InvoiceType   string               `json:"invoice_type"`
	CurrencyCode  string               `json:"currency_code"`
	TotalAmount   decimal.Decimal      `json:"total_amount"`
	PaidAmount    decimal.Decimal      `json:"paid_amount"`
	BalanceDue    decimal.Decimal      `json:"balance_due"`
	Discount      decimal.Decimal      `json:"discount"`
	PromoCode     string               `json:"promo_code"`
	Status        domain.InvoiceStatus `json:"status"`
	IsFullPaid    bool                 `json:"is_full_paid"`
	IsActive      bool                 `json:"is_active"`
	CurrentDueID  *string              `json:"current_due_id,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	LastUpdatedAt time.Time            `json:"last_updated_at"`
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:     inv.InvoiceID,
		InvoiceNumber: inv.InvoiceNumber,
		MemberID:      inv.MemberID,
		InvoiceType:   inv.InvoiceTypeName,
		CurrencyCode:  inv.CurrencyCode,
		TotalAmount:   inv.TotalAmount,
		PaidAmount:    inv.PaidAmount,
		BalanceDue:    inv.BalanceDue,
		Discount:      inv.Discount,
		PromoCode:     inv.PromoCode,
		Status:        inv.Status,
		IsFullPaid:    inv.IsFullPaid,
		IsActive:      inv.IsActive,
		CurrentDueID:  inv.CurrentDueID,
		CreatedAt:     inv.CreatedAt,
		LastUpdatedAt: inv.LastUpdatedAt,
	}
}

// ListInvoicesParams defines query parameters for listing a member's invoices.
type ListInvoicesParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListInvoicesResponse wraps a page of invoices.
type ListInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	NextToken *string           `json:"next_token,omitempty"`
}

// InvoiceLedgerResponse is the full history of an invoice.
type InvoiceLedgerResponse struct {
	Invoice      InvoiceResponse      `json:"invoice"`
	Transactions []domain.Transaction `json:"transactions"`
	Payments     []domain.Payment     `json:"payments"`
	Sales        []domain.Sale        `json:"sales"`
	Incomes      []domain.Income      `json:"incomes"`
	Dues         []domain.Due         `json:"dues"`
	MemberDues   []domain.MemberDue   `json:"member_dues"`
}

// ToInvoiceLedgerResponse converts a domain.InvoiceLedger to its DTO.
func ToInvoiceLedgerResponse(l *domain.InvoiceLedger) InvoiceLedgerResponse {
	return InvoiceLedgerResponse{
		Invoice:      ToInvoiceResponse(&l.Invoice),
		Transactions: l.Transactions,
		Payments:     l.Payments,
		Sales:        l.Sales,
		Incomes:      l.Incomes,
		Dues:         l.Dues,
		MemberDues:   l.MemberDues,
	}
}
