package dto

import (
	"github.com/shopspring/decimal"
)

// ApplyPaymentRequest is the body of POST /payment/apply.
type ApplyPaymentRequest struct {
	InvoiceID          string           `json:"invoice_id" binding:"required,uuid"`
	PaymentMethodID    string           `json:"payment_method_id" binding:"required,uuid"`
	Amount             *decimal.Decimal `json:"amount" binding:"required"`
	IncomeParticularID string           `json:"income_particular_id" binding:"required,uuid"`
	ReceivedFromID     string           `json:"received_from_id" binding:"required,uuid"`
	AdjustFromBalance  bool             `json:"adjust_from_balance"`
}

// UpdateInvoicePaymentRequest is the body of PATCH /invoice/{id}. The paid
// amount replaces the previously recorded figure.
type UpdateInvoicePaymentRequest struct {
	PaidAmount         *decimal.Decimal `json:"paid_amount" binding:"required"`
	PaymentMethodID    string           `json:"payment_method_id" binding:"required,uuid"`
	IncomeParticularID *string          `json:"income_particular_id" binding:"omitempty,uuid"`
	ReceivedFromID     *string          `json:"received_from_id" binding:"omitempty,uuid"`
}
