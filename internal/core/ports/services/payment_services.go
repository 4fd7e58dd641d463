package services

import (
	"context"

	"github.com/antusaha970/member-management-backend-sub000/internal/core/domain"
	"github.com/antusaha970/member-management-backend-sub000/internal/dto"
)

// PaymentProcessorSvc settles invoices and fans out the ledger rows.
type PaymentProcessorSvc interface {
	// ApplyPayment applies a first-time payment to an unpaid invoice,
	// optionally topping it up from the member's stored credit.
	ApplyPayment(ctx context.Context, actor domain.Actor, req dto.ApplyPaymentRequest) (*domain.Invoice, error)

	// UpdateInvoicePayment replaces the paid figure of an invoice and
	// supersedes every ledger row recorded for it so far.
	UpdateInvoicePayment(ctx context.Context, actor domain.Actor, invoiceID string, req dto.UpdateInvoicePaymentRequest) (*domain.Invoice, error)
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentProcessorSvc
}
