package services

import (
	"context"

	"github.com/antusaha970/member-management-backend-sub000/internal/core/domain"
	"github.com/antusaha970/member-management-backend-sub000/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoices
type InvoiceReaderSvc interface {
	// GetInvoice retrieves an invoice snapshot, served from cache when possible.
	GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListMemberInvoices retrieves a page of a member's invoices.
	ListMemberInvoices(ctx context.Context, memberID string, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error)

	// GetInvoiceLedger retrieves every ledger row tied to the invoice.
	GetInvoiceLedger(ctx context.Context, invoiceID string) (*domain.InvoiceLedger, error)
}

// InvoiceWriterSvc defines write operations for invoices
type InvoiceWriterSvc interface {
	// IssueInvoice creates an unpaid invoice for a member.
	IssueInvoice(ctx context.Context, actor domain.Actor, req dto.CreateInvoiceRequest) (*domain.Invoice, error)
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}
