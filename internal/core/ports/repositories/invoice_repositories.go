package repositories

import (
	"context"

	"github.com/antusaha970/member-management-backend-sub000/internal/core/domain"
)

// InvoiceReader defines read operations for invoice data
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice by its ID.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoicesByMember retrieves a page of a member's invoices, newest first, using token-based pagination.
	ListInvoicesByMember(ctx context.Context, memberID string, limit int, nextToken *string) ([]domain.Invoice, *string, error)

	// FindInvoiceTypeByName resolves an invoice category.
	FindInvoiceTypeByName(ctx context.Context, name string) (*domain.InvoiceType, error)
}

// LedgerReader defines read operations over the per-invoice history.
type LedgerReader interface {
	// FindInvoiceLedger loads every ledger row tied to the invoice, active or not.
	FindInvoiceLedger(ctx context.Context, invoiceID string) (*domain.InvoiceLedger, error)

	// CountActiveDues returns how many active dues the invoice has.
	CountActiveDues(ctx context.Context, invoiceID string) (int, error)
}

// InvoiceRepositoryFacade combines all invoice-related read interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	LedgerReader
}
