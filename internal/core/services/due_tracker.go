package services

import (
	"context"
	"fmt"
	"time"

	"github.com/antusaha970/member-management-backend-sub000/internal/core/domain"
	portsrepo "github.com/antusaha970/member-management-backend-sub000/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// dueTracker records the outstanding remainder of an invoice. Callers
// deactivate earlier dues first, so at most one Due per invoice is active.
type dueTracker struct {
	newID func() string
}

// track returns nil rows when the invoice has nothing left to pay.
func (d dueTracker) track(ctx context.Context, tx portsrepo.LedgerWriter, inv *domain.Invoice, settled decimal.Decimal, payment *domain.Payment, txn *domain.Transaction, actor domain.Actor, now time.Time) (*domain.Due, *domain.MemberDue, error) {
	if !inv.BalanceDue.IsPositive() {
		return nil, nil, nil
	}
	today := domain.Today(now)

	due := domain.Due{
		DueID:          d.newID(),
		InvoiceID:      inv.InvoiceID,
		MemberID:       inv.MemberID,
		PaymentID:      payment.PaymentID,
		TransactionID:  txn.TransactionID,
		OriginalAmount: inv.TotalAmount,
		DueAmount:      inv.BalanceDue,
		PaidAmount:     settled,
		DueDate:        today,
		IsActive:       true,
		AuditFields:    audit(actor, now),
	}
	if err := tx.InsertDue(ctx, due); err != nil {
		return nil, nil, fmt.Errorf("record due for invoice %s: %w", inv.InvoiceID, err)
	}

	memberDue := domain.MemberDue{
		MemberDueID: d.newID(),
		DueID:       due.DueID,
		MemberID:    inv.MemberID,
		InvoiceID:   inv.InvoiceID,
		AmountDue:   due.DueAmount,
		AmountPaid:  due.PaidAmount,
		PaymentDate: today,
		IsActive:    true,
		AuditFields: audit(actor, now),
	}
	if err := tx.InsertMemberDue(ctx, memberDue); err != nil {
		return nil, nil, fmt.Errorf("record member due for invoice %s: %w", inv.InvoiceID, err)
	}

	return &due, &memberDue, nil
}
