package services

import (
	"context"
	"fmt"
	"time"

	"github.com/antusaha970/member-management-backend-sub000/internal/core/domain"
	portsrepo "github.com/antusaha970/member-management-backend-sub000/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// ledgerMirror records one settlement as a Transaction and the Payment it spawns.
type ledgerMirror struct {
	newID func() string
}

func (m ledgerMirror) mirror(ctx context.Context, tx portsrepo.LedgerWriter, inv *domain.Invoice, settled decimal.Decimal, paymentMethodID string, actor domain.Actor, now time.Time) (*domain.Transaction, *domain.Payment, error) {
	today := domain.Today(now)

	txn := domain.Transaction{
		TransactionID:   m.newID(),
		InvoiceID:       inv.InvoiceID,
		MemberID:        inv.MemberID,
		PaymentMethodID: paymentMethodID,
		Amount:          settled,
		Status:          inv.Status,
		TransactionDate: today,
		IsActive:        true,
		AuditFields:     audit(actor, now),
	}
	if err := tx.InsertTransaction(ctx, txn); err != nil {
		return nil, nil, fmt.Errorf("record transaction for invoice %s: %w", inv.InvoiceID, err)
	}

	payment := domain.Payment{
		PaymentID:       m.newID(),
		InvoiceID:       inv.InvoiceID,
		TransactionID:   txn.TransactionID,
		MemberID:        inv.MemberID,
		PaymentMethodID: paymentMethodID,
		PaymentAmount:   settled,
		PaymentStatus:   inv.Status,
		PaymentDate:     today,
		ProcessedBy:     actor.UserID,
		IsActive:        true,
		AuditFields:     audit(actor, now),
	}
	if err := tx.InsertPayment(ctx, payment); err != nil {
		return nil, nil, fmt.Errorf("record payment for invoice %s: %w", inv.InvoiceID, err)
	}

	return &txn, &payment, nil
}
