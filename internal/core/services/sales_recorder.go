package services

import (
	"context"
	"fmt"
	"time"

	"github.com/antusaha970/member-management-backend-sub000/internal/core/domain"
	portsrepo "github.com/antusaha970/member-management-backend-sub000/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// SaleNumberGenerator issues unique sale numbers.
type SaleNumberGenerator interface {
	NewSaleNumber() string
}

// incomeRefs are the lookup rows an Income points at.
type incomeRefs struct {
	particularID   string
	receivedFromID string
}

// salesRecorder writes the Sale and Income reporting rows of a settlement.
// They never feed back into invoice state.
type salesRecorder struct {
	newID   func() string
	numbers SaleNumberGenerator
}

func (r salesRecorder) record(ctx context.Context, tx portsrepo.LedgerWriter, inv *domain.Invoice, settled decimal.Decimal, paymentMethodID string, refs incomeRefs, actor domain.Actor, now time.Time) (*domain.Sale, *domain.Income, error) {
	today := domain.Today(now)

	saleType, err := tx.UpsertSaleType(ctx, inv.InvoiceTypeName)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve sale type %q: %w", inv.InvoiceTypeName, err)
	}

	sale := domain.Sale{
		SaleID:          r.newID(),
		SaleNumber:      r.numbers.NewSaleNumber(),
		InvoiceID:       inv.InvoiceID,
		MemberID:        inv.MemberID,
		SaleTypeID:      saleType.ID,
		PaymentMethodID: paymentMethodID,
		SubTotal:        inv.TotalAmount,
		TotalAmount:     inv.PaidAmount,
		PaymentStatus:   inv.Status,
		DueDate:         today,
		IsActive:        true,
		AuditFields:     audit(actor, now),
	}
	if err := tx.InsertSale(ctx, sale); err != nil {
		return nil, nil, fmt.Errorf("record sale for invoice %s: %w", inv.InvoiceID, err)
	}

	receivingType, err := tx.UpsertIncomeReceivingType(ctx, domain.ReceivingKindFor(inv.IsFullPaid))
	if err != nil {
		return nil, nil, fmt.Errorf("resolve income receiving type: %w", err)
	}

	income := domain.Income{
		IncomeID:         r.newID(),
		SaleID:           sale.SaleID,
		InvoiceID:        inv.InvoiceID,
		MemberID:         inv.MemberID,
		ParticularID:     refs.particularID,
		ReceivedFromID:   refs.receivedFromID,
		ReceivingTypeID:  receivingType.ID,
		PaymentMethodID:  paymentMethodID,
		ReceivableAmount: inv.TotalAmount,
		FinalReceivable:  sale.TotalAmount,
		ActualReceived:   settled,
		RemainingDue:     inv.BalanceDue,
		DiscountedAmount: inv.Discount,
		DiscountName:     inv.PromoCode,
		IncomeDate:       today,
		IsActive:         true,
		AuditFields:      audit(actor, now),
	}
	if err := tx.InsertIncome(ctx, income); err != nil {
		return nil, nil, fmt.Errorf("record income for invoice %s: %w", inv.InvoiceID, err)
	}

	return &sale, &income, nil
}
