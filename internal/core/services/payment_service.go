package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/antusaha970/member-management-backend-sub000/internal/apperrors"
	"github.com/antusaha970/member-management-backend-sub000/internal/core/domain"
	portsrepo "github.com/antusaha970/member-management-backend-sub000/internal/core/ports/repositories"
	portssvc "github.com/antusaha970/member-management-backend-sub000/internal/core/ports/services"
	"github.com/antusaha970/member-management-backend-sub000/internal/dto"
	"github.com/antusaha970/member-management-backend-sub000/internal/platform/cache"
	"github.com/shopspring/decimal"
)

// paymentService settles invoices. Every write of one settlement runs in a
// single unit of work with the invoice (and, when drawing credit, the member
// account) locked for its duration.
type paymentService struct {
	BaseService
	uow      portsrepo.UnitOfWork
	lookups  portssvc.LookupSvcFacade
	cache    cache.Store
	mirror   ledgerMirror
	recorder salesRecorder
	dues     dueTracker
}

// NewPaymentService creates a new payment processor.
func NewPaymentService(uow portsrepo.UnitOfWork, lookups portssvc.LookupSvcFacade, store cache.Store, saleNumbers SaleNumberGenerator, opts ...ServiceOption) portssvc.PaymentSvcFacade {
	s := &paymentService{
		BaseService: newBaseService(opts...),
		uow:         uow,
		lookups:     lookups,
		cache:       store,
	}
	newID := func() string { return s.NewID() }
	s.mirror = ledgerMirror{newID: newID}
	s.recorder = salesRecorder{newID: newID, numbers: saleNumbers}
	s.dues = dueTracker{newID: newID}
	return s
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// ApplyPayment applies a first-time payment to an unpaid invoice.
func (s *paymentService) ApplyPayment(ctx context.Context, actor domain.Actor, req dto.ApplyPaymentRequest) (*domain.Invoice, error) {
	logger := s.GetLogger(ctx)

	if req.Amount == nil {
		return nil, fmt.Errorf("%w: amount is required", apperrors.ErrValidation)
	}
	amount := *req.Amount
	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
	}
	if err := checkAmount("amount", amount); err != nil {
		return nil, err
	}

	method, err := s.lookups.ResolveLookup(ctx, domain.LookupPaymentMethod, req.PaymentMethodID)
	if err != nil {
		return nil, err
	}
	particular, err := s.lookups.ResolveLookup(ctx, domain.LookupIncomeParticular, req.IncomeParticularID)
	if err != nil {
		return nil, err
	}
	receivedFrom, err := s.lookups.ResolveLookup(ctx, domain.LookupReceivedFrom, req.ReceivedFromID)
	if err != nil {
		return nil, err
	}
	refs := incomeRefs{particularID: particular.ID, receivedFromID: receivedFrom.ID}

	now := s.Now()
	var result *domain.Invoice
	err = s.uow.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		inv, err := tx.LockInvoice(ctx, req.InvoiceID)
		if err != nil {
			return err
		}
		if err := inv.CanApplyPayment(); err != nil {
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		if amount.GreaterThan(inv.TotalAmount) {
			return fmt.Errorf("%w: amount %s exceeds invoice total %s", apperrors.ErrValidation, amount, inv.TotalAmount)
		}

		settled := amount
		var debit decimal.Decimal
		if req.AdjustFromBalance {
			account, err := tx.LockMemberAccount(ctx, inv.MemberID)
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: member %s has no account to adjust from", apperrors.ErrValidation, inv.MemberID)
			}
			if err != nil {
				return err
			}
			draw := domain.DrawFromBalance(inv.TotalAmount, amount, account.Balance)
			settled, debit = draw.Settled, draw.Debit
			if debit.IsPositive() {
				account.Balance = draw.NewBalance
				account.LastUpdatedAt = now
				account.LastUpdatedBy = actor.UserID
				if err := tx.SaveAccountBalance(ctx, *account); err != nil {
					return err
				}
			}
		}

		if err := s.settle(ctx, tx, inv, settled, actor, now); err != nil {
			return err
		}
		if err := s.fanOut(ctx, tx, inv, settled, method.ID, refs, actor, now); err != nil {
			return err
		}

		batch := newOutboxBatch(s.BaseService, actor, now)
		batch.activity(inv.InvoiceID, "payment.applied", domain.SeverityInfo,
			fmt.Sprintf("Payment of %s applied to invoice %s (%s), %s drawn from balance", settled, inv.InvoiceNumber, inv.Status, debit))
		batch.invalidateKey(inv.InvoiceID, cache.InvoiceKey(inv.InvoiceID))
		batch.invalidatePrefix(inv.InvoiceID, cache.MemberInvoicesPrefix(inv.MemberID))
		batch.analytics(inv.InvoiceID, "payment_applied", map[string]any{
			"invoice_id":          inv.InvoiceID,
			"settled_amount":      settled.String(),
			"balance_debit":       debit.String(),
			"status":              string(inv.Status),
			"adjust_from_balance": req.AdjustFromBalance,
		})
		if err := batch.enqueue(ctx, tx); err != nil {
			return err
		}

		result = inv
		return nil
	})
	if err != nil {
		logger.Warn("Payment not applied", slog.String("invoice_id", req.InvoiceID), slog.String("error", err.Error()))
		return nil, err
	}

	s.forget(ctx, result)
	logger.Info("Payment applied", slog.String("invoice_id", result.InvoiceID), slog.String("status", string(result.Status)))
	return result, nil
}

// UpdateInvoicePayment replaces the paid figure of an invoice. All ledger rows
// recorded for the invoice so far are superseded and written afresh. Stored
// credit is never touched.
func (s *paymentService) UpdateInvoicePayment(ctx context.Context, actor domain.Actor, invoiceID string, req dto.UpdateInvoicePaymentRequest) (*domain.Invoice, error) {
	logger := s.GetLogger(ctx)

	if req.PaidAmount == nil {
		return nil, fmt.Errorf("%w: paid_amount is required", apperrors.ErrValidation)
	}
	paid := *req.PaidAmount
	if paid.IsNegative() {
		return nil, fmt.Errorf("%w: paid_amount must not be negative", apperrors.ErrValidation)
	}
	if err := checkAmount("paid_amount", paid); err != nil {
		return nil, err
	}

	method, err := s.lookups.ResolveLookup(ctx, domain.LookupPaymentMethod, req.PaymentMethodID)
	if err != nil {
		return nil, err
	}
	var requested incomeRefs
	if req.IncomeParticularID != nil {
		l, err := s.lookups.ResolveLookup(ctx, domain.LookupIncomeParticular, *req.IncomeParticularID)
		if err != nil {
			return nil, err
		}
		requested.particularID = l.ID
	}
	if req.ReceivedFromID != nil {
		l, err := s.lookups.ResolveLookup(ctx, domain.LookupReceivedFrom, *req.ReceivedFromID)
		if err != nil {
			return nil, err
		}
		requested.receivedFromID = l.ID
	}

	now := s.Now()
	var result *domain.Invoice
	err = s.uow.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		inv, err := tx.LockInvoice(ctx, invoiceID)
		if err != nil {
			return err
		}
		if !inv.IsActive {
			return fmt.Errorf("%w: invoice %s is inactive", apperrors.ErrValidation, inv.InvoiceNumber)
		}
		if paid.GreaterThan(inv.TotalAmount) {
			return fmt.Errorf("%w: paid_amount %s exceeds invoice total %s", apperrors.ErrValidation, paid, inv.TotalAmount)
		}

		refs, err := s.updateRefs(ctx, tx, inv.InvoiceID, requested)
		if err != nil {
			return err
		}

		previous := inv.Status
		if err := tx.DeactivateInvoiceLedger(ctx, inv.InvoiceID, actor.UserID, now); err != nil {
			return err
		}
		if err := s.settle(ctx, tx, inv, paid, actor, now); err != nil {
			return err
		}
		if err := s.fanOut(ctx, tx, inv, paid, method.ID, refs, actor, now); err != nil {
			return err
		}

		batch := newOutboxBatch(s.BaseService, actor, now)
		batch.activity(inv.InvoiceID, "invoice.payment_updated", domain.SeverityWarning,
			fmt.Sprintf("Invoice %s paid amount set to %s (%s -> %s)", inv.InvoiceNumber, paid, previous, inv.Status))
		batch.invalidateKey(inv.InvoiceID, cache.InvoiceKey(inv.InvoiceID))
		batch.invalidatePrefix(inv.InvoiceID, cache.MemberInvoicesPrefix(inv.MemberID))
		batch.analytics(inv.InvoiceID, "invoice_payment_updated", map[string]any{
			"invoice_id":      inv.InvoiceID,
			"paid_amount":     paid.String(),
			"previous_status": string(previous),
			"status":          string(inv.Status),
		})
		if err := batch.enqueue(ctx, tx); err != nil {
			return err
		}

		result = inv
		return nil
	})
	if err != nil {
		logger.Warn("Invoice payment not updated", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
		return nil, err
	}

	s.forget(ctx, result)
	logger.Info("Invoice payment updated", slog.String("invoice_id", result.InvoiceID), slog.String("status", string(result.Status)))
	return result, nil
}

// settle derives and persists the invoice's paid/balance/status fields.
func (s *paymentService) settle(ctx context.Context, tx portsrepo.LedgerTx, inv *domain.Invoice, paid decimal.Decimal, actor domain.Actor, now time.Time) error {
	settlement, err := domain.DeriveSettlement(inv.TotalAmount, paid)
	if err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	inv.ApplySettlement(settlement)
	inv.LastUpdatedAt = now
	inv.LastUpdatedBy = actor.UserID
	if err := tx.SaveInvoiceSettlement(ctx, *inv); err != nil {
		return err
	}
	inv.Version++
	return nil
}

// fanOut writes the ledger mirror, the reporting rows and the due, then
// points the invoice at its active due.
func (s *paymentService) fanOut(ctx context.Context, tx portsrepo.LedgerTx, inv *domain.Invoice, settled decimal.Decimal, paymentMethodID string, refs incomeRefs, actor domain.Actor, now time.Time) error {
	txn, payment, err := s.mirror.mirror(ctx, tx, inv, settled, paymentMethodID, actor, now)
	if err != nil {
		return err
	}
	if _, _, err := s.recorder.record(ctx, tx, inv, settled, paymentMethodID, refs, actor, now); err != nil {
		return err
	}
	due, _, err := s.dues.track(ctx, tx, inv, settled, payment, txn, actor, now)
	if err != nil {
		return err
	}

	var dueID *string
	if due != nil {
		dueID = &due.DueID
	}
	if err := tx.SetCurrentDue(ctx, inv.InvoiceID, dueID); err != nil {
		return err
	}
	inv.CurrentDueID = dueID
	return nil
}

// updateRefs picks the income references for a re-run: the requested ones,
// else those of the invoice's latest income, else the seeded defaults.
func (s *paymentService) updateRefs(ctx context.Context, tx portsrepo.LedgerTx, invoiceID string, requested incomeRefs) (incomeRefs, error) {
	refs := requested
	if refs.particularID != "" && refs.receivedFromID != "" {
		return refs, nil
	}

	particularID, receivedFromID, err := tx.FindLatestIncomeRefs(ctx, invoiceID)
	switch {
	case err == nil:
		if refs.particularID == "" {
			refs.particularID = particularID
		}
		if refs.receivedFromID == "" {
			refs.receivedFromID = receivedFromID
		}
		return refs, nil
	case !errors.Is(err, apperrors.ErrNotFound):
		return refs, err
	}

	if refs.particularID == "" {
		l, err := s.lookups.ResolveLookupByName(ctx, domain.LookupIncomeParticular, domain.DefaultIncomeParticular)
		if err != nil {
			return refs, err
		}
		refs.particularID = l.ID
	}
	if refs.receivedFromID == "" {
		l, err := s.lookups.ResolveLookupByName(ctx, domain.LookupReceivedFrom, domain.DefaultReceivedFrom)
		if err != nil {
			return refs, err
		}
		refs.receivedFromID = l.ID
	}
	return refs, nil
}

// forget drops cached views of the invoice in this process. The outbox
// repeats the invalidation for durability.
func (s *paymentService) forget(ctx context.Context, inv *domain.Invoice) {
	if s.cache == nil {
		return
	}
	s.cache.Remove(cache.InvoiceKey(inv.InvoiceID))
	s.cache.InvalidatePrefix(cache.MemberInvoicesPrefix(inv.MemberID))
	s.GetLogger(ctx).Debug("Invoice cache invalidated", slog.String("invoice_id", inv.InvoiceID))
}
