package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/antusaha970/member-management-backend-sub000/internal/apperrors"
	"github.com/antusaha970/member-management-backend-sub000/internal/core/domain"
	portsrepo "github.com/antusaha970/member-management-backend-sub000/internal/core/ports/repositories"
	portssvc "github.com/antusaha970/member-management-backend-sub000/internal/core/ports/services"
	"github.com/antusaha970/member-management-backend-sub000/internal/dto"
	"github.com/antusaha970/member-management-backend-sub000/internal/platform/cache"
	"github.com/shopspring/decimal"
)

// InvoiceNumberGenerator issues unique invoice numbers.
type InvoiceNumberGenerator interface {
	NewInvoiceNumber() string
}

type invoiceService struct {
	BaseService
	uow         portsrepo.UnitOfWork
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	memberRepo  portsrepo.MemberReader
	cache       cache.Store
	numbers     InvoiceNumberGenerator
}

// NewInvoiceService creates a new invoice service.
func NewInvoiceService(uow portsrepo.UnitOfWork, invoiceRepo portsrepo.InvoiceRepositoryFacade, memberRepo portsrepo.MemberReader, store cache.Store, numbers InvoiceNumberGenerator, opts ...ServiceOption) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		BaseService: newBaseService(opts...),
		uow:         uow,
		invoiceRepo: invoiceRepo,
		memberRepo:  memberRepo,
		cache:       store,
		numbers:     numbers,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// IssueInvoice creates an unpaid invoice. TotalAmount is the amount owed
// after any discount; Discount and PromoCode are kept for reporting.
func (s *invoiceService) IssueInvoice(ctx context.Context, actor domain.Actor, req dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	if req.TotalAmount == nil || !req.TotalAmount.IsPositive() {
		return nil, fmt.Errorf("%w: total_amount must be positive", apperrors.ErrValidation)
	}
	if err := checkAmount("total_amount", *req.TotalAmount); err != nil {
		return nil, err
	}
	discount := decimal.Zero
	if req.Discount != nil {
		if req.Discount.IsNegative() {
			return nil, fmt.Errorf("%w: discount must not be negative", apperrors.ErrValidation)
		}
		if err := checkAmount("discount", *req.Discount); err != nil {
			return nil, err
		}
		discount = *req.Discount
	}

	member, err := s.memberRepo.FindMemberByID(ctx, req.MemberID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: member %s", apperrors.ErrNotFound, req.MemberID)
		}
		return nil, err
	}
	if !member.IsActive {
		return nil, fmt.Errorf("%w: member %s is inactive", apperrors.ErrValidation, member.MembershipNumber)
	}

	invoiceType, err := s.invoiceRepo.FindInvoiceTypeByName(ctx, req.InvoiceType)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown invoice type %q", apperrors.ErrValidation, req.InvoiceType)
		}
		return nil, err
	}

	now := s.Now()
	inv := domain.Invoice{
		InvoiceID:       s.NewID(),
		InvoiceNumber:   s.numbers.NewInvoiceNumber(),
		MemberID:        member.MemberID,
		InvoiceTypeID:   invoiceType.ID,
		InvoiceTypeName: invoiceType.Name,
		CurrencyCode:    req.CurrencyCode,
		TotalAmount:     *req.TotalAmount,
		PaidAmount:      decimal.Zero,
		BalanceDue:      *req.TotalAmount,
		Discount:        discount,
		PromoCode:       req.PromoCode,
		Status:          domain.InvoiceUnpaid,
		IsActive:        true,
		AuditFields:     audit(actor, now),
	}

	err = s.uow.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		if err := tx.InsertInvoice(ctx, inv); err != nil {
			return err
		}
		batch := newOutboxBatch(s.BaseService, actor, now)
		batch.activity(inv.InvoiceID, "invoice.issued", domain.SeverityInfo,
			fmt.Sprintf("Invoice %s issued to member %s for %s %s", inv.InvoiceNumber, member.MembershipNumber, inv.TotalAmount, inv.CurrencyCode))
		batch.invalidatePrefix(inv.InvoiceID, cache.MemberInvoicesPrefix(inv.MemberID))
		return batch.enqueue(ctx, tx)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to issue invoice", slog.String("member_id", req.MemberID))
		return nil, err
	}
	if s.cache != nil {
		s.cache.InvalidatePrefix(cache.MemberInvoicesPrefix(inv.MemberID))
	}

	s.LogInfo(ctx, "Invoice issued", slog.String("invoice_id", inv.InvoiceID), slog.String("invoice_number", inv.InvoiceNumber))
	return &inv, nil
}

// GetInvoice reads through the cache.
func (s *invoiceService) GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	key := cache.InvoiceKey(invoiceID)
	var cached domain.Invoice
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	inv, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, inv)
	return inv, nil
}

func (s *invoiceService) ListMemberInvoices(ctx context.Context, memberID string, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error) {
	if params.Limit <= 0 {
		params.Limit = 20
	}
	if params.Limit > 100 {
		params.Limit = 100
	}
	if _, err := s.memberRepo.FindMemberByID(ctx, memberID); err != nil {
		return nil, err
	}

	token := ""
	if params.NextToken != nil {
		token = *params.NextToken
	}
	key := fmt.Sprintf("%s%d:%s", cache.MemberInvoicesPrefix(memberID), params.Limit, token)
	var cached dto.ListInvoicesResponse
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	invoices, nextToken, err := s.invoiceRepo.ListInvoicesByMember(ctx, memberID, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListInvoicesResponse{
		Invoices:  make([]dto.InvoiceResponse, len(invoices)),
		NextToken: nextToken,
	}
	for i := range invoices {
		resp.Invoices[i] = dto.ToInvoiceResponse(&invoices[i])
	}
	s.cacheSet(ctx, key, resp)
	return resp, nil
}

func (s *invoiceService) GetInvoiceLedger(ctx context.Context, invoiceID string) (*domain.InvoiceLedger, error) {
	return s.invoiceRepo.FindInvoiceLedger(ctx, invoiceID)
}

func (s *invoiceService) cacheGet(ctx context.Context, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	raw, ok := s.cache.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.LogWarn(ctx, err, "Discarding unreadable cache entry", slog.String("key", key))
		s.cache.Remove(key)
		return false
	}
	return true
}

func (s *invoiceService) cacheSet(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		s.LogWarn(ctx, err, "Failed to cache value", slog.String("key", key))
		return
	}
	s.cache.Set(key, raw)
}
