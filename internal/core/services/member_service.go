package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/antusaha970/member-management-backend-sub000/internal/apperrors"
	"github.com/antusaha970/member-management-backend-sub000/internal/core/domain"
	portsrepo "github.com/antusaha970/member-management-backend-sub000/internal/core/ports/repositories"
	portssvc "github.com/antusaha970/member-management-backend-sub000/internal/core/ports/services"
	"github.com/antusaha970/member-management-backend-sub000/internal/dto"
	"github.com/shopspring/decimal"
)

type memberService struct {
	BaseService
	uow        portsrepo.UnitOfWork
	memberRepo portsrepo.MemberRepositoryFacade
}

// NewMemberService creates a new service for members and their stored credit.
func NewMemberService(uow portsrepo.UnitOfWork, memberRepo portsrepo.MemberRepositoryFacade, opts ...ServiceOption) portssvc.MemberSvcFacade {
	return &memberService{
		BaseService: newBaseService(opts...),
		uow:         uow,
		memberRepo:  memberRepo,
	}
}

var _ portssvc.MemberSvcFacade = (*memberService)(nil)

func (s *memberService) CreateMember(ctx context.Context, actor domain.Actor, req dto.CreateMemberRequest) (*domain.Member, error) {
	number := strings.TrimSpace(req.MembershipNumber)
	if number == "" || strings.TrimSpace(req.FirstName) == "" {
		return nil, fmt.Errorf("%w: membership_number and first_name are required", apperrors.ErrValidation)
	}

	member := domain.Member{
		MemberID:         s.NewID(),
		MembershipNumber: number,
		FirstName:        strings.TrimSpace(req.FirstName),
		LastName:         strings.TrimSpace(req.LastName),
		Email:            strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:            strings.TrimSpace(req.Phone),
		IsActive:         true,
		AuditFields:      audit(actor, s.Now()),
	}
	if err := s.memberRepo.SaveMember(ctx, member); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: membership number %s already exists", apperrors.ErrDuplicate, number)
		}
		s.LogError(ctx, err, "Failed to save member")
		return nil, err
	}

	s.LogInfo(ctx, "Member created", slog.String("member_id", member.MemberID))
	return &member, nil
}

func (s *memberService) GetMember(ctx context.Context, memberID string) (*domain.Member, error) {
	return s.memberRepo.FindMemberByID(ctx, memberID)
}

func (s *memberService) ListMembers(ctx context.Context, params dto.ListMembersParams) ([]domain.Member, error) {
	if params.Limit <= 0 {
		params.Limit = 20
	}
	if params.Limit > 100 {
		params.Limit = 100
	}
	if params.Offset < 0 {
		params.Offset = 0
	}
	return s.memberRepo.ListMembers(ctx, params.Limit, params.Offset)
}

// OpenAccount is idempotent: an existing account is returned unchanged.
func (s *memberService) OpenAccount(ctx context.Context, actor domain.Actor, memberID string) (*domain.MemberAccount, error) {
	if _, err := s.memberRepo.FindMemberByID(ctx, memberID); err != nil {
		return nil, err
	}

	now := s.Now()
	var account *domain.MemberAccount
	err := s.uow.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		existing, err := tx.LockMemberAccount(ctx, memberID)
		if err == nil {
			account = existing
			return nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		created := domain.MemberAccount{
			AccountID:   s.NewID(),
			MemberID:    memberID,
			Balance:     decimal.Zero,
			AuditFields: audit(actor, now),
		}
		if err := tx.InsertMemberAccount(ctx, created); err != nil {
			return err
		}
		batch := newOutboxBatch(s.BaseService, actor, now)
		batch.activity(memberID, "member_account.opened", domain.SeverityInfo, fmt.Sprintf("Account %s opened for member %s", created.AccountID, memberID))
		if err := batch.enqueue(ctx, tx); err != nil {
			return err
		}
		account = &created
		return nil
	})
	if errors.Is(err, apperrors.ErrDuplicate) {
		// lost a race with a concurrent open
		return s.memberRepo.FindAccountByMemberID(ctx, memberID)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to open member account", slog.String("member_id", memberID))
		return nil, err
	}
	return account, nil
}

func (s *memberService) GetAccount(ctx context.Context, memberID string) (*domain.MemberAccount, error) {
	return s.memberRepo.FindAccountByMemberID(ctx, memberID)
}

// Deposit is the only operation that increases a balance.
func (s *memberService) Deposit(ctx context.Context, actor domain.Actor, memberID string, req dto.DepositRequest) (*domain.MemberAccount, error) {
	if req.Amount == nil || !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: deposit amount must be positive", apperrors.ErrValidation)
	}
	if err := checkAmount("amount", *req.Amount); err != nil {
		return nil, err
	}
	amount := *req.Amount

	now := s.Now()
	var account *domain.MemberAccount
	err := s.uow.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		acc, err := tx.LockMemberAccount(ctx, memberID)
		if err != nil {
			return err
		}
		acc.Balance = acc.Balance.Add(amount)
		acc.LastUpdatedAt = now
		acc.LastUpdatedBy = actor.UserID
		if err := tx.SaveAccountBalance(ctx, *acc); err != nil {
			return err
		}
		acc.Version++

		description := fmt.Sprintf("Deposited %s to member %s, balance now %s", amount, memberID, acc.Balance)
		if req.Note != "" {
			description += ": " + req.Note
		}
		batch := newOutboxBatch(s.BaseService, actor, now)
		batch.activity(memberID, "member_account.deposit", domain.SeverityInfo, description)
		batch.analytics(memberID, "member_deposit", map[string]any{"member_id": memberID, "amount": amount.String()})
		if err := batch.enqueue(ctx, tx); err != nil {
			return err
		}
		account = acc
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Deposit failed", slog.String("member_id", memberID))
		return nil, err
	}

	s.LogInfo(ctx, "Deposit recorded", slog.String("member_id", memberID), slog.String("amount", amount.String()))
	return account, nil
}
