package services

import (
	"context"

	"github.com/antusaha970/member-management-backend-sub000/internal/core/domain"
	"github.com/antusaha970/member-management-backend-sub000/internal/dto"
)

// MemberReaderSvc defines read operations for members
type MemberReaderSvc interface {
	GetMember(ctx context.Context, memberID string) (*domain.Member, error)
	ListMembers(ctx context.Context, params dto.ListMembersParams) ([]domain.Member, error)
}

// MemberWriterSvc defines write operations for members
type MemberWriterSvc interface {
	CreateMember(ctx context.Context, actor domain.Actor, req dto.CreateMemberRequest) (*domain.Member, error)
}

// MemberAccountSvc manages stored credit.
type MemberAccountSvc interface {
	// OpenAccount creates the member's account or returns the existing one.
	OpenAccount(ctx context.Context, actor domain.Actor, memberID string) (*domain.MemberAccount, error)

	GetAccount(ctx context.Context, memberID string) (*domain.MemberAccount, error)

	// Deposit adds a positive amount to the member's balance.
	Deposit(ctx context.Context, actor domain.Actor, memberID string, req dto.DepositRequest) (*domain.MemberAccount, error)
}

// MemberSvcFacade combines all member-related service interfaces
type MemberSvcFacade interface {
	MemberReaderSvc
	MemberWriterSvc
	MemberAccountSvc
}
