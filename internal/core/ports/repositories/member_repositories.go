package repositories

import (
	"context"

	"github.com/antusaha970/member-management-backend-sub000/internal/core/domain"
)

// MemberReader defines read operations for member data
type MemberReader interface {
	// FindMemberByID retrieves a member by ID.
	FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error)

	// ListMembers retrieves a paginated list of active members.
	ListMembers(ctx context.Context, limit int, offset int) ([]domain.Member, error)

	// FindAccountByMemberID retrieves the stored-credit account of a member.
	FindAccountByMemberID(ctx context.Context, memberID string) (*domain.MemberAccount, error)
}

// MemberWriter defines write operations for member data
type MemberWriter interface {
	// SaveMember persists a new member.
	SaveMember(ctx context.Context, member domain.Member) error
}

// MemberRepositoryFacade combines all member-related repository interfaces
type MemberRepositoryFacade interface {
	MemberReader
	MemberWriter
}
