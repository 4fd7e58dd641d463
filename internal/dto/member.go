package dto

import (
	"time"

	"github.com/antusaha970/member-management-backend-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateMemberRequest defines the data needed to register a member.
type CreateMemberRequest struct {
	MembershipNumber string `json:"membership_number" binding:"required,max=32"`
	FirstName        string `json:"first_name" binding:"required,max=100"`
	LastName         string `json:"last_name" binding:"max=100"`
	Email            string `json:"email" binding:"omitempty,email"`
	Phone            string `json:"phone" binding:"max=32"`
}

// MemberResponse defines the data returned for a member.
type MemberResponse struct {
	MemberID         string    `json:"member_id"`
	MembershipNumber string    `json:"membership_number"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
}

// ToMemberResponse converts a domain.Member to MemberResponse DTO
func ToMemberResponse(m *domain.Member) MemberResponse {
	return MemberResponse{
		MemberID:         m.MemberID,
		MembershipNumber: m.MembershipNumber,
		FirstName:        m.FirstName,
		LastName:         m.LastName,
		Email:            m.Email,
		Phone:            m.Phone,
		IsActive:         m.IsActive,
		CreatedAt:        m.CreatedAt,
	}
}

// ListMembersParams defines query parameters for listing members.
type ListMembersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListMembersResponse wraps the list of members.
type ListMembersResponse struct {
	Members []MemberResponse `json:"members"`
}

// DepositRequest tops up a member's stored credit.
type DepositRequest struct {
	Amount *decimal.Decimal `json:"amount" binding:"required"`
	Note   string           `json:"note" binding:"max=255"`
}

// MemberAccountResponse defines the data returned for a member account.
type MemberAccountResponse struct {
	AccountID     string          `json:"account_id"`
	MemberID      string          `json:"member_id"`
	Balance       decimal.Decimal `json:"balance"`
	LastUpdatedAt time.Time       `json:"last_updated_at"`
}

// ToMemberAccountResponse converts a domain.MemberAccount to its DTO.
func ToMemberAccountResponse(a *domain.MemberAccount) MemberAccountResponse {
	return MemberAccountResponse{
		AccountID:     a.AccountID,
		MemberID:      a.MemberID,
		Balance:       a.Balance,
		LastUpdatedAt: a.LastUpdatedAt,
	}
}
