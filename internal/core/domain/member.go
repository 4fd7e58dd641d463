package domain

import "github.com/shopspring/decimal"

// Member is a club member who can be invoiced.
type Member struct {
	MemberID         string `json:"member_id"`
	MembershipNumber string `json:"membership_number"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	IsActive         bool   `json:"is_active"`
	AuditFields
}

// MemberAccount is the stored-value balance of a member. Balance is never negative.
type MemberAccount struct {
	AccountID string          `json:"account_id"`
	MemberID  string          `json:"member_id"`
	Balance   decimal.Decimal `json:"balance"`
	AuditFields
}
