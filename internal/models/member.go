package models

import "github.com/shopspring/decimal"

// Member is the members row.
type Member struct {
	MemberID         string `db:"member_id"`
	MembershipNumber string `db:"membership_number"`
	FirstName        string `db:"first_name"`
	LastName         string `db:"last_name"`
	Email            string `db:"email"`
	Phone            string `db:"phone"`
	IsActive         bool   `db:"is_active"`
	AuditFields
	Version int64 `db:"version"`
}

// MemberAccount is the member_accounts row.
type MemberAccount struct {
	AccountID string          `db:"account_id"`
	MemberID  string          `db:"member_id"`
	Balance   decimal.Decimal `db:"balance"`
	AuditFields
	Version int64 `db:"version"`
}
