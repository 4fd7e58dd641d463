package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places every stored amount carries.
const MoneyScale = 2

var (
	ErrNegativeAmount   = errors.New("amount must not be negative")
	ErrAmountExceedsDue = errors.New("amount exceeds invoice total")
	ErrAmountPrecision  = errors.New("amount has more than 2 decimal places")
)

// CheckMoneyScale rejects amounts that would be rounded on storage.
// Trailing zeros are fine: 600.000 is accepted, 600.004 is not.
func CheckMoneyScale(amount decimal.Decimal) error {
	if !amount.Equal(amount.Truncate(MoneyScale)) {
		return ErrAmountPrecision
	}
	return nil
}

// Settlement is the outcome of applying a paid figure to an invoice total.
type Settlement struct {
	PaidAmount decimal.Decimal
	BalanceDue decimal.Decimal
	Status     InvoiceStatus
	IsFullPaid bool
}

// DeriveSettlement computes paid/balance/status for paid against total.
// The checks run in a fixed order: exact payment, zero payment, anything else.
func DeriveSettlement(total, paid decimal.Decimal) (Settlement, error) {
	if paid.IsNegative() {
		return Settlement{}, ErrNegativeAmount
	}
	if paid.GreaterThan(total) {
		return Settlement{}, ErrAmountExceedsDue
	}

	switch {
	case paid.Equal(total):
		return Settlement{PaidAmount: paid, BalanceDue: decimal.Zero, Status: InvoicePaid, IsFullPaid: true}, nil
	case paid.IsZero():
		return Settlement{PaidAmount: paid, BalanceDue: total, Status: InvoiceDue}, nil
	default:
		return Settlement{PaidAmount: paid, BalanceDue: total.Sub(paid), Status: InvoicePartialPaid}, nil
	}
}

// BalanceDraw describes how much stored credit covers the rest of an invoice.
type BalanceDraw struct {
	Settled    decimal.Decimal // tendered plus the drawn credit
	Debit      decimal.Decimal // amount taken from the account
	NewBalance decimal.Decimal
}

// DrawFromBalance tops tendered up towards total from balance without
// overdrawing it. tendered is expected to be within [0, total].
func DrawFromBalance(total, tendered, balance decimal.Decimal) BalanceDraw {
	remaining := total.Sub(tendered)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	if balance.IsNegative() {
		balance = decimal.Zero
	}

	debit := remaining
	if balance.LessThan(remaining) {
		debit = balance
	}
	return BalanceDraw{
		Settled:    tendered.Add(debit),
		Debit:      debit,
		NewBalance: balance.Sub(debit),
	}
}
