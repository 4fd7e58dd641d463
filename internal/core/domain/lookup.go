package domain

// LookupKind selects one of the small reference tables a payment points at.
type LookupKind string

const (
	LookupPaymentMethod    LookupKind = "payment_method"
	LookupIncomeParticular LookupKind = "income_particular"
	LookupReceivedFrom     LookupKind = "received_from"
)

// Default lookup names seeded by the migrations. The update path falls back
// to them when an invoice has no earlier income to copy references from.
const (
	DefaultIncomeParticular = "Invoice Payment"
	DefaultReceivedFrom     = "Member"
)

// Valid reports whether k is a known lookup kind.
func (k LookupKind) Valid() bool {
	switch k {
	case LookupPaymentMethod, LookupIncomeParticular, LookupReceivedFrom:
		return true
	}
	return false
}

// Lookup is a row of a reference table (payment methods, income particulars,
// received-from parties).
type Lookup struct {
	ID       string     `json:"id"`
	Kind     LookupKind `json:"kind"`
	Name     string     `json:"name"`
	IsActive bool       `json:"is_active"`
	AuditFields
}
