package repositories

import (
	"context"

	"github.com/antusaha970/member-management-backend-sub000/internal/core/domain"
)

// LookupRepository defines access to the payment reference tables.
type LookupRepository interface {
	// FindLookupByID retrieves one row of the given kind.
	FindLookupByID(ctx context.Context, kind domain.LookupKind, id string) (*domain.Lookup, error)

	// FindLookupByName retrieves one row of the given kind by its unique name.
	FindLookupByName(ctx context.Context, kind domain.LookupKind, name string) (*domain.Lookup, error)

	// ListLookups retrieves all active rows of the given kind ordered by name.
	ListLookups(ctx context.Context, kind domain.LookupKind) ([]domain.Lookup, error)

	// SaveLookup persists a new row.
	SaveLookup(ctx context.Context, lookup domain.Lookup) error
}
