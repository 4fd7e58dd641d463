package services

import (
	"context"

	"github.com/antusaha970/member-management-backend-sub000/internal/core/domain"
)

// LookupSvcFacade manages payment methods, income particulars and received-from parties.
type LookupSvcFacade interface {
	ListLookups(ctx context.Context, kind domain.LookupKind) ([]domain.Lookup, error)
	CreateLookup(ctx context.Context, actor domain.Actor, kind domain.LookupKind, name string) (*domain.Lookup, error)

	// ResolveLookup returns the active row of kind with the given ID or apperrors.ErrNotFound.
	ResolveLookup(ctx context.Context, kind domain.LookupKind, id string) (*domain.Lookup, error)

	// ResolveLookupByName returns the active row of kind with the given name or apperrors.ErrNotFound.
	ResolveLookupByName(ctx context.Context, kind domain.LookupKind, name string) (*domain.Lookup, error)
}
