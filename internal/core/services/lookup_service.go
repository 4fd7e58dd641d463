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
)

type lookupService struct {
	BaseService
	lookupRepo portsrepo.LookupRepository
}

// NewLookupService creates a new service for the payment reference tables.
func NewLookupService(lookupRepo portsrepo.LookupRepository, opts ...ServiceOption) portssvc.LookupSvcFacade {
	return &lookupService{
		BaseService: newBaseService(opts...),
		lookupRepo:  lookupRepo,
	}
}

var _ portssvc.LookupSvcFacade = (*lookupService)(nil)

func (s *lookupService) ListLookups(ctx context.Context, kind domain.LookupKind) ([]domain.Lookup, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown lookup kind %q", apperrors.ErrValidation, kind)
	}
	lookups, err := s.lookupRepo.ListLookups(ctx, kind)
	if err != nil {
		s.LogError(ctx, err, "Failed to list lookups", slog.String("kind", string(kind)))
		return nil, err
	}
	return lookups, nil
}

func (s *lookupService) CreateLookup(ctx context.Context, actor domain.Actor, kind domain.LookupKind, name string) (*domain.Lookup, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown lookup kind %q", apperrors.ErrValidation, kind)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", apperrors.ErrValidation)
	}

	lookup := domain.Lookup{
		ID:          s.NewID(),
		Kind:        kind,
		Name:        name,
		IsActive:    true,
		AuditFields: audit(actor, s.Now()),
	}
	if err := s.lookupRepo.SaveLookup(ctx, lookup); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s %q already exists", apperrors.ErrDuplicate, kind, name)
		}
		s.LogError(ctx, err, "Failed to save lookup", slog.String("kind", string(kind)))
		return nil, err
	}

	s.LogInfo(ctx, "Lookup created", slog.String("kind", string(kind)), slog.String("id", lookup.ID))
	return &lookup, nil
}

func (s *lookupService) ResolveLookup(ctx context.Context, kind domain.LookupKind, id string) (*domain.Lookup, error) {
	lookup, err := s.lookupRepo.FindLookupByID(ctx, kind, id)
	if err != nil {
		return nil, lookupErr(err, kind, id)
	}
	if !lookup.IsActive {
		return nil, fmt.Errorf("%w: %s %s is inactive", apperrors.ErrNotFound, kind, id)
	}
	return lookup, nil
}

func (s *lookupService) ResolveLookupByName(ctx context.Context, kind domain.LookupKind, name string) (*domain.Lookup, error) {
	lookup, err := s.lookupRepo.FindLookupByName(ctx, kind, name)
	if err != nil {
		return nil, lookupErr(err, kind, name)
	}
	if !lookup.IsActive {
		return nil, fmt.Errorf("%w: %s %q is inactive", apperrors.ErrNotFound, kind, name)
	}
	return lookup, nil
}

func lookupErr(err error, kind domain.LookupKind, key string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, kind, key)
	}
	return err
}
