package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/antusaha970/member-management-backend-sub000/internal/apperrors"
	"github.com/antusaha970/member-management-backend-sub000/internal/core/domain"
	"github.com/antusaha970/member-management-backend-sub000/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Now   func() time.Time
	NewID func() string
}

// ServiceOption customises the clock and ID source of a service.
type ServiceOption func(*BaseService)

// WithClock makes the service read the time from now.
func WithClock(now func() time.Time) ServiceOption {
	return func(b *BaseService) { b.Now = now }
}

// WithIDGenerator makes the service draw entity IDs from newID.
func WithIDGenerator(newID func() string) ServiceOption {
	return func(b *BaseService) { b.NewID = newID }
}

func newBaseService(opts ...ServiceOption) BaseService {
	b := BaseService{
		Now:   func() time.Time { return time.Now().UTC() },
		NewID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogWarn logs a swallowed collaborator failure.
func (s *BaseService) LogWarn(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Warn(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// audit returns creation audit fields for actor at now.
func audit(actor domain.Actor, now time.Time) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actor.UserID,
		LastUpdatedAt: now,
		LastUpdatedBy: actor.UserID,
	}
}

// checkAmount rejects an amount the ledger columns cannot hold exactly.
func checkAmount(field string, amount decimal.Decimal) error {
	if err := domain.CheckMoneyScale(amount); err != nil {
		return fmt.Errorf("%w: %s %s has more than %d decimal places", apperrors.ErrValidation, field, amount, domain.MoneyScale)
	}
	return nil
}
