package services_test

import (
	"context"
	"time"

	"github.com/antusaha970/member-management-backend-sub000/internal/core/domain"
	portsrepo "github.com/antusaha970/member-management-backend-sub000/internal/core/ports/repositories"
	portssvc "github.com/antusaha970/member-management-backend-sub000/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock LookupService ---
type MockLookupService struct {
	mock.Mock
}

var _ portssvc.LookupSvcFacade = (*MockLookupService)(nil)

func (m *MockLookupService) ListLookups(ctx context.Context, kind domain.LookupKind) ([]domain.Lookup, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Lookup), args.Error(1)
}

func (m *MockLookupService) CreateLookup(ctx context.Context, actor domain.Actor, kind domain.LookupKind, name string) (*domain.Lookup, error) {
	args := m.Called(ctx, actor, kind, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lookup), args.Error(1)
}

func (m *MockLookupService) ResolveLookup(ctx context.Context, kind domain.LookupKind, id string) (*domain.Lookup, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lookup), args.Error(1)
}

func (m *MockLookupService) ResolveLookupByName(ctx context.Context, kind domain.LookupKind, name string) (*domain.Lookup, error) {
	args := m.Called(ctx, kind, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lookup), args.Error(1)
}

// --- Mock LookupRepository ---
type MockLookupRepository struct {
	mock.Mock
}

var _ portsrepo.LookupRepository = (*MockLookupRepository)(nil)

func (m *MockLookupRepository) FindLookupByID(ctx context.Context, kind domain.LookupKind, id string) (*domain.Lookup, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lookup), args.Error(1)
}

func (m *MockLookupRepository) FindLookupByName(ctx context.Context, kind domain.LookupKind, name string) (*domain.Lookup, error) {
	args := m.Called(ctx, kind, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lookup), args.Error(1)
}

func (m *MockLookupRepository) ListLookups(ctx context.Context, kind domain.LookupKind) ([]domain.Lookup, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Lookup), args.Error(1)
}

func (m *MockLookupRepository) SaveLookup(ctx context.Context, lookup domain.Lookup) error {
	args := m.Called(ctx, lookup)
	return args.Error(0)
}

// --- Mock InvoiceRepository ---
type MockInvoiceRepository struct {
	mock.Mock
}

var _ portsrepo.InvoiceRepositoryFacade = (*MockInvoiceRepository)(nil)

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoicesByMember(ctx context.Context, memberID string, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	args := m.Called(ctx, memberID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Invoice), returnedNextToken, args.Error(2)
}

func (m *MockInvoiceRepository) FindInvoiceTypeByName(ctx context.Context, name string) (*domain.InvoiceType, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceType), args.Error(1)
}

func (m *MockInvoiceRepository) FindInvoiceLedger(ctx context.Context, invoiceID string) (*domain.InvoiceLedger, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceLedger), args.Error(1)
}

func (m *MockInvoiceRepository) CountActiveDues(ctx context.Context, invoiceID string) (int, error) {
	args := m.Called(ctx, invoiceID)
	return args.Int(0), args.Error(1)
}

// --- Mock MemberRepository ---
type MockMemberRepository struct {
	mock.Mock
}

var _ portsrepo.MemberRepositoryFacade = (*MockMemberRepository)(nil)

func (m *MockMemberRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberRepository) ListMembers(ctx context.Context, limit int, offset int) ([]domain.Member, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Member), args.Error(1)
}

func (m *MockMemberRepository) FindAccountByMemberID(ctx context.Context, memberID string) (*domain.MemberAccount, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MemberAccount), args.Error(1)
}

func (m *MockMemberRepository) SaveMember(ctx context.Context, member domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- Mock OutboxStore ---
type MockOutboxStore struct {
	mock.Mock
}

var _ portsrepo.OutboxStore = (*MockOutboxStore)(nil)

func (m *MockOutboxStore) ClaimPending(ctx context.Context, limit int, maxAttempts int, lease time.Duration, now time.Time) ([]domain.OutboxEvent, error) {
	args := m.Called(ctx, limit, maxAttempts, lease, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OutboxEvent), args.Error(1)
}

func (m *MockOutboxStore) MarkProcessed(ctx context.Context, eventID string, now time.Time) error {
	args := m.Called(ctx, eventID, now)
	return args.Error(0)
}

func (m *MockOutboxStore) MarkFailed(ctx context.Context, eventID string, reason string) error {
	args := m.Called(ctx, eventID, reason)
	return args.Error(0)
}

// --- Mock ActivityLogRepository ---
type MockActivityRepository struct {
	mock.Mock
}

var _ portsrepo.ActivityLogRepository = (*MockActivityRepository)(nil)

func (m *MockActivityRepository) SaveActivity(ctx context.Context, entry domain.ActivityLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// --- Mock analytics client ---
type MockAnalytics struct {
	mock.Mock
}

func (m *MockAnalytics) Enqueue(distinctID string, event string, properties map[string]any) error {
	args := m.Called(distinctID, event, properties)
	return args.Error(0)
}
