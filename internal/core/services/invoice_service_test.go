package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/antusaha970/member-management-backend-sub000/internal/apperrors"
	"github.com/antusaha970/member-management-backend-sub000/internal/core/domain"
	portssvc "github.com/antusaha970/member-management-backend-sub000/internal/core/ports/services"
	"github.com/antusaha970/member-management-backend-sub000/internal/core/services"
	"github.com/antusaha970/member-management-backend-sub000/internal/dto"
	"github.com/antusaha970/member-management-backend-sub000/internal/platform/cache"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type InvoiceServiceTestSuite struct {
	suite.Suite
	ledger      *fakeLedger
	invoiceRepo *MockInvoiceRepository
	memberRepo  *MockMemberRepository
	cache       *cache.LRUStore
	service     portssvc.InvoiceSvcFacade

	actor  domain.Actor
	member domain.Member
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.ledger = newFakeLedger()
	suite.invoiceRepo = new(MockInvoiceRepository)
	suite.memberRepo = new(MockMemberRepository)
	suite.cache = cache.NewLRUStore(64, time.Minute)
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	suite.service = services.NewInvoiceService(suite.ledger, suite.invoiceRepo, suite.memberRepo, suite.cache, &fixedNumbers{},
		services.WithClock(func() time.Time { return now }))

	suite.actor = domain.Actor{UserID: uuid.NewString()}
	suite.member = domain.Member{MemberID: uuid.NewString(), MembershipNumber: "M-100", IsActive: true}
}

func (suite *InvoiceServiceTestSuite) issueReq() dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		MemberID:     suite.member.MemberID,
		InvoiceType:  domain.InvoiceTypeEvent,
		CurrencyCode: "BDT",
		TotalAmount:  decPtr("1500.50"),
		Discount:     decPtr("100"),
		PromoCode:    "GALA",
	}
}

func (suite *InvoiceServiceTestSuite) TestIssueInvoice_Success() {
	ctx := context.Background()
	eventType := &domain.InvoiceType{ID: uuid.NewString(), Name: domain.InvoiceTypeEvent}
	suite.memberRepo.On("FindMemberByID", ctx, suite.member.MemberID).Return(&suite.member, nil).Once()
	suite.invoiceRepo.On("FindInvoiceTypeByName", ctx, domain.InvoiceTypeEvent).Return(eventType, nil).Once()
	listKey := cache.MemberInvoicesPrefix(suite.member.MemberID) + "20:"
	suite.cache.Set(listKey, []byte(`{"invoices":[]}`))

	inv, err := suite.service.IssueInvoice(ctx, suite.actor, suite.issueReq())

	suite.Require().NoError(err)
	suite.Equal("INV-0001", inv.InvoiceNumber)
	suite.Equal(domain.InvoiceUnpaid, inv.Status)
	suite.Equal(eventType.ID, inv.InvoiceTypeID)
	suite.True(inv.IsActive)
	suite.True(dec("1500.50").Equal(inv.BalanceDue))
	suite.True(inv.PaidAmount.IsZero())
	suite.Equal(suite.actor.UserID, inv.CreatedBy)

	state := suite.ledger.snapshot()
	suite.Contains(state.invoices, inv.InvoiceID)
	suite.Equal([]domain.OutboxTopic{domain.TopicActivity, domain.TopicCacheInvalidate}, state.topics())
	_, cached := suite.cache.Get(listKey)
	suite.False(cached)
	suite.memberRepo.AssertExpectations(suite.T())
	suite.invoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestIssueInvoice_Validation() {
	testCases := []struct {
		name   string
		mutate func(r *dto.CreateInvoiceRequest)
	}{
		{"missing total", func(r *dto.CreateInvoiceRequest) { r.TotalAmount = nil }},
		{"zero total", func(r *dto.CreateInvoiceRequest) { r.TotalAmount = decPtr("0") }},
		{"negative total", func(r *dto.CreateInvoiceRequest) { r.TotalAmount = decPtr("-5") }},
		{"negative discount", func(r *dto.CreateInvoiceRequest) { r.Discount = decPtr("-1") }},
		{"sub-cent total", func(r *dto.CreateInvoiceRequest) { r.TotalAmount = decPtr("1000.005") }},
		{"sub-cent discount", func(r *dto.CreateInvoiceRequest) { r.Discount = decPtr("0.001") }},
	}
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			req := suite.issueReq()
			tc.mutate(&req)

			_, err := suite.service.IssueInvoice(context.Background(), suite.actor, req)

			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.memberRepo.AssertNotCalled(suite.T(), "FindMemberByID", mock.Anything, mock.Anything)
	suite.Empty(suite.ledger.snapshot().invoices)
}

func (suite *InvoiceServiceTestSuite) TestIssueInvoice_MemberNotFound() {
	suite.memberRepo.On("FindMemberByID", mock.Anything, suite.member.MemberID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.IssueInvoice(context.Background(), suite.actor, suite.issueReq())

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *InvoiceServiceTestSuite) TestIssueInvoice_InactiveMember() {
	inactive := suite.member
	inactive.IsActive = false
	suite.memberRepo.On("FindMemberByID", mock.Anything, suite.member.MemberID).Return(&inactive, nil).Once()

	_, err := suite.service.IssueInvoice(context.Background(), suite.actor, suite.issueReq())

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.invoiceRepo.AssertNotCalled(suite.T(), "FindInvoiceTypeByName", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestIssueInvoice_UnknownType() {
	suite.memberRepo.On("FindMemberByID", mock.Anything, suite.member.MemberID).Return(&suite.member, nil).Once()
	suite.invoiceRepo.On("FindInvoiceTypeByName", mock.Anything, domain.InvoiceTypeEvent).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.IssueInvoice(context.Background(), suite.actor, suite.issueReq())

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Empty(suite.ledger.snapshot().invoices)
}

func (suite *InvoiceServiceTestSuite) TestGetInvoice_ReadsThroughCache() {
	invoiceID := uuid.NewString()
	stored := &domain.Invoice{InvoiceID: invoiceID, InvoiceNumber: "INV-9", TotalAmount: dec("10"), Status: domain.InvoiceUnpaid}
	suite.invoiceRepo.On("FindInvoiceByID", mock.Anything, invoiceID).Return(stored, nil).Once()

	first, err := suite.service.GetInvoice(context.Background(), invoiceID)
	suite.Require().NoError(err)
	second, err := suite.service.GetInvoice(context.Background(), invoiceID)
	suite.Require().NoError(err)

	suite.Equal(first.InvoiceNumber, second.InvoiceNumber)
	suite.True(first.TotalAmount.Equal(second.TotalAmount))
	suite.invoiceRepo.AssertNumberOfCalls(suite.T(), "FindInvoiceByID", 1)
}

func (suite *InvoiceServiceTestSuite) TestGetInvoice_NotFoundIsNotCached() {
	invoiceID := uuid.NewString()
	suite.invoiceRepo.On("FindInvoiceByID", mock.Anything, invoiceID).Return(nil, apperrors.ErrNotFound).Twice()

	_, err := suite.service.GetInvoice(context.Background(), invoiceID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	_, err = suite.service.GetInvoice(context.Background(), invoiceID)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	suite.invoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestListMemberInvoices_ClampsLimitAndCaches() {
	ctx := context.Background()
	invoices := []domain.Invoice{
		{InvoiceID: uuid.NewString(), MemberID: suite.member.MemberID, Status: domain.InvoicePaid},
		{InvoiceID: uuid.NewString(), MemberID: suite.member.MemberID, Status: domain.InvoiceUnpaid},
	}
	suite.memberRepo.On("FindMemberByID", ctx, suite.member.MemberID).Return(&suite.member, nil)
	suite.invoiceRepo.On("ListInvoicesByMember", ctx, suite.member.MemberID, 100, (*string)(nil)).Return(invoices, "next-page", nil).Once()

	params := dto.ListInvoicesParams{Limit: 500}
	resp, err := suite.service.ListMemberInvoices(ctx, suite.member.MemberID, params)
	suite.Require().NoError(err)
	again, err := suite.service.ListMemberInvoices(ctx, suite.member.MemberID, params)
	suite.Require().NoError(err)

	suite.Len(resp.Invoices, 2)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("next-page", *resp.NextToken)
	suite.Equal(resp.Invoices[0].InvoiceID, again.Invoices[0].InvoiceID)
	suite.invoiceRepo.AssertNumberOfCalls(suite.T(), "ListInvoicesByMember", 1)
}

func (suite *InvoiceServiceTestSuite) TestListMemberInvoices_UnknownMember() {
	suite.memberRepo.On("FindMemberByID", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ListMemberInvoices(context.Background(), "missing", dto.ListInvoicesParams{Limit: 10})

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.invoiceRepo.AssertNotCalled(suite.T(), "ListInvoicesByMember", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceService_GetInvoiceLedger(t *testing.T) {
	invoiceRepo := new(MockInvoiceRepository)
	service := services.NewInvoiceService(newFakeLedger(), invoiceRepo, new(MockMemberRepository), nil, &fixedNumbers{})
	ledger := &domain.InvoiceLedger{
		Invoice:      domain.Invoice{InvoiceID: "inv-1"},
		Transactions: []domain.Transaction{{TransactionID: "t-1", IsActive: false}, {TransactionID: "t-2", IsActive: true}},
	}
	invoiceRepo.On("FindInvoiceLedger", mock.Anything, "inv-1").Return(ledger, nil).Once()

	got, err := service.GetInvoiceLedger(context.Background(), "inv-1")

	assert.NoError(t, err)
	assert.Len(t, got.Transactions, 2)
	invoiceRepo.AssertExpectations(t)
}
