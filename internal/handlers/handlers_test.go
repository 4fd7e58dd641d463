package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/antusaha970/member-management-backend-sub000/internal/apperrors"
	"github.com/antusaha970/member-management-backend-sub000/internal/core/domain"
	portssvc "github.com/antusaha970/member-management-backend-sub000/internal/core/ports/services"
	"github.com/antusaha970/member-management-backend-sub000/internal/dto"
	"github.com/antusaha970/member-management-backend-sub000/internal/handlers"
	"github.com/antusaha970/member-management-backend-sub000/internal/middleware"
	"github.com/antusaha970/member-management-backend-sub000/internal/platform/config"
	"github.com/antusaha970/member-management-backend-sub000/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type HandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	cfg         *config.Config
	userID      string
	mockPayment *MockPaymentService
	mockInvoice *MockInvoiceService
	mockMember  *MockMemberService
	mockLookup  *MockLookupService
	mockUser    *MockUserService
	mockToken   *MockTokenService
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.cfg = &config.Config{
		JWTSecret:    "test-secret-key-that-is-long-enough",
		JWTIssuer:    "clubledger-test",
		RateLimit:    "1000-M",
		IsProduction: true,
	}
	suite.userID = uuid.NewString()

	suite.mockPayment = new(MockPaymentService)
	suite.mockInvoice = new(MockInvoiceService)
	suite.mockMember = new(MockMemberService)
	suite.mockLookup = new(MockLookupService)
	suite.mockUser = new(MockUserService)
	suite.mockToken = new(MockTokenService)

	container := &portssvc.ServiceContainer{
		Payment: suite.mockPayment,
		Invoice: suite.mockInvoice,
		Member:  suite.mockMember,
		Lookup:  suite.mockLookup,
		User:    suite.mockUser,
		Token:   suite.mockToken,
	}

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	suite.router = gin.New()
	suite.router.Use(middleware.StructuredLoggingMiddleware(quiet))
	suite.Require().NoError(handlers.RegisterRoutes(suite.router, suite.cfg, container))
}

func (suite *HandlerTestSuite) token() string {
	signed, _, err := utils.GenerateJWT(suite.userID, string(domain.RoleCashier), suite.cfg.JWTSecret, time.Hour, suite.cfg.JWTIssuer)
	suite.Require().NoError(err)
	return signed
}

func (suite *HandlerTestSuite) do(method, url string, body any, authed bool) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+suite.token())
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) actor() domain.Actor {
	return domain.Actor{UserID: suite.userID}
}

func sampleInvoice(status domain.InvoiceStatus, total, paid int64) *domain.Invoice {
	return &domain.Invoice{
		InvoiceID:       uuid.NewString(),
		InvoiceNumber:   "INV-01J0000000000000000000000",
		MemberID:        uuid.NewString(),
		InvoiceTypeName: domain.InvoiceTypeFacility,
		CurrencyCode:    "BDT",
		TotalAmount:     decimal.NewFromInt(total),
		PaidAmount:      decimal.NewFromInt(paid),
		BalanceDue:      decimal.NewFromInt(total - paid),
		Status:          status,
		IsActive:        true,
	}
}

func applyBody(invoiceID string, amount string) map[string]any {
	return map[string]any{
		"invoice_id":           invoiceID,
		"payment_method_id":    uuid.NewString(),
		"amount":               amount,
		"income_particular_id": uuid.NewString(),
		"received_from_id":     uuid.NewString(),
	}
}

func decodeError(w *httptest.ResponseRecorder) string {
	var resp handlers.ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return resp.Error
}

// --- Health and auth ---

func (suite *HandlerTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", nil, false)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlerTestSuite) TestLogin_Success() {
	user := &domain.User{UserID: suite.userID, Email: "cashier@club.test", Role: domain.RoleCashier, IsActive: true}
	expiresAt := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	suite.mockUser.On("AuthenticateUser", mock.Anything, "cashier@club.test", "secret-pass").Return(user, nil).Once()
	suite.mockToken.On("GenerateAccessToken", mock.Anything, user).Return("signed-token", expiresAt, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "cashier@club.test", "password": "secret-pass"}, false)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.LoginResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("signed-token", resp.Token)
	suite.True(expiresAt.Equal(resp.ExpiresAt))
	suite.mockUser.AssertExpectations(suite.T())
	suite.mockToken.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestLogin_BadCredentials() {
	suite.mockUser.On("AuthenticateUser", mock.Anything, "cashier@club.test", "wrong-pass").
		Return(nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "cashier@club.test", "password": "wrong-pass"}, false)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal("Invalid email or password", decodeError(w))
	suite.mockToken.AssertNotCalled(suite.T(), "GenerateAccessToken", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestLogin_RateLimited() {
	suite.mockUser.On("AuthenticateUser", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrUnauthorized)

	codes := make([]int, 0, 6)
	for i := 0; i < 6; i++ {
		w := suite.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "a@club.test", "password": "nope-nope"}, false)
		codes = append(codes, w.Code)
	}
	suite.Equal([]int{401, 401, 401, 401, 401, http.StatusTooManyRequests}, codes)
	suite.mockUser.AssertNumberOfCalls(suite.T(), "AuthenticateUser", 5)
}

// --- Payments ---

func (suite *HandlerTestSuite) TestApplyPayment_Success() {
	invoice := sampleInvoice(domain.InvoicePartialPaid, 1000, 400)
	suite.mockPayment.On("ApplyPayment", mock.Anything, suite.actor(),
		mock.MatchedBy(func(req dto.ApplyPaymentRequest) bool {
			return req.InvoiceID == invoice.InvoiceID && req.Amount.Equal(decimal.NewFromInt(400)) && !req.AdjustFromBalance
		}),
	).Return(invoice, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/payment/apply", applyBody(invoice.InvoiceID, "400"), true)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.InvoiceResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.InvoicePartialPaid, resp.Status)
	suite.True(resp.BalanceDue.Equal(decimal.NewFromInt(600)))
	suite.mockPayment.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestApplyPayment_ErrorMapping() {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"validation", fmt.Errorf("%w: amount exceeds invoice total", apperrors.ErrValidation), http.StatusBadRequest, "amount exceeds invoice total"},
		{"not found", fmt.Errorf("%w: invoice", apperrors.ErrNotFound), http.StatusNotFound, "resource not found"},
		{"conflict", fmt.Errorf("%w: invoice", apperrors.ErrConflict), http.StatusConflict, "modified concurrently"},
		{"storage", apperrors.NewAppError(http.StatusInternalServerError, "failed to lock invoice", fmt.Errorf("connection reset")), http.StatusInternalServerError, "Failed to apply payment"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			invoiceID := uuid.NewString()
			suite.mockPayment.On("ApplyPayment", mock.Anything, suite.actor(),
				mock.MatchedBy(func(req dto.ApplyPaymentRequest) bool { return req.InvoiceID == invoiceID }),
			).Return(nil, tt.err).Once()

			w := suite.do(http.MethodPost, "/api/v1/payment/apply", applyBody(invoiceID, "10"), true)

			suite.Equal(tt.wantStatus, w.Code)
			suite.Contains(decodeError(w), tt.wantError)
		})
	}
}

func (suite *HandlerTestSuite) TestApplyPayment_InvalidBody() {
	body := applyBody(uuid.NewString(), "10")
	delete(body, "amount")

	w := suite.do(http.MethodPost, "/api/v1/payment/apply", body, true)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(decodeError(w), "Invalid request format")
	suite.mockPayment.AssertNotCalled(suite.T(), "ApplyPayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestApplyPayment_RequiresToken() {
	w := suite.do(http.MethodPost, "/api/v1/payment/apply", applyBody(uuid.NewString(), "10"), false)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockPayment.AssertNotCalled(suite.T(), "ApplyPayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestUpdateInvoicePayment_Success() {
	invoice := sampleInvoice(domain.InvoicePaid, 1000, 1000)
	invoice.IsFullPaid = true
	suite.mockPayment.On("UpdateInvoicePayment", mock.Anything, suite.actor(), invoice.InvoiceID,
		mock.MatchedBy(func(req dto.UpdateInvoicePaymentRequest) bool {
			return req.PaidAmount.Equal(decimal.NewFromInt(1000)) && req.IncomeParticularID == nil
		}),
	).Return(invoice, nil).Once()

	body := map[string]any{"paid_amount": 1000, "payment_method_id": uuid.NewString()}
	w := suite.do(http.MethodPatch, "/api/v1/invoice/"+invoice.InvoiceID, body, true)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.InvoiceResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.IsFullPaid)
	suite.True(resp.BalanceDue.IsZero())
	suite.mockPayment.AssertExpectations(suite.T())
}

// --- Invoices ---

func (suite *HandlerTestSuite) TestIssueInvoice_Created() {
	invoice := sampleInvoice(domain.InvoiceUnpaid, 750, 0)
	suite.mockInvoice.On("IssueInvoice", mock.Anything, suite.actor(),
		mock.MatchedBy(func(req dto.CreateInvoiceRequest) bool {
			return req.MemberID == invoice.MemberID && req.TotalAmount.Equal(decimal.NewFromInt(750))
		}),
	).Return(invoice, nil).Once()

	body := map[string]any{
		"member_id":     invoice.MemberID,
		"invoice_type":  domain.InvoiceTypeFacility,
		"currency_code": "BDT",
		"total_amount":  "750",
	}
	w := suite.do(http.MethodPost, "/api/v1/invoices", body, true)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.InvoiceResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(invoice.InvoiceID, resp.InvoiceID)
	suite.Equal(domain.InvoiceUnpaid, resp.Status)
}

func (suite *HandlerTestSuite) TestIssueInvoice_UnknownType() {
	body := map[string]any{
		"member_id":     uuid.NewString(),
		"invoice_type":  "Spa",
		"currency_code": "BDT",
		"total_amount":  "10",
	}
	w := suite.do(http.MethodPost, "/api/v1/invoices", body, true)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockInvoice.AssertNotCalled(suite.T(), "IssueInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestGetInvoice_NotFound() {
	id := uuid.NewString()
	suite.mockInvoice.On("GetInvoice", mock.Anything, id).Return(nil, fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, id)).Once()

	w := suite.do(http.MethodGet, "/api/v1/invoices/"+id, nil, true)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestGetInvoiceLedger() {
	invoice := sampleInvoice(domain.InvoiceDue, 500, 0)
	ledger := &domain.InvoiceLedger{
		Invoice: *invoice,
		Transactions: []domain.Transaction{
			{TransactionID: uuid.NewString(), InvoiceID: invoice.InvoiceID, IsActive: false},
			{TransactionID: uuid.NewString(), InvoiceID: invoice.InvoiceID, IsActive: true},
		},
		Dues: []domain.Due{{DueID: uuid.NewString(), InvoiceID: invoice.InvoiceID, IsActive: true}},
	}
	suite.mockInvoice.On("GetInvoiceLedger", mock.Anything, invoice.InvoiceID).Return(ledger, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/invoices/"+invoice.InvoiceID+"/ledger", nil, true)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.InvoiceLedgerResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(invoice.InvoiceID, resp.Invoice.InvoiceID)
	suite.Len(resp.Transactions, 2)
	suite.Len(resp.Dues, 1)
}

func (suite *HandlerTestSuite) TestListMemberInvoices() {
	memberID := uuid.NewString()
	next := "opaque"
	page := &dto.ListInvoicesResponse{
		Invoices:  []dto.InvoiceResponse{dto.ToInvoiceResponse(sampleInvoice(domain.InvoiceUnpaid, 10, 0))},
		NextToken: &next,
	}
	suite.mockInvoice.On("ListMemberInvoices", mock.Anything, memberID,
		mock.MatchedBy(func(p dto.ListInvoicesParams) bool { return p.Limit == 10 && p.NextToken == nil }),
	).Return(page, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/members/"+memberID+"/invoices?limit=10", nil, true)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListInvoicesResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Invoices, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(next, *resp.NextToken)
}

func (suite *HandlerTestSuite) TestListMemberInvoices_BadToken() {
	memberID := uuid.NewString()
	suite.mockInvoice.On("ListMemberInvoices", mock.Anything, memberID, mock.Anything).
		Return(nil, apperrors.NewAppError(http.StatusBadRequest, "invalid pagination token", nil)).Once()

	w := suite.do(http.MethodGet, "/api/v1/members/"+memberID+"/invoices?nextToken=garbage", nil, true)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("invalid pagination token", decodeError(w))
}

// --- Members ---

func (suite *HandlerTestSuite) TestCreateMember() {
	member := &domain.Member{MemberID: uuid.NewString(), MembershipNumber: "M-100", FirstName: "Rahim", IsActive: true}
	suite.mockMember.On("CreateMember", mock.Anything, suite.actor(),
		dto.CreateMemberRequest{MembershipNumber: "M-100", FirstName: "Rahim"},
	).Return(member, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/members", map[string]any{"membership_number": "M-100", "first_name": "Rahim"}, true)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.MemberResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(member.MemberID, resp.MemberID)
}

func (suite *HandlerTestSuite) TestCreateMember_Duplicate() {
	suite.mockMember.On("CreateMember", mock.Anything, suite.actor(), mock.Anything).
		Return(nil, fmt.Errorf("%w: membership number M-100", apperrors.ErrDuplicate)).Once()

	w := suite.do(http.MethodPost, "/api/v1/members", map[string]any{"membership_number": "M-100", "first_name": "Rahim"}, true)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestListMembers_Defaults() {
	members := []domain.Member{{MemberID: uuid.NewString()}, {MemberID: uuid.NewString()}}
	suite.mockMember.On("ListMembers", mock.Anything, dto.ListMembersParams{Limit: 20, Offset: 0}).Return(members, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/members", nil, true)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListMembersResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Members, 2)
}

func (suite *HandlerTestSuite) TestDeposit() {
	memberID := uuid.NewString()
	account := &domain.MemberAccount{AccountID: uuid.NewString(), MemberID: memberID, Balance: decimal.RequireFromString("125.50")}
	suite.mockMember.On("Deposit", mock.Anything, suite.actor(), memberID,
		mock.MatchedBy(func(req dto.DepositRequest) bool { return req.Amount.Equal(decimal.RequireFromString("25.50")) }),
	).Return(account, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/members/"+memberID+"/account/deposit", map[string]any{"amount": "25.50"}, true)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.MemberAccountResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Balance.Equal(decimal.RequireFromString("125.50")))
}

func (suite *HandlerTestSuite) TestGetAccount_NotFound() {
	memberID := uuid.NewString()
	suite.mockMember.On("GetAccount", mock.Anything, memberID).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/members/"+memberID+"/account", nil, true)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestOpenAccount() {
	memberID := uuid.NewString()
	account := &domain.MemberAccount{AccountID: uuid.NewString(), MemberID: memberID, Balance: decimal.Zero}
	suite.mockMember.On("OpenAccount", mock.Anything, suite.actor(), memberID).Return(account, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/members/"+memberID+"/account", nil, true)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockMember.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestMalformedPathID_NotFound() {
	testCases := []struct {
		method string
		path   string
	}{
		{http.MethodPatch, "/api/v1/invoice/abc"},
		{http.MethodGet, "/api/v1/invoices/abc"},
		{http.MethodGet, "/api/v1/invoices/abc/ledger"},
		{http.MethodGet, "/api/v1/members/abc"},
		{http.MethodGet, "/api/v1/members/abc/invoices"},
		{http.MethodPost, "/api/v1/members/abc/account"},
		{http.MethodGet, "/api/v1/members/abc/account"},
		{http.MethodPost, "/api/v1/members/abc/account/deposit"},
	}
	for _, tc := range testCases {
		suite.Run(tc.method+" "+tc.path, func() {
			w := suite.do(tc.method, tc.path, nil, true)

			suite.Equal(http.StatusNotFound, w.Code)
			suite.Contains(decodeError(w), "abc not found")
		})
	}
	suite.mockPayment.AssertNotCalled(suite.T(), "UpdateInvoicePayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockInvoice.AssertNotCalled(suite.T(), "GetInvoice", mock.Anything, mock.Anything)
	suite.mockMember.AssertNotCalled(suite.T(), "GetAccount", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestPathID_Canonicalised() {
	id := uuid.New()
	suite.mockInvoice.On("GetInvoice", mock.Anything, id.String()).Return(sampleInvoice(domain.InvoiceUnpaid, 10, 0), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/invoices/"+strings.ToUpper(id.String()), nil, true)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockInvoice.AssertExpectations(suite.T())
}

// --- Lookups ---

func (suite *HandlerTestSuite) TestLookupRoutes() {
	methods := []domain.Lookup{{ID: uuid.NewString(), Kind: domain.LookupPaymentMethod, Name: "Cash", IsActive: true}}
	suite.mockLookup.On("ListLookups", mock.Anything, domain.LookupPaymentMethod).Return(methods, nil).Once()
	created := &domain.Lookup{ID: uuid.NewString(), Kind: domain.LookupReceivedFrom, Name: "Guest", IsActive: true}
	suite.mockLookup.On("CreateLookup", mock.Anything, suite.actor(), domain.LookupReceivedFrom, "Guest").Return(created, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/payment-methods", nil, true)
	suite.Equal(http.StatusOK, w.Code)
	var list []dto.LookupResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &list))
	suite.Require().Len(list, 1)
	suite.Equal("Cash", list[0].Name)

	w = suite.do(http.MethodPost, "/api/v1/received-from", map[string]string{"name": "Guest"}, true)
	suite.Equal(http.StatusCreated, w.Code)
	var one dto.LookupResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &one))
	suite.Equal(created.ID, one.ID)

	suite.mockLookup.AssertExpectations(suite.T())
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
