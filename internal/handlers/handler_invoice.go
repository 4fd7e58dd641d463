package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/antusaha970/member-management-backend-sub000/internal/core/ports/services"
	"github.com/antusaha970/member-management-backend-sub000/internal/dto"
	"github.com/antusaha970/member-management-backend-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
)

// invoiceHandler handles HTTP requests related to invoices.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

func newInvoiceHandler(is portssvc.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{invoiceService: is}
}

// registerInvoiceRoutes registers routes related to invoices.
func registerInvoiceRoutes(rg *gin.RouterGroup, is portssvc.InvoiceSvcFacade) {
	h := newInvoiceHandler(is)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.issueInvoice)
		invoices.GET("/:id", h.getInvoice)
		invoices.GET("/:id/ledger", h.getInvoiceLedger)
	}
	rg.GET("/members/:id/invoices", h.listMemberInvoices)
}

// issueInvoice godoc
// @Summary Issue an invoice
// @Description Creates an unpaid invoice for an active member.
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Member not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices [post]
func (h *invoiceHandler) issueInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	logger.Info("Received request to issue invoice",
		slog.String("member_id", req.MemberID),
		slog.String("invoice_type", req.InvoiceType))

	invoice, err := h.invoiceService.IssueInvoice(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to issue invoice")
		return
	}

	logger.Info("Invoice issued", slog.String("invoice_id", invoice.InvoiceID), slog.String("invoice_number", invoice.InvoiceNumber))
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

// getInvoice godoc
// @Summary Get an invoice
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	invoiceID, ok := pathUUID(c, "invoice")
	if !ok {
		return
	}
	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		respondError(c, err, "Failed to retrieve invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// getInvoiceLedger godoc
// @Summary Get the ledger history of an invoice
// @Description Returns every transaction, payment, sale, income, due and member due recorded for the invoice, active or superseded.
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceLedgerResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/{id}/ledger [get]
func (h *invoiceHandler) getInvoiceLedger(c *gin.Context) {
	invoiceID, ok := pathUUID(c, "invoice")
	if !ok {
		return
	}
	ledger, err := h.invoiceService.GetInvoiceLedger(c.Request.Context(), invoiceID)
	if err != nil {
		respondError(c, err, "Failed to retrieve invoice ledger")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceLedgerResponse(ledger))
}

// listMemberInvoices godoc
// @Summary List a member's invoices
// @Description Newest first. Pass next_token from the previous page to continue.
// @Tags invoices
// @Produce json
// @Param id path string true "Member ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Member not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /members/{id}/invoices [get]
func (h *invoiceHandler) listMemberInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID, ok := pathUUID(c, "member")
	if !ok {
		return
	}
	var params dto.ListInvoicesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListMemberInvoices", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.invoiceService.ListMemberInvoices(c.Request.Context(), memberID, params)
	if err != nil {
		respondError(c, err, "Failed to list invoices")
		return
	}

	logger.Info("Invoices listed", slog.Int("count", len(resp.Invoices)))
	c.JSON(http.StatusOK, resp)
}
