package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/antusaha970/member-management-backend-sub000/internal/core/ports/services"
	"github.com/antusaha970/member-management-backend-sub000/internal/dto"
	"github.com/antusaha970/member-management-backend-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
)

// paymentHandler exposes the payment processor.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

func newPaymentHandler(ps portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: ps}
}

// registerPaymentRoutes registers the apply and update payment routes.
func registerPaymentRoutes(rg *gin.RouterGroup, ps portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(ps)

	rg.POST("/payment/apply", h.applyPayment)
	rg.PATCH("/invoice/:id", h.updateInvoicePayment)
}

// applyPayment godoc
// @Summary Apply a payment to an invoice
// @Description Settles an unpaid invoice with the tendered amount, optionally drawing the rest from the member's stored credit. Records the transaction, payment, sale, income and due rows in one database transaction.
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body dto.ApplyPaymentRequest true "Payment details"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse "Invalid input or invoice not payable"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Invoice or reference not found"
// @Failure 409 {object} ErrorResponse "Invoice changed concurrently"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /payment/apply [post]
func (h *paymentHandler) applyPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ApplyPaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	logger = logger.With(slog.String("invoice_id", req.InvoiceID))
	logger.Info("Received request to apply payment",
		slog.String("amount", req.Amount.String()),
		slog.Bool("adjust_from_balance", req.AdjustFromBalance))

	invoice, err := h.paymentService.ApplyPayment(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to apply payment")
		return
	}

	logger.Info("Payment applied", slog.String("status", string(invoice.Status)))
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// updateInvoicePayment godoc
// @Summary Correct the paid amount of an invoice
// @Description Replaces the recorded paid amount. Every earlier ledger row of the invoice is deactivated and a fresh set is recorded. The member's stored credit is not touched.
// @Tags payments
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param payment body dto.UpdateInvoicePaymentRequest true "Corrected payment"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoice/{id} [patch]
func (h *paymentHandler) updateInvoicePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID, ok := pathUUID(c, "invoice")
	if !ok {
		return
	}
	var req dto.UpdateInvoicePaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	logger = logger.With(slog.String("invoice_id", invoiceID))
	logger.Info("Received request to update invoice payment", slog.String("paid_amount", req.PaidAmount.String()))

	invoice, err := h.paymentService.UpdateInvoicePayment(c.Request.Context(), actor, invoiceID, req)
	if err != nil {
		respondError(c, err, "Failed to update invoice payment")
		return
	}

	logger.Info("Invoice payment updated", slog.String("status", string(invoice.Status)))
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}
