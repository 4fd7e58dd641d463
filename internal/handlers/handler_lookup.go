package handlers

import (
	"log/slog"
	"net/http"

	"github.com/antusaha970/member-management-backend-sub000/internal/core/domain"
	portssvc "github.com/antusaha970/member-management-backend-sub000/internal/core/ports/services"
	"github.com/antusaha970/member-management-backend-sub000/internal/dto"
	"github.com/antusaha970/member-management-backend-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
)

// lookupPaths maps each reference table onto its route.
var lookupPaths = map[string]domain.LookupKind{
	"/payment-methods":    domain.LookupPaymentMethod,
	"/income-particulars": domain.LookupIncomeParticular,
	"/received-from":      domain.LookupReceivedFrom,
}

type lookupHandler struct {
	lookupService portssvc.LookupSvcFacade
}

func newLookupHandler(ls portssvc.LookupSvcFacade) *lookupHandler {
	return &lookupHandler{lookupService: ls}
}

func registerLookupRoutes(rg *gin.RouterGroup, ls portssvc.LookupSvcFacade) {
	h := newLookupHandler(ls)

	for path, kind := range lookupPaths {
		rg.GET(path, h.listLookups(kind))
		rg.POST(path, h.createLookup(kind))
	}
}

// listLookups godoc
// @Summary List active reference rows
// @Tags lookups
// @Produce json
// @Success 200 {array} dto.LookupResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /payment-methods [get]
// @Router /income-particulars [get]
// @Router /received-from [get]
func (h *lookupHandler) listLookups(kind domain.LookupKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		lookups, err := h.lookupService.ListLookups(c.Request.Context(), kind)
		if err != nil {
			respondError(c, err, "Failed to list "+string(kind))
			return
		}
		c.JSON(http.StatusOK, dto.ToLookupResponses(lookups))
	}
}

// createLookup godoc
// @Summary Add a reference row
// @Tags lookups
// @Accept json
// @Produce json
// @Param lookup body dto.CreateLookupRequest true "Name"
// @Success 201 {object} dto.LookupResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Name already exists"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /payment-methods [post]
// @Router /income-particulars [post]
// @Router /received-from [post]
func (h *lookupHandler) createLookup(kind domain.LookupKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.CreateLookupRequest
		if !bindJSON(c, &req) {
			return
		}
		actor, ok := actorFromRequest(c)
		if !ok {
			return
		}

		lookup, err := h.lookupService.CreateLookup(c.Request.Context(), actor, kind, req.Name)
		if err != nil {
			respondError(c, err, "Failed to create "+string(kind))
			return
		}

		middleware.GetLoggerFromCtx(c.Request.Context()).Info("Lookup created",
			slog.String("kind", string(kind)), slog.String("id", lookup.ID))
		c.JSON(http.StatusCreated, dto.ToLookupResponses([]domain.Lookup{*lookup})[0])
	}
}
