package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/antusaha970/member-management-backend-sub000/internal/core/ports/services"
	"github.com/antusaha970/member-management-backend-sub000/internal/dto"
	"github.com/antusaha970/member-management-backend-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
)

// memberHandler handles members and their stored-credit accounts.
type memberHandler struct {
	memberService portssvc.MemberSvcFacade
}

func newMemberHandler(ms portssvc.MemberSvcFacade) *memberHandler {
	return &memberHandler{memberService: ms}
}

// registerMemberRoutes registers routes related to members.
func registerMemberRoutes(rg *gin.RouterGroup, ms portssvc.MemberSvcFacade) {
	h := newMemberHandler(ms)

	members := rg.Group("/members")
	{
		members.POST("", h.createMember)
		members.GET("", h.listMembers)
		members.GET("/:id", h.getMember)
		members.POST("/:id/account", h.openAccount)
		members.GET("/:id/account", h.getAccount)
		members.POST("/:id/account/deposit", h.deposit)
	}
}

// createMember godoc
// @Summary Register a member
// @Tags members
// @Accept json
// @Produce json
// @Param member body dto.CreateMemberRequest true "Member details"
// @Success 201 {object} dto.MemberResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Membership number taken"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /members [post]
func (h *memberHandler) createMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateMemberRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	member, err := h.memberService.CreateMember(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to create member")
		return
	}

	logger.Info("Member created", slog.String("member_id", member.MemberID))
	c.JSON(http.StatusCreated, dto.ToMemberResponse(member))
}

// listMembers godoc
// @Summary List active members
// @Tags members
// @Produce json
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListMembersResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /members [get]
func (h *memberHandler) listMembers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListMembersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListMembers", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	members, err := h.memberService.ListMembers(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list members")
		return
	}

	resp := dto.ListMembersResponse{Members: make([]dto.MemberResponse, len(members))}
	for i := range members {
		resp.Members[i] = dto.ToMemberResponse(&members[i])
	}
	c.JSON(http.StatusOK, resp)
}

// getMember godoc
// @Summary Get a member
// @Tags members
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} dto.MemberResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /members/{id} [get]
func (h *memberHandler) getMember(c *gin.Context) {
	memberID, ok := pathUUID(c, "member")
	if !ok {
		return
	}
	member, err := h.memberService.GetMember(c.Request.Context(), memberID)
	if err != nil {
		respondError(c, err, "Failed to retrieve member")
		return
	}
	c.JSON(http.StatusOK, dto.ToMemberResponse(member))
}

// openAccount godoc
// @Summary Open a member's stored-credit account
// @Description Returns the existing account when the member already has one.
// @Tags members
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} dto.MemberAccountResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /members/{id}/account [post]
func (h *memberHandler) openAccount(c *gin.Context) {
	memberID, ok := pathUUID(c, "member")
	if !ok {
		return
	}
	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}
	account, err := h.memberService.OpenAccount(c.Request.Context(), actor, memberID)
	if err != nil {
		respondError(c, err, "Failed to open account")
		return
	}
	c.JSON(http.StatusOK, dto.ToMemberAccountResponse(account))
}

// getAccount godoc
// @Summary Get a member's stored-credit account
// @Tags members
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} dto.MemberAccountResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /members/{id}/account [get]
func (h *memberHandler) getAccount(c *gin.Context) {
	memberID, ok := pathUUID(c, "member")
	if !ok {
		return
	}
	account, err := h.memberService.GetAccount(c.Request.Context(), memberID)
	if err != nil {
		respondError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToMemberAccountResponse(account))
}

// deposit godoc
// @Summary Top up a member's stored credit
// @Tags members
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Param deposit body dto.DepositRequest true "Deposit"
// @Success 200 {object} dto.MemberAccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Member has no account"
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /members/{id}/account/deposit [post]
func (h *memberHandler) deposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID, ok := pathUUID(c, "member")
	if !ok {
		return
	}
	var req dto.DepositRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	account, err := h.memberService.Deposit(c.Request.Context(), actor, memberID, req)
	if err != nil {
		respondError(c, err, "Failed to deposit")
		return
	}

	logger.Info("Deposit recorded", slog.String("member_id", memberID), slog.String("amount", req.Amount.String()))
	c.JSON(http.StatusOK, dto.ToMemberAccountResponse(account))
}
