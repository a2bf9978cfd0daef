package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/retail-pos/internal/application/service"
	"github.com/sangkips/retail-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/retail-pos/internal/presentation/http/dto/response"
	"github.com/sangkips/retail-pos/pkg/pagination"
)

// MemberHandler handles loyalty member HTTP requests
type MemberHandler struct {
	memberService *service.MemberService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *service.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// List handles listing members
func (h *MemberHandler) List(c *gin.Context) {
	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.memberService.ListMembers(c.Request.Context(), c.Query("search"), paginationParams(params.Page, params.PerPage))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Members retrieved successfully", result)
}

// Get handles getting a single member
func (h *MemberHandler) Get(c *gin.Context) {
	member, err := h.memberService.GetMember(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Member retrieved successfully", member)
}

// Create handles creating a member
func (h *MemberHandler) Create(c *gin.Context) {
	var req request.MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	member, err := h.memberService.CreateMember(c.Request.Context(), memberInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Member created successfully", member)
}

// Update handles updating a member
func (h *MemberHandler) Update(c *gin.Context) {
	var req request.MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	member, err := h.memberService.UpdateMember(c.Request.Context(), c.Param("id"), memberInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Member updated successfully", member)
}

// Delete handles deleting a member
func (h *MemberHandler) Delete(c *gin.Context) {
	if err := h.memberService.DeleteMember(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func memberInput(req *request.MemberRequest) *service.MemberInput {
	return &service.MemberInput{
		ID:          req.ID,
		Barcode:     req.Barcode,
		Name:        req.Name,
		Address:     req.Address,
		City:        req.City,
		Phone:       req.Phone,
		NPWP:        req.NPWP,
		Deposit:     req.Deposit,
		CreditLimit: req.CreditLimit,
		Level:       req.Level,
		Points:      req.Points,
		IsActive:    req.IsActive,
	}
}
