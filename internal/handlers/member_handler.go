package handlers

import (
	"crms/internal/models"
	"crms/internal/services"
	"crms/internal/utils"
	"crms/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MemberHandler struct {
	memberService services.MemberService
}

func NewMemberHandler(memberService services.MemberService) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
	}
}

// Register creates a member account.
func (h *MemberHandler) Register(c *gin.Context) {
	var request validators.MemberRegisterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	member := &models.Member{
		FirstName:            request.FirstName,
		LastName:             request.LastName,
		Email:                request.Email,
		Phone:                request.Phone,
		DrivingLicenseNumber: request.DrivingLicenseNumber,
	}

	created, err := h.memberService.Register(c.Request.Context(), member)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Member registered successfully", created)
}

// GetProfile returns the authenticated member's profile.
func (h *MemberHandler) GetProfile(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	member, err := h.memberService.GetByID(c.Request.Context(), userID)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Profile retrieved successfully", member)
}

// UpdateProfile patches the authenticated member's profile.
func (h *MemberHandler) UpdateProfile(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request validators.MemberUpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	member, err := h.memberService.GetByID(c.Request.Context(), userID)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	if request.FirstName != nil {
		member.FirstName = *request.FirstName
	}
	if request.LastName != nil {
		member.LastName = *request.LastName
	}
	if request.Phone != nil {
		member.Phone = *request.Phone
	}
	if request.DrivingLicenseNumber != nil {
		member.DrivingLicenseNumber = *request.DrivingLicenseNumber
	}

	updated, err := h.memberService.UpdateProfile(c.Request.Context(), member)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Profile updated successfully", updated)
}

// GetMember returns a member by ID.
func (h *MemberHandler) GetMember(c *gin.Context) {
	memberID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid member ID")
		return
	}

	member, err := h.memberService.GetByID(c.Request.Context(), memberID)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Member retrieved successfully", member)
}

// ListMembers pages through registered members.
func (h *MemberHandler) ListMembers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	members, total, err := h.memberService.List(c.Request.Context(), params)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Members retrieved successfully", members, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Total:      total,
		Count:      len(members),
	})
}
