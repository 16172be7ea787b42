package handlers

import (
	"poolride/internal/middleware"
	"poolride/internal/services"
	"poolride/internal/utils"

	"github.com/gin-gonic/gin"
)

type GroupHandler struct {
	groupService services.GroupService
}

func NewGroupHandler(groupService services.GroupService) *GroupHandler {
	return &GroupHandler{
		groupService: groupService,
	}
}

// CreateGroup creates a group with the caller as first member.
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	var input services.GroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	group, err := h.groupService.CreateGroup(c.Request.Context(), middleware.Subject(c), &input)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Group created", group)
}

// GetGroups lists the caller's groups with new-ride flags.
func (h *GroupHandler) GetGroups(c *gin.Context) {
	groups, err := h.groupService.GetGroups(c.Request.Context(), middleware.Subject(c))
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Groups retrieved", groups)
}

// GetGroupByID returns one group with member details.
func (h *GroupHandler) GetGroupByID(c *gin.Context) {
	group, err := h.groupService.GetGroupByID(c.Request.Context(), c.Param("groupId"))
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Group retrieved", group)
}

// UpdateGroup renames or recolors a group.
func (h *GroupHandler) UpdateGroup(c *gin.Context) {
	var input services.GroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.groupService.UpdateGroup(c.Request.Context(), c.Param("groupId"), &input); err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Group updated", nil)
}

// AddUserToGroup adds a member by email.
func (h *GroupHandler) AddUserToGroup(c *gin.Context) {
	var input services.GroupMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	group, err := h.groupService.AddUserToGroup(c.Request.Context(), c.Param("groupId"), &input)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "User added to group", group)
}

// RemoveUserFromGroup removes a member by email.
func (h *GroupHandler) RemoveUserFromGroup(c *gin.Context) {
	var input services.GroupMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	group, err := h.groupService.RemoveUserFromGroup(c.Request.Context(), c.Param("groupId"), &input)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "User removed from group", group)
}
