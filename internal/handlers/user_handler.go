package handlers

import (
	"poolride/internal/middleware"
	"poolride/internal/services"
	"poolride/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// SyncUser creates or refreshes the caller's profile record.
func (h *UserHandler) SyncUser(c *gin.Context) {
	var input services.SyncUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	user, err := h.userService.SyncUser(c.Request.Context(), middleware.Subject(c), &input)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "User synced", user)
}

// GetMe returns the caller's profile plus driver info, if any.
func (h *UserHandler) GetMe(c *gin.Context) {
	profile, err := h.userService.GetMe(c.Request.Context(), middleware.Subject(c))
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Profile retrieved", profile)
}

// IsDriver reports whether the caller drives the given ride.
func (h *UserHandler) IsDriver(c *gin.Context) {
	rideID := c.Query("rideId")
	if rideID == "" {
		utils.BadRequestResponse(c, utils.MsgRideIDRequired)
		return
	}

	isDriver, err := h.userService.IsDriver(c.Request.Context(), middleware.Subject(c), rideID)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Driver check", gin.H{"is_driver": isDriver})
}

type emergencyContactInput struct {
	Phone string `json:"phone"`
}

// UpdateEmergencyContact stores the caller's emergency phone number.
func (h *UserHandler) UpdateEmergencyContact(c *gin.Context) {
	var input emergencyContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	err := h.userService.UpdateEmergencyContact(c.Request.Context(), middleware.Subject(c), input.Phone)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, utils.MsgEmergencyUpdated, nil)
}
