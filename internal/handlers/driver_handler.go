package handlers

import (
	"poolride/internal/middleware"
	"poolride/internal/services"
	"poolride/internal/utils"

	"github.com/gin-gonic/gin"
)

type DriverHandler struct {
	driverService services.DriverService
}

func NewDriverHandler(driverService services.DriverService) *DriverHandler {
	return &DriverHandler{
		driverService: driverService,
	}
}

// CreateDriver registers the caller as a driver.
func (h *DriverHandler) CreateDriver(c *gin.Context) {
	var input services.DriverInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	driver, err := h.driverService.CreateDriver(c.Request.Context(), middleware.Subject(c), &input)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Driver profile created", driver)
}

// UpdateDriver replaces the caller's vehicle and license details.
func (h *DriverHandler) UpdateDriver(c *gin.Context) {
	var input services.DriverInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	driver, err := h.driverService.UpdateDriver(c.Request.Context(), middleware.Subject(c), &input)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Driver profile updated", driver)
}

// GetDriver returns a driver profile with display info.
func (h *DriverHandler) GetDriver(c *gin.Context) {
	details, err := h.driverService.GetDriver(c.Request.Context(), c.Param("driverId"))
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Driver retrieved", details)
}
