package handlers

import (
	"poolride/internal/middleware"
	"poolride/internal/services"
	"poolride/internal/utils"

	"github.com/gin-gonic/gin"
)

type RideHandler struct {
	rideService services.RideService
}

func NewRideHandler(rideService services.RideService) *RideHandler {
	return &RideHandler{
		rideService: rideService,
	}
}

// CreateRide publishes a new ride for the authenticated driver.
func (h *RideHandler) CreateRide(c *gin.Context) {
	var input services.CreateRideInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	ride, err := h.rideService.CreateRide(c.Request.Context(), middleware.Subject(c), &input)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Ride created", ride)
}

// BookRide reserves a seat on a pending ride.
func (h *RideHandler) BookRide(c *gin.Context) {
	err := h.rideService.BookRide(c.Request.Context(), middleware.Subject(c), c.Param("rideId"))
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, utils.MsgRideBooked, nil)
}

// UnbookRide releases the caller's seat on a pending ride.
func (h *RideHandler) UnbookRide(c *gin.Context) {
	err := h.rideService.UnbookRide(c.Request.Context(), middleware.Subject(c), c.Param("rideId"))
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, utils.MsgRideUnbooked, nil)
}

// StartRide returns the boarding roster to the ride's driver.
func (h *RideHandler) StartRide(c *gin.Context) {
	roster, err := h.rideService.StartRide(c.Request.Context(), middleware.Subject(c), c.Param("rideId"))
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Boarding roster", roster)
}

// ValidateBoarding checks one passenger's boarding code.
func (h *RideHandler) ValidateBoarding(c *gin.Context) {
	var input services.ValidateBoardingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	ongoing, err := h.rideService.ValidateBoarding(c.Request.Context(), c.Param("rideId"), &input)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	if ongoing {
		utils.SuccessResponse(c, utils.MsgAllOTPsValidated, nil)
		return
	}
	utils.SuccessResponse(c, utils.MsgOTPValidated, nil)
}

// CompleteRide marks an ongoing ride completed.
func (h *RideHandler) CompleteRide(c *gin.Context) {
	err := h.rideService.CompleteRide(c.Request.Context(), middleware.Subject(c), c.Param("rideId"))
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, utils.MsgRideCompleted, nil)
}

// CancelRide cancels a pending or ongoing ride.
func (h *RideHandler) CancelRide(c *gin.Context) {
	err := h.rideService.CancelRide(c.Request.Context(), middleware.Subject(c), c.Param("rideId"))
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, utils.MsgRideCancelled, nil)
}

// GetMyOTP returns the caller's boarding code for a pending ride.
func (h *RideHandler) GetMyOTP(c *gin.Context) {
	otp, err := h.rideService.GetMyOTP(c.Request.Context(), middleware.Subject(c), c.Param("rideId"))
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "OTP retrieved", gin.H{"otp": otp})
}

// SearchRides lists rides the caller drives or rides in.
func (h *RideHandler) SearchRides(c *gin.Context) {
	rides, err := h.rideService.SearchRides(c.Request.Context(), middleware.Subject(c))
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Rides retrieved", rides)
}

// SearchUnrelatedRides lists bookable rides the caller has no part in.
func (h *RideHandler) SearchUnrelatedRides(c *gin.Context) {
	rides, err := h.rideService.SearchUnrelatedRides(c.Request.Context(), middleware.Subject(c))
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Rides retrieved", rides)
}

// GetRideByID returns one ride with display info joined in.
func (h *RideHandler) GetRideByID(c *gin.Context) {
	ride, err := h.rideService.GetRideByID(c.Request.Context(), c.Param("rideId"))
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Ride retrieved", ride)
}
