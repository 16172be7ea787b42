package routes

import (
	"poolride/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupRideRoutes mounts the ride lifecycle endpoints, including reviews
// of a ride's driver.
func SetupRideRoutes(r *gin.RouterGroup, rideHandler *handlers.RideHandler, reviewHandler *handlers.ReviewHandler) {
	rides := r.Group("/rides")
	{
		rides.POST("/", rideHandler.CreateRide)
		rides.GET("/", rideHandler.SearchRides)
		rides.GET("/unrelated", rideHandler.SearchUnrelatedRides)
		rides.GET("/:rideId", rideHandler.GetRideByID)
		rides.POST("/:rideId/book", rideHandler.BookRide)
		rides.POST("/:rideId/join", rideHandler.BookRide)
		rides.POST("/:rideId/unbook", rideHandler.UnbookRide)
		rides.POST("/:rideId/start", rideHandler.StartRide)
		rides.POST("/:rideId/validate", rideHandler.ValidateBoarding)
		rides.POST("/:rideId/complete", rideHandler.CompleteRide)
		rides.POST("/:rideId/cancel", rideHandler.CancelRide)
		rides.GET("/:rideId/myotp", rideHandler.GetMyOTP)
		rides.POST("/:rideId/reviews", reviewHandler.SubmitReview)
	}
}
