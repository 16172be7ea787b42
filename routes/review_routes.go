package routes

import (
	"poolride/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupReviewRoutes mounts the driver review endpoint on its own
// resource prefix.
func SetupReviewRoutes(r *gin.RouterGroup, reviewHandler *handlers.ReviewHandler) {
	reviews := r.Group("/reviews")
	{
		reviews.POST("/:rideId/reviews", reviewHandler.SubmitReview)
	}
}
