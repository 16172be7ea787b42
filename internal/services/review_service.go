package services

import (
	"context"
	"errors"

	"poolride/internal/apperrors"
	"poolride/internal/models"
	"poolride/internal/repositories/interfaces"
	"poolride/internal/utils"
	"poolride/pkg/logger"
)

// ReviewInput is a passenger's post-ride rating of the driver.
type ReviewInput struct {
	Rating float64 `json:"rating" binding:"required,gte=1,lte=5"`
}

type ReviewService interface {
	// SubmitReview accumulates a rating into the driver's running
	// score. Only passengers of a completed ride may review it.
	SubmitReview(ctx context.Context, subject string, rideID string, input *ReviewInput) error
}

type reviewService struct {
	rideRepo   interfaces.RideRepository
	driverRepo interfaces.DriverRepository
	userRepo   interfaces.UserRepository
	logger     *logger.Logger
}

func NewReviewService(
	rideRepo interfaces.RideRepository,
	driverRepo interfaces.DriverRepository,
	userRepo interfaces.UserRepository,
	logger *logger.Logger,
) ReviewService {
	return &reviewService{
		rideRepo:   rideRepo,
		driverRepo: driverRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

func (s *reviewService) SubmitReview(ctx context.Context, subject string, rideID string, input *ReviewInput) error {
	user, err := resolveSubject(ctx, s.userRepo, subject)
	if err != nil {
		return err
	}

	id, err := parseObjectID(rideID, utils.MsgRideIDRequired)
	if err != nil {
		return err
	}

	ride, err := s.rideRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return apperrors.NotFound(utils.MsgRideNotCompleted)
		}
		return apperrors.Internal(err)
	}

	if ride.Status != models.RideStatusCompleted {
		return apperrors.Validation(utils.MsgRideNotCompleted)
	}
	if !ride.HasPassenger(user.ID) {
		return apperrors.Forbidden(utils.MsgReviewNotPassenger)
	}

	if err := s.driverRepo.AddReview(ctx, ride.DriverID, input.Rating); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return apperrors.NotFound(utils.MsgDriverNotFound)
		}
		return apperrors.Internal(err)
	}

	s.logger.WithRideID(ride.ID).WithUserID(user.ID).Info("Review submitted")
	return nil
}
