package services

import (
	"context"
	"errors"

	"poolride/internal/apperrors"
	"poolride/internal/models"
	"poolride/internal/repositories/interfaces"
	"poolride/internal/utils"
	"poolride/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DriverInput is the vehicle and license payload for creating or
// replacing a driver profile.
type DriverInput struct {
	LicenseNo string `json:"license_no" binding:"required"`
	CarName   string `json:"car_name" binding:"required"`
	Seats     int    `json:"seats" binding:"required,gt=0"`
}

// DriverDetails joins the driver profile with its owner's display fields.
type DriverDetails struct {
	Driver       *models.Driver `json:"driver"`
	FirstName    string         `json:"first_name"`
	LastName     string         `json:"last_name"`
	ProfilePhoto string         `json:"profile_photo"`
	Rating       float64        `json:"rating"`
}

type DriverService interface {
	// CreateDriver registers the caller as a driver. One profile per
	// user; creating it also marks the user's license as validated.
	CreateDriver(ctx context.Context, subject string, input *DriverInput) (*models.Driver, error)

	// UpdateDriver replaces the vehicle and license details.
	UpdateDriver(ctx context.Context, subject string, input *DriverInput) (*models.Driver, error)

	GetDriver(ctx context.Context, driverID string) (*DriverDetails, error)
}

type driverService struct {
	driverRepo interfaces.DriverRepository
	userRepo   interfaces.UserRepository
	logger     *logger.Logger
}

func NewDriverService(
	driverRepo interfaces.DriverRepository,
	userRepo interfaces.UserRepository,
	logger *logger.Logger,
) DriverService {
	return &driverService{
		driverRepo: driverRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

func (s *driverService) CreateDriver(ctx context.Context, subject string, input *DriverInput) (*models.Driver, error) {
	user, err := resolveSubject(ctx, s.userRepo, subject)
	if err != nil {
		return nil, err
	}

	driver := &models.Driver{
		UserID:    user.ID,
		LicenseNo: input.LicenseNo,
		CarName:   input.CarName,
		Seats:     input.Seats,
	}

	if err := s.driverRepo.Create(ctx, driver); err != nil {
		if errors.Is(err, interfaces.ErrDuplicate) {
			return nil, apperrors.Conflict(utils.MsgDriverExists)
		}
		return nil, apperrors.Internal(err)
	}

	// The profile carries the license, so registering one validates the
	// user for publishing rides.
	err = s.userRepo.Update(ctx, user.ID, map[string]interface{}{"license_validated": true})
	if err != nil {
		s.logger.WithError(err).WithUserID(user.ID).Error("Failed to flag license as validated")
	}

	s.logger.WithUserID(user.ID).WithField("driver_id", driver.ID.Hex()).Info("Driver profile created")
	return driver, nil
}

func (s *driverService) UpdateDriver(ctx context.Context, subject string, input *DriverInput) (*models.Driver, error) {
	user, err := resolveSubject(ctx, s.userRepo, subject)
	if err != nil {
		return nil, err
	}

	driver, err := s.driverRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, apperrors.NotFound(utils.MsgDriverNotFound)
		}
		return nil, apperrors.Internal(err)
	}

	updates := map[string]interface{}{
		"license_no": input.LicenseNo,
		"car_name":   input.CarName,
		"seats":      input.Seats,
	}
	if err := s.driverRepo.Update(ctx, driver.ID, updates); err != nil {
		return nil, apperrors.Internal(err)
	}

	driver.LicenseNo = input.LicenseNo
	driver.CarName = input.CarName
	driver.Seats = input.Seats
	return driver, nil
}

func (s *driverService) GetDriver(ctx context.Context, driverID string) (*DriverDetails, error) {
	id, err := primitive.ObjectIDFromHex(driverID)
	if err != nil {
		return nil, apperrors.NotFound(utils.MsgDriverNotFound)
	}

	driver, err := s.driverRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, apperrors.NotFound(utils.MsgDriverNotFound)
		}
		return nil, apperrors.Internal(err)
	}

	details := &DriverDetails{Driver: driver, Rating: driver.Rating()}

	owner, err := s.userRepo.GetByID(ctx, driver.UserID)
	if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
		return nil, apperrors.Internal(err)
	}
	if err == nil {
		details.FirstName = owner.FirstName
		details.LastName = owner.LastName
		details.ProfilePhoto = owner.ProfilePhoto
	}

	return details, nil
}
