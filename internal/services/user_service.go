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

// SyncUserInput is the profile payload pushed by the client after the
// identity provider authenticates it.
type SyncUserInput struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email" binding:"required"`
	Phone        string `json:"phone"`
	ProfilePhoto string `json:"profile_photo"`
}

// UserProfile is the caller's own record plus their driver profile, if any.
type UserProfile struct {
	User   *models.User   `json:"user"`
	Driver *models.Driver `json:"driver_info,omitempty"`
}

type UserService interface {
	// SyncUser creates or refreshes the record for a verified subject.
	SyncUser(ctx context.Context, subject string, input *SyncUserInput) (*models.User, error)

	GetMe(ctx context.Context, subject string) (*UserProfile, error)

	// IsDriver reports whether the caller is the driver of the given ride.
	IsDriver(ctx context.Context, subject string, rideID string) (bool, error)

	UpdateEmergencyContact(ctx context.Context, subject string, phone string) error
}

type userService struct {
	userRepo   interfaces.UserRepository
	driverRepo interfaces.DriverRepository
	rideRepo   interfaces.RideRepository
	logger     *logger.Logger
}

func NewUserService(
	userRepo interfaces.UserRepository,
	driverRepo interfaces.DriverRepository,
	rideRepo interfaces.RideRepository,
	logger *logger.Logger,
) UserService {
	return &userService{
		userRepo:   userRepo,
		driverRepo: driverRepo,
		rideRepo:   rideRepo,
		logger:     logger,
	}
}

// resolveSubject maps a verified token subject to the internal user record.
func resolveSubject(ctx context.Context, userRepo interfaces.UserRepository, subject string) (*models.User, error) {
	user, err := userRepo.GetBySubject(ctx, subject)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, apperrors.NotFound(utils.MsgUserNotFound)
		}
		return nil, apperrors.Internal(err)
	}
	return user, nil
}

func (s *userService) SyncUser(ctx context.Context, subject string, input *SyncUserInput) (*models.User, error) {
	user := &models.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		Phone:        input.Phone,
		ProfilePhoto: input.ProfilePhoto,
	}

	stored, err := s.userRepo.UpsertBySubject(ctx, subject, user)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	s.logger.WithUserID(stored.ID).Info("User profile synced")
	return stored, nil
}

func (s *userService) GetMe(ctx context.Context, subject string) (*UserProfile, error) {
	user, err := resolveSubject(ctx, s.userRepo, subject)
	if err != nil {
		return nil, err
	}

	profile := &UserProfile{User: user}

	driver, err := s.driverRepo.GetByUserID(ctx, user.ID)
	if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
		return nil, apperrors.Internal(err)
	}
	if err == nil {
		profile.Driver = driver
	}

	return profile, nil
}

func (s *userService) IsDriver(ctx context.Context, subject string, rideID string) (bool, error) {
	user, err := resolveSubject(ctx, s.userRepo, subject)
	if err != nil {
		return false, err
	}

	id, err := parseObjectID(rideID, utils.MsgRideIDRequired)
	if err != nil {
		return false, err
	}

	ride, err := s.rideRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return false, apperrors.NotFound(utils.MsgRideNotFound)
		}
		return false, apperrors.Internal(err)
	}

	driver, err := s.driverRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return false, nil
		}
		return false, apperrors.Internal(err)
	}

	return ride.DriverID == driver.ID, nil
}

func (s *userService) UpdateEmergencyContact(ctx context.Context, subject string, phone string) error {
	if phone == "" {
		return apperrors.Validation(utils.MsgEmergencyRequired)
	}

	user, err := resolveSubject(ctx, s.userRepo, subject)
	if err != nil {
		return err
	}

	err = s.userRepo.Update(ctx, user.ID, map[string]interface{}{"emergencyphone": phone})
	if err != nil {
		return apperrors.Internal(err)
	}

	return nil
}
