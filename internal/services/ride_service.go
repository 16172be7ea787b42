package services

import (
	"context"
	"errors"
	"time"

	"poolride/internal/apperrors"
	"poolride/internal/models"
	"poolride/internal/repositories/interfaces"
	"poolride/internal/utils"
	"poolride/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateRideInput is the publish-a-ride payload.
type CreateRideInput struct {
	From            string    `json:"from" binding:"required"`
	To              string    `json:"to" binding:"required"`
	Cost            float64   `json:"cost" binding:"required"`
	DateTime        string    `json:"date_time" binding:"required"`
	Seats           int       `json:"seats" binding:"required,gt=0"`
	FromCoordinates []float64 `json:"from_coordinates" binding:"required"`
	ToCoordinates   []float64 `json:"to_coordinates" binding:"required"`
}

// ValidateBoardingInput is the driver's check of one passenger's code.
type ValidateBoardingInput struct {
	UserID       string `json:"user_id" binding:"required"`
	OTP          string `json:"otp" binding:"required"`
	AllValidated bool   `json:"all_validated"`
}

// BoardingPassenger is one roster row shown to the driver at pickup.
type BoardingPassenger struct {
	UserID    primitive.ObjectID `json:"user_id"`
	FirstName string             `json:"first_name"`
	OTP       string             `json:"otp"`
}

// RideDriverSummary is the driver display block joined onto ride reads.
type RideDriverSummary struct {
	ID           primitive.ObjectID `json:"id"`
	FirstName    string             `json:"first_name"`
	LastName     string             `json:"last_name"`
	ProfilePhoto string             `json:"profile_photo"`
	CarName      string             `json:"car_name"`
	Rating       float64            `json:"rating"`
}

// RidePassengerSummary is one passenger's display block.
type RidePassengerSummary struct {
	UserID       primitive.ObjectID `json:"user_id"`
	FirstName    string             `json:"first_name"`
	LastName     string             `json:"last_name"`
	ProfilePhoto string             `json:"profile_photo"`
}

// RideDetails is a ride with driver and passenger display info joined in.
type RideDetails struct {
	Ride       *models.Ride           `json:"ride"`
	Driver     *RideDriverSummary     `json:"driver,omitempty"`
	Passengers []RidePassengerSummary `json:"passenger_info"`
}

type RideService interface {
	CreateRide(ctx context.Context, subject string, input *CreateRideInput) (*models.Ride, error)

	// BookRide reserves one seat and generates the caller's boarding OTP.
	BookRide(ctx context.Context, subject string, rideID string) error

	// UnbookRide releases the caller's seat on a pending ride.
	UnbookRide(ctx context.Context, subject string, rideID string) error

	// StartRide returns the boarding roster to the ride's driver.
	StartRide(ctx context.Context, subject string, rideID string) ([]*BoardingPassenger, error)

	// ValidateBoarding checks one passenger's code. When the driver
	// reports all passengers validated it also flips the ride to
	// ongoing; the returned bool says whether that flip happened.
	ValidateBoarding(ctx context.Context, rideID string, input *ValidateBoardingInput) (bool, error)

	CompleteRide(ctx context.Context, subject string, rideID string) error
	CancelRide(ctx context.Context, subject string, rideID string) error

	// GetMyOTP returns the caller's own boarding code on a pending ride.
	GetMyOTP(ctx context.Context, subject string, rideID string) (string, error)

	// SearchRides returns rides the caller drives or rides in.
	SearchRides(ctx context.Context, subject string) ([]*RideDetails, error)

	// SearchUnrelatedRides returns bookable rides the caller has no part in.
	SearchUnrelatedRides(ctx context.Context, subject string) ([]*RideDetails, error)

	GetRideByID(ctx context.Context, rideID string) (*RideDetails, error)
}

type rideService struct {
	rideRepo   interfaces.RideRepository
	userRepo   interfaces.UserRepository
	driverRepo interfaces.DriverRepository
	recorder   Recorder
	logger     *logger.Logger
}

func NewRideService(
	rideRepo interfaces.RideRepository,
	userRepo interfaces.UserRepository,
	driverRepo interfaces.DriverRepository,
	recorder Recorder,
	logger *logger.Logger,
) RideService {
	return &rideService{
		rideRepo:   rideRepo,
		userRepo:   userRepo,
		driverRepo: driverRepo,
		recorder:   recorder,
		logger:     logger,
	}
}

func parseObjectID(hex string, message string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, apperrors.Validation(message)
	}
	return id, nil
}

func (s *rideService) CreateRide(ctx context.Context, subject string, input *CreateRideInput) (*models.Ride, error) {
	departure, err := time.Parse(time.RFC3339, input.DateTime)
	if err != nil {
		return nil, apperrors.Validation(utils.MsgInvalidDateTime)
	}

	now := time.Now()
	if departure.Before(now) {
		return nil, apperrors.Validation(utils.MsgRideInPast)
	}
	if departure.Before(now.Add(utils.MinScheduleLead)) {
		return nil, apperrors.Validation(utils.MsgRideTooSoon)
	}

	user, err := resolveSubject(ctx, s.userRepo, subject)
	if err != nil {
		return nil, err
	}

	driver, err := s.driverRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, apperrors.Forbidden(utils.MsgNotADriver)
		}
		return nil, apperrors.Internal(err)
	}

	if !user.LicenseValidated || !driver.HasVehicleDetails() {
		return nil, apperrors.Forbidden(utils.MsgMissingDriverInfo)
	}
	if input.Seats > driver.Seats {
		return nil, apperrors.Forbidden(utils.MsgTooManySeats)
	}

	ride := &models.Ride{
		From:            input.From,
		To:              input.To,
		Cost:            input.Cost,
		DateTime:        departure,
		DriverID:        driver.ID,
		Seats:           input.Seats,
		FromCoordinates: input.FromCoordinates,
		ToCoordinates:   input.ToCoordinates,
	}
	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.logger.WithRideID(ride.ID).WithUserID(user.ID).Info("Ride created")
	s.recorder.Record(ctx, Event{
		Kind:       EventRideCreated,
		Ride:       ride,
		Actor:      user,
		DriverName: user.FullName(),
	})

	return ride, nil
}

func (s *rideService) BookRide(ctx context.Context, subject string, rideID string) error {
	user, err := resolveSubject(ctx, s.userRepo, subject)
	if err != nil {
		return err
	}

	id, err := parseObjectID(rideID, utils.MsgRideIDRequired)
	if err != nil {
		return err
	}

	ride, err := s.getRideForBooking(ctx, id, user)
	if err != nil {
		return err
	}

	otp := utils.GenerateOTP(utils.OTPLength)

	entry := models.PassengerEntry{UserID: user.ID, OTP: otp}
	if err := s.rideRepo.AddPassenger(ctx, id, entry); err != nil {
		if errors.Is(err, interfaces.ErrConditionFailed) {
			// Lost a race since the pre-read; re-read to say why. When
			// the re-read shows no lasting cause the ride changed under
			// us mid-request, which is still a conflict, not a server
			// fault.
			if _, err := s.getRideForBooking(ctx, id, user); err != nil {
				return err
			}
			return apperrors.Conflict(utils.MsgRideNotAvailable)
		}
		return apperrors.Internal(err)
	}

	s.logger.WithRideID(id).WithUserID(user.ID).Info("Ride booked")
	s.recorder.Record(ctx, Event{
		Kind:       EventPassengerBooked,
		Ride:       ride,
		Actor:      user,
		DriverName: s.driverName(ctx, ride.DriverID),
	})

	return nil
}

// getRideForBooking reads the ride and rejects every condition that
// would make the booking fail, with its specific message.
func (s *rideService) getRideForBooking(ctx context.Context, id primitive.ObjectID, user *models.User) (*models.Ride, error) {
	ride, err := s.rideRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, apperrors.NotFound(utils.MsgRideNotAvailable)
		}
		return nil, apperrors.Internal(err)
	}

	if ride.Status != models.RideStatusPending {
		return nil, apperrors.Validation(utils.MsgRideNotAvailable)
	}
	if ride.HasPassenger(user.ID) {
		return nil, apperrors.Conflict(utils.MsgAlreadyBooked)
	}
	if ride.Seats <= 0 {
		return nil, apperrors.Validation(utils.MsgNoSeatsAvailable)
	}

	driver, err := s.driverRepo.GetByUserID(ctx, user.ID)
	if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
		return nil, apperrors.Internal(err)
	}
	if err == nil && driver.ID == ride.DriverID {
		return nil, apperrors.Forbidden(utils.MsgDriverSelfBooking)
	}

	return ride, nil
}

func (s *rideService) UnbookRide(ctx context.Context, subject string, rideID string) error {
	user, err := resolveSubject(ctx, s.userRepo, subject)
	if err != nil {
		return err
	}

	id, err := parseObjectID(rideID, utils.MsgRideIDRequired)
	if err != nil {
		return err
	}

	ride, err := s.getRideForUnbooking(ctx, id, user)
	if err != nil {
		return err
	}

	if err := s.rideRepo.RemovePassenger(ctx, id, user.ID); err != nil {
		if errors.Is(err, interfaces.ErrConditionFailed) {
			if _, err := s.getRideForUnbooking(ctx, id, user); err != nil {
				return err
			}
			return apperrors.Internal(err)
		}
		return apperrors.Internal(err)
	}

	s.logger.WithRideID(id).WithUserID(user.ID).Info("Ride unbooked")
	s.recorder.Record(ctx, Event{
		Kind:  EventPassengerUnbooked,
		Ride:  ride,
		Actor: user,
	})

	return nil
}

func (s *rideService) getRideForUnbooking(ctx context.Context, id primitive.ObjectID, user *models.User) (*models.Ride, error) {
	ride, err := s.rideRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, apperrors.NotFound(utils.MsgRideNotAvailable)
		}
		return nil, apperrors.Internal(err)
	}

	if ride.Status != models.RideStatusPending {
		return nil, apperrors.Validation(utils.MsgRideNotAvailable)
	}
	if !ride.HasPassenger(user.ID) {
		return nil, apperrors.Validation(utils.MsgNotAPassenger)
	}

	return ride, nil
}

func (s *rideService) StartRide(ctx context.Context, subject string, rideID string) ([]*BoardingPassenger, error) {
	user, err := resolveSubject(ctx, s.userRepo, subject)
	if err != nil {
		return nil, err
	}

	id, err := parseObjectID(rideID, utils.MsgRideIDRequired)
	if err != nil {
		return nil, err
	}

	ride, err := s.rideRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, apperrors.NotFound(utils.MsgRideNotFound)
		}
		return nil, apperrors.Internal(err)
	}

	driver, err := s.driverRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, apperrors.Forbidden(utils.MsgNotADriver)
		}
		return nil, apperrors.Internal(err)
	}
	if driver.ID != ride.DriverID {
		return nil, apperrors.Forbidden(utils.MsgNotADriver)
	}

	roster := make([]*BoardingPassenger, 0, len(ride.Passengers))
	for _, entry := range ride.Passengers {
		row := &BoardingPassenger{UserID: entry.UserID, OTP: entry.OTP}
		passenger, err := s.userRepo.GetByID(ctx, entry.UserID)
		if err == nil {
			row.FirstName = passenger.FirstName
		}
		roster = append(roster, row)
	}

	return roster, nil
}

func (s *rideService) ValidateBoarding(ctx context.Context, rideID string, input *ValidateBoardingInput) (bool, error) {
	id, err := parseObjectID(rideID, utils.MsgRideIDRequired)
	if err != nil {
		return false, err
	}

	passengerID, err := parseObjectID(input.UserID, utils.MsgInvalidOTP)
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

	if ride.Status != models.RideStatusPending {
		return false, apperrors.Validation(utils.MsgRideNotAvailable)
	}
	if !ride.HasValidationOTP(passengerID, input.OTP) {
		return false, apperrors.Validation(utils.MsgInvalidOTP)
	}

	if !input.AllValidated {
		return false, nil
	}

	err = s.rideRepo.FinalizeBoarding(ctx, id, passengerID, input.OTP)
	if err != nil {
		if errors.Is(err, interfaces.ErrConditionFailed) {
			return false, s.classifyBoardingFailure(ctx, id, passengerID, input.OTP)
		}
		return false, apperrors.Internal(err)
	}

	s.logger.WithRideID(id).Info("All passengers validated, ride ongoing")
	return true, nil
}

func (s *rideService) classifyBoardingFailure(ctx context.Context, id, passengerID primitive.ObjectID, otp string) error {
	ride, err := s.rideRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return apperrors.NotFound(utils.MsgRideNotFound)
		}
		return apperrors.Internal(err)
	}
	if ride.Status != models.RideStatusPending {
		return apperrors.Validation(utils.MsgRideNotAvailable)
	}
	if !ride.HasValidationOTP(passengerID, otp) {
		return apperrors.Validation(utils.MsgInvalidOTP)
	}
	return apperrors.Internal(interfaces.ErrConditionFailed)
}

func (s *rideService) CompleteRide(ctx context.Context, subject string, rideID string) error {
	user, ride, err := s.getRideAsDriver(ctx, subject, rideID, utils.MsgOnlyDriverComplete)
	if err != nil {
		return err
	}

	err = s.rideRepo.UpdateStatus(ctx, ride.ID, []models.RideStatus{models.RideStatusOngoing}, models.RideStatusCompleted)
	if err != nil {
		if errors.Is(err, interfaces.ErrConditionFailed) {
			return apperrors.Validation(utils.MsgRideNotAvailable)
		}
		return apperrors.Internal(err)
	}

	s.logger.WithRideID(ride.ID).Info("Ride completed")
	s.recorder.Record(ctx, Event{
		Kind:       EventRideCompleted,
		Ride:       ride,
		Actor:      user,
		DriverName: user.FullName(),
	})

	return nil
}

func (s *rideService) CancelRide(ctx context.Context, subject string, rideID string) error {
	user, ride, err := s.getRideAsDriver(ctx, subject, rideID, utils.MsgOnlyDriverCancel)
	if err != nil {
		return err
	}

	err = s.rideRepo.UpdateStatus(ctx, ride.ID,
		[]models.RideStatus{models.RideStatusPending, models.RideStatusOngoing},
		models.RideStatusCancelled)
	if err != nil {
		if errors.Is(err, interfaces.ErrConditionFailed) {
			return apperrors.Validation(utils.MsgRideNotAvailable)
		}
		return apperrors.Internal(err)
	}

	s.logger.WithRideID(ride.ID).Info("Ride cancelled")
	s.recorder.Record(ctx, Event{
		Kind:       EventRideCancelled,
		Ride:       ride,
		Actor:      user,
		DriverName: user.FullName(),
	})

	return nil
}

// getRideAsDriver loads the ride and verifies the caller drives it.
func (s *rideService) getRideAsDriver(ctx context.Context, subject, rideID, forbiddenMsg string) (*models.User, *models.Ride, error) {
	user, err := resolveSubject(ctx, s.userRepo, subject)
	if err != nil {
		return nil, nil, err
	}

	id, err := parseObjectID(rideID, utils.MsgRideIDRequired)
	if err != nil {
		return nil, nil, err
	}

	ride, err := s.rideRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, nil, apperrors.NotFound(utils.MsgRideNotFound)
		}
		return nil, nil, apperrors.Internal(err)
	}

	driver, err := s.driverRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, nil, apperrors.Forbidden(forbiddenMsg)
		}
		return nil, nil, apperrors.Internal(err)
	}
	if driver.ID != ride.DriverID {
		return nil, nil, apperrors.Forbidden(forbiddenMsg)
	}

	return user, ride, nil
}

func (s *rideService) GetMyOTP(ctx context.Context, subject string, rideID string) (string, error) {
	user, err := resolveSubject(ctx, s.userRepo, subject)
	if err != nil {
		return "", err
	}

	id, err := parseObjectID(rideID, utils.MsgRideIDRequired)
	if err != nil {
		return "", err
	}

	ride, err := s.rideRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return "", apperrors.NotFound(utils.MsgRideNotFound)
		}
		return "", apperrors.Internal(err)
	}

	if ride.Status != models.RideStatusPending {
		return "", apperrors.Validation(utils.MsgOTPNotPending)
	}

	entry, ok := ride.PassengerEntryFor(user.ID)
	if !ok {
		return "", apperrors.Validation(utils.MsgNotAPassenger)
	}
	if entry.OTP == "" {
		return "", apperrors.NotFound(utils.MsgOTPNotFound)
	}

	return entry.OTP, nil
}

func (s *rideService) SearchRides(ctx context.Context, subject string) ([]*RideDetails, error) {
	user, driverID, err := s.resolveSearcher(ctx, subject)
	if err != nil {
		return nil, err
	}

	rides, err := s.rideRepo.GetRelated(ctx, driverID, user.ID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return s.decorateRides(ctx, rides), nil
}

func (s *rideService) SearchUnrelatedRides(ctx context.Context, subject string) ([]*RideDetails, error) {
	user, driverID, err := s.resolveSearcher(ctx, subject)
	if err != nil {
		return nil, err
	}

	rides, err := s.rideRepo.GetUnrelated(ctx, driverID, user.ID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return s.decorateRides(ctx, rides), nil
}

func (s *rideService) GetRideByID(ctx context.Context, rideID string) (*RideDetails, error) {
	id, err := parseObjectID(rideID, utils.MsgRideIDRequired)
	if err != nil {
		return nil, err
	}

	ride, err := s.rideRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, apperrors.NotFound(utils.MsgRideNotFound)
		}
		return nil, apperrors.Internal(err)
	}

	details := s.decorateRides(ctx, []*models.Ride{ride})
	return details[0], nil
}

func (s *rideService) resolveSearcher(ctx context.Context, subject string) (*models.User, *primitive.ObjectID, error) {
	user, err := resolveSubject(ctx, s.userRepo, subject)
	if err != nil {
		return nil, nil, err
	}

	driver, err := s.driverRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return user, nil, nil
		}
		return nil, nil, apperrors.Internal(err)
	}

	return user, &driver.ID, nil
}

// decorateRides joins driver and passenger display info onto each ride.
// Lookups are memoized across the batch; a missing profile degrades to an
// empty block rather than failing the read.
func (s *rideService) decorateRides(ctx context.Context, rides []*models.Ride) []*RideDetails {
	drivers := make(map[primitive.ObjectID]*models.Driver)
	users := make(map[primitive.ObjectID]*models.User)

	lookupUser := func(id primitive.ObjectID) *models.User {
		if u, ok := users[id]; ok {
			return u
		}
		u, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			u = nil
		}
		users[id] = u
		return u
	}

	details := make([]*RideDetails, 0, len(rides))
	for _, ride := range rides {
		d := &RideDetails{Ride: ride, Passengers: []RidePassengerSummary{}}

		driver, ok := drivers[ride.DriverID]
		if !ok {
			driver, _ = s.driverRepo.GetByID(ctx, ride.DriverID)
			drivers[ride.DriverID] = driver
		}
		if driver != nil {
			summary := &RideDriverSummary{
				ID:      driver.ID,
				CarName: driver.CarName,
				Rating:  driver.Rating(),
			}
			if owner := lookupUser(driver.UserID); owner != nil {
				summary.FirstName = owner.FirstName
				summary.LastName = owner.LastName
				summary.ProfilePhoto = owner.ProfilePhoto
			}
			d.Driver = summary
		}

		for _, entry := range ride.Passengers {
			row := RidePassengerSummary{UserID: entry.UserID}
			if passenger := lookupUser(entry.UserID); passenger != nil {
				row.FirstName = passenger.FirstName
				row.LastName = passenger.LastName
				row.ProfilePhoto = passenger.ProfilePhoto
			}
			d.Passengers = append(d.Passengers, row)
		}

		details = append(details, d)
	}

	return details
}

// driverName resolves the display name for history rows; best-effort.
func (s *rideService) driverName(ctx context.Context, driverID primitive.ObjectID) string {
	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return ""
	}
	owner, err := s.userRepo.GetByID(ctx, driver.UserID)
	if err != nil {
		return ""
	}
	return owner.FullName()
}
