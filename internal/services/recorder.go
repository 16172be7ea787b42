package services

import (
	"context"

	"poolride/internal/models"
	"poolride/internal/repositories/interfaces"
	"poolride/pkg/logger"
)

type recorder struct {
	historyRepo      interfaces.RideHistoryRepository
	notificationRepo interfaces.NotificationRepository
	groupRepo        interfaces.GroupRepository
	logger           *logger.Logger
}

// NewRecorder returns the recorder that materializes lifecycle events as
// ride history rows and group notifications.
func NewRecorder(
	historyRepo interfaces.RideHistoryRepository,
	notificationRepo interfaces.NotificationRepository,
	groupRepo interfaces.GroupRepository,
	logger *logger.Logger,
) Recorder {
	return &recorder{
		historyRepo:      historyRepo,
		notificationRepo: notificationRepo,
		groupRepo:        groupRepo,
		logger:           logger,
	}
}

func (r *recorder) Record(ctx context.Context, event Event) {
	switch event.Kind {
	case EventRideCreated:
		r.rideCreated(ctx, event)
	case EventPassengerBooked:
		r.passengerBooked(ctx, event)
	case EventPassengerUnbooked:
		r.passengerUnbooked(ctx, event)
	case EventRideCompleted:
		r.rideCompleted(ctx, event)
	case EventRideCancelled:
		r.rideCancelled(ctx, event)
	default:
		r.logger.WithField("kind", string(event.Kind)).Warn("Unknown ride event")
	}
}

func (r *recorder) rideCreated(ctx context.Context, event Event) {
	entry := &models.RideHistory{
		UserID:     event.Actor.ID,
		RideID:     event.Ride.ID,
		DriverName: event.DriverName,
		Message:    models.HistoryRideCreated,
	}
	if err := r.historyRepo.CreateIfAbsent(ctx, entry); err != nil {
		r.logger.WithError(err).WithRideID(event.Ride.ID).Error("Failed to record ride creation")
	}

	r.notifyGroups(ctx, event)
}

// notifyGroups fans a new-ride announcement out to every member of every
// group the driver belongs to, skipping the driver. A member in two
// shared groups gets two rows; each row is tied to its group so the
// per-group unread flag stays accurate.
func (r *recorder) notifyGroups(ctx context.Context, event Event) {
	groups, err := r.groupRepo.GetByMember(ctx, event.Actor.ID)
	if err != nil {
		r.logger.WithError(err).WithRideID(event.Ride.ID).Error("Failed to load groups for notification fan-out")
		return
	}

	var notifications []*models.Notification
	for _, group := range groups {
		for _, memberID := range group.Users {
			if memberID == event.Actor.ID {
				continue
			}
			notifications = append(notifications, &models.Notification{
				UserID:  memberID,
				GroupID: group.ID,
				RideID:  event.Ride.ID,
			})
		}
	}

	if err := r.notificationRepo.CreateMany(ctx, notifications); err != nil {
		r.logger.WithError(err).WithRideID(event.Ride.ID).Error("Failed to create ride notifications")
	}
}

func (r *recorder) passengerBooked(ctx context.Context, event Event) {
	entry := &models.RideHistory{
		UserID:     event.Actor.ID,
		RideID:     event.Ride.ID,
		DriverName: event.DriverName,
		Message:    models.HistoryRideBooked,
	}
	if err := r.historyRepo.Create(ctx, entry); err != nil {
		r.logger.WithError(err).WithRideID(event.Ride.ID).Error("Failed to record booking")
	}
}

func (r *recorder) passengerUnbooked(ctx context.Context, event Event) {
	err := r.historyRepo.RewriteMessageByRideAndUser(ctx, event.Ride.ID, event.Actor.ID, models.HistoryRideCancelledUser)
	if err != nil {
		r.logger.WithError(err).WithRideID(event.Ride.ID).Error("Failed to record unbooking")
	}
}

func (r *recorder) rideCompleted(ctx context.Context, event Event) {
	if err := r.notificationRepo.DeleteByRide(ctx, event.Ride.ID); err != nil {
		r.logger.WithError(err).WithRideID(event.Ride.ID).Error("Failed to clear ride notifications")
	}

	for _, passenger := range event.Ride.Passengers {
		entry := &models.RideHistory{
			UserID:     passenger.UserID,
			RideID:     event.Ride.ID,
			DriverName: event.DriverName,
			Message:    models.HistoryRideCompleted,
		}
		if err := r.historyRepo.Create(ctx, entry); err != nil {
			r.logger.WithError(err).WithRideID(event.Ride.ID).WithUserID(passenger.UserID).Error("Failed to record completion")
		}
	}
}

func (r *recorder) rideCancelled(ctx context.Context, event Event) {
	if err := r.notificationRepo.DeleteByRide(ctx, event.Ride.ID); err != nil {
		r.logger.WithError(err).WithRideID(event.Ride.ID).Error("Failed to clear ride notifications")
	}

	err := r.historyRepo.RewriteMessageByRide(ctx, event.Ride.ID, models.HistoryRideCancelledDriver)
	if err != nil {
		r.logger.WithError(err).WithRideID(event.Ride.ID).Error("Failed to record cancellation")
	}
}
