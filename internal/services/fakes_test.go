package services

import (
	"context"
	"sync"

	"poolride/internal/models"
	"poolride/internal/repositories/interfaces"
	"poolride/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repositories honoring the conditional-update contracts of
// the mongodb implementations, guarded by a mutex so concurrency tests
// exercise real interleavings.

func testLogger() *logger.Logger {
	log, _ := logger.NewLogger(&logger.Config{Level: "error", Format: "text"})
	return log
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (r *fakeUserRepo) add(user *models.User) *models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.add(user)
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, interfaces.ErrNotFound
}

func (r *fakeUserRepo) GetBySubject(ctx context.Context, firebaseUID string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.FirebaseUID == firebaseUID {
			copied := *user
			return &copied, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (r *fakeUserRepo) UpsertBySubject(ctx context.Context, firebaseUID string, user *models.User) (*models.User, error) {
	existing, err := r.GetBySubject(ctx, firebaseUID)
	if err == nil {
		r.mu.Lock()
		defer r.mu.Unlock()
		stored := r.users[existing.ID]
		stored.FirstName = user.FirstName
		stored.LastName = user.LastName
		stored.Email = user.Email
		stored.Phone = user.Phone
		stored.ProfilePhoto = user.ProfilePhoto
		copied := *stored
		return &copied, nil
	}
	user.FirebaseUID = firebaseUID
	r.add(user)
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	if v, ok := updates["license_validated"].(bool); ok {
		user.LicenseValidated = v
	}
	if v, ok := updates["emergencyphone"].(string); ok {
		user.EmergencyPhone = v
	}
	return nil
}

type fakeDriverRepo struct {
	mu      sync.Mutex
	drivers map[primitive.ObjectID]*models.Driver
}

func newFakeDriverRepo() *fakeDriverRepo {
	return &fakeDriverRepo{drivers: make(map[primitive.ObjectID]*models.Driver)}
}

func (r *fakeDriverRepo) add(driver *models.Driver) *models.Driver {
	r.mu.Lock()
	defer r.mu.Unlock()
	if driver.ID.IsZero() {
		driver.ID = primitive.NewObjectID()
	}
	r.drivers[driver.ID] = driver
	return driver
}

func (r *fakeDriverRepo) Create(ctx context.Context, driver *models.Driver) error {
	r.mu.Lock()
	for _, existing := range r.drivers {
		if existing.UserID == driver.UserID {
			r.mu.Unlock()
			return interfaces.ErrDuplicate
		}
	}
	r.mu.Unlock()
	r.add(driver)
	return nil
}

func (r *fakeDriverRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Driver, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if driver, ok := r.drivers[id]; ok {
		copied := *driver
		return &copied, nil
	}
	return nil, interfaces.ErrNotFound
}

func (r *fakeDriverRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Driver, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, driver := range r.drivers {
		if driver.UserID == userID {
			copied := *driver
			return &copied, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (r *fakeDriverRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	driver, ok := r.drivers[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	if v, ok := updates["license_no"].(string); ok {
		driver.LicenseNo = v
	}
	if v, ok := updates["car_name"].(string); ok {
		driver.CarName = v
	}
	if v, ok := updates["seats"].(int); ok {
		driver.Seats = v
	}
	return nil
}

func (r *fakeDriverRepo) AddReview(ctx context.Context, id primitive.ObjectID, rating float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	driver, ok := r.drivers[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	driver.ReviewScoreDriver += rating
	driver.TotalReviews++
	return nil
}

type fakeRideRepo struct {
	mu    sync.Mutex
	rides map[primitive.ObjectID]*models.Ride
}

func newFakeRideRepo() *fakeRideRepo {
	return &fakeRideRepo{rides: make(map[primitive.ObjectID]*models.Ride)}
}

func copyRide(ride *models.Ride) *models.Ride {
	copied := *ride
	copied.Passengers = append([]models.PassengerEntry(nil), ride.Passengers...)
	copied.DriverValidationOTPs = append([]models.PassengerEntry(nil), ride.DriverValidationOTPs...)
	return &copied
}

func (r *fakeRideRepo) Create(ctx context.Context, ride *models.Ride) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ride.ID = primitive.NewObjectID()
	ride.Status = models.RideStatusPending
	if ride.Passengers == nil {
		ride.Passengers = []models.PassengerEntry{}
	}
	if ride.DriverValidationOTPs == nil {
		ride.DriverValidationOTPs = []models.PassengerEntry{}
	}
	r.rides[ride.ID] = copyRide(ride)
	return nil
}

func (r *fakeRideRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ride, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ride, ok := r.rides[id]; ok {
		return copyRide(ride), nil
	}
	return nil, interfaces.ErrNotFound
}

func (r *fakeRideRepo) GetRelated(ctx context.Context, driverID *primitive.ObjectID, userID primitive.ObjectID) ([]*models.Ride, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.Ride
	for _, ride := range r.rides {
		if r.related(ride, driverID, userID) {
			result = append(result, copyRide(ride))
		}
	}
	return result, nil
}

func (r *fakeRideRepo) GetUnrelated(ctx context.Context, driverID *primitive.ObjectID, userID primitive.ObjectID) ([]*models.Ride, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.Ride
	for _, ride := range r.rides {
		if !r.related(ride, driverID, userID) {
			result = append(result, copyRide(ride))
		}
	}
	return result, nil
}

func (r *fakeRideRepo) related(ride *models.Ride, driverID *primitive.ObjectID, userID primitive.ObjectID) bool {
	if driverID != nil && ride.DriverID == *driverID {
		return true
	}
	return ride.HasPassenger(userID)
}

func (r *fakeRideRepo) AddPassenger(ctx context.Context, id primitive.ObjectID, entry models.PassengerEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ride, ok := r.rides[id]
	if !ok || ride.Status != models.RideStatusPending || ride.Seats <= 0 || ride.HasPassenger(entry.UserID) {
		return interfaces.ErrConditionFailed
	}
	ride.Passengers = append(ride.Passengers, entry)
	ride.DriverValidationOTPs = append(ride.DriverValidationOTPs, entry)
	ride.Seats--
	return nil
}

func (r *fakeRideRepo) RemovePassenger(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ride, ok := r.rides[id]
	if !ok || ride.Status != models.RideStatusPending || !ride.HasPassenger(userID) {
		return interfaces.ErrConditionFailed
	}
	ride.Passengers = removeEntries(ride.Passengers, userID)
	ride.DriverValidationOTPs = removeEntries(ride.DriverValidationOTPs, userID)
	ride.Seats++
	return nil
}

func removeEntries(entries []models.PassengerEntry, userID primitive.ObjectID) []models.PassengerEntry {
	result := entries[:0]
	for _, e := range entries {
		if e.UserID != userID {
			result = append(result, e)
		}
	}
	return result
}

func (r *fakeRideRepo) FinalizeBoarding(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID, otp string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ride, ok := r.rides[id]
	if !ok || ride.Status != models.RideStatusPending || !ride.HasValidationOTP(userID, otp) {
		return interfaces.ErrConditionFailed
	}
	ride.Status = models.RideStatusOngoing
	ride.DriverValidationOTPs = []models.PassengerEntry{}
	return nil
}

func (r *fakeRideRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, from []models.RideStatus, to models.RideStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ride, ok := r.rides[id]
	if !ok {
		return interfaces.ErrConditionFailed
	}
	for _, status := range from {
		if ride.Status == status {
			ride.Status = to
			return nil
		}
	}
	return interfaces.ErrConditionFailed
}

type fakeHistoryRepo struct {
	mu      sync.Mutex
	entries []*models.RideHistory
}

func newFakeHistoryRepo() *fakeHistoryRepo {
	return &fakeHistoryRepo{}
}

func (r *fakeHistoryRepo) Create(ctx context.Context, entry *models.RideHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = primitive.NewObjectID()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeHistoryRepo) CreateIfAbsent(ctx context.Context, entry *models.RideHistory) error {
	r.mu.Lock()
	for _, existing := range r.entries {
		if existing.RideID == entry.RideID && existing.UserID == entry.UserID {
			r.mu.Unlock()
			return nil
		}
	}
	r.mu.Unlock()
	return r.Create(ctx, entry)
}

func (r *fakeHistoryRepo) GetByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.RideHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.RideHistory
	for _, entry := range r.entries {
		if entry.UserID == userID {
			result = append(result, entry)
		}
	}
	return result, nil
}

func (r *fakeHistoryRepo) RewriteMessageByRide(ctx context.Context, rideID primitive.ObjectID, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entry := range r.entries {
		if entry.RideID == rideID {
			entry.Message = message
		}
	}
	return nil
}

func (r *fakeHistoryRepo) RewriteMessageByRideAndUser(ctx context.Context, rideID, userID primitive.ObjectID, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entry := range r.entries {
		if entry.RideID == rideID && entry.UserID == userID {
			entry.Message = message
		}
	}
	return nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []*models.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) CreateMany(ctx context.Context, notifications []*models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range notifications {
		n.ID = primitive.NewObjectID()
		r.notifications = append(r.notifications, n)
	}
	return nil
}

func (r *fakeNotificationRepo) DeleteByRide(ctx context.Context, rideID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.notifications[:0]
	for _, n := range r.notifications {
		if n.RideID != rideID {
			kept = append(kept, n)
		}
	}
	r.notifications = kept
	return nil
}

func (r *fakeNotificationRepo) GetUnreadByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.Notification
	for _, n := range r.notifications {
		if n.UserID == userID && !n.Read {
			result = append(result, n)
		}
	}
	return result, nil
}

type fakeGroupRepo struct {
	mu     sync.Mutex
	groups map[primitive.ObjectID]*models.Group
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{groups: make(map[primitive.ObjectID]*models.Group)}
}

func (r *fakeGroupRepo) Create(ctx context.Context, group *models.Group) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.groups {
		if existing.GroupName == group.GroupName {
			return interfaces.ErrDuplicate
		}
	}
	group.ID = primitive.NewObjectID()
	r.groups[group.ID] = group
	return nil
}

func (r *fakeGroupRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if group, ok := r.groups[id]; ok {
		copied := *group
		copied.Users = append([]primitive.ObjectID(nil), group.Users...)
		return &copied, nil
	}
	return nil, interfaces.ErrNotFound
}

func (r *fakeGroupRepo) GetByMember(ctx context.Context, userID primitive.ObjectID) ([]*models.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.Group
	for _, group := range r.groups {
		if group.HasMember(userID) {
			result = append(result, group)
		}
	}
	return result, nil
}

func (r *fakeGroupRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	group, ok := r.groups[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	if v, ok := updates["group_name"].(string); ok {
		group.GroupName = v
	}
	if v, ok := updates["group_color"].(string); ok {
		group.GroupColor = v
	}
	return nil
}

func (r *fakeGroupRepo) AddUser(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) (*models.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	group, ok := r.groups[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	if !group.HasMember(userID) {
		group.Users = append(group.Users, userID)
	}
	copied := *group
	return &copied, nil
}

func (r *fakeGroupRepo) RemoveUser(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) (*models.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	group, ok := r.groups[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	kept := group.Users[:0]
	for _, member := range group.Users {
		if member != userID {
			kept = append(kept, member)
		}
	}
	group.Users = kept
	copied := *group
	return &copied, nil
}

// fakeRecorder captures emitted events for assertions.
type fakeRecorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *fakeRecorder) Record(ctx context.Context, event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *fakeRecorder) kinds() []EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]EventKind, 0, len(r.events))
	for _, e := range r.events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}
