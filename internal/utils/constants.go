package utils

import "time"

// Application constants
const (
	AppName    = "PoolRide"
	AppVersion = "1.0.0"

	// Ride scheduling
	MinScheduleLead = time.Hour

	// Boarding codes
	OTPLength = 6
)

// HTTP status strings
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Stable user-facing messages. These are part of the API contract and
// must not be reworded.
const (
	MsgInvalidDateTime     = "Invalid date/time"
	MsgRideInPast          = "Cannot create a ride in the past"
	MsgRideTooSoon         = "Rides must be scheduled at least one hour in advance"
	MsgUserNotFound        = "User not found"
	MsgNotADriver          = "Not a driver"
	MsgMissingDriverInfo   = "Cannot create the ride as missing license validation or car details"
	MsgTooManySeats        = "Seats cannot be more than your available seats"
	MsgRideNotFound        = "Ride not found"
	MsgRideNotAvailable    = "Ride not available"
	MsgNoSeatsAvailable    = "No seats available"
	MsgDriverSelfBooking   = "Driver cannot book own ride"
	MsgAlreadyBooked       = "Already booked"
	MsgRideBooked          = "Ride booked, OTP generated"
	MsgNotAPassenger       = "User is not a passenger in this ride"
	MsgRideUnbooked        = "Ride unbooked successfully"
	MsgInvalidOTP          = "Invalid OTP"
	MsgOTPValidated        = "OTP validated"
	MsgAllOTPsValidated    = "All OTPs validated, ride is now ongoing"
	MsgOnlyDriverComplete  = "Only the driver can complete the ride"
	MsgRideCompleted       = "Ride completed"
	MsgOnlyDriverCancel    = "Only the driver can cancel the ride"
	MsgRideCancelled       = "Ride cancelled"
	MsgOTPNotPending       = "OTP not available for non-pending rides"
	MsgOTPNotFound         = "OTP not found for this user"
	MsgDriverExists        = "Driver profile already exists"
	MsgDriverNotFound      = "Driver profile not found"
	MsgRideNotCompleted    = "Ride is not completed or doesn't exist"
	MsgReviewNotPassenger  = "User was not a passenger in this ride"
	MsgReviewSubmitted     = "Review submitted successfully"
	MsgGroupNotFound       = "Group not found"
	MsgEmergencyRequired   = "Emergency contact is required"
	MsgEmergencyUpdated    = "Emergency contact updated successfully"
	MsgRideIDRequired      = "Ride ID is required"
)
