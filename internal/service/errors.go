package service

import "errors"

var (
	// ErrInvalidQuantity is returned when a booking asks for fewer than one seat.
	ErrInvalidQuantity = errors.New("seats count must be at least 1")

	// ErrInvalidLuggageWeight is returned when a booking declares negative luggage.
	ErrInvalidLuggageWeight = errors.New("luggage weight must not be negative")

	// ErrSelfBookingForbidden is returned when a driver tries to book their own trip.
	ErrSelfBookingForbidden = errors.New("driver cannot book own trip")

	// ErrTripInactive is returned when operating on a cancelled trip.
	ErrTripInactive = errors.New("trip is not active")

	// ErrInsufficientCapacity is returned when a trip has fewer free seats than requested.
	ErrInsufficientCapacity = errors.New("not enough free seats")

	// ErrNotOwner is returned when the actor does not own the entity being changed.
	ErrNotOwner = errors.New("actor is not the owner")

	// ErrAlreadyCancelled is returned when cancelling an already cancelled booking.
	ErrAlreadyCancelled = errors.New("booking already cancelled")

	// ErrBookingNotPending is returned when confirming or rejecting a non-pending booking.
	ErrBookingNotPending = errors.New("booking is not pending")

	// ErrInvalidSeatCount is returned when a trip offers fewer than one seat or more than allowed.
	ErrInvalidSeatCount = errors.New("invalid seat count")

	// ErrInvalidLuggageCapacity is returned when a trip declares negative luggage capacity.
	ErrInvalidLuggageCapacity = errors.New("luggage capacity must not be negative")

	// ErrInvalidPrice is returned when the price per seat is not positive.
	ErrInvalidPrice = errors.New("price per seat must be positive")

	// ErrInvalidDepartureTime is returned when the departure time is not HH:MM.
	ErrInvalidDepartureTime = errors.New("departure time must be HH:MM")

	// ErrDepartureInPast is returned when a new trip departs before today.
	ErrDepartureInPast = errors.New("departure date is in the past")

	// ErrSameOriginDestination is returned when origin and destination are the same city.
	ErrSameOriginDestination = errors.New("origin and destination must differ")

	// ErrUnknownCity is returned when a city reference does not exist.
	ErrUnknownCity = errors.New("unknown city")

	// ErrNotADriver is returned when a non-driver performs a driver operation.
	ErrNotADriver = errors.New("user is not a driver")

	// ErrDriverNotVerified is returned when verification is required and missing.
	ErrDriverNotVerified = errors.New("driver is not verified")

	// ErrCapacityBelowBooked is returned when an edit would drop seats below booked seats.
	ErrCapacityBelowBooked = errors.New("seats cannot be lower than booked seats")

	// ErrAlreadyDriver is returned when a user with a driver profile registers again.
	ErrAlreadyDriver = errors.New("user is already a driver")

	// ErrInvalidDrivingExperience is returned when experience is outside 0-60 years.
	ErrInvalidDrivingExperience = errors.New("invalid driving experience")

	// ErrInvalidCarYear is returned when the car year is outside the accepted range.
	ErrInvalidCarYear = errors.New("invalid car year")

	// ErrInvalidVIN is returned when the VIN is not 17 characters.
	ErrInvalidVIN = errors.New("vin must be 17 characters")

	// ErrInvalidCarDetails is returned when brand or model are missing.
	ErrInvalidCarDetails = errors.New("car brand and model are required")

	// ErrNotParticipant is returned when a message party is not on the trip.
	ErrNotParticipant = errors.New("user is not a trip participant")

	// ErrEmptyMessage is returned when a message has no text.
	ErrEmptyMessage = errors.New("message text is required")

	// ErrInvalidName is returned when a user name is empty.
	ErrInvalidName = errors.New("name is required")

	// ErrInvalidPhone is returned when a phone number is malformed.
	ErrInvalidPhone = errors.New("invalid phone number")

	// ErrPhoneTaken is returned when registering an existing phone number.
	ErrPhoneTaken = errors.New("phone number already registered")
)
