package service

import "errors"

var (
	// ErrInvalidRiderID is returned when rider ID is empty.
	ErrInvalidRiderID = errors.New("invalid rider id")

	// ErrInvalidPickupLocation is returned when pickup location is empty.
	ErrInvalidPickupLocation = errors.New("invalid pickup location")

	// ErrInvalidDropLocation is returned when drop location is empty.
	ErrInvalidDropLocation = errors.New("invalid drop location")

	// ErrInvalidTripID is returned when trip ID is empty.
	ErrInvalidTripID = errors.New("invalid trip id")

	// ErrDistanceRequired is returned when completing a trip without a distance.
	ErrDistanceRequired = errors.New("distance is required")

	// ErrInvalidDistance is returned when distance is negative.
	ErrInvalidDistance = errors.New("distance must be non-negative")

	// ErrTripAlreadyFinal is returned when mutating a trip in a terminal state.
	ErrTripAlreadyFinal = errors.New("trip already in a terminal state")

	// ErrTripBusy is returned when another command holds the trip's lock.
	ErrTripBusy = errors.New("trip is being modified by another request")
)
