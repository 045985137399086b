package apperrors

import "errors"

var (
	ErrSpotNotFound        = errors.New("parking spot not found")
	ErrSectionNotFound     = errors.New("parking section not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrVehicleNotFound     = errors.New("vehicle not found")
	ErrSpotUnavailable     = errors.New("spot unavailable")
	ErrCapacityExceeded    = errors.New("section capacity exceeded")
	ErrInvalidTransition   = errors.New("invalid booking status transition")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInternalServerError = errors.New("internal server error")
)
