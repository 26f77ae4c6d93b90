package driver

import "errors"

var (
	// ErrUnknownDriver is returned when a component names a driver kind that does not exist.
	ErrUnknownDriver = errors.New("driver: unknown driver")

	// ErrNoPublisher is returned when an mqtt driver is requested without a broker connection.
	ErrNoPublisher = errors.New("driver: mqtt driver requires a publisher")
)
