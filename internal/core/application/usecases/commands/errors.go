package commands

import "errors"

var (
	// ErrUnauthorized is returned when the caller holds no active chef or courier identity.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrCourierNotFound is returned when a delivering transition names no active courier.
	ErrCourierNotFound = errors.New("courier not found")
)
