package queries

import "errors"

// ErrUnauthorized is returned when a feed is requested with a code that does
// not belong to an active actor of the right role.
var ErrUnauthorized = errors.New("unauthorized")
