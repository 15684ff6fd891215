// Package actor models the staff directory: chefs and couriers keyed by a
// secret access code, with a soft active flag.
package actor
