// Package services contains domain logic that does not belong to a single
// aggregate, such as issuing collision-free order codes.
package services
