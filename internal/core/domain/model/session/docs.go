// Package session holds the server-side binding between a browser and an actor.
package session
