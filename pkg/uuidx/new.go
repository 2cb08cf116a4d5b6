// Package uuidx generates the identifiers used for runs, turns and memories.
package uuidx

import "github.com/google/uuid"

// New returns a version 7 UUID, so traced runs and memories sort by creation time.
func New() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}
