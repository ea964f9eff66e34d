// Package id generates run identifiers. Run ids are UUIDv7, so archived
// inputs named after them sort by run time.
package id

import (
	"time"

	"github.com/google/uuid"
)

// ID identifies one report run.
type ID = uuid.UUID

// New returns a fresh UUIDv7, or a random v4 if the clock source fails.
func New() ID {
	v, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return v
}

// Nil returns the zero ID.
func Nil() ID {
	return uuid.Nil
}

// IsNil reports whether v is the zero ID.
func IsNil(v ID) bool {
	return v == uuid.Nil
}

// Time returns the creation time embedded in a v7 id, or the zero time for
// any other version.
func Time(v ID) time.Time {
	if v.Version() != 7 {
		return time.Time{}
	}
	sec, nsec := v.Time().UnixTime()
	return time.Unix(sec, nsec).UTC()
}
