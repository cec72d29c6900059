// Package uuid generates the time-ordered identifiers used as request ids by the
// budget client and the development backend.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// HeaderRequestID is the header that carries a request id in both directions.
const HeaderRequestID = "X-Request-ID"

// New returns a UUIDv7 string, falling back to a random UUIDv4 when the
// time-ordered generator fails.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		return googleuuid.New().String()
	}
	return id.String()
}

// IsValid checks if a string is a valid UUID
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
