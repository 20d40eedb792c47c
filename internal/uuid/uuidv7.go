// Package uuid generates the time-ordered identifiers used for request tracing.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// maxExternalLen bounds caller-supplied request IDs accepted by ForRequest.
const maxExternalLen = 64

// New generates a new UUIDv7. UUIDv7 values sort by creation time, so request
// IDs in the logs line up with the order requests arrived in.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		return googleuuid.New().String()
	}
	return id.String()
}

// ForRequest returns the caller's request ID when it is a well-formed UUID of
// reasonable length, otherwise a freshly generated one.
func ForRequest(incoming string) string {
	if incoming != "" && len(incoming) <= maxExternalLen && IsValid(incoming) {
		return incoming
	}
	return New()
}

// IsValid checks if a string is a valid UUID
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
