package types

import (
	"time"

	"github.com/google/uuid"
)

// PassID represents a UUIDv7 identifier for one match pass.
// String alias enables type safety while maintaining JSON string
// serialization. UUIDv7 time-ordering ensures sequential IDs cluster in
// B-tree indexes when passes are recorded.
type PassID string

// NewPassID generates a UUIDv7 pass identifier.
// Panics on clock regression (uuid.Must); acceptable for ID generation.
func NewPassID() PassID {
	return PassID(uuid.Must(uuid.NewV7()).String())
}

// ParsePassID validates and converts a string to PassID.
// Rejects malformed UUIDs to prevent invalid IDs from entering the system.
func ParsePassID(s string) (PassID, error) {
	_, err := uuid.Parse(s)
	if err != nil {
		return "", err
	}
	return PassID(s), nil
}

// PassIDTime extracts the timestamp embedded in a UUIDv7 ID.
// Enables time-based queries without database lookup.
// Returns zero time for invalid UUIDs; caller should check IsZero().
func PassIDTime(id PassID) time.Time {
	u, err := uuid.Parse(string(id))
	if err != nil {
		return time.Time{}
	}
	sec, nsec := u.Time().UnixTime()
	return time.Unix(sec, nsec)
}
