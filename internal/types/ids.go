package types

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

// NewExportID generates a UUIDv7 export identifier.
// Time-ordered IDs keep export listings sorted by insertion.
// Panics on clock regression (uuid.Must); acceptable for ID generation.
func NewExportID() ExportID {
	return ExportID(uuid.Must(uuid.NewV7()).String())
}

// NewAPIKeyID generates a UUIDv7 API key identifier.
// Panics on clock regression (uuid.Must); acceptable for ID generation.
func NewAPIKeyID() APIKeyID {
	return APIKeyID(uuid.Must(uuid.NewV7()).String())
}

// ParseExportID validates and converts a string to ExportID.
// Rejects malformed UUIDs to prevent invalid IDs from reaching storage.
func ParseExportID(s string) (ExportID, error) {
	_, err := uuid.Parse(s)
	if err != nil {
		return "", err
	}
	return ExportID(s), nil
}

// ExportIDTime extracts the timestamp embedded in a UUIDv7 ID.
// Returns zero time for invalid UUIDs; caller should check IsZero().
func ExportIDTime(id ExportID) time.Time {
	u, err := uuid.Parse(string(id))
	if err != nil {
		return time.Time{}
	}
	sec, nsec := u.Time().UnixTime()
	return time.Unix(sec, nsec)
}

var namePrefixPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidNamePrefix reports whether prefix can be emitted inside a Lua string
// literal and used as a pseudo-random identifier.
func ValidNamePrefix(prefix string) bool {
	return namePrefixPattern.MatchString(prefix)
}
