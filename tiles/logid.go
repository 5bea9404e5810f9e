package tiles

import "github.com/google/uuid"

// LogID names one independent tiled MMR within a shared store instance,
// so a single Provider (storage.SQLite, storage.Bolt) can back many
// logs at once without their tile id spaces colliding.
type LogID uuid.UUID

// NewLogID generates a fresh, random LogID.
func NewLogID() LogID {
	return LogID(uuid.New())
}

// ParseLogID parses a canonical UUID string into a LogID.
func ParseLogID(s string) (LogID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return LogID{}, err
	}
	return LogID(u), nil
}

func (id LogID) String() string {
	return uuid.UUID(id).String()
}
