package cache

import (
	"time"

	"github.com/standingsfeed/standings-service/internal/app/models"
)

// SchemaVersion is written into every persisted record so that future
// readers can detect and migrate older records.
const SchemaVersion = 1

// Entry is one cached snapshot. Entries are superseded, never mutated.
type Entry struct {
	Key           string
	Timestamp     time.Time
	TTL           time.Duration
	Snapshot      models.LeagueSnapshot
	SchemaVersion int
}

func (e Entry) Age(now time.Time) time.Duration {
	return now.Sub(e.Timestamp)
}

func (e Entry) Expired(now time.Time) bool {
	return e.Age(now) > e.TTL
}

// EntryStats describes one persisted entry for the inspection surface.
type EntryStats struct {
	Key          string
	Age          time.Duration
	RemainingTTL time.Duration
	SizeBytes    int64
}
