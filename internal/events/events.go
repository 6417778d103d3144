package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	ScheduleSavedType = "schedule.saved"
	AnimeRemovedType  = "anime.removed"
)

// Event is one schedule-change notification broadcast to connected
// clients.
type Event struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	Saved   int       `json:"saved,omitempty"`
	AnimeID int       `json:"anime_id,omitempty"`
	At      time.Time `json:"at"`
}

func ScheduleSaved(saved int) Event {
	return Event{
		ID:    uuid.NewString(),
		Type:  ScheduleSavedType,
		Saved: saved,
		At:    time.Now(),
	}
}

func AnimeRemoved(animeID int) Event {
	return Event{
		ID:      uuid.NewString(),
		Type:    AnimeRemovedType,
		AnimeID: animeID,
		At:      time.Now(),
	}
}
