package models

// Airing status values as reported by AniList. The enumeration is
// open-ended: any value the API returns is stored verbatim, but only
// the constants below carry meaning for the schedule pipeline.
const (
	StatusReleasing      = "RELEASING"
	StatusNotYetReleased = "NOT_YET_RELEASED"
	StatusFinished       = "FINISHED"
	StatusCancelled      = "CANCELLED"
)

// AnimeRecord is the canonical, one-per-show persisted form of a
// scheduled anime. Records are upserted by ID; NextAiringAt holds the
// earliest known future airing at the time of the last save.
type AnimeRecord struct {
	ID           int    `json:"id" bson:"id"`
	Title        string `json:"title" bson:"title"`
	CoverImage   string `json:"coverImage,omitempty" bson:"coverImage,omitempty"`
	SiteURL      string `json:"siteUrl,omitempty" bson:"siteUrl,omitempty"`
	Status       string `json:"status,omitempty" bson:"status,omitempty"`
	NextEpisode  int    `json:"nextEpisode,omitempty" bson:"nextEpisode,omitempty"`
	NextAiringAt int64  `json:"nextAiringAt" bson:"nextAiringAt"`
	UpdatedAt    int64  `json:"updatedAt" bson:"updatedAt"`
}

// IsTerminal reports whether a status means the show will air no
// further episodes. The empty string is not terminal: a missing status
// is missing information, not a finished show.
func IsTerminal(status string) bool {
	return status == StatusFinished || status == StatusCancelled
}

// AiringStatuses returns the statuses that qualify a record for the
// projected week view.
func AiringStatuses() []string {
	return []string{StatusReleasing, StatusNotYetReleased}
}
