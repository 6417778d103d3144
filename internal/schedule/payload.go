package schedule

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// rawEntry is the boundary decode of one show entry in a save payload.
// Clients have sent both camelCase and snake_case variants of several
// fields over time; both spellings are accepted.
type rawEntry struct {
	ID json.RawMessage `json:"id"`

	AiringTime json.RawMessage `json:"airing_time"`
	AiringAt   json.RawMessage `json:"airingAt"`

	Episode     int `json:"episode"`
	NextEpisode int `json:"nextEpisode"`

	Title json.RawMessage `json:"title"`

	CoverImage      json.RawMessage `json:"coverImage"`
	CoverImageSnake json.RawMessage `json:"cover_image"`

	SiteURL      string `json:"siteUrl"`
	SiteURLSnake string `json:"site_url"`

	Status string `json:"status"`
}

// showID parses the declared identifier, accepting a JSON number or a
// numeric string.
func (e rawEntry) showID() (int, error) {
	if len(e.ID) == 0 {
		return 0, errors.New("missing id")
	}

	var n int
	if err := json.Unmarshal(e.ID, &n); err == nil {
		return n, nil
	}

	var s string
	if err := json.Unmarshal(e.ID, &s); err == nil {
		id, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, fmt.Errorf("non-numeric id %q", s)
		}
		return id, nil
	}

	return 0, fmt.Errorf("bad id %s", string(e.ID))
}

func (e rawEntry) airingRaw() json.RawMessage {
	if len(e.AiringTime) > 0 {
		return e.AiringTime
	}
	return e.AiringAt
}

func (e rawEntry) episode() int {
	if e.Episode != 0 {
		return e.Episode
	}
	return e.NextEpisode
}

func (e rawEntry) cover() json.RawMessage {
	if len(e.CoverImage) > 0 {
		return e.CoverImage
	}
	return e.CoverImageSnake
}

func (e rawEntry) siteURL() string {
	if e.SiteURL != "" {
		return e.SiteURL
	}
	return e.SiteURLSnake
}
