package schedule

import (
	"context"
	"log"
	"sort"
	"time"

	"animesched/pkg/models"
)

// datetimeLayout is the human-readable form shown next to the raw
// epoch value in the week view.
const datetimeLayout = "Mon, 02 Jan 2006 15:04 MST"

// Projector builds the day-bucketed week view.
type Projector struct {
	Store    Store
	Location *time.Location
	Now      func() time.Time
}

func NewProjector(store Store, loc *time.Location) *Projector {
	if loc == nil {
		loc = time.UTC
	}
	return &Projector{Store: store, Location: loc, Now: time.Now}
}

// WeekView returns the seven weekday buckets, each sorted ascending by
// airing time. Only shows that are releasing or not yet released, with
// an airing time at or after now, appear. The shape is complete even
// when the store is empty or the read fails.
func (p *Projector) WeekView(ctx context.Context) models.WeekSchedule {
	week := models.EmptyWeek()

	recs, err := p.Store.FindAiring(ctx, models.AiringStatuses(), p.Now().Unix())
	if err != nil {
		log.Printf("[schedule] load week view: %v", err)
		return week
	}

	for _, rec := range recs {
		at := time.Unix(rec.NextAiringAt, 0).In(p.Location)
		day := at.Weekday().String()

		week[day] = append(week[day], models.ScheduleEntry{
			ID:         rec.ID,
			Title:      rec.Title,
			CoverImage: rec.CoverImage,
			Episode:    rec.NextEpisode,
			AiringTime: rec.NextAiringAt,
			Datetime:   at.Format(datetimeLayout),
			SiteURL:    rec.SiteURL,
		})
	}

	for day := range week {
		entries := week[day]
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].AiringTime < entries[j].AiringTime
		})
	}
	return week
}
