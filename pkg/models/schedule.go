package models

// Weekdays lists the seven bucket names of the projected schedule, in
// calendar order. The names match time.Weekday.String().
var Weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// ScheduleEntry is one row of the projected week view.
type ScheduleEntry struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	CoverImage string `json:"coverImage,omitempty"`
	Episode    int    `json:"episode"`
	AiringTime int64  `json:"airing_time"`
	Datetime   string `json:"datetime"`
	SiteURL    string `json:"siteUrl,omitempty"`
}

// WeekSchedule maps each weekday name to its time-sorted entries.
// All seven keys are always present.
type WeekSchedule map[string][]ScheduleEntry

// EmptyWeek returns a fully-shaped schedule with seven empty buckets.
func EmptyWeek() WeekSchedule {
	w := make(WeekSchedule, len(Weekdays))
	for _, d := range Weekdays {
		w[d] = []ScheduleEntry{}
	}
	return w
}
