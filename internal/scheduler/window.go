package scheduler

import (
	"time"

	"habitkit/internal/constants"
)

// Day is one entry of a calendar window. Key is the canonical YYYY-MM-DD
// date, stable and collision-free, suitable for list rendering.
type Day struct {
	Date  time.Time
	Key   string
	Label string
}

// DateWindow generates the consecutive calendar days from anchor-daysBefore
// through anchor+daysAfter inclusive, ascending. It is regenerated on
// demand and holds no hidden state.
func DateWindow(anchor time.Time, daysBefore, daysAfter int) []Day {
	start := DayOf(anchor).AddDate(0, 0, -daysBefore)
	out := make([]Day, 0, daysBefore+daysAfter+1)
	for i := 0; i <= daysBefore+daysAfter; i++ {
		day := start.AddDate(0, 0, i)
		out = append(out, Day{
			Date:  day,
			Key:   FormatDay(day),
			Label: day.Format(constants.LabelFormat),
		})
	}
	return out
}
