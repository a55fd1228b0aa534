package weather

import (
	"strings"
	"time"

	"github.com/ayushkr5561/virtual-closet/internal/models"
)

// timeText layout used by the forecast provider for dt_txt, in UTC.
const timeTextLayout = "2006-01-02 15:04:05"

var weekdayIndex = map[string]int{
	"sun": 0, "mon": 1, "tue": 2, "wed": 3, "thu": 4, "fri": 5, "sat": 6,
}

var slotHours = map[string][2]int{
	"morning":   {6, 12},
	"afternoon": {12, 18},
	"night":     {18, 23},
}

// ResolveSlot locates the first forecast entry for the requested day and
// time-of-day bucket. day is "today" or a weekday abbreviation (sun..sat);
// the named weekday resolves to its next occurrence, today included,
// wrapping forward at most six days. Ties break by series order. A missing
// slot is a normal outcome, not an error.
func ResolveSlot(series models.ForecastSeries, day, timeOfDay string, now time.Time) (models.Snapshot, bool) {
	target := now
	if d := strings.ToLower(day); d != "today" {
		idx, ok := weekdayIndex[d]
		if !ok {
			return models.Snapshot{}, false
		}
		diff := idx - int(now.Weekday())
		if diff < 0 {
			diff += 7
		}
		target = now.AddDate(0, 0, diff)
	}

	hours, ok := slotHours[strings.ToLower(timeOfDay)]
	if !ok {
		return models.Snapshot{}, false
	}

	targetDate := target.UTC().Format("2006-01-02")
	for _, entry := range series {
		t, err := time.Parse(timeTextLayout, entry.TimeText)
		if err != nil {
			continue
		}
		if t.Format("2006-01-02") == targetDate && t.Hour() >= hours[0] && t.Hour() < hours[1] {
			return entry.Snapshot, true
		}
	}
	return models.Snapshot{}, false
}
