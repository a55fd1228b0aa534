package weather

import (
	"testing"
	"time"

	"github.com/ayushkr5561/virtual-closet/internal/models"
)

// buildSeries returns a 3-hourly series spanning days whole days starting at
// midnight of start's date, with TempC encoding the entry index so tests can
// identify which entry matched.
func buildSeries(start time.Time, days int) models.ForecastSeries {
	base := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	var series models.ForecastSeries
	for i := 0; i < days*8; i++ {
		t := base.Add(time.Duration(i) * 3 * time.Hour)
		series = append(series, models.ForecastEntry{
			Snapshot: models.Snapshot{TempC: float64(i)},
			TimeText: t.Format("2006-01-02 15:04:05"),
		})
	}
	return series
}

func TestResolveSlotToday(t *testing.T) {
	// 2024-03-18 is a Monday.
	now := time.Date(2024, 3, 18, 8, 0, 0, 0, time.UTC)
	series := buildSeries(now, 5)

	snap, ok := ResolveSlot(series, "today", "morning", now)
	if !ok {
		t.Fatal("expected a morning slot for today")
	}
	// First entry with hour in [6,12) is 06:00, index 2.
	if snap.TempC != 2 {
		t.Errorf("got entry %v, want entry 2 (06:00)", snap.TempC)
	}
}

func TestResolveSlotFirstMatchWins(t *testing.T) {
	now := time.Date(2024, 3, 18, 8, 0, 0, 0, time.UTC)
	series := buildSeries(now, 5)

	// Both 06:00 and 09:00 fall in the morning range; series order decides.
	snap, _ := ResolveSlot(series, "today", "morning", now)
	if snap.TempC != 2 {
		t.Errorf("tie not broken by series order: got %v", snap.TempC)
	}
}

func TestResolveSlotWeekday(t *testing.T) {
	now := time.Date(2024, 3, 18, 8, 0, 0, 0, time.UTC) // Monday
	series := buildSeries(now, 5)

	snap, ok := ResolveSlot(series, "wed", "afternoon", now)
	if !ok {
		t.Fatal("expected an afternoon slot for Wednesday")
	}
	// Wednesday is day offset 2; 12:00 is slot 4 of that day.
	if want := float64(2*8 + 4); snap.TempC != want {
		t.Errorf("got entry %v, want %v", snap.TempC, want)
	}
}

func TestResolveSlotOutOfRange(t *testing.T) {
	now := time.Date(2024, 3, 18, 8, 0, 0, 0, time.UTC) // Monday
	series := buildSeries(now, 5)

	// Sunday is 6 days out; the series only spans 5 days. Must be a clean
	// miss, not an error.
	if _, ok := ResolveSlot(series, "sun", "morning", now); ok {
		t.Error("expected no slot beyond the series horizon")
	}
}

func TestResolveSlotInvalidInputs(t *testing.T) {
	now := time.Date(2024, 3, 18, 8, 0, 0, 0, time.UTC)
	series := buildSeries(now, 5)

	if _, ok := ResolveSlot(series, "someday", "morning", now); ok {
		t.Error("unknown day should resolve to none")
	}
	if _, ok := ResolveSlot(series, "today", "midnight", now); ok {
		t.Error("unknown time of day should resolve to none")
	}
	if _, ok := ResolveSlot(nil, "today", "morning", now); ok {
		t.Error("empty series should resolve to none")
	}
}

func TestResolveSlotNightUpperBound(t *testing.T) {
	now := time.Date(2024, 3, 18, 8, 0, 0, 0, time.UTC)
	series := models.ForecastSeries{
		{Snapshot: models.Snapshot{TempC: 1}, TimeText: "2024-03-18 23:00:00"},
		{Snapshot: models.Snapshot{TempC: 2}, TimeText: "2024-03-18 21:00:00"},
	}

	// Night is [18,23): a 23:00 entry is outside, 21:00 matches.
	snap, ok := ResolveSlot(series, "today", "night", now)
	if !ok || snap.TempC != 2 {
		t.Errorf("got (%v, %v), want the 21:00 entry", snap.TempC, ok)
	}
}
