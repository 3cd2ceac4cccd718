package export

import (
	"time"

	"github.com/teambition/rrule-go"

	"coursecal/internal/model"
)

// Exception dates are the per-term holiday exclusions: spring break in
// spring terms, Thanksgiving in fall terms. Other terms generate none.

// exceptionDates returns the dates (midnight, loc) to exclude for one
// section, limited to the section's active weekdays and the course's own
// [start, end] bounds.
func exceptionDates(season string, year int, days model.DayMap, start, end time.Time, loc *time.Location) []time.Time {
	var candidates []time.Time
	switch season {
	case "spring":
		candidates = springBreakDays(year, loc)
	case "fall":
		candidates = thanksgivingDays(year, days, loc)
	default:
		return nil
	}

	var out []time.Time
	for _, d := range candidates {
		if !days.On(d.Weekday()) {
			continue
		}
		if d.Before(start) || d.After(end) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// springBreakDays returns the five consecutive weekdays starting from the
// third Monday of March.
func springBreakDays(year int, loc *time.Location) []time.Time {
	monday := nthWeekdayOfMonth(year, time.March, rrule.MO.Nth(3), loc)
	if monday.IsZero() {
		return nil
	}
	out := make([]time.Time, 0, 5)
	for i := 0; i < 5; i++ {
		out = append(out, monday.AddDate(0, 0, i))
	}
	return out
}

// thanksgivingDays returns the fourth Thursday of November, plus the
// following Friday for sections that meet Fridays.
func thanksgivingDays(year int, days model.DayMap, loc *time.Location) []time.Time {
	thursday := nthWeekdayOfMonth(year, time.November, rrule.TH.Nth(4), loc)
	if thursday.IsZero() {
		return nil
	}
	out := []time.Time{thursday}
	if days.Friday {
		out = append(out, thursday.AddDate(0, 0, 1))
	}
	return out
}

// nthWeekdayOfMonth resolves dates like "third Monday of March" for a
// given year.
func nthWeekdayOfMonth(year int, month time.Month, weekday rrule.Weekday, loc *time.Location) time.Time {
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.YEARLY,
		Dtstart:   time.Date(year, time.January, 1, 0, 0, 0, 0, loc),
		Bymonth:   []int{int(month)},
		Byweekday: []rrule.Weekday{weekday},
		Count:     1,
	})
	if err != nil {
		return time.Time{}
	}
	all := r.All()
	if len(all) == 0 {
		return time.Time{}
	}
	return all[0]
}
