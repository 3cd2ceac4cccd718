// Package timeofday is the parsing boundary for the catalog's human time
// and weekday strings. Everything downstream (conflict checks, export)
// operates on the typed values returned here, never on raw strings.
package timeofday

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"coursecal/internal/model"
)

// Clock is a time of day as minutes after midnight, comparable with the
// usual integer operators.
type Clock int

var (
	twelveHourPattern = regexp.MustCompile(`(?i)^\s*(\d{1,2})(?::(\d{2}))?\s*([ap]m)\s*$`)
	twentyFourPattern = regexp.MustCompile(`^\s*(\d{1,2}):(\d{2})\s*$`)
)

// Parse converts a catalog time string into a Clock. It accepts the
// 12-hour forms "9:00am" and "9am" and the 24-hour form "14:30".
func Parse(s string) (Clock, error) {
	if m := twelveHourPattern.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		if hour < 1 || hour > 12 || minute > 59 {
			return 0, fmt.Errorf("time out of range: %q", s)
		}
		if hour == 12 {
			hour = 0
		}
		if strings.EqualFold(m[3], "pm") {
			hour += 12
		}
		return Clock(hour*60 + minute), nil
	}

	if m := twentyFourPattern.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour > 23 || minute > 59 {
			return 0, fmt.Errorf("time out of range: %q", s)
		}
		return Clock(hour*60 + minute), nil
	}

	return 0, fmt.Errorf("unparseable time: %q", s)
}

// Hour returns the 24-hour component.
func (c Clock) Hour() int { return int(c) / 60 }

// Minute returns the minute component.
func (c Clock) Minute() int { return int(c) % 60 }

// String renders the clock in the 12-hour display form, e.g. "9:00am".
func (c Clock) String() string {
	hour := c.Hour()
	period := "am"
	if hour >= 12 {
		period = "pm"
	}
	if hour > 12 {
		hour -= 12
	}
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d%s", hour, c.Minute(), period)
}

var weekdayNames = map[string]func(*model.DayMap){
	"Mon": func(d *model.DayMap) { d.Monday = true },
	"Tue": func(d *model.DayMap) { d.Tuesday = true },
	"Wed": func(d *model.DayMap) { d.Wednesday = true },
	"Thu": func(d *model.DayMap) { d.Thursday = true },
	"Fri": func(d *model.DayMap) { d.Friday = true },
	"Sat": func(d *model.DayMap) { d.Saturday = true },
	"Sun": func(d *model.DayMap) { d.Sunday = true },
}

var weekdaySeparator = regexp.MustCompile(`[\s,]+`)

// ParseWeekdays converts a catalog weekday string ("Mon Wed Fri",
// "Tue,Thu") into a DayMap. Unrecognized tokens are skipped; a string
// yielding no recognized day at all is an error.
func ParseWeekdays(s string) (model.DayMap, error) {
	var days model.DayMap
	any := false
	for _, tok := range weekdaySeparator.Split(strings.TrimSpace(s), -1) {
		if tok == "" {
			continue
		}
		if set, ok := weekdayNames[normalizeDayToken(tok)]; ok {
			set(&days)
			any = true
		}
	}
	if !any {
		return model.DayMap{}, fmt.Errorf("no recognizable weekdays in %q", s)
	}
	return days, nil
}

func normalizeDayToken(tok string) string {
	if len(tok) < 3 {
		return tok
	}
	tok = tok[:3]
	return strings.ToUpper(tok[:1]) + strings.ToLower(tok[1:])
}
