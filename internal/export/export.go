// Package export turns a calendar's visible courses into an iCalendar
// document with weekly recurring events, term holiday exceptions and a
// fixed US Eastern timezone block.
package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/teambition/rrule-go"

	"coursecal/internal/model"
	"coursecal/internal/timeofday"
)

// TimezoneID is the single fixed zone all generated timestamps use.
const TimezoneID = "America/New_York"

const icalLocalFormat = "20060102T150405"
const icalUTCFormat = "20060102T150405Z"

// Entry pairs one visible course with its resolved section.
type Entry struct {
	Course  model.Course
	Section model.Section
}

// Result is the finished document plus the filename to offer it under.
type Result struct {
	ICS      string
	Filename string
}

// Export builds the iCalendar document for a calendar's visible courses.
// It returns nil when no entry has resolvable day and time information;
// there is nothing to export then.
func Export(cal *model.Calendar, entries []Entry, now time.Time) *Result {
	if cal == nil || len(entries) == 0 {
		return nil
	}

	loc := loadLocation()
	year := canonicalYear(cal.Term, entries, now)
	termStart, termEnd := termBounds(cal.Term, year, loc)
	season := cal.Term.Season()

	doc := ics.NewCalendar()
	doc.SetProductId("-//coursecal//course schedule//EN")
	doc.Components = append(doc.Components, easternTimezone())

	emitted := 0
	for _, e := range entries {
		if addEvent(doc, e, season, year, termStart, termEnd, loc, now) {
			emitted++
		}
	}
	if emitted == 0 {
		return nil
	}

	return &Result{
		ICS:      doc.Serialize(),
		Filename: slug(cal.Term, year),
	}
}

// addEvent emits one recurring VEVENT for the entry's section. Sections
// without an active weekday or with unparseable times are skipped.
func addEvent(doc *ics.Calendar, e Entry, season string, year int, termStart, termEnd time.Time, loc *time.Location, now time.Time) bool {
	section := e.Section
	if !section.Days.Any() {
		return false
	}
	startClock, err := timeofday.Parse(section.StartTime)
	if err != nil {
		return false
	}
	endClock, err := timeofday.Parse(section.EndTime)
	if err != nil {
		return false
	}

	start, end := courseBounds(section, termStart, termEnd, loc)

	// First occurrence: the earliest date on/after the course start that
	// falls on one of the section's active weekdays.
	dtstart := time.Date(start.Year(), start.Month(), start.Day(),
		startClock.Hour(), startClock.Minute(), 0, 0, loc)
	until := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, loc)

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Dtstart:   dtstart,
		Byweekday: byWeekdays(section.Days),
		Until:     until,
	})
	if err != nil {
		return false
	}
	first := r.After(dtstart.Add(-time.Second), true)
	if first.IsZero() {
		// The recurrence never lands inside the course bounds.
		return false
	}

	firstEnd := time.Date(first.Year(), first.Month(), first.Day(),
		endClock.Hour(), endClock.Minute(), 0, 0, loc)

	event := doc.AddEvent(eventUID(e.Course, section, year))
	event.SetDtStampTime(now.UTC())
	tzid := &ics.KeyValues{Key: "TZID", Value: []string{TimezoneID}}
	event.SetProperty(ics.ComponentPropertyDtStart, first.Format(icalLocalFormat), tzid)
	event.SetProperty(ics.ComponentPropertyDtEnd, firstEnd.Format(icalLocalFormat), tzid)
	event.SetSummary(e.Course.DisplayName())

	rule := fmt.Sprintf("FREQ=WEEKLY;UNTIL=%s;BYDAY=%s",
		until.In(time.UTC).Format(icalUTCFormat), byDayList(section.Days))
	event.SetProperty(ics.ComponentPropertyRrule, rule)

	if section.HasLocation() {
		event.SetLocation(section.Location)
		if section.Instructors != "" {
			event.SetDescription("Instructor: " + section.Instructors)
		}
	}

	// Exception dates keep the section's own start time-of-day rather
	// than midnight, so they match the generated occurrences.
	for _, d := range exceptionDates(season, year, section.Days, start, end, loc) {
		ex := time.Date(d.Year(), d.Month(), d.Day(),
			startClock.Hour(), startClock.Minute(), 0, 0, loc)
		event.AddProperty(ics.ComponentPropertyExdate, ex.Format(icalLocalFormat), tzid)
	}

	return true
}

var uidSanitizer = regexp.MustCompile(`[^a-z0-9]+`)

// eventUID derives a deterministic identifier from the course and section
// so re-exporting the same selection yields the same UIDs. Without any
// usable seed a random identifier is accepted.
func eventUID(course model.Course, section model.Section, year int) string {
	seed := uidSanitizer.ReplaceAllString(strings.ToLower(course.ID+"-"+section.Label), "")
	if seed == "" {
		seed = uuid.New().String()
	}
	return fmt.Sprintf("%s-%d@coursecal", seed, year)
}

// byDayCodes maps weekdays to the RRULE BYDAY two-letter codes.
var byDayCodes = map[time.Weekday]string{
	time.Sunday:    "SU",
	time.Monday:    "MO",
	time.Tuesday:   "TU",
	time.Wednesday: "WE",
	time.Thursday:  "TH",
	time.Friday:    "FR",
	time.Saturday:  "SA",
}

func byDayList(days model.DayMap) string {
	codes := make([]string, 0, 7)
	for _, w := range days.Weekdays() {
		codes = append(codes, byDayCodes[w])
	}
	return strings.Join(codes, ",")
}

var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Sunday:    rrule.SU,
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
}

func byWeekdays(days model.DayMap) []rrule.Weekday {
	out := make([]rrule.Weekday, 0, 7)
	for _, w := range days.Weekdays() {
		out = append(out, rruleWeekdays[w])
	}
	return out
}

// easternTimezone builds the fixed VTIMEZONE block: daylight time from
// the second Sunday of March, standard time from the first Sunday of
// November. Emitted regardless of whether any event crosses a transition.
func easternTimezone() *ics.GeneralComponent {
	tz := &ics.GeneralComponent{Token: "VTIMEZONE"}
	tz.AddProperty(ics.ComponentProperty("TZID"), TimezoneID)

	daylight := &ics.GeneralComponent{Token: "DAYLIGHT"}
	daylight.AddProperty(ics.ComponentProperty("TZOFFSETFROM"), "-0500")
	daylight.AddProperty(ics.ComponentProperty("TZOFFSETTO"), "-0400")
	daylight.AddProperty(ics.ComponentProperty("TZNAME"), "EDT")
	daylight.AddProperty(ics.ComponentProperty("DTSTART"), "19700308T020000")
	daylight.AddProperty(ics.ComponentProperty("RRULE"), "FREQ=YEARLY;BYMONTH=3;BYDAY=2SU")

	standard := &ics.GeneralComponent{Token: "STANDARD"}
	standard.AddProperty(ics.ComponentProperty("TZOFFSETFROM"), "-0400")
	standard.AddProperty(ics.ComponentProperty("TZOFFSETTO"), "-0500")
	standard.AddProperty(ics.ComponentProperty("TZNAME"), "EST")
	standard.AddProperty(ics.ComponentProperty("DTSTART"), "19701101T020000")
	standard.AddProperty(ics.ComponentProperty("RRULE"), "FREQ=YEARLY;BYMONTH=11;BYDAY=1SU")

	tz.Components = append(tz.Components, daylight, standard)
	return tz
}

// slug derives the filename-safe download name from the term and year.
func slug(term model.Term, year int) string {
	season := term.Season()
	if season == "" {
		season = "term"
	}
	return fmt.Sprintf("%s-%d-schedule.ics", season, year)
}

func loadLocation() *time.Location {
	loc, err := time.LoadLocation(TimezoneID)
	if err != nil {
		return time.FixedZone("EST", -5*60*60)
	}
	return loc
}
