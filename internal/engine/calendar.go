package engine

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-age/internal/config"
)

// SummaryFormatter lets the presentation layer inject localized event titles.
type SummaryFormatter func(age int) string

// DefaultSummary is used when no formatter is injected.
func DefaultSummary(age int) string {
	if age == 0 {
		return config.FallbackSummaryBirth
	}
	return fmt.Sprintf(config.FallbackSummaryAge, age)
}

// NextBirthday returns the next birthday on or after today, and the age reached that day.
func NextBirthday(birth, now time.Time) (time.Time, int) {
	loc := now.Location()

	// time.Date moves Feb 29 to Mar 1 in common years.
	candidate := time.Date(now.Year(), birth.Month(), birth.Day(), 0, 0, 0, 0, loc)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	if candidate.Before(todayStart) {
		candidate = time.Date(now.Year()+1, birth.Month(), birth.Day(), 0, 0, 0, 0, loc)
	}
	return candidate, candidate.Year() - birth.Year()
}

// BirthdayCalendar encodes all-day birthday events for last year, this year and next year.
// Years before the birth year are skipped.
func BirthdayCalendar(birth, now time.Time, format SummaryFormatter) ([]byte, error) {
	if format == nil {
		format = DefaultSummary
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	dtStamp := ical.NewProp(config.PropDTStamp)
	dtStamp.SetDateTime(now.UTC())

	uidBase := birth.Format(config.DateFormatFullBasic)
	loc := now.Location()

	for _, y := range []int{now.Year() - 1, now.Year(), now.Year() + 1} {
		if y < birth.Year() {
			continue
		}

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uidBase, y, config.ICalDomain))
		event.Props.SetText(config.PropSummary, format(y-birth.Year()))
		event.Props.Set(dtStamp)

		dtStart := ical.NewProp(config.PropDTStart)
		dtStart.SetDate(time.Date(y, birth.Month(), birth.Day(), 0, 0, 0, 0, loc))
		event.Props.Set(dtStart)

		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), nil
}
