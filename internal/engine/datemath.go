package engine

import (
	"time"

	"github.com/tartampluch/go-age/internal/config"
)

// IsLeapYear applies the Gregorian rule.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysInMonth returns the length of month (1-12) in year.
// Callers validate month; anything outside 1-12 is treated as a long month.
func DaysInMonth(year, month int) int {
	switch month {
	case 2:
		if IsLeapYear(year) {
			return config.DaysFebruaryLeap
		}
		return config.DaysFebruary
	case 4, 6, 9, 11:
		return config.DaysShortMonth
	default:
		return config.DaysLongMonth
	}
}

// ComputeAge returns the age of the birthdate in `in` on the reference date.
// It returns an unset age when any field is missing.
func ComputeAge(in BirthDateInput, ref time.Time) ComputedAge {
	year, month, day, ok := in.ints()
	if !ok {
		return ComputedAge{}
	}
	return AgeBetween(birthTime(year, month, day, ref.Location()), ref)
}

// AgeBetween subtracts birth from ref component by component.
// Days borrow the length of the month before ref's month, months borrow a year.
// Days borrow once, so they stay negative when that month is shorter than the
// birth day (Jan 31 to Mar 1 is 0y 1m -2d). birth.AddDate(y, m, d) still equals ref.
func AgeBetween(birth, ref time.Time) ComputedAge {
	years := ref.Year() - birth.Year()
	months := int(ref.Month()) - int(birth.Month())
	days := ref.Day() - birth.Day()

	if days < 0 {
		months--
		prevYear, prevMonth := ref.Year(), int(ref.Month())-1
		if prevMonth < config.MinMonth {
			prevYear--
			prevMonth = config.MaxMonth
		}
		days += DaysInMonth(prevYear, prevMonth)
	}

	if months < 0 {
		years--
		months += config.MonthsYear
	}

	return ComputedAge{Years: years, Months: months, Days: days, set: true}
}

// birthTime builds local midnight of the birthdate. Out of range values normalize
// the way time.Date does (e.g. Feb 30 becomes Mar 1 or 2).
func birthTime(year, month, day int, loc *time.Location) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
}
