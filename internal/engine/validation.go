package engine

import (
	"errors"
	"time"

	"github.com/tartampluch/go-age/internal/config"
)

// Error categories. Every FieldError unwraps to one of them.
var (
	ErrMissingField = errors.New("missing field")
	ErrInvalidValue = errors.New("invalid value")
)

// reportOrder is the order in which joined errors are reported.
var reportOrder = []FieldName{Days, Months, Years, Date}

// commonYear stands in for a year that is missing or malformed when checking day ranges.
const commonYear = 1

// FieldError is a validation failure attached to a single field.
type FieldError struct {
	Field     FieldName
	Kind      error  // ErrMissingField or ErrInvalidValue
	MessageID string // i18n key
	Message   string // English text
}

func (e *FieldError) Error() string {
	return string(e.Field) + ": " + e.Message
}

func (e *FieldError) Unwrap() error {
	return e.Kind
}

func missing(name FieldName) *FieldError {
	return &FieldError{Field: name, Kind: ErrMissingField, MessageID: config.MsgIDRequired, Message: config.MsgRequired}
}

func invalid(name FieldName, id, msg string) *FieldError {
	return &FieldError{Field: name, Kind: ErrInvalidValue, MessageID: id, Message: msg}
}

// ValidationResult maps a field to its error. A missing key means the field is valid.
type ValidationResult map[FieldName]*FieldError

// OK reports whether no field carries an error.
func (r ValidationResult) OK() bool {
	return len(r) == 0
}

// Message returns the error text for a field, or "".
func (r ValidationResult) Message(name FieldName) string {
	if e, ok := r[name]; ok {
		return e.Message
	}
	return ""
}

// Err joins the field errors in display order, or returns nil.
func (r ValidationResult) Err() error {
	if r.OK() {
		return nil
	}
	var errs []error
	for _, name := range reportOrder {
		if e, ok := r[name]; ok {
			errs = append(errs, e)
		}
	}
	return errors.Join(errs...)
}

// Validate checks every field of in against now.
// A field carries at most one error: "required" when unset, otherwise the first failed range check.
func Validate(in BirthDateInput, now time.Time) ValidationResult {
	result := ValidationResult{}

	year, yearOK := in.Years.Int()
	switch {
	case !in.Years.IsSet():
		result[Years] = missing(Years)
	case !yearOK || year < config.MinYear:
		result[Years] = invalid(Years, config.MsgIDInvalidYear, config.MsgInvalidYear)
	}

	month, monthOK := in.Months.Int()
	switch {
	case !in.Months.IsSet():
		result[Months] = missing(Months)
	case !monthOK || month < config.MinMonth || month > config.MaxMonth:
		result[Months] = invalid(Months, config.MsgIDInvalidMonth, config.MsgInvalidMonth)
	}

	day, dayOK := in.Days.Int()
	switch {
	case !in.Days.IsSet():
		result[Days] = missing(Days)
	case !dayOK || day < config.MinDay || day > config.MaxDay:
		result[Days] = invalid(Days, config.MsgIDInvalidDay, config.MsgInvalidDay)
	case monthOK && day > DaysInMonth(yearOrCommon(year, yearOK), month):
		result[Days] = invalid(Days, config.MsgIDDayInMonth, config.MsgDayInMonth)
	}

	if yearOK && monthOK && dayOK && afterDay(year, month, day, now) {
		result[Date] = invalid(Date, config.MsgIDFutureDate, config.MsgFutureDate)
	}

	return result
}

// afterDay compares the tuple with now's calendar day, without building a time.Time,
// so years time.Date cannot represent are still in the future.
func afterDay(year, month, day int, now time.Time) bool {
	if year != now.Year() {
		return year > now.Year()
	}
	if month != int(now.Month()) {
		return month > int(now.Month())
	}
	return day > now.Day()
}

func yearOrCommon(year int, ok bool) int {
	if !ok {
		return commonYear
	}
	return year
}
