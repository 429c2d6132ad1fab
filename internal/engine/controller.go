package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/tartampluch/go-age/internal/config"
)

// ErrNoResult is returned by exports requested before any successful calculation.
var ErrNoResult = errors.New(config.ErrNoResult)

// Controller owns the state of one age form: the raw input, the last validation
// result and the last computed age.
//
// A Controller is not safe for concurrent use. Each presentation layer drives it
// from a single event loop (or serializes access per session).
type Controller struct {
	Clock Clock // Reference date source, injectable for tests.

	input  BirthDateInput
	errors ValidationResult
	age    ComputedAge
	birth  time.Time // birthdate behind age
}

// NewController returns a controller with every field unset.
func NewController(clock Clock) *Controller {
	if clock == nil {
		clock = RealClock{}
	}
	return &Controller{
		Clock:  clock,
		errors: ValidationResult{},
	}
}

// Input returns the current raw form state.
func (c *Controller) Input() BirthDateInput {
	return c.input
}

// Errors returns the result of the last validation.
func (c *Controller) Errors() ValidationResult {
	return c.errors
}

// Age returns the last successfully computed age.
func (c *Controller) Age() ComputedAge {
	return c.age
}

// SetField stores raw verbatim in the named field. Nothing is validated here.
func (c *Controller) SetField(name FieldName, raw string) error {
	f := Raw(raw)
	switch name {
	case Years:
		c.input.Years = f
	case Months:
		c.input.Months = f
	case Days:
		c.input.Days = f
	default:
		return fmt.Errorf("%s: %q", config.ErrUnknownField, name)
	}

	slog.Debug(config.MsgFieldSet,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyField, name,
		config.LogKeyValue, f.String())
	return nil
}

// Validate checks the current input against the clock and keeps the result.
func (c *Controller) Validate() ValidationResult {
	c.errors = Validate(c.input, c.Clock.Now())
	return c.errors
}

// Submit validates the input and, when it is valid, replaces the computed age.
// On failure the previous age is kept and the errors are returned.
func (c *Controller) Submit() ValidationResult {
	now := c.Clock.Now()
	c.errors = Validate(c.input, now)

	if !c.errors.OK() {
		slog.Info(config.MsgSubmitInvalid,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyErrors, len(c.errors))
		return c.errors
	}

	year, month, day, _ := c.input.ints()
	c.birth = birthTime(year, month, day, now.Location())
	c.age = ComputeAge(c.input, now)

	slog.Info(config.MsgSubmitOK,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyYears, c.age.Years,
		config.LogKeyMonths, c.age.Months,
		config.LogKeyDays, c.age.Days)
	return c.errors
}

// ImportVCard prefills the fields from the first birthday found in a vCard stream.
// The imported values go through SetField and are not validated.
func (c *Controller) ImportVCard(r io.Reader) error {
	year, month, day, err := ReadBirthDate(r)
	if err != nil {
		return err
	}

	values := map[FieldName]string{Years: year, Months: month, Days: day}
	for _, name := range InputFields {
		if err := c.SetField(name, values[name]); err != nil {
			return err
		}
	}

	slog.Info(config.MsgVCardImported,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyYears, c.input.Years.String(),
		config.LogKeyMonths, c.input.Months.String(),
		config.LogKeyDays, c.input.Days.String())
	return nil
}

// NextBirthday returns the next birthday of the last computed birthdate and the age reached then.
func (c *Controller) NextBirthday() (time.Time, int, error) {
	if !c.age.IsSet() {
		return time.Time{}, 0, ErrNoResult
	}
	next, age := NextBirthday(c.birth, c.Clock.Now())
	return next, age, nil
}

// Calendar exports the last computed birthdate as an iCalendar feed.
func (c *Controller) Calendar(format SummaryFormatter) ([]byte, error) {
	if !c.age.IsSet() {
		return nil, ErrNoResult
	}
	return BirthdayCalendar(c.birth, c.Clock.Now(), format)
}
