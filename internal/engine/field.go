package engine

import (
	"strconv"
	"strings"

	"github.com/tartampluch/go-age/internal/config"
)

// FieldName identifies a birthdate input, or the whole date for cross-field errors.
type FieldName string

const (
	Years  FieldName = config.FieldYears
	Months FieldName = config.FieldMonths
	Days   FieldName = config.FieldDays
	Date   FieldName = config.FieldDate
)

// InputFields lists the user-editable fields in display order.
var InputFields = []FieldName{Days, Months, Years}

// ParseFieldName maps a raw name (form key, URL parameter) to an input field.
// The Date pseudo-field is not settable and is rejected.
func ParseFieldName(s string) (FieldName, bool) {
	switch FieldName(s) {
	case Years, Months, Days:
		return FieldName(s), true
	default:
		return "", false
	}
}

// Field is a single birthdate component: either unset, or the text the user typed.
type Field struct {
	raw string
	set bool
}

// Unset returns an empty field.
func Unset() Field {
	return Field{}
}

// Raw wraps user input. Blank text and the display placeholder are treated as unset.
func Raw(s string) Field {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || trimmed == config.Placeholder {
		return Field{}
	}
	return Field{raw: s, set: true}
}

// IsSet reports whether the user entered anything.
func (f Field) IsSet() bool {
	return f.set
}

// Int parses the entered text as a base-10 integer.
// It returns false when the field is unset or the text is not an integer.
func (f Field) Int() (int, bool) {
	if !f.set {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSpace(f.raw))
	if err != nil {
		return 0, false
	}
	return v, true
}

// Value returns the entered text verbatim, or "" when unset.
func (f Field) Value() string {
	return f.raw
}

// String renders the field for display.
func (f Field) String() string {
	if !f.set {
		return config.Placeholder
	}
	return f.raw
}

// BirthDateInput is the raw form state. Fields are independent until validation runs.
type BirthDateInput struct {
	Years  Field
	Months Field
	Days   Field
}

// Get returns the named field.
func (in BirthDateInput) Get(name FieldName) Field {
	switch name {
	case Years:
		return in.Years
	case Months:
		return in.Months
	case Days:
		return in.Days
	default:
		return Unset()
	}
}

// Complete reports whether all three fields hold something.
func (in BirthDateInput) Complete() bool {
	return in.Years.IsSet() && in.Months.IsSet() && in.Days.IsSet()
}

// ints returns the three values when every field parses as an integer.
func (in BirthDateInput) ints() (year, month, day int, ok bool) {
	y, okY := in.Years.Int()
	m, okM := in.Months.Int()
	d, okD := in.Days.Int()
	return y, m, d, okY && okM && okD
}

// ComputedAge is the result of a successful calculation, or unset.
// It is always replaced as a whole.
type ComputedAge struct {
	Years  int
	Months int
	Days   int
	set    bool
}

// IsSet reports whether an age has been computed.
func (a ComputedAge) IsSet() bool {
	return a.set
}

// Display returns the three components as text, "--" each when unset.
func (a ComputedAge) Display() (years, months, days string) {
	if !a.set {
		return config.Placeholder, config.Placeholder, config.Placeholder
	}
	return strconv.Itoa(a.Years), strconv.Itoa(a.Months), strconv.Itoa(a.Days)
}
