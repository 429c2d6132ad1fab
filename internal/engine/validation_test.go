package engine_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

func TestValidate(t *testing.T) {
	now := time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   engine.BirthDateInput
		want map[engine.FieldName]string
	}{
		{
			name: "Valid date",
			in:   input("1990", "5", "14"),
			want: map[engine.FieldName]string{},
		},
		{
			name: "Missing year only",
			in:   input("--", "5", "14"),
			want: map[engine.FieldName]string{engine.Years: config.MsgRequired},
		},
		{
			name: "All missing",
			in:   input("", "", ""),
			want: map[engine.FieldName]string{
				engine.Years:  config.MsgRequired,
				engine.Months: config.MsgRequired,
				engine.Days:   config.MsgRequired,
			},
		},
		{
			name: "Negative year",
			in:   input("-1", "5", "14"),
			want: map[engine.FieldName]string{engine.Years: config.MsgInvalidYear},
		},
		{
			name: "Year zero is accepted",
			in:   input("0", "5", "14"),
			want: map[engine.FieldName]string{},
		},
		{
			name: "Month out of range",
			in:   input("2024", "13", "1"),
			want: map[engine.FieldName]string{engine.Months: config.MsgInvalidMonth},
		},
		{
			name: "Month zero",
			in:   input("2024", "0", "1"),
			want: map[engine.FieldName]string{engine.Months: config.MsgInvalidMonth},
		},
		{
			name: "Day out of range",
			in:   input("2024", "1", "32"),
			want: map[engine.FieldName]string{engine.Days: config.MsgInvalidDay},
		},
		{
			name: "Day 30 in a leap February",
			in:   input("2024", "2", "30"),
			want: map[engine.FieldName]string{engine.Days: config.MsgDayInMonth},
		},
		{
			name: "Day 29 in a common February",
			in:   input("2023", "2", "29"),
			want: map[engine.FieldName]string{engine.Days: config.MsgDayInMonth},
		},
		{
			name: "Day 29 in a leap February",
			in:   input("2024", "2", "29"),
			want: map[engine.FieldName]string{},
		},
		{
			name: "Day 31 in April",
			in:   input("2020", "4", "31"),
			want: map[engine.FieldName]string{engine.Days: config.MsgDayInMonth},
		},
		{
			name: "February 29 without a year counts as a common year",
			in:   input("", "2", "29"),
			want: map[engine.FieldName]string{
				engine.Years: config.MsgRequired,
				engine.Days:  config.MsgDayInMonth,
			},
		},
		{
			name: "Invalid month skips the days-in-month check",
			in:   input("2024", "13", "31"),
			want: map[engine.FieldName]string{engine.Months: config.MsgInvalidMonth},
		},
		{
			name: "Text is not a number",
			in:   input("abc", "x", "1.5"),
			want: map[engine.FieldName]string{
				engine.Years:  config.MsgInvalidYear,
				engine.Months: config.MsgInvalidMonth,
				engine.Days:   config.MsgInvalidDay,
			},
		},
		{
			name: "Future date",
			in:   input("2999", "1", "1"),
			want: map[engine.FieldName]string{engine.Date: config.MsgFutureDate},
		},
		{
			name: "Tomorrow",
			in:   input("2026", "10", "16"),
			want: map[engine.FieldName]string{engine.Date: config.MsgFutureDate},
		},
		{
			name: "Year beyond the time range",
			in:   input("300000000000", "1", "1"),
			want: map[engine.FieldName]string{engine.Date: config.MsgFutureDate},
		},
		{
			name: "Largest int year",
			in:   input("9223372036854775807", "1", "1"),
			want: map[engine.FieldName]string{engine.Date: config.MsgFutureDate},
		},
		{
			name: "Year overflowing int",
			in:   input("9223372036854775808", "1", "1"),
			want: map[engine.FieldName]string{engine.Years: config.MsgInvalidYear},
		},
		{
			name: "Later this year",
			in:   input("2026", "11", "1"),
			want: map[engine.FieldName]string{engine.Date: config.MsgFutureDate},
		},
		{
			name: "Earlier this month",
			in:   input("2026", "10", "1"),
			want: map[engine.FieldName]string{},
		},
		{
			name: "Today",
			in:   input("2026", "10", "15"),
			want: map[engine.FieldName]string{},
		},
		{
			name: "Future date with an invalid month still reports both",
			in:   input("2999", "13", "1"),
			want: map[engine.FieldName]string{
				engine.Months: config.MsgInvalidMonth,
				engine.Date:   config.MsgFutureDate,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Validate(tt.in, now)

			msgs := make(map[engine.FieldName]string, len(got))
			for name, e := range got {
				msgs[name] = e.Message
			}
			assert.Equal(t, tt.want, msgs)
			assert.Equal(t, len(tt.want) == 0, got.OK())
		})
	}
}

func TestValidationResult_Kinds(t *testing.T) {
	now := time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)

	got := engine.Validate(input("", "13", "1"), now)
	require.Len(t, got, 2)

	assert.ErrorIs(t, got[engine.Years], engine.ErrMissingField)
	assert.ErrorIs(t, got[engine.Months], engine.ErrInvalidValue)
	assert.Equal(t, config.MsgIDRequired, got[engine.Years].MessageID)
	assert.Equal(t, config.MsgIDInvalidMonth, got[engine.Months].MessageID)

	err := got.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrMissingField))
	assert.True(t, errors.Is(err, engine.ErrInvalidValue))
	assert.Equal(t, "months: Must be a valid month\nyears: This field is required", err.Error())

	assert.Equal(t, config.MsgRequired, got.Message(engine.Years))
	assert.Empty(t, got.Message(engine.Days))
	assert.NoError(t, engine.ValidationResult{}.Err())
}

func TestRaw(t *testing.T) {
	tests := []struct {
		raw   string
		set   bool
		value int
		isInt bool
	}{
		{"", false, 0, false},
		{"   ", false, 0, false},
		{"--", false, 0, false},
		{"7", true, 7, true},
		{" 12 ", true, 12, true},
		{"-3", true, -3, true},
		{"abc", true, 0, false},
		{"1e3", true, 0, false},
	}

	for _, tt := range tests {
		f := engine.Raw(tt.raw)
		assert.Equal(t, tt.set, f.IsSet(), "IsSet(%q)", tt.raw)

		v, ok := f.Int()
		assert.Equal(t, tt.isInt, ok, "Int(%q)", tt.raw)
		assert.Equal(t, tt.value, v, "Int(%q)", tt.raw)
	}

	assert.Equal(t, "--", engine.Unset().String())
	assert.Equal(t, " 12 ", engine.Raw(" 12 ").String(), "raw text is kept verbatim")
}

func TestParseFieldName(t *testing.T) {
	for _, name := range []string{"years", "months", "days"} {
		got, ok := engine.ParseFieldName(name)
		assert.True(t, ok)
		assert.Equal(t, engine.FieldName(name), got)
	}

	for _, name := range []string{"date", "", "Years"} {
		_, ok := engine.ParseFieldName(name)
		assert.False(t, ok, name)
	}
}
