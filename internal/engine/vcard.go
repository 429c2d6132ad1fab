package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-age/internal/config"
)

// ErrNoBirthday is returned when no card in the stream has a usable BDAY.
var ErrNoBirthday = errors.New(config.ErrNoBirthday)

// ReadBirthDate decodes a vCard stream and returns the first parseable birthday
// as form values. A year-less birthday (--MM-DD) leaves year empty.
func ReadBirthDate(r io.Reader) (year, month, day string, err error) {
	decoder := vcard.NewDecoder(io.LimitReader(r, config.MaxVCardSize))

	for {
		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A broken card stops the decoder; nothing after it can be trusted.
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyError, err)
			return "", "", "", fmt.Errorf("%s: %w", config.ErrVCardParse, err)
		}

		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}

		birthDate, yearKnown, err := parseDate(bday.Value)
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyValue, bday.Value)
			continue
		}

		if yearKnown {
			year = strconv.Itoa(birthDate.Year())
		}
		return year, strconv.Itoa(int(birthDate.Month())), strconv.Itoa(birthDate.Day()), nil
	}

	return "", "", "", ErrNoBirthday
}

// parseDate handles the vCard 3.0 and 4.0 date formats.
func parseDate(value string) (time.Time, bool, error) {
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, true, nil
		}
	}

	// Truncated dates (year unknown). time.Parse yields year 0, which is a leap year,
	// so --02-29 survives.
	formatsWithoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, f := range formatsWithoutYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, false, nil
		}
	}

	return time.Time{}, false, fmt.Errorf("%s: %q", config.ErrDateParse, value)
}
