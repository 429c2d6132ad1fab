package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-age/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"ICalVersion", config.ICalVersion},
		{"ICalProdid", config.ICalProdid},
		{"Placeholder", config.Placeholder},
		{"SessionCookieName", config.SessionCookieName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

// TestValidationMessages_Text pins the user-facing texts; the browser and desktop layers
// show them verbatim when no translation is loaded.
func TestValidationMessages_Text(t *testing.T) {
	assert.Equal(t, "This field is required", config.MsgRequired)
	assert.Equal(t, "Invalid year", config.MsgInvalidYear)
	assert.Equal(t, "Must be a valid month", config.MsgInvalidMonth)
	assert.Equal(t, "Must be a valid day", config.MsgInvalidDay)
	assert.Equal(t, "Invalid day for the given month", config.MsgDayInMonth)
	assert.Equal(t, "Must be in the past", config.MsgFutureDate)
}

func TestRanges_Sanity(t *testing.T) {
	assert.Less(t, config.MinMonth, config.MaxMonth)
	assert.Less(t, config.MinDay, config.MaxDay)
	assert.Equal(t, config.MaxMonth, config.MonthsYear)
	assert.Equal(t, config.DaysLongMonth, config.MaxDay)
}

func TestTimeoutsAndLimits(t *testing.T) {
	t.Parallel()

	assert.Greater(t, config.ShutdownTimeout, 0*time.Second, "ShutdownTimeout must be positive")
	assert.Greater(t, config.SessionTTL, time.Hour, "Sessions should outlive a single visit")
	assert.Equal(t, 32, config.CSRFKeyLength, "gorilla/csrf expects a 32 byte key")
	assert.Greater(t, config.MaxVCardSize, 0)
}
