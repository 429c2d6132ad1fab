package engine_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-age/internal/engine"
)

func TestReadBirthDate_Formats(t *testing.T) {
	tests := []struct {
		name    string
		bday    string
		y, m, d string
	}{
		{"ISO dashes", "1985-03-07", "1985", "3", "7"},
		{"ISO basic", "19850307", "1985", "3", "7"},
		{"RFC3339", "1985-03-07T10:00:00+02:00", "1985", "3", "7"},
		{"UTC timestamp", "1985-03-07T00:00:00Z", "1985", "3", "7"},
		{"No year dashes", "--03-07", "", "3", "7"},
		{"No year basic", "--0307", "", "3", "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := "BEGIN:VCARD\nVERSION:3.0\nFN:Test\nBDAY:" + tt.bday + "\nEND:VCARD\n"

			y, m, d, err := engine.ReadBirthDate(strings.NewReader(card))

			require.NoError(t, err)
			assert.Equal(t, tt.y, y)
			assert.Equal(t, tt.m, m)
			assert.Equal(t, tt.d, d)
		})
	}
}

func TestReadBirthDate_SkipsUnusableCards(t *testing.T) {
	stream := `BEGIN:VCARD
VERSION:3.0
FN:No Birthday
END:VCARD
BEGIN:VCARD
VERSION:3.0
FN:Garbage Birthday
BDAY:sometime in spring
END:VCARD
BEGIN:VCARD
VERSION:3.0
FN:Second Match
BDAY:2001-09-11
END:VCARD
BEGIN:VCARD
VERSION:3.0
FN:Ignored
BDAY:1970-01-01
END:VCARD
`
	y, m, d, err := engine.ReadBirthDate(strings.NewReader(stream))

	require.NoError(t, err)
	assert.Equal(t, []string{"2001", "9", "11"}, []string{y, m, d}, "first usable card wins")
}

func TestReadBirthDate_Empty(t *testing.T) {
	_, _, _, err := engine.ReadBirthDate(strings.NewReader(""))
	assert.ErrorIs(t, err, engine.ErrNoBirthday)
}
