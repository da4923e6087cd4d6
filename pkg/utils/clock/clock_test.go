package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"00:00", 0},
		{"07:30", 450},
		{"9:00", 540},
		{"13:05", 785},
		{" 21:00 ", 1260},
		{"24:00", 1440},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			minutes, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, minutes)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, input := range []string{"", "0730", "7:3", "aa:00", "07:xx", "07:60", "24:01", "25:00", "-1:00", "123:00"} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			assert.Error(t, err)
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "00:00", Format(0))
	assert.Equal(t, "07:30", Format(450))
	assert.Equal(t, "21:00", Format(1260))
	assert.Equal(t, "09:00-09:05", FormatRange(540, 545))
}

func TestParseFormat_RoundTrip(t *testing.T) {
	for _, s := range []string{"07:30", "09:00", "13:00", "16:30", "18:00", "21:00"} {
		assert.Equal(t, s, Format(MustParse(s)))
	}
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParse("noon") })
}
