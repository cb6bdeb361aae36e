package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClockTime(t *testing.T) {
	cases := []struct {
		in   string
		want ClockTime
	}{
		{"07:00 AM", 7 * 60},
		{"7:00 AM", 7 * 60},
		{"09:00AM", 9 * 60}, // missing space tolerated
		{"2:30 pm", 14*60 + 30},
		{"2:30PM", 14*60 + 30},
		{"12:00 AM", 0},
		{"12:00 PM", 12 * 60},
		{"  8:15 AM  ", 8*60 + 15},
		{"11:59 PM", 23*60 + 59},
	}
	for _, tc := range cases {
		got, err := ParseClockTime(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestParseClockTimeRejects(t *testing.T) {
	for _, in := range []string{
		"",
		"AM",
		"PM",
		"7:00",     // no meridiem
		"25:00 AM", // hour out of range for a 12-hour clock
		"13:00 PM",
		"7.00 AM",
		"seven AM",
	} {
		_, err := ParseClockTime(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestOverlaps(t *testing.T) {
	nine, ten, halfNine, halfTen, eleven := ClockTime(540), ClockTime(600), ClockTime(570), ClockTime(630), ClockTime(660)

	assert.True(t, Overlaps(nine, ten, halfNine, halfTen))
	assert.True(t, Overlaps(halfNine, halfTen, nine, ten))
	assert.True(t, Overlaps(nine, eleven, halfNine, halfTen)) // containment

	// Back-to-back slots sharing an endpoint do not overlap.
	assert.False(t, Overlaps(nine, ten, ten, eleven))
	assert.False(t, Overlaps(ten, eleven, nine, ten))

	assert.False(t, Overlaps(nine, halfNine, ten, eleven))
}

func TestIsValidDay(t *testing.T) {
	for _, day := range ValidDays {
		assert.True(t, IsValidDay(day))
	}
	assert.False(t, IsValidDay("monday"))
	assert.False(t, IsValidDay("Mon"))
	assert.False(t, IsValidDay(""))
}
