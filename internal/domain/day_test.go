package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	tests := []struct {
		input   string
		want    Day
		wantErr bool
	}{
		{"2024-06-03", "2024-06-03", false},
		{"2024-02-29", "2024-02-29", false},
		{"2023-02-29", "", true},
		{"2024-6-3", "", true},
		{"", "", true},
		{"tomorrow", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDay(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDayOf_UsesLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	instant := time.Date(2024, 6, 3, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, Day("2024-06-03"), DayOf(instant))
	assert.Equal(t, Day("2024-06-04"), DayOf(instant.In(tokyo)))
}

func TestDay_AddDays(t *testing.T) {
	d := MustParseDay("2024-02-28")

	assert.Equal(t, Day("2024-02-29"), d.AddDays(1))
	assert.Equal(t, Day("2024-03-01"), d.AddDays(2))
	assert.Equal(t, Day("2024-02-21"), d.AddDays(-7))
	assert.Equal(t, d, d.AddDays(0))
}

func TestDay_DaysUntil(t *testing.T) {
	mon := MustParseDay("2024-06-03")

	assert.Equal(t, 2, mon.DaysUntil("2024-06-05"))
	assert.Equal(t, 0, mon.DaysUntil(mon))
	assert.Equal(t, -3, mon.DaysUntil("2024-05-31"))
	// Across a DST change in Europe; day keys are zone independent.
	assert.Equal(t, 1, MustParseDay("2024-03-30").DaysUntil("2024-03-31"))
}

func TestDay_Compare(t *testing.T) {
	a := MustParseDay("2024-06-03")
	b := MustParseDay("2024-06-10")

	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.True(t, b.After(a))
	assert.False(t, a.After(a))
	assert.False(t, a.Before(a))
}

func TestDay_StartOf(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	start := MustParseDay("2024-06-03").StartOf(loc)

	assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, loc), start)
}

func TestDay_WeekStart(t *testing.T) {
	tests := []struct {
		day  Day
		want Day
	}{
		{"2024-06-03", "2024-06-03"}, // Monday
		{"2024-06-05", "2024-06-03"}, // Wednesday
		{"2024-06-09", "2024-06-03"}, // Sunday
		{"2024-06-10", "2024-06-10"}, // next Monday
		{"2024-01-01", "2024-01-01"},
		{"2023-01-01", "2022-12-26"}, // Sunday across a year boundary
	}

	for _, tt := range tests {
		t.Run(string(tt.day), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.day.WeekStart())
		})
	}
}

func TestDay_Valid(t *testing.T) {
	assert.True(t, Day("2024-06-03").Valid())
	assert.False(t, Day("").Valid())
	assert.False(t, Day("2024-13-01").Valid())
	assert.True(t, Day("").IsZero())
}
