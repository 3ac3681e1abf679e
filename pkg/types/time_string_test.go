package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeString(t *testing.T) {
	moment := time.Date(2026, 9, 1, 9, 30, 45, 0, time.UTC)
	assert.Equal(t, TimeString("09:30"), NewTimeString(moment))
}

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr error
	}{
		{name: "valid morning", input: "09:30", want: "09:30"},
		{name: "valid midnight", input: "00:00", want: "00:00"},
		{name: "valid end of day", input: "23:59", want: "23:59"},
		{name: "missing leading zero", input: "9:30", wantErr: ErrInvalidFormat},
		{name: "no colon", input: "0930x", wantErr: ErrInvalidFormat},
		{name: "garbage", input: "ab:cd", wantErr: ErrInvalidFormat},
		{name: "hour out of range", input: "24:00", wantErr: ErrOutOfRange},
		{name: "minute out of range", input: "10:60", wantErr: ErrOutOfRange},
		{name: "empty", input: "", wantErr: ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		start   TimeString
		minutes int
		want    TimeString
		wantErr bool
	}{
		{name: "within day", start: "09:30", minutes: 90, want: "11:00"},
		{name: "exactly end of day", start: "22:30", minutes: 90, want: "24:00"},
		{name: "past end of day", start: "23:00", minutes: 90, wantErr: true},
		{name: "zero minutes", start: "10:00", minutes: 0, want: "10:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.start.AddMinutes(tt.minutes)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_MinutesBetween(t *testing.T) {
	diff, err := TimeString("11:00").MinutesBetween("09:30")
	require.NoError(t, err)
	assert.Equal(t, 90, diff)

	diff, err = TimeString("09:00").MinutesBetween("10:00")
	require.NoError(t, err)
	assert.Equal(t, -60, diff)
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("09:30").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:30").IsAfter("10:00"))

	// Ведущие нули делают лексикографическое сравнение корректным
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.True(t, TimeString("02:00").IsBefore("10:00"))
}
