package day

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		wantStart time.Time
		wantErr   bool
	}{
		{
			name:      "regular date",
			date:      "2026-03-14",
			wantStart: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "leap day",
			date:      "2024-02-29",
			wantStart: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "not a leap year",
			date:    "2025-02-29",
			wantErr: true,
		},
		{
			name:    "wrong layout",
			date:    "14-03-2026",
			wantErr: true,
		},
		{
			name:    "timestamp instead of date",
			date:    "2026-03-14T10:00:00Z",
			wantErr: true,
		},
		{
			name:    "empty",
			date:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := Parse(tt.date)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.wantStart.Equal(start))
			assert.True(t, tt.wantStart.AddDate(0, 0, 1).Equal(end))
		})
	}
}

func TestFormat_UsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	moment := time.Date(2026, 3, 15, 1, 30, 0, 0, loc)

	assert.Equal(t, "2026-03-14", Format(moment))
}

func TestWindowStart(t *testing.T) {
	now := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, 3, 7, 18, 0, 0, 0, time.UTC), WindowStart(now, 7))
	assert.Equal(t, time.Date(2026, 3, 13, 18, 0, 0, 0, time.UTC), WindowStart(now, 1))
}

func TestRoundKcal(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{in: 52, want: 52},
		{in: 52.4, want: 52},
		{in: 52.5, want: 53},
		{in: 0.4, want: 0},
		{in: -10, want: 0},
		{in: math.NaN(), want: 0},
		{in: math.Inf(1), want: math.MaxInt32},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundKcal(tt.in), "RoundKcal(%v)", tt.in)
	}
}

func TestPortionKcal(t *testing.T) {
	assert.Equal(t, 52, PortionKcal(52, 100))
	assert.Equal(t, 78, PortionKcal(52, 150))
	assert.Equal(t, 1, PortionKcal(52, 1))
	assert.Equal(t, 0, PortionKcal(52, 0))
	assert.Equal(t, 0, PortionKcal(52, -20))
}
