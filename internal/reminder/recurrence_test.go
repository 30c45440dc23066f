package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextOccurrence(t *testing.T) {
	tests := []struct {
		name    string
		current time.Time
		rec     Recurrence
		want    time.Time
	}{
		{
			name:    "daily",
			current: time.Date(2025, 6, 8, 9, 0, 0, 0, time.Local),
			rec:     RepeatDaily,
			want:    time.Date(2025, 6, 9, 9, 0, 0, 0, time.Local),
		},
		{
			name:    "weekly",
			current: time.Date(2025, 6, 8, 9, 0, 0, 0, time.Local),
			rec:     RepeatWeekly,
			want:    time.Date(2025, 6, 15, 9, 0, 0, 0, time.Local),
		},
		{
			name:    "monthly same day",
			current: time.Date(2025, 6, 8, 9, 0, 0, 0, time.Local),
			rec:     RepeatMonthly,
			want:    time.Date(2025, 7, 8, 9, 0, 0, 0, time.Local),
		},
		{
			name:    "monthly december rolls into january",
			current: time.Date(2025, 12, 15, 9, 0, 0, 0, time.Local),
			rec:     RepeatMonthly,
			want:    time.Date(2026, 1, 15, 9, 0, 0, 0, time.Local),
		},
		{
			name:    "monthly clamps jan 31 to feb 28",
			current: time.Date(2025, 1, 31, 9, 0, 0, 0, time.Local),
			rec:     RepeatMonthly,
			want:    time.Date(2025, 2, 28, 9, 0, 0, 0, time.Local),
		},
		{
			name:    "monthly clamps to feb 29 in a leap year",
			current: time.Date(2024, 1, 31, 9, 0, 0, 0, time.Local),
			rec:     RepeatMonthly,
			want:    time.Date(2024, 2, 29, 9, 0, 0, 0, time.Local),
		},
		{
			name:    "monthly clamps may 31 to june 30",
			current: time.Date(2025, 5, 31, 9, 0, 0, 0, time.Local),
			rec:     RepeatMonthly,
			want:    time.Date(2025, 6, 30, 9, 0, 0, 0, time.Local),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NextOccurrence(tt.current, tt.rec)
			require.True(t, ok)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestNextOccurrence_NoneAndUnknown(t *testing.T) {
	current := time.Date(2025, 6, 8, 9, 0, 0, 0, time.Local)

	_, ok := NextOccurrence(current, RepeatNone)
	assert.False(t, ok)

	_, ok = NextOccurrence(current, Recurrence("每年"))
	assert.False(t, ok)
}
