package carbon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTime(t *testing.T) {
	ts := time.Date(2024, 1, 1, 12, 34, 56, 999, time.UTC)
	assert.Equal(t, "2024-01-01T12:34Z", FormatTime(ts))

	// Converted to UTC before formatting.
	bst := time.FixedZone("BST", 60*60)
	assert.Equal(t, "2024-06-01T11:59Z", FormatTime(time.Date(2024, 6, 1, 12, 59, 59, 0, bst)))
}

func TestWindows(t *testing.T) {
	now := time.Date(2024, 3, 31, 0, 30, 15, 0, time.UTC)

	tests := []struct {
		kind     WindowKind
		duration time.Duration
		from     time.Time
	}{
		{WindowHistory7d, 7 * 24 * time.Hour, now.Add(-7 * 24 * time.Hour)},
		{WindowCurrent30m, 30 * time.Minute, now},
		{WindowForecast48h, 48 * time.Hour, now},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			w, err := WindowFor(tt.kind, now)
			require.NoError(t, err)

			assert.False(t, w.To.Before(w.From), "start must not be after end")
			assert.Equal(t, tt.duration, w.Duration())
			assert.True(t, tt.from.Equal(w.From))
			assert.Equal(t, time.UTC, w.From.Location())
		})
	}
}

func TestWindowForNonUTCNow(t *testing.T) {
	now := time.Date(2024, 10, 27, 1, 30, 0, 0, time.FixedZone("CEST", 2*60*60))

	w := HistoryWindow(now)
	assert.Equal(t, "2024-10-19T23:30Z", FormatTime(w.From))
	assert.Equal(t, "2024-10-26T23:30Z", FormatTime(w.To))
}

func TestWindowForUnknown(t *testing.T) {
	_, err := WindowFor("next-week", time.Now())
	require.Error(t, err)
}

func TestParseWindowKind(t *testing.T) {
	for _, k := range WindowKinds {
		got, err := ParseWindowKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	_, err := ParseWindowKind("forecast-24h")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "forecast-24h")
}
