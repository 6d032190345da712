package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysDiff(t *testing.T) {
	warsaw, err := time.LoadLocation("Europe/Warsaw")
	require.NoError(t, err)

	tests := []struct {
		name string
		d1   time.Time
		d2   time.Time
		want int
	}{
		{
			name: "same day",
			d1:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			d2:   time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC),
			want: 0,
		},
		{
			name: "four days apart",
			d1:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			d2:   time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			want: 4,
		},
		{
			name: "order does not matter",
			d1:   time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			d2:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			want: 4,
		},
		{
			name: "across DST change",
			d1:   time.Date(2024, 3, 30, 23, 30, 0, 0, warsaw),
			d2:   time.Date(2024, 4, 1, 0, 30, 0, 0, warsaw),
			want: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysDiff(tt.d1, tt.d2))
			assert.Equal(t, tt.want+1, DaysDiffInclusive(tt.d1, tt.d2))
		})
	}
}

func TestSignedDaysDiff(t *testing.T) {
	start := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, -3, SignedDaysDiff(start, start.AddDate(0, 0, -3)))
	assert.Equal(t, 3, SignedDaysDiff(start, start.AddDate(0, 0, 3)))
}

func TestParseDate(t *testing.T) {
	t.Run("should parse calendar date at noon", func(t *testing.T) {
		d, err := ParseDate("2024-02-29")

		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC), d)
	})

	t.Run("should accept RFC3339", func(t *testing.T) {
		d, err := ParseDate("2024-02-29T08:15:00+01:00")

		require.NoError(t, err)
		assert.Equal(t, "2024-02-29", FormatDate(d))
	})

	t.Run("should reject garbage", func(t *testing.T) {
		_, err := ParseDate("29/02/2024")
		assert.Error(t, err)

		_, err = ParseDate("  ")
		assert.Error(t, err)
	})
}

func TestAddDays(t *testing.T) {
	d := AddDays(time.Date(2024, 12, 30, 3, 0, 0, 0, time.UTC), 3)

	assert.Equal(t, time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC), d)
}

func TestMockClock(t *testing.T) {
	clock := NewMockClock(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))

	clock.AdvanceDays(2)

	assert.Equal(t, time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC), clock.Now())
}

func TestDaysDiff_LongSpans(t *testing.T) {
	t.Run("should count a full 400 year Gregorian cycle", func(t *testing.T) {
		start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2400, 1, 1, 0, 0, 0, 0, time.UTC)

		assert.Equal(t, 146097, DaysDiff(start, end))
		assert.Equal(t, -146097, SignedDaysDiff(end, start))
	})

	t.Run("should count spans longer than a time.Duration can hold", func(t *testing.T) {
		start := time.Date(1700, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

		assert.Equal(t, 118338, DaysDiff(start, end))
		assert.Equal(t, 118339, DaysDiffInclusive(start, end))
		assert.Equal(t, end.Add(12*time.Hour), AddDays(start, 118338))
	})
}
