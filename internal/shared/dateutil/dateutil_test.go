package dateutil_test

import (
	"testing"
	"time"

	"go-hrms/internal/shared/dateutil"

	"github.com/stretchr/testify/assert"
)

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := dateutil.Parse(s)
	assert.NoError(t, err)
	return d
}

func TestDaysInclusive(t *testing.T) {
	tests := []struct {
		start, end string
		expected   int
	}{
		{"2024-06-10", "2024-06-12", 3},
		{"2024-06-10", "2024-06-10", 1},
		{"2024-02-28", "2024-03-01", 3},
		{"2024-12-31", "2025-01-01", 2},
		{"2024-06-12", "2024-06-10", -1},
		{"2024-06-11", "2024-06-10", 0},
	}

	for _, tt := range tests {
		got := dateutil.DaysInclusive(mustParse(t, tt.start), mustParse(t, tt.end))
		assert.Equal(t, tt.expected, got, tt.start+".."+tt.end)
	}
}

func TestDaysInclusive_Centuries(t *testing.T) {
	start := mustParse(t, "2000-01-01")
	end := mustParse(t, "2400-01-01")

	got := dateutil.DaysInclusive(start, end)

	assert.Equal(t, 146098, got)
	assert.Len(t, dateutil.Range(start, end), got)
}

func TestRange(t *testing.T) {
	days := dateutil.Range(mustParse(t, "2024-06-10"), mustParse(t, "2024-06-12"))

	assert.Len(t, days, 3)
	assert.Equal(t, "2024-06-10", dateutil.Format(days[0]))
	assert.Equal(t, "2024-06-11", dateutil.Format(days[1]))
	assert.Equal(t, "2024-06-12", dateutil.Format(days[2]))

	assert.Empty(t, dateutil.Range(mustParse(t, "2024-06-12"), mustParse(t, "2024-06-10")))
}

func TestDay(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)
	late := time.Date(2024, 6, 10, 23, 30, 0, 0, jakarta)

	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), dateutil.Day(late))
}

func TestWithin(t *testing.T) {
	start := mustParse(t, "2024-06-10")
	end := mustParse(t, "2024-06-12")

	assert.True(t, dateutil.Within(time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC), start, end))
	assert.True(t, dateutil.Within(time.Date(2024, 6, 12, 23, 59, 0, 0, time.UTC), start, end))
	assert.False(t, dateutil.Within(time.Date(2024, 6, 13, 0, 0, 0, 0, time.UTC), start, end))
	assert.False(t, dateutil.Within(time.Date(2024, 6, 9, 12, 0, 0, 0, time.UTC), start, end))
}
