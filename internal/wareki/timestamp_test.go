package wareki_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-wareki/internal/wareki"
)

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

func TestDateToTimestamp_RoundTrip(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"20140101", "20140101"},
		{"2014-5-1", "20140501"},
		{"2000/02/29", "20000229"},
		{"1989年1月7日", "19890107"},
		{"20191231", "20191231"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ts, ok := wareki.DateToTimestamp(tt.input)
			require.True(t, ok)
			assert.Equal(t, tt.want, wareki.TimestampToDate(ts))
		})
	}
}

func TestDateToTimestamp_Overflow(t *testing.T) {
	ts, ok := wareki.DateToTimestamp("20140230")
	require.True(t, ok, "the day is parsed, not validated")
	assert.Equal(t, "20140302", wareki.TimestampToDate(ts))

	_, ok = wareki.DateToTimestamp("not a date")
	assert.False(t, ok)
}

func TestTimestampToDate_Format(t *testing.T) {
	got := wareki.TimestampToDate(time.Now().Unix())
	assert.Regexp(t, regexp.MustCompile(`^[0-9]{8}$`), got)
}

func TestDateInfoAt(t *testing.T) {
	ts := time.Date(2019, 5, 1, 13, 4, 5, 0, time.Local).Unix()

	got := wareki.DateInfoAt(ts)

	assert.Equal(t, wareki.DateInfo{
		Year:    "2019",
		Month:   "05",
		Day:     "01",
		Hour:    "13",
		Minutes: "04",
		Second:  "05",
		Week:    "水",
	}, got)
}

func TestCurrentDateInfo(t *testing.T) {
	clock := MockClock{CurrentTime: time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)}

	got := wareki.CurrentDateInfo(clock)

	assert.Equal(t, "2026", got.Year)
	assert.Equal(t, "10", got.Month)
	assert.Equal(t, "18", got.Day)
	assert.Equal(t, "09", got.Hour)
	assert.Equal(t, "30", got.Minutes)
	assert.Equal(t, "00", got.Second)
	assert.Equal(t, "日", got.Week)

	// A nil clock falls back to the system time.
	now := wareki.CurrentDateInfo(nil)
	assert.Len(t, now.Year, 4)
	assert.NotEmpty(t, now.Week)
}

func TestWeekdayName(t *testing.T) {
	want := []string{"日", "月", "火", "水", "木", "金", "土"}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		assert.Equal(t, want[wd], wareki.WeekdayName(wd))
	}
}
