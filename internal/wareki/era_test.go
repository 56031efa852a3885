package wareki_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-wareki/internal/wareki"
)

func ymd(date int) time.Time {
	return time.Date(date/10000, time.Month(date/100%100), date%100, 0, 0, 0, 0, time.UTC)
}

// TestEraTable_Contiguous checks that every era starts the day after the
// previous one ends and that only the last era is open-ended.
func TestEraTable_Contiguous(t *testing.T) {
	eras := wareki.Eras()
	require.NotEmpty(t, eras)

	for i := 1; i < len(eras); i++ {
		prev, cur := eras[i-1], eras[i]
		assert.Equal(t, ymd(prev.EndDate).AddDate(0, 0, 1), ymd(cur.StartDate),
			"%s must start the day after %s ends", cur.Name, prev.Name)
		assert.NotEqual(t, wareki.OpenEnded, prev.EndDate, "only the last era is open-ended")
	}
	assert.Equal(t, wareki.OpenEnded, eras[len(eras)-1].EndDate)
}

// TestEras_ReturnsCopy ensures callers cannot mutate the shared table.
func TestEras_ReturnsCopy(t *testing.T) {
	eras := wareki.Eras()
	eras[0].Name = "changed"

	e, ok := wareki.EraByName("M")
	require.True(t, ok)
	assert.Equal(t, "明治", e.Name)
}

func TestEraOf(t *testing.T) {
	tests := []struct {
		name   string
		date   int
		want   string
		wantOK bool
	}{
		{"Before Meiji", 18681022, "", false},
		{"First day of Meiji", 18681023, "明治", true},
		{"Last day of Meiji", 19120729, "明治", true},
		{"First day of Taisho", 19120730, "大正", true},
		{"Last day of Showa", 19890107, "昭和", true},
		{"First day of Heisei", 19890108, "平成", true},
		{"Last day of Heisei", 20190430, "平成", true},
		{"First day of Reiwa", 20190501, "令和", true},
		{"Far future", 29991231, "令和", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := wareki.EraOf(tt.date)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, e.Name)
		})
	}
}

func TestEraByName(t *testing.T) {
	for _, e := range wareki.Eras() {
		byName, ok := wareki.EraByName(e.Name)
		require.True(t, ok, e.Name)
		assert.Equal(t, e, byName)

		byCode, ok := wareki.EraByName(e.ShortName)
		require.True(t, ok, e.ShortName)
		assert.Equal(t, e, byCode)
	}

	_, ok := wareki.EraByName("r")
	assert.False(t, ok, "short codes are case-sensitive")
	_, ok = wareki.EraByName("")
	assert.False(t, ok)
}

func TestEra_StartYearAndContains(t *testing.T) {
	reiwa, ok := wareki.EraByName("令和")
	require.True(t, ok)

	assert.Equal(t, 2019, reiwa.StartYear())
	assert.True(t, reiwa.Contains(20190501))
	assert.False(t, reiwa.Contains(20190430))
}

func TestUnits(t *testing.T) {
	assert.Equal(t, 86400, wareki.SecondsPerDay)
	assert.Equal(t, 1440, wareki.MinutesPerDay)
	assert.Equal(t, 24, wareki.HoursPerDay)
}
