package wareki

import (
	"strconv"
	"time"
)

const layoutDate = "20060102"

// weekdays is indexed by time.Weekday, Sunday first.
var weekdays = [7]string{"日", "月", "火", "水", "木", "金", "土"}

// DateInfo is a point in time split into zero-padded digit fields plus the
// kanji weekday. Hour is on the 24-hour clock.
type DateInfo struct {
	Year    string `json:"year"`
	Month   string `json:"month"`
	Day     string `json:"day"`
	Hour    string `json:"hour"`
	Minutes string `json:"minutes"`
	Second  string `json:"second"`
	Week    string `json:"week"`
}

// DateToTimestamp returns the Unix time of local midnight on the western
// date s. The date is parsed but not validated: day or month overflow rolls
// forward the way time.Date normalises it.
func DateToTimestamp(s string) (int64, bool) {
	d, ok := ParseWesternDate(s)
	if !ok {
		return 0, false
	}
	y, _ := strconv.Atoi(d.Year)
	m, _ := strconv.Atoi(d.Month)
	day, _ := strconv.Atoi(d.Day)
	return time.Date(y, time.Month(m), day, 0, 0, 0, 0, time.Local).Unix(), true
}

// TimestampToDate formats a Unix time as the local YYYYMMDD date.
func TimestampToDate(ts int64) string {
	return time.Unix(ts, 0).In(time.Local).Format(layoutDate)
}

// DateInfoAt splits the Unix time ts in the local zone.
func DateInfoAt(ts int64) DateInfo {
	return dateInfo(time.Unix(ts, 0).In(time.Local))
}

// CurrentDateInfo splits the clock's current time. A nil clock reads the
// system time.
func CurrentDateInfo(c Clock) DateInfo {
	if c == nil {
		c = RealClock{}
	}
	return dateInfo(c.Now())
}

// WeekdayName returns the one-kanji name of wd.
func WeekdayName(wd time.Weekday) string {
	return weekdays[wd]
}

func dateInfo(t time.Time) DateInfo {
	return DateInfo{
		Year:    t.Format("2006"),
		Month:   t.Format("01"),
		Day:     t.Format("02"),
		Hour:    t.Format("15"),
		Minutes: t.Format("04"),
		Second:  t.Format("05"),
		Week:    weekdays[t.Weekday()],
	}
}
