package wareki

import (
	"fmt"
	"strconv"
	"time"
)

// Wareki is the era-notation result of a western date conversion.
// Year is the era-relative year as a decimal string ("1" for the first
// year); Month and Day are carried over from the input unchanged.
type Wareki struct {
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	Year      string `json:"year"`
	Month     string `json:"month"`
	Day       string `json:"day"`
}

// String renders w in the layout ParseEraDate accepts, e.g. 令和1年05月01日.
func (w Wareki) String() string {
	return w.Name + w.Year + "年" + w.Month + "月" + w.Day + "日"
}

// Gannen renders w like String but writes the first year as 元.
func (w Wareki) Gannen() string {
	if w.Year == "1" {
		return w.Name + Gannen + "年" + w.Month + "月" + w.Day + "日"
	}
	return w.String()
}

// ConvertWesternToEra validates a western date and expresses it in the era
// that contains it.
func ConvertWesternToEra(s string) (Wareki, error) {
	d, err := CheckWesternDate(s)
	if err != nil {
		return Wareki{}, err
	}
	date, _ := strconv.Atoi(d.Date)
	era, ok := EraOf(date)
	if !ok {
		return Wareki{}, &DateError{Kind: OutOfRange, Input: s}
	}
	year, _ := strconv.Atoi(d.Year)
	return Wareki{
		Name:      era.Name,
		ShortName: era.ShortName,
		Year:      strconv.Itoa(year - era.StartYear() + 1),
		Month:     d.Month,
		Day:       d.Day,
	}, nil
}

// WesternToEra is ConvertWesternToEra reporting failure as ok == false.
func WesternToEra(s string) (Wareki, bool) {
	w, err := ConvertWesternToEra(s)
	return w, err == nil
}

// ConvertEraToWestern expresses an era date as a western date. Era year 1
// (or 元) is the western year the era started in. The month and day are
// carried over and the resulting western date must be a real calendar day.
// The date is not required to fall inside the named era.
func ConvertEraToWestern(s string) (WesternDate, error) {
	d, ok := ParseEraDate(s)
	if !ok {
		return WesternDate{}, &DateError{Kind: FormatMismatch, Input: s}
	}
	era, ok := EraByName(d.Era)
	if !ok {
		return WesternDate{}, &DateError{Kind: FormatMismatch, Input: s}
	}
	eraYear, _ := strconv.Atoi(eraYearDigits(d.Year))

	start := dateOf(era.StartDate)
	year := start.AddDate(eraYear-1, 0, 0).Year()

	if !validDigits(d.Month, d.Day, strconv.Itoa(year)) {
		return WesternDate{}, &DateError{Kind: CalendarInvalid, Input: s}
	}
	return WesternDate{
		Year:  fmt.Sprintf("%04d", year),
		Month: d.Month,
		Day:   d.Day,
		Date:  fmt.Sprintf("%04d%s%s", year, pad2(d.Month), pad2(d.Day)),
	}, nil
}

// EraToWestern is ConvertEraToWestern reporting failure as ok == false.
func EraToWestern(s string) (WesternDate, bool) {
	d, err := ConvertEraToWestern(s)
	return d, err == nil
}

// dateOf turns a YYYYMMDD integer into local midnight of that day.
func dateOf(date int) time.Time {
	return time.Date(date/10000, time.Month(date/100%100), date%100, 0, 0, 0, 0, time.Local)
}
