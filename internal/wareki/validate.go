package wareki

import (
	"strconv"
	"time"
)

// Bounds accepted by the calendar check.
const (
	MinYear = 1
	MaxYear = 32767
)

// IsWesternFormat reports whether s is laid out as a western date. The day
// itself is not checked.
func IsWesternFormat(s string) bool {
	_, ok := ParseWesternDate(s)
	return ok
}

// IsEraFormat reports whether s is laid out as an era date. The day itself
// is not checked.
func IsEraFormat(s string) bool {
	_, ok := ParseEraDate(s)
	return ok
}

// IsValidCalendarDate reports whether month/day/year names a real Gregorian
// day. Years run from MinYear to MaxYear.
func IsValidCalendarDate(month, day, year int) bool {
	if year < MinYear || year > MaxYear || month < 1 || month > 12 || day < 1 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Day() == day && int(t.Month()) == month
}

// CheckWesternDate parses s and confirms it is a real calendar day.
func CheckWesternDate(s string) (WesternDate, error) {
	d, ok := ParseWesternDate(s)
	if !ok {
		return WesternDate{}, &DateError{Kind: FormatMismatch, Input: s}
	}
	if !validDigits(d.Month, d.Day, d.Year) {
		return WesternDate{}, &DateError{Kind: CalendarInvalid, Input: s}
	}
	return d, nil
}

// ValidateWesternDate is CheckWesternDate reporting failure as ok == false.
func ValidateWesternDate(s string) (WesternDate, bool) {
	d, err := CheckWesternDate(s)
	return d, err == nil
}

// CheckEraDate parses s and runs the calendar check on its month, day and
// era-relative year. The era year is not converted first, so February 29
// is judged by the leap rule of the era year number, not of the western
// year it stands for.
func CheckEraDate(s string) (EraDate, error) {
	d, ok := ParseEraDate(s)
	if !ok {
		return EraDate{}, &DateError{Kind: FormatMismatch, Input: s}
	}
	if !validDigits(d.Month, d.Day, eraYearDigits(d.Year)) {
		return EraDate{}, &DateError{Kind: CalendarInvalid, Input: s}
	}
	return d, nil
}

// ValidateEraDate is CheckEraDate reporting failure as ok == false.
func ValidateEraDate(s string) (EraDate, bool) {
	d, err := CheckEraDate(s)
	return d, err == nil
}

// validDigits runs IsValidCalendarDate on digit strings.
func validDigits(month, day, year string) bool {
	m, err := strconv.Atoi(month)
	if err != nil {
		return false
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return false
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return false
	}
	return IsValidCalendarDate(m, d, y)
}

// eraYearDigits maps the Gannen token to "1".
func eraYearDigits(year string) string {
	if year == Gannen {
		return "1"
	}
	return year
}
