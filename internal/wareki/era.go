// Package wareki converts dates between the Gregorian calendar (西暦) and the
// Japanese imperial-era calendar (和暦).
//
// Every exported function is a pure function over its input and the built-in
// era table. Malformed or impossible dates never panic: the plain forms
// report failure with a false ok value, the Check/Convert forms return a
// *DateError that says whether the input was not recognised or was not a
// real calendar day.
//
//	w, ok := wareki.WesternToEra("2019-05-01")
//	// w.Name == "令和", w.Year == "1"
//
//	d, ok := wareki.EraToWestern("平成元年01月08日")
//	// d.Date == "19890108"
package wareki

// OpenEnded is the end date of the current era.
const OpenEnded = 99999999

// Era is one record of the era table. Dates are YYYYMMDD integers and both
// ends are inclusive.
type Era struct {
	Name      string `json:"name"`      // Kanji name, e.g. "令和".
	ShortName string `json:"shortName"` // ASCII code, e.g. "R".
	StartDate int    `json:"startDate"`
	EndDate   int    `json:"endDate"`
}

// eras is ordered chronologically. To add an era, set the current last
// record's EndDate to the day before the new era starts and append the new
// record with EndDate OpenEnded.
var eras = [...]Era{
	{Name: "明治", ShortName: "M", StartDate: 18681023, EndDate: 19120729},
	{Name: "大正", ShortName: "T", StartDate: 19120730, EndDate: 19261224},
	{Name: "昭和", ShortName: "S", StartDate: 19261225, EndDate: 19890107},
	{Name: "平成", ShortName: "H", StartDate: 19890108, EndDate: 20190430},
	{Name: "令和", ShortName: "R", StartDate: 20190501, EndDate: OpenEnded},
}

// Eras returns a copy of the era table in chronological order.
func Eras() []Era {
	out := make([]Era, len(eras))
	copy(out, eras[:])
	return out
}

// StartYear is the western year in which the era began.
func (e Era) StartYear() int {
	return e.StartDate / 10000
}

// Contains reports whether the YYYYMMDD date falls inside the era.
func (e Era) Contains(date int) bool {
	return date >= e.StartDate && date <= e.EndDate
}

// EraOf returns the era containing the YYYYMMDD date. A date equal to an
// era's EndDate belongs to that era. Dates before the first era are out of
// range.
func EraOf(date int) (Era, bool) {
	if date < eras[0].StartDate {
		return Era{}, false
	}
	for _, e := range eras {
		if e.EndDate < date {
			continue
		}
		return e, true
	}
	return Era{}, false
}

// EraByName resolves an era by its kanji name or its short code.
// Matching is exact and case-sensitive.
func EraByName(name string) (Era, bool) {
	for _, e := range eras {
		if e.Name == name || e.ShortName == name {
			return e, true
		}
	}
	return Era{}, false
}
