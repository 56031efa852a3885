package wareki

import (
	"regexp"
	"strings"
)

// Gannen is the token for the first year of an era (元年).
const Gannen = "元"

// WesternDate is a Gregorian date split into its digit fields.
// Year, Month and Day keep the digits exactly as written; Date is the
// zero-padded YYYYMMDD form.
type WesternDate struct {
	Year  string `json:"year"`
	Month string `json:"month"`
	Day   string `json:"day"`
	Date  string `json:"date"`
}

// EraDate is an era-notation date split into its fields. Year may hold the
// Gannen token. Date is Year, Month and Day concatenated as written.
type EraDate struct {
	Era   string `json:"gengo"`
	Year  string `json:"year"`
	Month string `json:"month"`
	Day   string `json:"day"`
	Date  string `json:"date"`
}

// TimeOfDay is a wall-clock time split into its digit fields.
type TimeOfDay struct {
	Hour    string `json:"hour"`
	Minutes string `json:"minutes"`
	Second  string `json:"second"`
}

// Western date layouts, tried in order. Each captures year, month, day.
var westernPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^([0-9]{4})([0-9]{2})([0-9]{2})$`),
	regexp.MustCompile(`^([0-9]{4})-([0-9]{1,2})-([0-9]{1,2})$`),
	regexp.MustCompile(`^([0-9]{4})/([0-9]{1,2})/([0-9]{1,2})$`),
	regexp.MustCompile(`^([0-9]{4})年([0-9]{1,2})月([0-9]{1,2})日?$`),
}

// Time layouts, tried in order. Each captures hour, minutes, second.
var timePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^([0-9]{2})([0-9]{2})([0-9]{2})$`),
	regexp.MustCompile(`^(?:午前|午後)?([0-9]{1,2})[時:]([0-9]{1,2})[分:]([0-9]{1,2})秒?$`),
}

var eraPattern = buildEraPattern()

// buildEraPattern compiles the era-date layout with an alternation of every
// era name and short code in the table.
func buildEraPattern() *regexp.Regexp {
	names := make([]string, 0, 2*len(eras))
	for _, e := range eras {
		names = append(names, regexp.QuoteMeta(e.Name))
	}
	for _, e := range eras {
		names = append(names, regexp.QuoteMeta(e.ShortName))
	}
	return regexp.MustCompile(`^(` + strings.Join(names, "|") + `)([0-9]{1,2}|` + Gannen + `)年([0-9]{1,2})月([0-9]{1,2})日$`)
}

// matchFirst returns the submatches of the first pattern matching s.
func matchFirst(patterns []*regexp.Regexp, s string) []string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(s); m != nil {
			return m
		}
	}
	return nil
}

// ParseWesternDate splits a Gregorian date written as YYYYMMDD, YYYY-M-D,
// YYYY/M/D or YYYY年M月D日 (trailing 日 optional). Month and day take one or
// two digits in the delimited forms. The result is not checked against the
// calendar.
func ParseWesternDate(s string) (WesternDate, bool) {
	m := matchFirst(westernPatterns, s)
	if m == nil {
		return WesternDate{}, false
	}
	return WesternDate{
		Year:  m[1],
		Month: m[2],
		Day:   m[3],
		Date:  m[1] + pad2(m[2]) + pad2(m[3]),
	}, true
}

// ParseEraDate splits an era date written as {era}{year}年{month}月{day}日,
// where era is a name (令和) or short code (R) from the table and year is one
// or two digits or 元.
func ParseEraDate(s string) (EraDate, bool) {
	m := eraPattern.FindStringSubmatch(s)
	if m == nil {
		return EraDate{}, false
	}
	return EraDate{
		Era:   m[1],
		Year:  m[2],
		Month: m[3],
		Day:   m[4],
		Date:  m[2] + m[3] + m[4],
	}, true
}

// ParseTime splits a time written as HHMMSS, H:M:S or H時M分S秒, with an
// optional 午前/午後 prefix. The prefix is accepted but does not shift the
// hour.
func ParseTime(s string) (TimeOfDay, bool) {
	m := matchFirst(timePatterns, s)
	if m == nil {
		return TimeOfDay{}, false
	}
	return TimeOfDay{Hour: m[1], Minutes: m[2], Second: m[3]}, true
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
