package engine

import (
	"time"

	"github.com/tartampluch/go-wareki/internal/wareki"
)

// BirthdayEra is one vCard birthday annotated with its era notation.
type BirthdayEra struct {
	// UID is a stable hash of the name and birth date.
	UID  string `json:"uid"`
	Name string `json:"name"`

	// Birth is the parsed BDAY value. Without a year it carries
	// config.DefaultLeapYear.
	Birth     time.Time `json:"-"`
	YearKnown bool      `json:"year_known"`

	// Western is the YYYYMMDD form, empty when the year is unknown.
	Western string `json:"western,omitempty"`

	// Era is nil when the year is unknown or falls before the first era.
	Era *wareki.Wareki `json:"era,omitempty"`

	NextOccurrence time.Time `json:"next_occurrence"`
	AgeNext        int       `json:"age_next,omitempty"`
}
