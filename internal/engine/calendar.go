package engine

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-wareki/internal/config"
	"github.com/tartampluch/go-wareki/internal/wareki"
)

// CalendarBuilder renders the era table as an iCalendar feed with one
// all-day event on the first day of each era.
type CalendarBuilder struct {
	Clock wareki.Clock

	// Name is the X-WR-CALNAME of the feed.
	Name string

	// FormatSummary and FormatDescription let callers inject localized text.
	FormatSummary     func(e wareki.Era) string
	FormatDescription func(e wareki.Era) string
}

// Build encodes the calendar. DTSTAMP is taken from the clock.
func (b *CalendarBuilder) Build() ([]byte, error) {
	clock := b.Clock
	if clock == nil {
		clock = wareki.RealClock{}
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)
	if b.Name != "" {
		cal.Props.SetText(config.PropXWRCalName, b.Name)
	}

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(clock.Now().UTC())

	eras := wareki.Eras()
	for _, e := range eras {
		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatEraUID, e.ShortName, config.ICalDomain))
		event.Props.Set(dtStampProp)
		event.Props.SetText(config.PropSummary, b.summary(e))
		event.Props.SetText(config.PropDescription, b.description(e))

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(time.Date(e.StartDate/10000, time.Month(e.StartDate/100%100), e.StartDate%100, 0, 0, 0, 0, time.UTC))
		event.Props.Set(dtStartProp)

		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Debug(config.MsgCalendarBuilt,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyCount, len(eras),
		config.LogKeySizeBytes, buf.Len(),
	)
	return buf.Bytes(), nil
}

func (b *CalendarBuilder) summary(e wareki.Era) string {
	if b.FormatSummary != nil {
		return b.FormatSummary(e)
	}
	return fmt.Sprintf("%s (%s)", e.Name, e.ShortName)
}

func (b *CalendarBuilder) description(e wareki.Era) string {
	if b.FormatDescription != nil {
		return b.FormatDescription(e)
	}
	if e.EndDate == wareki.OpenEnded {
		return fmt.Sprintf("%d-", e.StartDate)
	}
	return fmt.Sprintf("%d-%d", e.StartDate, e.EndDate)
}
