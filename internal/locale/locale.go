// Package locale renders conversion results for people, in Japanese or
// English, from the message files embedded under locales/.
package locale

import (
	"embed"
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-wareki/internal/config"
	"github.com/tartampluch/go-wareki/internal/wareki"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

var (
	bundleOnce sync.Once
	bundle     *i18n.Bundle
	supported  []language.Tag
)

// Translator localizes messages for one language. It is safe for concurrent use.
type Translator struct {
	localizer *i18n.Localizer
	tag       language.Tag
}

// New returns a Translator for the best supported match of lang. Unknown or
// malformed tags fall back to Japanese.
func New(lang string) *Translator {
	bundleOnce.Do(loadBundle)

	_, idx, _ := language.NewMatcher(supported).Match(language.Make(lang))
	return forTag(supported[idx])
}

// FromAcceptLanguage picks the Translator matching an HTTP Accept-Language
// header. fallback is returned when nothing supported is acceptable.
func FromAcceptLanguage(header string, fallback *Translator) *Translator {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	bundleOnce.Do(loadBundle)

	_, idx, conf := language.NewMatcher(supported).Match(tags...)
	if conf == language.No {
		return fallback
	}
	return forTag(supported[idx])
}

func forTag(tag language.Tag) *Translator {
	return &Translator{
		localizer: i18n.NewLocalizer(bundle, tag.String()),
		tag:       tag,
	}
}

// loadBundle reads every active.<lang>.json file from the embedded FS.
func loadBundle() {
	bundle = i18n.NewBundle(language.Japanese)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	for _, l := range config.SupportedLanguages {
		supported = append(supported, language.Make(l))
	}

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
		)
	}
}

// Language returns the tag the Translator resolved to.
func (t *Translator) Language() language.Tag {
	return t.tag
}

// Msg translates key with optional template data. A missing key is
// returned unchanged.
func (t *Translator) Msg(key string, data map[string]any) string {
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil || msg == "" {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}

// EraName returns the localized name of e (令和, Reiwa).
func (t *Translator) EraName(e wareki.Era) string {
	key := config.TKeyEraPrefix + e.ShortName
	if name := t.Msg(key, nil); name != key {
		return name
	}
	return e.Name
}

// Weekday returns the localized full weekday name.
func (t *Translator) Weekday(wd time.Weekday) string {
	return t.Msg(config.TKeyWeekdayPrefix+strconv.Itoa(int(wd)), nil)
}

// FormatWareki renders an era date such as 令和1年5月1日. With gannen set,
// the first year is written 元年.
func (t *Translator) FormatWareki(w wareki.Wareki, gannen bool) string {
	eraName := w.Name
	if e, ok := wareki.EraByName(w.Name); ok {
		eraName = t.EraName(e)
	}
	year := atoi(w.Year)
	data := dateData(year, atoi(w.Month), atoi(w.Day))
	data["Era"] = eraName

	if gannen && year == 1 {
		return t.Msg(config.TKeyFmtGannen, data)
	}
	return t.Msg(config.TKeyFmtWareki, data)
}

// FormatWestern renders a western date such as 2019年5月1日.
func (t *Translator) FormatWestern(d wareki.WesternDate) string {
	return t.Msg(config.TKeyFmtWestern, dateData(atoi(d.Year), atoi(d.Month), atoi(d.Day)))
}

// FormatInfo renders a DateInfo with its localized weekday.
func (t *Translator) FormatInfo(info wareki.DateInfo) string {
	data := dateData(atoi(info.Year), atoi(info.Month), atoi(info.Day))
	data["Hour"] = info.Hour
	data["Minutes"] = info.Minutes
	data["Second"] = info.Second
	data["Weekday"] = info.Week
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if wareki.WeekdayName(wd) == info.Week {
			data["Weekday"] = t.Weekday(wd)
			break
		}
	}
	return t.Msg(config.TKeyFmtInfo, data)
}

// Reason explains why a date was rejected.
func (t *Translator) Reason(kind wareki.ErrorKind) string {
	return t.Msg(config.TKeyReasonPrefix+string(kind), nil)
}

// Validity returns the localized valid/invalid label.
func (t *Translator) Validity(valid bool) string {
	if valid {
		return t.Msg(config.TKeyLblValid, nil)
	}
	return t.Msg(config.TKeyLblInvalid, nil)
}

// FormatBirthday renders one annotated vCard birthday. era may be empty
// for birthdays without a year or before the first era.
func (t *Translator) FormatBirthday(name string, birth time.Time, era string, yearKnown bool) string {
	if !yearKnown || era == "" {
		data := dateData(0, int(birth.Month()), birth.Day())
		data["Name"] = name
		return t.Msg(config.TKeyFmtBdayNoYear, data)
	}
	western := t.Msg(config.TKeyFmtWestern, dateData(birth.Year(), int(birth.Month()), birth.Day()))
	return t.Msg(config.TKeyFmtBirthday, map[string]any{
		"Name":    name,
		"Western": western,
		"Era":     era,
	})
}

// EraStartSummary is the event title for the first day of e.
func (t *Translator) EraStartSummary(e wareki.Era) string {
	return t.Msg(config.TKeyEvtEraStart, map[string]any{
		"Era":  t.EraName(e),
		"Code": e.ShortName,
	})
}

// EraRangeDescription describes the span of e, open-ended for the current era.
func (t *Translator) EraRangeDescription(e wareki.Era) string {
	start := t.formatDateInt(e.StartDate)
	if e.EndDate == wareki.OpenEnded {
		return t.Msg(config.TKeyEvtEraOpen, map[string]any{"Start": start})
	}
	return t.Msg(config.TKeyEvtEraRange, map[string]any{
		"Start": start,
		"End":   t.formatDateInt(e.EndDate),
	})
}

// CalendarName is the display name of the era calendar feed.
func (t *Translator) CalendarName() string {
	return t.Msg(config.TKeyCalName, nil)
}

func (t *Translator) formatDateInt(date int) string {
	return t.Msg(config.TKeyFmtWestern, dateData(date/10000, date/100%100, date%100))
}

// dateData builds the template data shared by the date formats. Numbers are
// passed as ints so leading zeros disappear in the rendered text.
func dateData(year, month, day int) map[string]any {
	data := map[string]any{
		"Year":  year,
		"Month": month,
		"Day":   day,
	}
	if month >= 1 && month <= 12 {
		data["MonthName"] = time.Month(month).String()
	}
	return data
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
