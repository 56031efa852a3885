package engine

import (
	"cmp"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-wareki/internal/config"
	"github.com/tartampluch/go-wareki/internal/wareki"
)

// SourceConfig says where the vCard collection comes from.
type SourceConfig struct {
	Mode      string // config.SourceModeLocal or config.SourceModeWeb
	LocalPath string // Path to the .vcf file
	WebURL    string // CardDAV or WebDAV URL
	WebUser   string // HTTP Basic Auth Username
	WebPass   string // HTTP Basic Auth Password
}

// Annotator reads vCard birthdays and expresses them in era notation.
type Annotator struct {
	Clock   wareki.Clock // Determines "today" for the next occurrence.
	Fetcher VCardFetcher // Used in config.SourceModeWeb.
}

type annotateStats struct {
	processed, withBday, converted int
}

// Run reads the configured source and returns one entry per card with a
// usable BDAY, ordered by next occurrence.
func (a *Annotator) Run(ctx context.Context, cfg SourceConfig) ([]BirthdayEra, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyMode, cfg.Mode,
	)
	log.InfoContext(ctx, config.MsgAnnotateStart)

	reader, err := a.acquireStream(ctx, cfg)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	defer func() { _ = reader.Close() }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, stats, err := a.annotate(ctx, reader)
	if err != nil {
		return nil, err
	}

	log.Info(config.MsgAnnotateDone,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.processed),
			slog.Int(config.LogKeyFound, stats.withBday),
			slog.Int(config.LogKeyConverted, stats.converted),
		),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return entries, nil
}

// acquireStream opens the appropriate data source based on configuration.
func (a *Annotator) acquireStream(ctx context.Context, cfg SourceConfig) (io.ReadCloser, error) {
	switch cfg.Mode {
	case config.SourceModeLocal:
		if cfg.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(cfg.LocalPath)
	case config.SourceModeWeb:
		if cfg.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if a.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return a.Fetcher.Fetch(ctx, cfg.WebURL, cfg.WebUser, cfg.WebPass)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, cfg.Mode)
	}
}

// annotate decodes every card from r. Malformed cards and dates are skipped.
func (a *Annotator) annotate(ctx context.Context, r io.Reader) ([]BirthdayEra, annotateStats, error) {
	clock := a.Clock
	if clock == nil {
		clock = wareki.RealClock{}
	}
	now := clock.Now()

	decoder := vcard.NewDecoder(r)
	var stats annotateStats
	var entries []BirthdayEra

	for {
		if ctx.Err() != nil {
			return nil, stats, ctx.Err()
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyError, err)
			continue
		}

		stats.processed++
		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}

		birth, yearKnown, err := parseDate(bday.Value)
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyValue, bday.Value)
			continue
		}
		stats.withBday++

		entry := newEntry(cardName(card), birth, yearKnown, now)
		if entry.Era != nil {
			stats.converted++
		}
		entries = append(entries, entry)
	}

	slices.SortStableFunc(entries, func(x, y BirthdayEra) int {
		if c := x.NextOccurrence.Compare(y.NextOccurrence); c != 0 {
			return c
		}
		return cmp.Compare(x.Name, y.Name)
	})
	return entries, stats, nil
}

// cardName prefers FN (formatted) over N (structured).
func cardName(card vcard.Card) string {
	if fn := card.Get(config.VCardFN); fn != nil && fn.Value != "" {
		return fn.Value
	}
	if n := card.Get(config.VCardN); n != nil && n.Value != "" {
		return n.Value
	}
	return config.FallbackName
}

// newEntry builds the annotated record for one birthday.
func newEntry(name string, birth time.Time, yearKnown bool, now time.Time) BirthdayEra {
	input := fmt.Sprintf(config.FormatHashInput, name, birth.Format(time.RFC3339), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))

	next, ageNext := calculateNextOccurrence(now, birth, yearKnown)
	entry := BirthdayEra{
		UID:            fmt.Sprintf("%x", hash[:config.UIDHashLength]),
		Name:           name,
		Birth:          birth,
		YearKnown:      yearKnown,
		NextOccurrence: next,
		AgeNext:        ageNext,
	}
	if !yearKnown {
		return entry
	}

	entry.Western = birth.Format(config.DateFormatFullBasic)
	w, err := wareki.ConvertWesternToEra(entry.Western)
	if err != nil {
		slog.Debug(config.MsgInputRejected,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyValue, entry.Western,
			config.LogKeyReason, wareki.Reason(err))
		return entry
	}
	entry.Era = &w
	return entry
}

// calculateNextOccurrence returns the next birthday on or after today and
// the age reached on it. Feb 29 falls on Mar 1 in common years.
func calculateNextOccurrence(now time.Time, birth time.Time, yearKnown bool) (time.Time, int) {
	loc := now.Location()
	year := now.Year()

	candidate := time.Date(year, birth.Month(), birth.Day(), 0, 0, 0, 0, loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	if candidate.Before(today) {
		candidate = time.Date(year+1, birth.Month(), birth.Day(), 0, 0, 0, 0, loc)
	}

	if !yearKnown {
		return candidate, 0
	}
	return candidate, candidate.Year() - birth.Year()
}

// parseDate handles the vCard BDAY layouts. Dates without a year are
// anchored in config.DefaultLeapYear so --02-29 survives.
func parseDate(value string) (time.Time, bool, error) {
	withYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, layout := range withYear {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true, nil
		}
	}

	withoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, layout := range withoutYear {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), false, nil
		}
	}

	return time.Time{}, false, errors.New(config.ErrDateParse)
}
