package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-wareki/internal/config"
	"github.com/tartampluch/go-wareki/internal/wareki"
)

type timeResult struct {
	Input string           `json:"input"`
	Time  wareki.TimeOfDay `json:"time"`
}

type timestampResult struct {
	Input     string `json:"input"`
	Timestamp int64  `json:"timestamp"`
}

type dateResult struct {
	Timestamp int64  `json:"timestamp"`
	Date      string `json:"date"`
}

type infoResult struct {
	Timestamp int64           `json:"timestamp"`
	Info      wareki.DateInfo `json:"info"`
	Text      string          `json:"text"`
}

func newParseTimeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "parse-time <time>",
		Short:   "Split a time written as HHMMSS, H:M:S or H時M分S秒",
		Example: "  go-wareki parse-time 午後3時04分05秒",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := a.input(args[0])
			if err != nil {
				return err
			}

			t, ok := wareki.ParseTime(input)
			if !ok {
				return a.reject(&wareki.DateError{Kind: wareki.FormatMismatch, Input: input})
			}
			text := fmt.Sprintf("%s:%s:%s", t.Hour, t.Minutes, t.Second)
			return a.emit(cmd, timeResult{Input: input, Time: t}, text)
		},
	}
}

func newTimestampCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "timestamp <date>",
		Short: "Print the Unix time of local midnight on a western date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := a.input(args[0])
			if err != nil {
				return err
			}

			ts, ok := wareki.DateToTimestamp(input)
			if !ok {
				return a.reject(&wareki.DateError{Kind: wareki.FormatMismatch, Input: input})
			}
			return a.emit(cmd, timestampResult{Input: input, Timestamp: ts}, strconv.FormatInt(ts, 10))
		},
	}
}

func newDateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "date <unix seconds>",
		Short: "Print the local YYYYMMDD date of a Unix time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := parseTimestamp(args[0])
			if err != nil {
				return err
			}
			date := wareki.TimestampToDate(ts)
			return a.emit(cmd, dateResult{Timestamp: ts, Date: date}, date)
		},
	}
}

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info [unix seconds]",
		Short: "Break a Unix time (default now) into date, time and weekday",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var ts int64
			var info wareki.DateInfo
			if len(args) == 1 {
				v, err := parseTimestamp(args[0])
				if err != nil {
					return err
				}
				ts = v
				info = wareki.DateInfoAt(ts)
			} else {
				ts = a.clock.Now().Unix()
				info = wareki.CurrentDateInfo(a.clock)
			}

			text := a.tr.FormatInfo(info)
			return a.emit(cmd, infoResult{Timestamp: ts, Info: info, Text: text}, text)
		},
	}
}

func parseTimestamp(s string) (int64, error) {
	ts, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q", config.ErrTimestamp, s)
	}
	return ts, nil
}
