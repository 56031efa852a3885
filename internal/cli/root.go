// Package cli implements the go-wareki commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-wareki/internal/config"
	"github.com/tartampluch/go-wareki/internal/locale"
	"github.com/tartampluch/go-wareki/internal/textenc"
	"github.com/tartampluch/go-wareki/internal/wareki"
)

// errSilent marks a failure whose output was already written, such as an
// invalid verdict from validate.
var errSilent = errors.New("silent failure")

// options holds the persistent flags after merging with the settings file.
type options struct {
	configPath string
	lang       string
	encoding   string
	format     string
	foldWidth  bool
	gannen     bool
	debug      bool
}

// app carries what every subcommand needs once the root has initialized.
type app struct {
	opts      options
	settings  config.Settings
	tr        *locale.Translator
	clock     wareki.Clock
	logCloser io.Closer
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	return execute(ctx, &app{clock: wareki.RealClock{}}, args, stdin, stdout, stderr)
}

func execute(ctx context.Context, a *app, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if a.logCloser != nil {
		defer func() { _ = a.logCloser.Close() }()
	}

	if err != nil {
		if !errors.Is(err, errSilent) {
			fmt.Fprintf(stderr, config.MsgErrorOutput, a.describe(err))
		}
		slog.Debug(config.ErrAppFailed,
			config.LogKeyComponent, config.CompCLI,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}
	slog.Debug(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   config.CmdName,
		Short: "Convert dates between the Japanese era calendar and the Gregorian calendar",
		Long: "go-wareki converts Gregorian dates to Japanese era (和暦) notation and back,\n" +
			"validates both forms, and serves an era calendar feed and JSON API on localhost.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.opts.configPath, config.FlagConfig, "c", "", config.FlagDescConfig)
	pf.StringVarP(&a.opts.lang, config.FlagLang, "l", config.DefaultLanguage, config.FlagDescLang)
	pf.StringVarP(&a.opts.encoding, config.FlagEncoding, "e", config.DefaultEncoding, config.FlagDescEncoding)
	pf.StringVarP(&a.opts.format, config.FlagFormat, "f", config.DefaultFormat, config.FlagDescFormat)
	pf.BoolVarP(&a.opts.foldWidth, config.FlagFoldWidth, "w", false, config.FlagDescFoldWidth)
	pf.BoolVarP(&a.opts.gannen, config.FlagGannen, "g", false, config.FlagDescGannen)
	pf.BoolVar(&a.opts.debug, config.FlagDebug, false, config.FlagDescDebug)

	root.AddCommand(
		newToEraCmd(a),
		newToWesternCmd(a),
		newValidateCmd(a),
		newParseTimeCmd(a),
		newTimestampCmd(a),
		newDateCmd(a),
		newInfoCmd(a),
		newErasCmd(a),
		newVCardCmd(a),
		newPasswordCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup installs logging, loads the settings file and lets explicitly set
// flags override it.
func (a *app) setup(cmd *cobra.Command) error {
	a.logCloser = setupLogging(a.opts.debug, cmd.ErrOrStderr())

	s, err := config.LoadSettings(a.opts.configPath)
	if err != nil {
		return err
	}
	a.settings = s

	flags := cmd.Flags()
	if !flags.Changed(config.FlagLang) {
		a.opts.lang = s.Language
	}
	if !flags.Changed(config.FlagEncoding) {
		a.opts.encoding = s.Encoding
	}
	if !flags.Changed(config.FlagFormat) {
		a.opts.format = s.Format
	}
	if !flags.Changed(config.FlagFoldWidth) {
		a.opts.foldWidth = s.FoldWidth
	}
	if !flags.Changed(config.FlagGannen) {
		a.opts.gannen = s.Gannen
	}

	if a.opts.format != config.FormatJSON && a.opts.format != config.FormatText {
		return fmt.Errorf("%s: %q", config.ErrOutputFormat, a.opts.format)
	}
	if _, err := textenc.Lookup(a.opts.encoding); err != nil {
		return err
	}

	a.tr = locale.New(a.opts.lang)
	return nil
}

// input decodes a command-line argument and folds its width when enabled.
func (a *app) input(arg string) (string, error) {
	s, err := textenc.Normalize(arg, a.opts.encoding, a.opts.foldWidth)
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrDecode, err)
	}
	return s, nil
}

// reject logs a rejected date and passes the error on.
func (a *app) reject(err error) error {
	var de *wareki.DateError
	if errors.As(err, &de) {
		slog.Debug(config.MsgInputRejected,
			config.LogKeyComponent, config.CompCLI,
			config.LogKeyValue, de.Input,
			config.LogKeyReason, de.Kind,
		)
	}
	return err
}

// describe turns err into the line printed on stderr. Date rejections get
// the localized reason.
func (a *app) describe(err error) string {
	var de *wareki.DateError
	if a.tr != nil && errors.As(err, &de) {
		return fmt.Sprintf("%s: %q", a.tr.Reason(de.Kind), de.Input)
	}
	return err.Error()
}
