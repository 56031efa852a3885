package cli

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-wareki/internal/config"
	"github.com/tartampluch/go-wareki/internal/engine"
	"github.com/zalando/go-keyring"
)

func newVCardCmd(a *app) *cobra.Command {
	var path, url, user string

	cmd := &cobra.Command{
		Use:   "vcard",
		Short: "List vCard birthdays with their era dates",
		Long: "vcard reads a .vcf file or a CardDAV/WebDAV collection and prints each\n" +
			"birthday in western and era notation, soonest first. The password for\n" +
			"--user is read from the OS keyring (see the password command).",
		Example: "  go-wareki vcard --file contacts.vcf\n" +
			"  go-wareki vcard --url https://dav.example.com/addressbook --user hanako",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if !flags.Changed(config.FlagFile) {
				path = a.settings.VCard.Path
			}
			if !flags.Changed(config.FlagURL) {
				url = a.settings.VCard.URL
			}
			if !flags.Changed(config.FlagUser) {
				user = a.settings.VCard.User
			}

			var src engine.SourceConfig
			switch {
			case url != "":
				src = engine.SourceConfig{
					Mode:    config.SourceModeWeb,
					WebURL:  url,
					WebUser: user,
					WebPass: lookupPassword(user),
				}
			case path != "":
				src = engine.SourceConfig{Mode: config.SourceModeLocal, LocalPath: path}
			default:
				return errors.New(config.ErrSourceMissing)
			}

			annotator := &engine.Annotator{
				Clock:   a.clock,
				Fetcher: engine.NewHTTPFetcher(),
			}
			entries, err := annotator.Run(cmd.Context(), src)
			if err != nil {
				return err
			}
			if entries == nil {
				entries = []engine.BirthdayEra{}
			}

			lines := make([]string, 0, len(entries))
			for _, e := range entries {
				era := ""
				if e.Era != nil {
					era = a.tr.FormatWareki(*e.Era, a.opts.gannen)
				}
				lines = append(lines, a.tr.FormatBirthday(e.Name, e.Birth, era, e.YearKnown))
			}
			return a.emit(cmd, entries, strings.Join(lines, "\n"))
		},
	}

	cmd.Flags().StringVar(&path, config.FlagFile, "", config.FlagDescFile)
	cmd.Flags().StringVar(&url, config.FlagURL, "", config.FlagDescURL)
	cmd.Flags().StringVarP(&user, config.FlagUser, "u", "", config.FlagDescUser)
	cmd.MarkFlagsMutuallyExclusive(config.FlagFile, config.FlagURL)
	return cmd
}

// lookupPassword reads the keyring entry for user. A missing entry means
// no password.
func lookupPassword(user string) string {
	if user == "" {
		return ""
	}
	pass, err := keyring.Get(config.KeyringService, user)
	if err != nil {
		slog.Debug(config.MsgPassFail,
			config.LogKeyComponent, config.CompCLI,
			config.LogKeyUser, user,
			config.LogKeyError, err,
		)
		return ""
	}
	return pass
}
