package cli

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-wareki/internal/config"
	"github.com/zalando/go-keyring"
)

func newPasswordCmd(a *app) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "password",
		Short: "Store the vCard server password in the OS keyring",
		Long: "password reads one line from stdin and stores it in the OS keyring for\n" +
			"--user (default: the [vcard] user from the settings file).",
		Example: "  printf '%s\\n' \"$PASS\" | go-wareki password --user hanako",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed(config.FlagUser) {
				user = a.settings.VCard.User
			}
			if user == "" {
				return errors.New(config.ErrUserRequired)
			}

			// A final line without a newline still counts.
			line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			pass := strings.TrimRight(line, "\r\n")
			if pass == "" {
				return errors.New(config.ErrPassRead)
			}

			if err := keyring.Set(config.KeyringService, user, pass); err != nil {
				return fmt.Errorf("%s: %w", config.ErrPassStore, err)
			}

			slog.Info(config.MsgPassSaved,
				config.LogKeyComponent, config.CompCLI,
				config.LogKeyUser, user,
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&user, config.FlagUser, "u", "", config.FlagDescUser)
	return cmd
}
