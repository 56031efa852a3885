package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-wareki/internal/config"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), config.MsgVersionOutput,
				config.AppName,
				config.Version,
				config.Commit,
				config.Date,
				runtime.GOOS,
				runtime.GOARCH,
			)
			return err
		},
	}
}
