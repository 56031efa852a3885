package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-wareki/internal/config"
	"github.com/tartampluch/go-wareki/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var port string
	var refresh time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the era calendar feed and the JSON API on 127.0.0.1",
		Long: "serve listens on 127.0.0.1 and exposes:\n" +
			"  " + config.RouteCalendar + "       era calendar (iCalendar)\n" +
			"  " + config.RouteToEra + "?date=   western date to era date\n" +
			"  " + config.RouteToWest + "?date= era date to western date\n" +
			"  " + config.RouteValidate + "?date= validity verdict\n" +
			"  " + config.RouteInfo + "?ts=     date, time and weekday\n" +
			"  " + config.RouteEras + "         era table",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if !flags.Changed(config.FlagPort) {
				port = a.settings.Server.Port
			}
			if !flags.Changed(config.FlagRefresh) {
				refresh = a.settings.RefreshInterval()
			}
			if refresh <= 0 {
				return errors.New(config.ErrRefreshValue)
			}
			if err := config.ValidatePort(port); err != nil {
				return err
			}

			srv := server.New(port, a.tr)
			srv.Clock = a.clock
			srv.FoldWidth = a.opts.foldWidth

			ctx := cmd.Context()
			go srv.RunRefresher(ctx, refresh)
			return srv.Start(ctx)
		},
	}

	cmd.Flags().StringVarP(&port, config.FlagPort, "p", config.DefaultPort, config.FlagDescPort)
	cmd.Flags().DurationVar(&refresh, config.FlagRefresh, config.DefaultRefreshMin*time.Minute, config.FlagDescRefresh)
	return cmd
}
