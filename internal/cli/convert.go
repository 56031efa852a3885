package cli

import (
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-wareki/internal/wareki"
)

type eraResult struct {
	Input string        `json:"input"`
	Era   wareki.Wareki `json:"era"`
	Text  string        `json:"text"`
}

type westernResult struct {
	Input   string             `json:"input"`
	Western wareki.WesternDate `json:"western"`
	Text    string             `json:"text"`
}

func newToEraCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "to-era <date>",
		Short: "Convert a western date (YYYYMMDD, YYYY-M-D, YYYY/M/D, YYYY年M月D日) to era notation",
		Example: "  go-wareki to-era 20190501\n" +
			"  go-wareki --gannen -f text to-era 2019年5月1日",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := a.input(args[0])
			if err != nil {
				return err
			}

			w, err := wareki.ConvertWesternToEra(input)
			if err != nil {
				return a.reject(err)
			}

			text := a.tr.FormatWareki(w, a.opts.gannen)
			return a.emit(cmd, eraResult{Input: input, Era: w, Text: text}, text)
		},
	}
}

func newToWesternCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "to-western <era date>",
		Short:   "Convert an era date (令和元年5月1日, R1年5月1日) to a western date",
		Example: "  go-wareki to-western 平成31年4月30日",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := a.input(args[0])
			if err != nil {
				return err
			}

			d, err := wareki.ConvertEraToWestern(input)
			if err != nil {
				return a.reject(err)
			}

			text := a.tr.FormatWestern(d)
			return a.emit(cmd, westernResult{Input: input, Western: d, Text: text}, text)
		},
	}
}
