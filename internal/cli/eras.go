package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-wareki/internal/wareki"
)

type eraRow struct {
	wareki.Era
	Label string `json:"label"`
	Range string `json:"range"`
}

func newErasCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "eras",
		Short: "List the era table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eras := wareki.Eras()
			rows := make([]eraRow, 0, len(eras))
			lines := make([]string, 0, len(eras))

			for _, e := range eras {
				row := eraRow{
					Era:   e,
					Label: a.tr.EraName(e),
					Range: a.tr.EraRangeDescription(e),
				}
				rows = append(rows, row)
				lines = append(lines, fmt.Sprintf("%s (%s) %s", row.Label, e.ShortName, row.Range))
			}
			return a.emit(cmd, rows, strings.Join(lines, "\n"))
		},
	}
}
