package cli

import (
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-wareki/internal/wareki"
)

// Input formats reported by validate.
const (
	formatWestern = "western"
	formatEra     = "era"
)

type validateResult struct {
	Input  string `json:"input"`
	Format string `json:"format,omitempty"`
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <date>",
		Short: "Check that a western or era date names a real day",
		Long: "validate prints a verdict for a western or era date and exits 1 when\n" +
			"the date is invalid. Era dates are checked against the era year number.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := a.input(args[0])
			if err != nil {
				return err
			}

			res := validateResult{Input: input}
			switch {
			case wareki.IsWesternFormat(input):
				res.Format = formatWestern
				_, err = wareki.CheckWesternDate(input)
			case wareki.IsEraFormat(input):
				res.Format = formatEra
				_, err = wareki.CheckEraDate(input)
			default:
				err = &wareki.DateError{Kind: wareki.FormatMismatch, Input: input}
			}

			text := a.tr.Validity(err == nil)
			if err != nil {
				_ = a.reject(err)
				kind := wareki.Reason(err)
				res.Reason = string(kind)
				text += ": " + a.tr.Reason(kind)
			}
			res.Valid = err == nil

			if emitErr := a.emit(cmd, res, text); emitErr != nil {
				return emitErr
			}
			if !res.Valid {
				return errSilent
			}
			return nil
		},
	}
}
