package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-wareki/internal/config"
)

// emit writes v as indented JSON, or text in text format.
func (a *app) emit(cmd *cobra.Command, v any, text string) error {
	out := cmd.OutOrStdout()
	if a.opts.format == config.FormatText {
		_, err := fmt.Fprintln(out, text)
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
